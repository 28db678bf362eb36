package engine

import (
	"context"
	"log"
	"time"

	"aff-payout-api/internal/schedule"
	"aff-payout-api/internal/split"
)

// Engine 佣金入账与调度结算的编排器
// 只有它会改动待结算余额；时钟只在调度发放时被推进。
type Engine struct {
	store Store
	exec  Executor
	clock *schedule.Clock
	pub   Publisher
	audit AuditAlerter

	newRecordID func() uint64
	height      func() int64

	dueScanLimit int
	batchLimit   int
}

type Options struct {
	Publisher    Publisher
	AuditAlerter AuditAlerter
	NewRecordID  func() uint64
	Height       func() int64 // 逻辑高度来源，默认 unix 秒
	DueScanLimit int
	BatchLimit   int
}

func New(store Store, exec Executor, clock *schedule.Clock, opts Options) *Engine {
	e := &Engine{
		store:        store,
		exec:         exec,
		clock:        clock,
		pub:          opts.Publisher,
		audit:        opts.AuditAlerter,
		newRecordID:  opts.NewRecordID,
		height:       opts.Height,
		dueScanLimit: opts.DueScanLimit,
		batchLimit:   opts.BatchLimit,
	}
	if e.height == nil {
		e.height = func() int64 { return time.Now().Unix() }
	}
	if e.dueScanLimit <= 0 {
		e.dueScanLimit = 100
	}
	if e.batchLimit <= 0 {
		e.batchLimit = 20
	}
	return e
}

func (e *Engine) isAdmin(id uint64) bool {
	ok, err := e.store.IsAdmin(id)
	if err != nil {
		log.Printf("[ENGINE] 管理员查询失败: id=%d err=%v", id, err)
		return false
	}
	return ok
}

// RecordCommission 商户（或管理员代商户）记录一笔应付佣金
// 配置了有效分佣则按份额逐人向下取整入账，否则全额入给推广员本人；
// 立即结算商户随手触发一次只覆盖本次入账对象的发放，
// 发放失败不向调用方报错（入账本身已成功，余额留待调度重试）。
func (e *Engine) RecordCommission(ctx context.Context, caller, merchantID, affiliateID uint64, amount int64) (*AccrualResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if affiliateID == 0 {
		return nil, ErrInvalidRecipient
	}
	if caller != merchantID && !e.isAdmin(caller) {
		return nil, ErrNotAuthorized
	}

	cfg, err := e.store.GetMerchantConfig(merchantID)
	if err != nil {
		return nil, err
	}
	if cfg == nil || !cfg.Active {
		return nil, ErrMerchantNotFound
	}

	now := e.height()

	// 分佣解析：有效配置全员拆分，缺省直通推广员
	var portions []split.Portion
	sp, err := e.store.GetSplit(merchantID, affiliateID)
	if err != nil {
		return nil, err
	}
	if sp != nil && sp.Active {
		portions = split.Apply(sp.Recipients, amount)
	} else {
		portions = []split.Portion{{RecipientID: affiliateID, Amount: amount}}
	}

	for _, p := range portions {
		total, err := e.store.Accrue(p.RecipientID, merchantID, affiliateID, p.Amount, now)
		if err != nil {
			return nil, err
		}
		log.Printf("[ROUTER] 入账: recipient=%d amount=%d total=%d merchant=%d", p.RecipientID, p.Amount, total, merchantID)
	}

	res := &AccrualResult{Portions: portions}

	// 立即结算：只针对本次入账的收款人，门槛照常生效
	if cfg.Schedule == schedule.Immediate {
		disbursed := make([]Disbursement, 0, len(portions))
		for _, p := range portions {
			amt, err := e.settleTransfer(ctx, p.RecipientID, cfg.MinThreshold, now)
			if err != nil {
				switch err {
				case ErrThresholdNotMet, ErrNoPendingPayout:
					continue // 留着继续累积
				case ErrTransferFailed:
					// 入账已落库、余额已恢复，这里报错会让消息方重投同一笔销售，
					// 造成重复入账；结清交给后续调度重试
					log.Printf("[ROUTER] 即时结清失败，留待调度重试: recipient=%d merchant=%d", p.RecipientID, merchantID)
					continue
				default:
					return nil, err
				}
			}
			disbursed = append(disbursed, Disbursement{RecipientID: p.RecipientID, Amount: amt})
		}
		if len(disbursed) > 0 {
			res.Settled = e.recordHistory(merchantID, affiliateID, disbursed, now)
		}
	}

	return res, nil
}

// ProcessDuePayouts 调度发放，任何人都可触发（外部调度器友好）
// 先推进时钟，再用"本次被推进的周期集合"判定商户是否到期；
// 立即结算商户任何一次调用都视为到期。cadences 非空时进一步收窄范围。
// 余额结清后即为零，紧接着的重复调用不会重复结算任何人；
// 被跳过的行会刷新扫描高度排到队尾，存量超过单次扫描上限时连续调用即可轮转覆盖。
func (e *Engine) ProcessDuePayouts(ctx context.Context, cadences ...schedule.Cadence) (*RunResult, error) {
	st, err := e.store.GetScheduleState()
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrScheduleNotInit
	}

	now := e.height()
	fired := e.clock.Advance(st, now)
	if err := e.store.PutScheduleState(st); err != nil {
		return nil, err
	}

	eligible := map[schedule.Cadence]bool{schedule.Immediate: true}
	for _, c := range fired {
		eligible[c] = true
	}
	if len(cadences) > 0 {
		scoped := map[schedule.Cadence]bool{}
		for _, c := range cadences {
			if eligible[c] {
				scoped[c] = true
			}
		}
		scoped[schedule.Immediate] = eligible[schedule.Immediate]
		eligible = scoped
	}

	res := &RunResult{Fired: fired}

	pendings, err := e.store.ListPending(e.dueScanLimit)
	if err != nil {
		return nil, err
	}
	for _, pb := range pendings {
		res.Scanned++
		cfg, err := e.store.GetMerchantConfig(pb.MerchantID)
		if err != nil || cfg == nil {
			res.Skipped++
			e.touch(&pb, now)
			continue
		}
		if !eligible[cfg.Schedule] {
			res.Skipped++
			e.touch(&pb, now)
			continue
		}
		if pb.Amount < cfg.MinThreshold {
			res.Skipped++ // 低于门槛，继续累积
			e.touch(&pb, now)
			continue
		}
		amt, err := e.settleTransfer(ctx, pb.RecipientID, cfg.MinThreshold, now)
		if err != nil {
			if err == ErrTransferFailed {
				res.Failed++
				continue
			}
			res.Skipped++
			continue
		}
		rec := e.recordHistory(pb.MerchantID, pb.AffiliateID, []Disbursement{{RecipientID: pb.RecipientID, Amount: amt}}, now)
		res.Settled++
		res.RecordIDs = append(res.RecordIDs, rec.RecordID)
	}

	return res, nil
}

// touch 零额入账刷新扫描高度，把本轮跳过的行排到扫描队尾；
// 扫描按最旧高度优先，不刷新的话存量超过单次上限时靠前的行会一直霸占窗口
func (e *Engine) touch(pb *PendingBalance, now int64) {
	if _, err := e.store.Accrue(pb.RecipientID, pb.MerchantID, pb.AffiliateID, 0, now); err != nil {
		log.Printf("[ENGINE] 刷新扫描高度失败: recipient=%d err=%v", pb.RecipientID, err)
	}
}

// ProcessRecipientPayout 手工结算单个收款人，本人或管理员可发起
// 跳过周期判定（手工即视为到期），门槛照常生效。
func (e *Engine) ProcessRecipientPayout(ctx context.Context, caller, recipientID uint64) (*PayoutRecord, error) {
	if recipientID == 0 {
		return nil, ErrInvalidRecipient
	}
	if caller != recipientID && !e.isAdmin(caller) {
		return nil, ErrNotAuthorized
	}

	pb, err := e.store.GetPending(recipientID)
	if err != nil {
		return nil, err
	}
	if pb == nil || pb.Amount == 0 {
		return nil, ErrNoPendingPayout
	}

	threshold := int64(0)
	if cfg, err := e.store.GetMerchantConfig(pb.MerchantID); err == nil && cfg != nil {
		threshold = cfg.MinThreshold
	}

	now := e.height()
	amt, err := e.settleTransfer(ctx, recipientID, threshold, now)
	if err != nil {
		return nil, err
	}
	return e.recordHistory(pb.MerchantID, pb.AffiliateID, []Disbursement{{RecipientID: recipientID, Amount: amt}}, now), nil
}

// BatchProcessPayouts 管理员按名单批量结算，单次上限 batchLimit
// 逐个真实结算，逐个返回结果，不做整体回滚。
func (e *Engine) BatchProcessPayouts(ctx context.Context, caller uint64, recipients []uint64) ([]BatchOutcome, error) {
	if !e.isAdmin(caller) {
		return nil, ErrNotAuthorized
	}
	if len(recipients) > e.batchLimit {
		return nil, ErrBatchLimit
	}

	now := e.height()
	out := make([]BatchOutcome, 0, len(recipients))
	for _, rid := range recipients {
		pb, err := e.store.GetPending(rid)
		if err != nil {
			out = append(out, BatchOutcome{RecipientID: rid, Err: err})
			continue
		}
		if pb == nil || pb.Amount == 0 {
			out = append(out, BatchOutcome{RecipientID: rid, Err: ErrNoPendingPayout})
			continue
		}
		threshold := int64(0)
		if cfg, err := e.store.GetMerchantConfig(pb.MerchantID); err == nil && cfg != nil {
			threshold = cfg.MinThreshold
		}
		amt, err := e.settleTransfer(ctx, rid, threshold, now)
		if err != nil {
			out = append(out, BatchOutcome{RecipientID: rid, Err: err})
			continue
		}
		rec := e.recordHistory(pb.MerchantID, pb.AffiliateID, []Disbursement{{RecipientID: rid, Amount: amt}}, now)
		out = append(out, BatchOutcome{RecipientID: rid, RecordID: rec.RecordID})
	}
	return out, nil
}

// InitializeSchedule 部署后由管理员调用一次
// 再次调用是整体重排（管理员主动重置），照常执行。
func (e *Engine) InitializeSchedule(caller uint64) (*schedule.State, error) {
	if !e.isAdmin(caller) {
		return nil, ErrNotAuthorized
	}
	st := &schedule.State{}
	e.clock.Initialize(st, e.height())
	if err := e.store.PutScheduleState(st); err != nil {
		return nil, err
	}
	log.Printf("[ENGINE] 调度时钟初始化: %+v", st)
	return st, nil
}
