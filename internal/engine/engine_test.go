package engine

import (
	"context"
	"errors"
	"sort"
	"testing"

	"aff-payout-api/internal/schedule"
	"aff-payout-api/internal/split"
)

// ---- 测试替身 ----

type memStore struct {
	merchants map[uint64]MerchantConfig
	splits    map[[2]uint64]CommissionSplit
	pending   map[uint64]PendingBalance
	admins    map[uint64]bool
	state     *schedule.State
	records   map[uint64]PayoutRecord
	appendErr error
}

func newMemStore() *memStore {
	return &memStore{
		merchants: map[uint64]MerchantConfig{},
		splits:    map[[2]uint64]CommissionSplit{},
		pending:   map[uint64]PendingBalance{},
		admins:    map[uint64]bool{},
		records:   map[uint64]PayoutRecord{},
	}
}

func (s *memStore) GetMerchantConfig(m uint64) (*MerchantConfig, error) {
	if cfg, ok := s.merchants[m]; ok {
		c := cfg
		return &c, nil
	}
	return nil, nil
}
func (s *memStore) PutMerchantConfig(cfg *MerchantConfig) error {
	s.merchants[cfg.MerchantID] = *cfg
	return nil
}
func (s *memStore) GetSplit(m, a uint64) (*CommissionSplit, error) {
	if sp, ok := s.splits[[2]uint64{m, a}]; ok {
		c := sp
		return &c, nil
	}
	return nil, nil
}
func (s *memStore) PutSplit(sp *CommissionSplit) error {
	s.splits[[2]uint64{sp.MerchantID, sp.AffiliateID}] = *sp
	return nil
}
func (s *memStore) Accrue(r, m, a uint64, amount, height int64) (int64, error) {
	pb := s.pending[r]
	pb.RecipientID = r
	pb.MerchantID = m
	pb.AffiliateID = a
	pb.Amount += amount
	pb.LastUpdated = height
	s.pending[r] = pb
	return pb.Amount, nil
}
func (s *memStore) ClearPending(r uint64) (*PendingBalance, error) {
	pb, ok := s.pending[r]
	if !ok || pb.Amount == 0 {
		return nil, ErrNoPendingPayout
	}
	delete(s.pending, r)
	return &pb, nil
}
func (s *memStore) GetPending(r uint64) (*PendingBalance, error) {
	if pb, ok := s.pending[r]; ok {
		c := pb
		return &c, nil
	}
	return nil, nil
}
func (s *memStore) ListPending(limit int) ([]PendingBalance, error) {
	// 和真实存储一致：最旧高度优先，同高度按收款人升序
	all := make([]PendingBalance, 0, len(s.pending))
	for _, pb := range s.pending {
		if pb.Amount > 0 {
			all = append(all, pb)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].LastUpdated != all[j].LastUpdated {
			return all[i].LastUpdated < all[j].LastUpdated
		}
		return all[i].RecipientID < all[j].RecipientID
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
func (s *memStore) IsAdmin(id uint64) (bool, error) { return s.admins[id], nil }
func (s *memStore) SetAdmin(id uint64, active bool) error {
	s.admins[id] = active
	return nil
}
func (s *memStore) GetScheduleState() (*schedule.State, error) {
	if s.state == nil {
		return nil, nil
	}
	c := *s.state
	return &c, nil
}
func (s *memStore) PutScheduleState(st *schedule.State) error {
	c := *st
	s.state = &c
	return nil
}
func (s *memStore) AppendRecord(rec *PayoutRecord) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.records[rec.RecordID] = *rec
	return nil
}
func (s *memStore) GetRecord(id uint64) (*PayoutRecord, error) {
	if r, ok := s.records[id]; ok {
		c := r
		return &c, nil
	}
	return nil, nil
}
func (s *memStore) ListRecordsByMerchant(m uint64, limit int) ([]PayoutRecord, error) {
	out := []PayoutRecord{}
	for _, r := range s.records {
		if r.MerchantID == m && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeExec struct {
	fail  bool
	calls []Disbursement
}

func (f *fakeExec) ExecuteTransfer(_ context.Context, r uint64, amount int64) error {
	if f.fail {
		return errors.New("upstream down")
	}
	f.calls = append(f.calls, Disbursement{RecipientID: r, Amount: amount})
	return nil
}

const (
	adminID    = uint64(1)
	merchantID = uint64(100)
	affiliate  = uint64(200)
)

func newTestEngine(st *memStore, exec Executor) *Engine {
	if exec == nil {
		exec = &fakeExec{}
	}
	st.admins[adminID] = true
	clock := schedule.NewClock(schedule.Periods{Daily: 144, Weekly: 7 * 144, Monthly: 30 * 144})
	var seq uint64 = 1000
	height := int64(0)
	return New(st, exec, clock, Options{
		NewRecordID: func() uint64 { seq++; return seq },
		Height:      func() int64 { return height },
	})
}

func putMerchant(st *memStore, cad schedule.Cadence, threshold int64) {
	st.merchants[merchantID] = MerchantConfig{
		MerchantID:   merchantID,
		Schedule:     cad,
		MinThreshold: threshold,
		Active:       true,
	}
}

// ---- 入账 ----

func TestRecordCommission_Preconditions(t *testing.T) {
	st := newMemStore()
	e := newTestEngine(st, nil)
	ctx := context.Background()

	if _, err := e.RecordCommission(ctx, merchantID, merchantID, affiliate, 100); err != ErrMerchantNotFound {
		t.Errorf("missing config: got %v", err)
	}
	putMerchant(st, schedule.Daily, 0)
	if _, err := e.RecordCommission(ctx, merchantID, merchantID, affiliate, 0); err != ErrInvalidAmount {
		t.Errorf("zero amount: got %v", err)
	}
	if _, err := e.RecordCommission(ctx, merchantID, merchantID, affiliate, -5); err != ErrInvalidAmount {
		t.Errorf("negative amount: got %v", err)
	}
	if _, err := e.RecordCommission(ctx, 999, merchantID, affiliate, 100); err != ErrNotAuthorized {
		t.Errorf("stranger caller: got %v", err)
	}
	// 管理员可代商户入账
	if _, err := e.RecordCommission(ctx, adminID, merchantID, affiliate, 100); err != nil {
		t.Errorf("admin caller: got %v", err)
	}
	// 停用商户拒绝入账
	cfg := st.merchants[merchantID]
	cfg.Active = false
	st.merchants[merchantID] = cfg
	if _, err := e.RecordCommission(ctx, merchantID, merchantID, affiliate, 100); err != ErrMerchantNotFound {
		t.Errorf("inactive merchant: got %v", err)
	}
}

func TestAccrual_Monotonic(t *testing.T) {
	st := newMemStore()
	e := newTestEngine(st, nil)
	ctx := context.Background()
	putMerchant(st, schedule.Daily, 0)

	var prev int64
	for i := 0; i < 5; i++ {
		if _, err := e.RecordCommission(ctx, merchantID, merchantID, affiliate, 10); err != nil {
			t.Fatalf("accrue: %v", err)
		}
		pb, _ := e.GetPendingBalance(affiliate)
		if pb.Amount <= prev {
			t.Fatalf("balance not increasing: %d -> %d", prev, pb.Amount)
		}
		prev = pb.Amount
	}
	if prev != 50 {
		t.Errorf("final balance = %d, want 50", prev)
	}
}

func TestRecordCommission_PassThrough(t *testing.T) {
	st := newMemStore()
	e := newTestEngine(st, nil)
	putMerchant(st, schedule.Weekly, 0)

	res, err := e.RecordCommission(context.Background(), merchantID, merchantID, affiliate, 1000)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(res.Portions) != 1 || res.Portions[0].RecipientID != affiliate || res.Portions[0].Amount != 1000 {
		t.Errorf("pass-through portions: %+v", res.Portions)
	}
	if res.Settled != nil {
		t.Error("weekly merchant should not settle immediately")
	}
}

func TestRecordCommission_FanOutAllRecipients(t *testing.T) {
	st := newMemStore()
	e := newTestEngine(st, nil)
	putMerchant(st, schedule.Monthly, 0)
	st.splits[[2]uint64{merchantID, affiliate}] = CommissionSplit{
		MerchantID:  merchantID,
		AffiliateID: affiliate,
		Active:      true,
		Recipients: []split.Recipient{
			{RecipientID: 301, ShareBp: 5000},
			{RecipientID: 302, ShareBp: 3000},
			{RecipientID: 303, ShareBp: 2000},
		},
	}

	if _, err := e.RecordCommission(context.Background(), merchantID, merchantID, affiliate, 999); err != nil {
		t.Fatalf("record: %v", err)
	}
	// 全员入账，逐人向下取整：499 / 299 / 199
	for _, c := range []struct {
		r    uint64
		want int64
	}{{301, 499}, {302, 299}, {303, 199}} {
		pb, _ := e.GetPendingBalance(c.r)
		if pb == nil || pb.Amount != c.want {
			t.Errorf("recipient %d: got %+v, want %d", c.r, pb, c.want)
		}
	}
	// 推广员本人不在名单里则不入账
	if pb, _ := e.GetPendingBalance(affiliate); pb != nil {
		t.Errorf("affiliate should have no balance, got %+v", pb)
	}
}

func TestRecordCommission_InactiveSplitPassesThrough(t *testing.T) {
	st := newMemStore()
	e := newTestEngine(st, nil)
	putMerchant(st, schedule.Daily, 0)
	st.splits[[2]uint64{merchantID, affiliate}] = CommissionSplit{
		MerchantID:  merchantID,
		AffiliateID: affiliate,
		Active:      false,
		Recipients:  []split.Recipient{{RecipientID: 301, ShareBp: 10000}},
	}

	if _, err := e.RecordCommission(context.Background(), merchantID, merchantID, affiliate, 500); err != nil {
		t.Fatalf("record: %v", err)
	}
	pb, _ := e.GetPendingBalance(affiliate)
	if pb == nil || pb.Amount != 500 {
		t.Errorf("inactive split must pass through: %+v", pb)
	}
}

// ---- 结算 ----

func TestImmediate_EndToEnd(t *testing.T) {
	st := newMemStore()
	exec := &fakeExec{}
	e := newTestEngine(st, exec)
	ctx := context.Background()
	putMerchant(st, schedule.Immediate, 0)

	// 直通：1000 全额入账并当场结清
	res, err := e.RecordCommission(ctx, merchantID, merchantID, affiliate, 1000)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if res.Settled == nil || res.Settled.Total != 1000 {
		t.Fatalf("expected settled record total 1000, got %+v", res.Settled)
	}
	if pb, _ := e.GetPendingBalance(affiliate); pb != nil && pb.Amount != 0 {
		t.Errorf("balance should be zero after settle: %+v", pb)
	}
	if len(st.records) != 1 {
		t.Fatalf("expected 1 payout record, got %d", len(st.records))
	}

	// 配置 60/40 分佣后：500 → R1=300, R2=200，双双即时结清
	st.splits[[2]uint64{merchantID, affiliate}] = CommissionSplit{
		MerchantID:  merchantID,
		AffiliateID: affiliate,
		Active:      true,
		Recipients: []split.Recipient{
			{RecipientID: 401, ShareBp: 6000},
			{RecipientID: 402, ShareBp: 4000},
		},
	}
	res, err = e.RecordCommission(ctx, merchantID, merchantID, affiliate, 500)
	if err != nil {
		t.Fatalf("record with split: %v", err)
	}
	if res.Settled == nil || res.Settled.Total != 500 || len(res.Settled.Disbursements) != 2 {
		t.Fatalf("split settle record: %+v", res.Settled)
	}
	got := map[uint64]int64{}
	for _, d := range res.Settled.Disbursements {
		got[d.RecipientID] = d.Amount
	}
	if got[401] != 300 || got[402] != 200 {
		t.Errorf("disbursements = %v, want 401:300 402:200", got)
	}
	for _, r := range []uint64{401, 402} {
		if pb, _ := e.GetPendingBalance(r); pb != nil && pb.Amount != 0 {
			t.Errorf("recipient %d not cleared: %+v", r, pb)
		}
	}
}

func TestNoDoublePayment_TransferFailureRestoresBalance(t *testing.T) {
	st := newMemStore()
	exec := &fakeExec{fail: true}
	e := newTestEngine(st, exec)
	ctx := context.Background()
	putMerchant(st, schedule.Daily, 0)

	if _, err := e.RecordCommission(ctx, merchantID, merchantID, affiliate, 700); err != nil {
		t.Fatalf("record: %v", err)
	}

	_, err := e.ProcessRecipientPayout(ctx, affiliate, affiliate)
	if err != ErrTransferFailed {
		t.Fatalf("expected ErrTransferFailed, got %v", err)
	}
	pb, _ := e.GetPendingBalance(affiliate)
	if pb == nil || pb.Amount != 700 {
		t.Fatalf("balance must equal pre-call value exactly: %+v", pb)
	}
	if len(st.records) != 0 {
		t.Error("no history should be written for failed transfer")
	}

	// 上游恢复后全额结清，不多不少
	exec.fail = false
	rec, err := e.ProcessRecipientPayout(ctx, affiliate, affiliate)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if rec.Total != 700 {
		t.Errorf("retry total = %d, want 700", rec.Total)
	}
	if len(exec.calls) != 1 || exec.calls[0].Amount != 700 {
		t.Errorf("exactly one transfer expected: %+v", exec.calls)
	}
}

func TestThresholdGating(t *testing.T) {
	st := newMemStore()
	exec := &fakeExec{}
	e := newTestEngine(st, exec)
	ctx := context.Background()
	putMerchant(st, schedule.Immediate, 1000)

	// 低于门槛：入账保留，不结算
	res, err := e.RecordCommission(ctx, merchantID, merchantID, affiliate, 600)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if res.Settled != nil {
		t.Error("below threshold must not settle")
	}
	pb, _ := e.GetPendingBalance(affiliate)
	if pb == nil || pb.Amount != 600 {
		t.Fatalf("balance should keep accruing: %+v", pb)
	}

	// 手工结算同样被门槛拦下
	if _, err := e.ProcessRecipientPayout(ctx, affiliate, affiliate); err != ErrThresholdNotMet {
		t.Errorf("manual payout below threshold: got %v", err)
	}

	// 达到门槛即结清
	res, err = e.RecordCommission(ctx, merchantID, merchantID, affiliate, 400)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if res.Settled == nil || res.Settled.Total != 1000 {
		t.Fatalf("at threshold must settle full balance: %+v", res.Settled)
	}
}

func TestProcessDuePayouts_CadenceAndIdempotence(t *testing.T) {
	st := newMemStore()
	exec := &fakeExec{}
	e := newTestEngine(st, exec)
	ctx := context.Background()
	putMerchant(st, schedule.Daily, 0)

	if _, err := e.InitializeSchedule(adminID); err != nil {
		t.Fatalf("init schedule: %v", err)
	}
	if _, err := e.RecordCommission(ctx, merchantID, merchantID, affiliate, 250); err != nil {
		t.Fatalf("record: %v", err)
	}

	// 高度 0：日窗口排在 144，未到期 → 无人结算
	run, err := e.ProcessDuePayouts(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if run.Settled != 0 {
		t.Errorf("nothing due yet, settled=%d", run.Settled)
	}

	// 把日窗口推到到期
	st.state.NextDaily = 0
	run, err = e.ProcessDuePayouts(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if run.Settled != 1 {
		t.Fatalf("daily due, settled=%d want 1", run.Settled)
	}

	// 紧接着重复调用：周期刚推进过且余额已清零 → 无人被重复结算
	run, err = e.ProcessDuePayouts(ctx)
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if run.Settled != 0 {
		t.Errorf("idempotent rerun settled=%d, want 0", run.Settled)
	}
	if len(exec.calls) != 1 {
		t.Errorf("transfer executed %d times, want 1", len(exec.calls))
	}
}

func TestProcessDuePayouts_RequiresInit(t *testing.T) {
	st := newMemStore()
	e := newTestEngine(st, nil)
	if _, err := e.ProcessDuePayouts(context.Background()); err != ErrScheduleNotInit {
		t.Errorf("expected ErrScheduleNotInit, got %v", err)
	}
}

func TestBatchProcessPayouts(t *testing.T) {
	st := newMemStore()
	exec := &fakeExec{}
	e := newTestEngine(st, exec)
	ctx := context.Background()
	putMerchant(st, schedule.Monthly, 0)

	for _, r := range []uint64{501, 502} {
		if _, err := st.Accrue(r, merchantID, affiliate, 100, 0); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := e.BatchProcessPayouts(ctx, affiliate, []uint64{501}); err != ErrNotAuthorized {
		t.Errorf("non-admin batch: got %v", err)
	}

	out, err := e.BatchProcessPayouts(ctx, adminID, []uint64{501, 502, 503})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(out))
	}
	// 名单必须逐个真实结算，不允许空转
	if out[0].Err != nil || out[1].Err != nil {
		t.Errorf("funded recipients must settle: %+v", out)
	}
	if out[2].Err != ErrNoPendingPayout {
		t.Errorf("unfunded recipient: got %v", out[2].Err)
	}
	if len(exec.calls) != 2 {
		t.Errorf("expected 2 transfers, got %d", len(exec.calls))
	}

	big := make([]uint64, 21)
	if _, err := e.BatchProcessPayouts(ctx, adminID, big); err != ErrBatchLimit {
		t.Errorf("oversized batch: got %v", err)
	}
}

func TestHistory_UniqueRecordIDsAndDegradedAudit(t *testing.T) {
	st := newMemStore()
	exec := &fakeExec{}
	e := newTestEngine(st, exec)
	ctx := context.Background()
	putMerchant(st, schedule.Immediate, 0)

	// 同一逻辑步内两笔同额结算，记录号必须不同
	r1, _ := e.RecordCommission(ctx, merchantID, merchantID, affiliate, 100)
	r2, _ := e.RecordCommission(ctx, merchantID, merchantID, affiliate, 100)
	if r1.Settled.RecordID == r2.Settled.RecordID {
		t.Error("record ids must be unique per settlement")
	}

	// 落档失败不回滚转账：转账照常成功，余额保持清零
	st.appendErr = errors.New("history table gone")
	before := len(exec.calls)
	r3, err := e.RecordCommission(ctx, merchantID, merchantID, affiliate, 100)
	if err != nil {
		t.Fatalf("record with degraded audit: %v", err)
	}
	if r3.Settled == nil {
		t.Fatal("settlement must survive audit failure")
	}
	if len(exec.calls) != before+1 {
		t.Errorf("transfer count = %d, want %d", len(exec.calls), before+1)
	}
	if pb, _ := e.GetPendingBalance(affiliate); pb != nil && pb.Amount != 0 {
		t.Errorf("balance must stay cleared: %+v", pb)
	}
}

func TestManualPayout_Auth(t *testing.T) {
	st := newMemStore()
	e := newTestEngine(st, nil)
	ctx := context.Background()
	putMerchant(st, schedule.Daily, 0)
	if _, err := st.Accrue(affiliate, merchantID, affiliate, 100, 0); err != nil {
		t.Fatal(err)
	}

	if _, err := e.ProcessRecipientPayout(ctx, 999, affiliate); err != ErrNotAuthorized {
		t.Errorf("stranger manual payout: got %v", err)
	}
	if _, err := e.ProcessRecipientPayout(ctx, adminID, affiliate); err != nil {
		t.Errorf("admin manual payout: %v", err)
	}
	if _, err := e.ProcessRecipientPayout(ctx, affiliate, affiliate); err != ErrNoPendingPayout {
		t.Errorf("second payout: got %v", err)
	}
}

func TestAdminOps(t *testing.T) {
	st := newMemStore()
	e := newTestEngine(st, nil)

	cfg := &MerchantConfig{MerchantID: merchantID, Schedule: schedule.Weekly, MinThreshold: 50, DefaultRateBp: 250, Active: true}
	if err := e.SetMerchantConfig(merchantID, cfg); err != nil {
		t.Fatalf("merchant sets own config: %v", err)
	}
	if err := e.SetMerchantConfig(999, cfg); err != ErrNotAuthorized {
		t.Errorf("stranger config write: got %v", err)
	}
	cfg.MinThreshold = -1
	if err := e.SetMerchantConfig(adminID, cfg); err != ErrInvalidThreshold {
		t.Errorf("negative threshold: got %v", err)
	}
	cfg.MinThreshold = 0
	cfg.DefaultRateBp = 10001
	if err := e.SetMerchantConfig(adminID, cfg); err != ErrInvalidRate {
		t.Errorf("rate over 10000bp: got %v", err)
	}

	sp := &CommissionSplit{
		MerchantID:  merchantID,
		AffiliateID: affiliate,
		Active:      true,
		Recipients:  []split.Recipient{{RecipientID: 1, ShareBp: 9999}},
	}
	if err := e.SetCommissionSplit(merchantID, sp); !errors.Is(err, split.ErrInvalidSplit) {
		t.Errorf("9999bp split: got %v", err)
	}
	sp.Recipients[0].ShareBp = 10000
	if err := e.SetCommissionSplit(merchantID, sp); err != nil {
		t.Errorf("valid split: %v", err)
	}
	// 未激活的配置不经过份额校验
	sp.Active = false
	sp.Recipients[0].ShareBp = 1
	if err := e.SetCommissionSplit(merchantID, sp); err != nil {
		t.Errorf("inactive split: %v", err)
	}

	if err := e.UpdatePayoutThreshold(adminID, merchantID, 500); err != nil {
		t.Fatalf("threshold update: %v", err)
	}
	got, _ := e.GetMerchantConfig(merchantID)
	if got.MinThreshold != 500 {
		t.Errorf("threshold = %d, want 500", got.MinThreshold)
	}
	if err := e.UpdatePayoutThreshold(adminID, 777, 10); err != ErrMerchantNotFound {
		t.Errorf("threshold for unknown merchant: got %v", err)
	}

	if err := e.SetAdministrator(affiliate, 555, true); err != ErrNotAuthorized {
		t.Errorf("non-admin grants admin: got %v", err)
	}
	if err := e.SetAdministrator(adminID, 555, true); err != nil {
		t.Fatalf("grant admin: %v", err)
	}
	if ok, _ := st.IsAdmin(555); !ok {
		t.Error("grantee should be admin")
	}
	if err := e.SetAdministrator(555, 555, false); err != nil {
		t.Fatalf("revoke admin: %v", err)
	}
	if ok, _ := st.IsAdmin(555); ok {
		t.Error("revoked admin still active")
	}
}

func TestIsPayoutDue(t *testing.T) {
	st := newMemStore()
	e := newTestEngine(st, nil)

	if _, err := e.IsPayoutDue(schedule.Weekly); err != ErrScheduleNotInit {
		t.Errorf("before init: got %v", err)
	}
	due, err := e.IsPayoutDue(schedule.Immediate)
	if err != nil || !due {
		t.Errorf("immediate always due: %v %v", due, err)
	}

	if _, err := e.InitializeSchedule(adminID); err != nil {
		t.Fatal(err)
	}
	due, err = e.IsPayoutDue(schedule.Weekly)
	if err != nil || due {
		t.Errorf("weekly just initialized should not be due: %v %v", due, err)
	}
	st.state.NextWeekly = 0
	due, _ = e.IsPayoutDue(schedule.Weekly)
	if !due {
		t.Error("weekly at height should be due")
	}
}

func TestInitializeSchedule_AdminOnly(t *testing.T) {
	st := newMemStore()
	e := newTestEngine(st, nil)
	if _, err := e.InitializeSchedule(affiliate); err != ErrNotAuthorized {
		t.Errorf("non-admin init: got %v", err)
	}
}

func TestImmediate_TransferFailureDoesNotFailAccrual(t *testing.T) {
	st := newMemStore()
	exec := &fakeExec{fail: true}
	e := newTestEngine(st, exec)
	ctx := context.Background()
	putMerchant(st, schedule.Immediate, 0)

	// 出款失败不报错：入账已成功，报错会让消息方重投同一笔销售、重复入账
	res, err := e.RecordCommission(ctx, merchantID, merchantID, affiliate, 1000)
	if err != nil {
		t.Fatalf("record must not fail on transfer failure: %v", err)
	}
	if res.Settled != nil {
		t.Errorf("nothing should be settled: %+v", res.Settled)
	}
	pb, _ := e.GetPendingBalance(affiliate)
	if pb == nil || pb.Amount != 1000 {
		t.Fatalf("one 1000 sale must leave exactly 1000 pending: %+v", pb)
	}
	if len(st.records) != 0 {
		t.Error("no history should be written")
	}

	// 上游恢复后调度结清，一次且只有一次
	exec.fail = false
	rec, err := e.ProcessRecipientPayout(ctx, affiliate, affiliate)
	if err != nil {
		t.Fatalf("retry settle: %v", err)
	}
	if rec.Total != 1000 {
		t.Errorf("retry total = %d, want 1000", rec.Total)
	}
	if len(exec.calls) != 1 || exec.calls[0].Amount != 1000 {
		t.Errorf("exactly one transfer expected: %+v", exec.calls)
	}
}

func TestProcessDuePayouts_RotatesBeyondScanLimit(t *testing.T) {
	st := newMemStore()
	exec := &fakeExec{}
	st.admins[adminID] = true
	clock := schedule.NewClock(schedule.Periods{Daily: 144, Weekly: 7 * 144, Monthly: 30 * 144})
	var seq uint64 = 2000
	var h int64 = 10
	e := New(st, exec, clock, Options{
		NewRecordID:  func() uint64 { seq++; return seq },
		Height:       func() int64 { return h },
		DueScanLimit: 2,
	})

	// 商户 100：日结、门槛极高（永远跳过）；商户 101：即时、无门槛
	st.merchants[100] = MerchantConfig{MerchantID: 100, Schedule: schedule.Daily, MinThreshold: 1_000_000, Active: true}
	st.merchants[101] = MerchantConfig{MerchantID: 101, Schedule: schedule.Immediate, Active: true}
	st.Accrue(301, 100, 100, 500, 0)
	st.Accrue(302, 100, 100, 500, 1)
	st.Accrue(303, 101, 101, 400, 5)

	if _, err := e.InitializeSchedule(adminID); err != nil {
		t.Fatalf("init: %v", err)
	}

	// 第一轮只装得下最旧的两行（都被跳过），跳过即刷新高度排到队尾
	res, err := e.ProcessDuePayouts(context.Background())
	if err != nil {
		t.Fatalf("run 1: %v", err)
	}
	if res.Scanned != 2 || res.Settled != 0 {
		t.Fatalf("run 1 = %+v, want scanned 2 settled 0", res)
	}

	// 第二轮轮到上一轮没进窗口的收款人
	res, err = e.ProcessDuePayouts(context.Background())
	if err != nil {
		t.Fatalf("run 2: %v", err)
	}
	if res.Settled != 1 {
		t.Fatalf("run 2 must reach recipient 303: %+v", res)
	}
	if len(exec.calls) != 1 || exec.calls[0].RecipientID != 303 || exec.calls[0].Amount != 400 {
		t.Errorf("transfer = %+v, want 303/400", exec.calls)
	}
	if pb, _ := e.GetPendingBalance(303); pb != nil && pb.Amount != 0 {
		t.Errorf("303 not cleared: %+v", pb)
	}
}
