package dao

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aff-payout-api/internal/dal"
	"aff-payout-api/internal/engine"
	"aff-payout-api/internal/idgen"
	"aff-payout-api/internal/shard"

	ledgermodel "aff-payout-api/internal/model/ledger"
)

// LedgerDao 资金库访问：待结算余额与结算历史
// 余额的增减都在事务里拿行锁做，对同一收款人的操作天然串行
type LedgerDao struct{}

func NewLedgerDao() *LedgerDao { return &LedgerDao{} }

// Accrue 入账（带事务 + 行锁），返回入账后的总额
func (r *LedgerDao) Accrue(recipientID, merchantID, affiliateID uint64, amount, height int64) (int64, error) {
	var total int64
	err := dal.LedgerDB.Transaction(func(tx *gorm.DB) error {
		var pb ledgermodel.PendingBalance
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("recipient_id=?", recipientID).First(&pb).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			pb = ledgermodel.PendingBalance{
				RecipientID: recipientID,
				MerchantID:  merchantID,
				AffiliateID: affiliateID,
				Amount:      amount,
				LastHeight:  height,
			}
			if err := tx.Create(&pb).Error; err != nil {
				return err
			}
			total = pb.Amount
			return nil
		}
		total = pb.Amount + amount
		return tx.Model(&pb).Updates(map[string]interface{}{
			"amount":       total,
			"m_id":         merchantID,
			"affiliate_id": affiliateID,
			"last_height":  height,
		}).Error
	})
	return total, err
}

// ClearPending 原子读出并清零；无余额返回 engine.ErrNoPendingPayout
func (r *LedgerDao) ClearPending(recipientID uint64) (*engine.PendingBalance, error) {
	var cleared *engine.PendingBalance
	err := dal.LedgerDB.Transaction(func(tx *gorm.DB) error {
		var pb ledgermodel.PendingBalance
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("recipient_id=?", recipientID).First(&pb).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return engine.ErrNoPendingPayout
		}
		if err != nil {
			return err
		}
		if pb.Amount == 0 {
			return engine.ErrNoPendingPayout
		}
		cleared = &engine.PendingBalance{
			RecipientID: pb.RecipientID,
			MerchantID:  pb.MerchantID,
			AffiliateID: pb.AffiliateID,
			Amount:      pb.Amount,
			LastUpdated: pb.LastHeight,
		}
		return tx.Model(&pb).Update("amount", 0).Error
	})
	if err != nil {
		return nil, err
	}
	return cleared, nil
}

func (r *LedgerDao) GetPending(recipientID uint64) (*engine.PendingBalance, error) {
	var pb ledgermodel.PendingBalance
	if err := dal.LedgerDB.Where("recipient_id=?", recipientID).First(&pb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &engine.PendingBalance{
		RecipientID: pb.RecipientID,
		MerchantID:  pb.MerchantID,
		AffiliateID: pb.AffiliateID,
		Amount:      pb.Amount,
		LastUpdated: pb.LastHeight,
	}, nil
}

// ListPending 非零余额扫描，LastHeight 升序保证老账先结；
// 调度方会刷新被跳过行的高度，连续调用才能轮转到上限之外的行
func (r *LedgerDao) ListPending(limit int) ([]engine.PendingBalance, error) {
	var rows []ledgermodel.PendingBalance
	if err := dal.LedgerDB.Where("amount > 0").Order("last_height asc, recipient_id asc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]engine.PendingBalance, 0, len(rows))
	for _, pb := range rows {
		out = append(out, engine.PendingBalance{
			RecipientID: pb.RecipientID,
			MerchantID:  pb.MerchantID,
			AffiliateID: pb.AffiliateID,
			Amount:      pb.Amount,
			LastUpdated: pb.LastHeight,
		})
	}
	return out, nil
}

// AppendRecord 结算历史入分表（按记录号生成时刻定位月份）
func (r *LedgerDao) AppendRecord(rec *engine.PayoutRecord) error {
	b, err := json.Marshal(rec.Disbursements)
	if err != nil {
		return err
	}
	ts := time.UnixMilli(idgen.TimeOf(rec.RecordID))
	table := shard.RecordShard.GetTable(rec.RecordID, ts)
	return dal.LedgerDB.Table(table).Create(&ledgermodel.PayoutRecord{
		RecordID:      rec.RecordID,
		MerchantID:    rec.MerchantID,
		AffiliateID:   rec.AffiliateID,
		Disbursements: string(b),
		Total:         rec.Total,
		Height:        rec.Height,
	}).Error
}

func (r *LedgerDao) GetRecord(recordID uint64) (*engine.PayoutRecord, error) {
	ts := time.UnixMilli(idgen.TimeOf(recordID))
	table := shard.RecordShard.GetTable(recordID, ts)
	var m ledgermodel.PayoutRecord
	if err := dal.LedgerDB.Table(table).Where("record_id=?", recordID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toEngineRecord(&m)
}

// ListRecordsByMerchant 跨当月所有分表查询，按记录号倒序取最近的
func (r *LedgerDao) ListRecordsByMerchant(merchantID uint64, limit int) ([]engine.PayoutRecord, error) {
	out := make([]engine.PayoutRecord, 0, limit)
	for _, table := range shard.RecordShard.AllTables(time.Now()) {
		var rows []ledgermodel.PayoutRecord
		err := dal.LedgerDB.Table(table).
			Where("m_id=?", merchantID).
			Order("record_id desc").Limit(limit).Find(&rows).Error
		if err != nil {
			// 分表可能尚未建出来，跳过
			continue
		}
		for _, m := range rows {
			rec, err := toEngineRecord(&m)
			if err != nil {
				return nil, err
			}
			out = append(out, *rec)
			if len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func toEngineRecord(m *ledgermodel.PayoutRecord) (*engine.PayoutRecord, error) {
	var disb []engine.Disbursement
	if err := json.Unmarshal([]byte(m.Disbursements), &disb); err != nil {
		return nil, err
	}
	return &engine.PayoutRecord{
		RecordID:      m.RecordID,
		MerchantID:    m.MerchantID,
		AffiliateID:   m.AffiliateID,
		Disbursements: disb,
		Total:         m.Total,
		Height:        m.Height,
	}, nil
}

// ListRecordsByAffiliate 按推广员跨当月分表查询
func (r *LedgerDao) ListRecordsByAffiliate(affiliateID uint64, limit int) ([]engine.PayoutRecord, error) {
	return r.listRecords("affiliate_id=?", affiliateID, limit)
}

// ListRecordsByRecipient 收款人藏在出款明细 JSON 里，用 JSON_CONTAINS 命中
func (r *LedgerDao) ListRecordsByRecipient(recipientID uint64, limit int) ([]engine.PayoutRecord, error) {
	return r.listRecords("JSON_CONTAINS(disbursements, JSON_OBJECT('recipient_id', ?))", recipientID, limit)
}

func (r *LedgerDao) listRecords(cond string, id uint64, limit int) ([]engine.PayoutRecord, error) {
	out := make([]engine.PayoutRecord, 0, limit)
	for _, table := range shard.RecordShard.AllTables(time.Now()) {
		var rows []ledgermodel.PayoutRecord
		err := dal.LedgerDB.Table(table).
			Where(cond, id).
			Order("record_id desc").Limit(limit).Find(&rows).Error
		if err != nil {
			// 分表可能尚未建出来，跳过
			continue
		}
		for _, m := range rows {
			rec, err := toEngineRecord(&m)
			if err != nil {
				return nil, err
			}
			out = append(out, *rec)
			if len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}
