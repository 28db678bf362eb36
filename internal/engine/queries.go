package engine

import "aff-payout-api/internal/schedule"

// 只读访问器，供协作方查询；不做权限限制

func (e *Engine) GetMerchantConfig(merchantID uint64) (*MerchantConfig, error) {
	return e.store.GetMerchantConfig(merchantID)
}

func (e *Engine) GetCommissionSplit(merchantID, affiliateID uint64) (*CommissionSplit, error) {
	return e.store.GetSplit(merchantID, affiliateID)
}

func (e *Engine) GetPendingBalance(recipientID uint64) (*PendingBalance, error) {
	return e.store.GetPending(recipientID)
}

func (e *Engine) GetPayoutRecord(recordID uint64) (*PayoutRecord, error) {
	return e.store.GetRecord(recordID)
}

func (e *Engine) ListPayoutRecords(merchantID uint64, limit int) ([]PayoutRecord, error) {
	return e.store.ListRecordsByMerchant(merchantID, limit)
}

// IsPayoutDue 查询某周期当前是否到期（不推进时钟）
func (e *Engine) IsPayoutDue(cad schedule.Cadence) (bool, error) {
	if cad == schedule.Immediate {
		return true, nil
	}
	st, err := e.store.GetScheduleState()
	if err != nil {
		return false, err
	}
	if st == nil {
		return false, ErrScheduleNotInit
	}
	return e.clock.IsDue(st, cad, e.height()), nil
}
