package engine

import (
	"log"

	"aff-payout-api/internal/split"
)

// SetMerchantConfig 商户本人或管理员写入结算配置
func (e *Engine) SetMerchantConfig(caller uint64, cfg *MerchantConfig) error {
	if cfg.MerchantID == 0 {
		return ErrMerchantNotFound
	}
	if caller != cfg.MerchantID && !e.isAdmin(caller) {
		return ErrNotAuthorized
	}
	if cfg.MinThreshold < 0 {
		return ErrInvalidThreshold
	}
	if cfg.DefaultRateBp < 0 || cfg.DefaultRateBp > split.TotalShareBp {
		return ErrInvalidRate
	}
	return e.store.PutMerchantConfig(cfg)
}

// SetCommissionSplit 写入分佣配置；激活状态下写入时校验一次，此后读取不复查
func (e *Engine) SetCommissionSplit(caller uint64, sp *CommissionSplit) error {
	if sp.MerchantID == 0 || sp.AffiliateID == 0 {
		return ErrInvalidRecipient
	}
	if caller != sp.MerchantID && !e.isAdmin(caller) {
		return ErrNotAuthorized
	}
	if sp.Active {
		if err := split.Validate(sp.Recipients); err != nil {
			return err
		}
	}
	return e.store.PutSplit(sp)
}

// UpdatePayoutThreshold 只改门槛，其余配置不动
func (e *Engine) UpdatePayoutThreshold(caller, merchantID uint64, threshold int64) error {
	if caller != merchantID && !e.isAdmin(caller) {
		return ErrNotAuthorized
	}
	if threshold < 0 {
		return ErrInvalidThreshold
	}
	cfg, err := e.store.GetMerchantConfig(merchantID)
	if err != nil {
		return err
	}
	if cfg == nil {
		return ErrMerchantNotFound
	}
	cfg.MinThreshold = threshold
	return e.store.PutMerchantConfig(cfg)
}

// SetAdministrator 管理员增删管理员
func (e *Engine) SetAdministrator(caller, id uint64, active bool) error {
	if !e.isAdmin(caller) {
		return ErrNotAuthorized
	}
	if id == 0 {
		return ErrInvalidRecipient
	}
	log.Printf("[ENGINE] 管理员变更: id=%d active=%v by=%d", id, active, caller)
	return e.store.SetAdmin(id, active)
}
