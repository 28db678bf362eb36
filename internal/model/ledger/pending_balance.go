package ledgermodel

import "time"

// PendingBalance 收款人的待结算余额
// 只通过入账增长，结算成功原子清零，永不为负；
// m_id/affiliate_id 记录最近一次入账的归属，用于周期与门槛判定
type PendingBalance struct {
	RecipientID uint64    `gorm:"column:recipient_id;primaryKey" json:"recipientId"`
	MerchantID  uint64    `gorm:"column:m_id;not null;index" json:"merchantId"`
	AffiliateID uint64    `gorm:"column:affiliate_id;not null" json:"affiliateId"`
	Amount      int64     `gorm:"column:amount;not null;default:0" json:"amount"`
	LastHeight  int64     `gorm:"column:last_height;not null;default:0" json:"lastHeight"`
	UpdateTime  time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (PendingBalance) TableName() string { return "w_pending_balance" }
