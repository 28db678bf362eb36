package ledgermodel

import "time"

// PayoutRecord 结算历史，按月 + 记录号散列分表（w_payout_record_YYYYMM_pN）
// 只追加，永不更新或删除；表名由分片引擎给出，不声明 TableName
type PayoutRecord struct {
	RecordID      uint64    `gorm:"column:record_id;primaryKey" json:"recordId"`
	MerchantID    uint64    `gorm:"column:m_id;not null;index" json:"merchantId"`
	AffiliateID   uint64    `gorm:"column:affiliate_id;not null;index" json:"affiliateId"`
	Disbursements string    `gorm:"column:disbursements;type:json;not null" json:"disbursements"`
	Total         int64     `gorm:"column:total;not null" json:"total"`
	Height        int64     `gorm:"column:height;not null" json:"height"`
	CreateTime    time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
}
