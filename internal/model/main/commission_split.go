package mainmodel

import "time"

// CommissionSplit 分佣配置，按 (商户, 推广员) 唯一
// Recipients 为 JSON 数组（最多 10 人），激活时份额之和恒为 10000 基点，
// 写入时由验证器把关，读取不复查
type CommissionSplit struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MerchantID  uint64    `gorm:"column:m_id;not null;uniqueIndex:idx_split_merchant_affiliate" json:"merchantId"`
	AffiliateID uint64    `gorm:"column:affiliate_id;not null;uniqueIndex:idx_split_merchant_affiliate" json:"affiliateId"`
	Recipients  string    `gorm:"column:recipients;type:json;not null" json:"recipients"`
	Status      int8      `gorm:"column:status;not null;default:1" json:"status"` // 0=停用(直通) 1=启用
	CreateTime  time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime  time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (CommissionSplit) TableName() string { return "w_commission_split" }
