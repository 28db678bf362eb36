package mainmodel

import "time"

// PayoutMerchant 商户结算配置
// Status=0 停用后拒绝受理新佣金，配置本身永不删除
type PayoutMerchant struct {
	MerchantID    uint64    `gorm:"column:m_id;primaryKey" json:"merchantId"`
	Schedule      string    `gorm:"column:payout_schedule;size:10;not null" json:"payoutSchedule"` // immediate|daily|weekly|monthly
	MinThreshold  int64     `gorm:"column:min_threshold;not null;default:0" json:"minThreshold"`   // 最小货币单位
	DefaultRateBp int32     `gorm:"column:default_rate_bp;not null;default:0" json:"defaultRateBp"`
	Status        int8      `gorm:"column:status;not null;default:1" json:"status"` // 0=停用 1=启用
	CreateTime    time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime    time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (PayoutMerchant) TableName() string { return "w_payout_merchant" }
