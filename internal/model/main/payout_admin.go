package mainmodel

import "time"

// PayoutAdmin 管理员集合；部署身份在初始化时入表
type PayoutAdmin struct {
	AdminID    uint64    `gorm:"column:admin_id;primaryKey" json:"adminId"`
	Status     int8      `gorm:"column:status;not null;default:1" json:"status"` // 0=撤销 1=有效
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (PayoutAdmin) TableName() string { return "w_payout_admin" }
