package mainmodel

import "time"

// ScheduleState 调度时钟单例（id 恒为 1），只由调度推进操作修改
type ScheduleState struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	NextDaily   int64     `gorm:"column:next_daily;not null" json:"nextDaily"`
	NextWeekly  int64     `gorm:"column:next_weekly;not null" json:"nextWeekly"`
	NextMonthly int64     `gorm:"column:next_monthly;not null" json:"nextMonthly"`
	UpdateTime  time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (ScheduleState) TableName() string { return "w_schedule_state" }
