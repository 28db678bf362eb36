package schedule

import (
	"errors"
	"time"

	"aff-payout-api/internal/config"
)

// Cadence 结算周期
type Cadence int8

const (
	Immediate Cadence = iota
	Daily
	Weekly
	Monthly
)

var ErrInvalidCadence = errors.New("invalid payout cadence")

// ParseCadence 解析周期字符串
func ParseCadence(s string) (Cadence, error) {
	switch s {
	case "immediate":
		return Immediate, nil
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	case "monthly":
		return Monthly, nil
	}
	return Immediate, ErrInvalidCadence
}

func (c Cadence) String() string {
	switch c {
	case Immediate:
		return "immediate"
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	}
	return "unknown"
}

// State 三个周期各自的下次执行高度，由调度推进操作独占修改
// 源环境里是进程级全局量，这里显式注入便于隔离测试
type State struct {
	NextDaily   int64
	NextWeekly  int64
	NextMonthly int64
}

// Periods 各周期长度（逻辑高度单位，默认一秒一单位）
type Periods struct {
	Daily   int64
	Weekly  int64
	Monthly int64
}

// PeriodsFromConfig 从配置换算周期长度
func PeriodsFromConfig(p config.PayoutCfg) Periods {
	return Periods{
		Daily:   int64(p.DailyPeriod / time.Second),
		Weekly:  int64(p.WeeklyPeriod / time.Second),
		Monthly: int64(p.MonthlyPeriod / time.Second),
	}
}

// Clock 周期时钟。状态由调用方持有并持久化。
type Clock struct {
	Periods Periods
}

func NewClock(p Periods) *Clock {
	return &Clock{Periods: p}
}

func (c *Clock) period(cad Cadence) int64 {
	switch cad {
	case Daily:
		return c.Periods.Daily
	case Weekly:
		return c.Periods.Weekly
	case Monthly:
		return c.Periods.Monthly
	}
	return 0
}

func (c *Clock) next(st *State, cad Cadence) int64 {
	switch cad {
	case Daily:
		return st.NextDaily
	case Weekly:
		return st.NextWeekly
	case Monthly:
		return st.NextMonthly
	}
	return 0
}

// IsDue 立即结算永远到期；日/周/月在 now >= next 时到期
func (c *Clock) IsDue(st *State, cad Cadence, now int64) bool {
	if cad == Immediate {
		return true
	}
	return now >= c.next(st, cad)
}

// Advance 推进已到期的周期：next = now + 周期长度
// 未到期的周期保持不变（重复调用是幂等空操作）。
// 返回本次被推进的周期集合，发放决策要用这个集合而不是推进后的状态，
// 否则刚推进完的窗口会被误判为未到期。
func (c *Clock) Advance(st *State, now int64) []Cadence {
	fired := make([]Cadence, 0, 3)
	if now >= st.NextDaily {
		st.NextDaily = now + c.Periods.Daily
		fired = append(fired, Daily)
	}
	if now >= st.NextWeekly {
		st.NextWeekly = now + c.Periods.Weekly
		fired = append(fired, Weekly)
	}
	if now >= st.NextMonthly {
		st.NextMonthly = now + c.Periods.Monthly
		fired = append(fired, Monthly)
	}
	return fired
}

// Initialize 部署后调用一次，把三个周期都排到一个整周期之后
// 再次调用会整体重排，属于管理员的主动重置，不视为错误。
func (c *Clock) Initialize(st *State, now int64) {
	st.NextDaily = now + c.Periods.Daily
	st.NextWeekly = now + c.Periods.Weekly
	st.NextMonthly = now + c.Periods.Monthly
}
