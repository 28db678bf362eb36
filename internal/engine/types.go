package engine

import (
	"context"

	"aff-payout-api/internal/schedule"
	"aff-payout-api/internal/split"
)

// MerchantConfig 商户结算配置
type MerchantConfig struct {
	MerchantID    uint64
	Schedule      schedule.Cadence
	MinThreshold  int64 // 最低结算门槛，最小货币单位
	DefaultRateBp int32 // 默认佣金比例，基点
	Active        bool
}

// CommissionSplit 某商户对某推广员的分佣配置
// Active=true 时份额之和恒为 10000 基点（写入时由 split.Validate 把关）
type CommissionSplit struct {
	MerchantID  uint64
	AffiliateID uint64
	Recipients  []split.Recipient
	Active      bool
}

// PendingBalance 收款人的待结算余额
// 只会通过入账增加，结算成功时原子清零，永不为负
type PendingBalance struct {
	RecipientID uint64
	MerchantID  uint64 // 最近一次入账的归属商户，决定结算周期与门槛
	AffiliateID uint64
	Amount      int64
	LastUpdated int64 // 逻辑高度
}

// Disbursement 一笔实际出款
type Disbursement struct {
	RecipientID uint64 `json:"recipient_id"`
	Amount      int64  `json:"amount"`
}

// PayoutRecord 结算历史，写入后不可变
type PayoutRecord struct {
	RecordID      uint64
	MerchantID    uint64
	AffiliateID   uint64
	Disbursements []Disbursement
	Total         int64
	Height        int64
}

// AccrualResult record_commission 的入账结果
type AccrualResult struct {
	Portions []split.Portion // 每个收款人入账多少
	Settled  *PayoutRecord   // 立即结算商户会附带结算记录
}

// RunResult 一次调度发放的汇总
type RunResult struct {
	Fired     []schedule.Cadence // 本次推进的周期集合
	Scanned   int
	Settled   int
	Skipped   int // 低于门槛或周期未到
	Failed    int // 转账失败（余额已恢复）
	RecordIDs []uint64
}

// BatchOutcome 批量结算中单个收款人的结果
type BatchOutcome struct {
	RecipientID uint64
	RecordID    uint64
	Err         error
}

// Store 核心状态的串行化存储。每个方法都必须是原子的；
// Accrue 与 ClearPending 之间的先后关系见 settle.go 的恢复策略。
type Store interface {
	GetMerchantConfig(merchantID uint64) (*MerchantConfig, error)
	PutMerchantConfig(cfg *MerchantConfig) error

	GetSplit(merchantID, affiliateID uint64) (*CommissionSplit, error)
	PutSplit(sp *CommissionSplit) error

	// Accrue 给收款人入账 amount（可为 0，仅刷新 last_updated），返回入账后的总额
	Accrue(recipientID, merchantID, affiliateID uint64, amount, height int64) (int64, error)
	// ClearPending 原子读出并清零；余额为零或不存在时返回 ErrNoPendingPayout
	ClearPending(recipientID uint64) (*PendingBalance, error)
	GetPending(recipientID uint64) (*PendingBalance, error)
	// ListPending 返回至多 limit 条非零余额（连同归属上下文）
	ListPending(limit int) ([]PendingBalance, error)

	IsAdmin(id uint64) (bool, error)
	SetAdmin(id uint64, active bool) error

	GetScheduleState() (*schedule.State, error)
	PutScheduleState(st *schedule.State) error

	AppendRecord(rec *PayoutRecord) error
	GetRecord(recordID uint64) (*PayoutRecord, error)
	ListRecordsByMerchant(merchantID uint64, limit int) ([]PayoutRecord, error)
}

// Executor 唯一允许移动资金的组件
// 失败必须在有限时间内返回错误，不允许无声挂起
type Executor interface {
	ExecuteTransfer(ctx context.Context, recipientID uint64, amount int64) error
}

// Publisher 结算事件出口（MQ），可为 nil
type Publisher interface {
	PublishPayoutSettled(rec *PayoutRecord)
}

// AuditAlerter 历史落档失败时的降级审计告警，可为 nil
type AuditAlerter interface {
	NotifyAuditDegraded(rec *PayoutRecord, cause error)
}
