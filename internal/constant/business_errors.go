package constant

// 业务级错误码 (2xxx)

// 商户配置相关错误码
const (
	CodeMerchantNotFound       = 2000 // 商户结算配置不存在或已停用
	CodeMerchantDisabled       = 2001 // 商户已停用，拒绝受理新佣金
	CodeInvalidPayoutSchedule  = 2002 // 结算周期无效，仅支持 immediate/daily/weekly/monthly
	CodeInvalidThreshold       = 2003 // 最低结算门槛无效，不能为负数
	CodeInvalidCommissionRate  = 2004 // 默认佣金比例无效，需在 0-10000 基点之间
)

// 分佣配置相关错误码
const (
	CodeInvalidCommissionSplit = 2100 // 分佣比例之和必须恰好等于 10000 基点
	CodeSplitTooManyRecipients = 2101 // 分佣收款人数量超限（最多 10 人）
	CodeSplitNotFound          = 2102 // 分佣配置不存在
)

// 佣金入账相关错误码
const (
	CodeInvalidAmount    = 2200 // 佣金金额无效，必须大于 0
	CodeAffiliateNotFound = 2201 // 推广员不存在
	CodeInvalidRecipient = 2202 // 收款人无效
)

// 结算相关错误码
const (
	CodeNoPendingPayouts     = 2300 // 无待结算余额
	CodePayoutThresholdNotMet = 2301 // 待结算余额未达到商户最低结算门槛
	CodeTransferFailed       = 2302 // 出款转账失败，余额已恢复待结算
	CodeBatchLimitExceeded   = 2303 // 批量结算数量超过单次上限
	CodePayoutRunning        = 2304 // 结算任务执行中，请稍后重试
)
