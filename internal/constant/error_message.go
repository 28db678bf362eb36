package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:            {"操作成功", "Success"},
	CodeSystemError:        {"系统错误", "System error"},
	CodeDatabaseError:      {"数据库错误", "Database error"},
	CodeRedisError:         {"缓存服务错误", "Redis error"},
	CodeServiceUnavailable: {"服务暂时不可用", "Service unavailable"},
	CodeTimeout:            {"请求处理超时", "Timeout"},

	CodeInvalidParams: {"参数格式错误", "Invalid params"},
	CodeMissingParams: {"缺少必要参数", "Missing params"},

	CodeUnauthorized:   {"未授权访问", "Unauthorized"},
	CodeSignatureError: {"签名验证失败", "Bad signature"},
	CodeAccessDenied:   {"权限不足", "Not authorized"},

	// 商户配置
	CodeMerchantNotFound:      {"商户结算配置不存在", "Merchant not found"},
	CodeMerchantDisabled:      {"商户已停用", "Merchant disabled"},
	CodeInvalidPayoutSchedule: {"结算周期无效", "Invalid payout schedule"},
	CodeInvalidThreshold:      {"最低结算门槛无效", "Invalid threshold"},
	CodeInvalidCommissionRate: {"默认佣金比例无效", "Invalid commission rate"},

	// 分佣配置
	CodeInvalidCommissionSplit: {"分佣比例之和必须等于10000基点", "Invalid commission split"},
	CodeSplitTooManyRecipients: {"分佣收款人数量超限", "Too many split recipients"},
	CodeSplitNotFound:          {"分佣配置不存在", "Split not found"},

	// 佣金入账
	CodeInvalidAmount:     {"佣金金额无效", "Invalid amount"},
	CodeAffiliateNotFound: {"推广员不存在", "Affiliate not found"},
	CodeInvalidRecipient:  {"收款人无效", "Invalid recipient"},

	// 结算
	CodeNoPendingPayouts:      {"无待结算余额", "No pending payouts"},
	CodePayoutThresholdNotMet: {"余额未达结算门槛", "Payout threshold not met"},
	CodeTransferFailed:        {"出款转账失败", "Transfer failed"},
	CodeBatchLimitExceeded:    {"批量结算数量超限", "Batch limit exceeded"},
	CodePayoutRunning:         {"结算任务执行中", "Payout run in progress"},

	// 出款上游
	CodeUpstreamError:    {"出款上游错误", "Upstream error"},
	CodeUpstreamTimeout:  {"出款上游超时", "Upstream timeout"},
	CodeUpstreamRejected: {"出款上游拒绝转账", "Upstream rejected"},
	CodeUpstreamDisabled: {"出款上游已熔断", "Upstream disabled"},
}
