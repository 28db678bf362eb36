package constant

// 出款上游错误码 (3xxx)

const (
	// CodeUpstreamError 出款上游通用错误
	// 适用场景：上游返回未知错误、系统内部异常
	CodeUpstreamError = 3000

	// CodeUpstreamTimeout 出款上游请求超时
	// 适用场景：调用出款接口超时未响应
	CodeUpstreamTimeout = 3001

	// CodeUpstreamRejected 出款上游拒绝转账
	// 适用场景：上游明确拒绝该笔出款（账户异常、额度超限）
	CodeUpstreamRejected = 3002

	// CodeUpstreamDisabled 出款上游已熔断
	// 适用场景：成功率低于阈值，健康管理器临时禁用该上游
	CodeUpstreamDisabled = 3003
)
