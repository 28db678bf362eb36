package dto

// RecordCommissionReq 销售佣金入账请求
type RecordCommissionReq struct {
	MerchantId  uint64 `json:"merchantId" binding:"required"`
	AffiliateId uint64 `json:"affiliateId" binding:"required"`
	Amount      string `json:"amount" binding:"required"` // 十进制字符串，如 "12.50"
}

type PortionVO struct {
	RecipientId uint64 `json:"recipientId"`
	Amount      string `json:"amount"`
}

type AccrualResp struct {
	Portions []PortionVO     `json:"portions"`
	Settled  *PayoutRecordVO `json:"settled,omitempty"` // 立即结算商户才有
}
