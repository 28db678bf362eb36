package dto

// SaleCompletedMsg 上游销售完成事件，触发佣金入账
type SaleCompletedMsg struct {
	SaleId      string `json:"sale_id"`
	MerchantId  uint64 `json:"merchant_id"`
	AffiliateId uint64 `json:"affiliate_id"`
	Amount      string `json:"amount"`
	Ts          int64  `json:"ts"`
	RetryCount  int    `json:"retry_count"`
}

// PayoutSettledEvent 结算完成事件，发往 payout_events
type PayoutSettledEvent struct {
	RecordId      string           `json:"record_id"`
	MerchantId    uint64           `json:"merchant_id"`
	AffiliateId   uint64           `json:"affiliate_id"`
	Disbursements []DisbursementVO `json:"disbursements"`
	Total         string           `json:"total"`
	Height        int64            `json:"height"`
	SettledAt     int64            `json:"settled_at"`
}
