package dto

// RunPayoutsReq 调度发放请求；cadences 为空表示按本次推进的周期集合
type RunPayoutsReq struct {
	Cadences []string `json:"cadences"`
}

type RunResultVO struct {
	Fired     []string `json:"fired"`
	Scanned   int      `json:"scanned"`
	Settled   int      `json:"settled"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	RecordIds []string `json:"recordIds"`
}

type RecipientPayoutReq struct {
	RecipientId uint64 `json:"recipientId" binding:"required"`
}

type BatchPayoutReq struct {
	Recipients []uint64 `json:"recipients" binding:"required"`
}

type BatchOutcomeVO struct {
	RecipientId uint64 `json:"recipientId"`
	RecordId    string `json:"recordId,omitempty"`
	Error       string `json:"error,omitempty"`
}

type DisbursementVO struct {
	RecipientId uint64 `json:"recipientId"`
	Amount      string `json:"amount"`
}

type PayoutRecordVO struct {
	RecordId      string           `json:"recordId"`
	MerchantId    uint64           `json:"merchantId"`
	AffiliateId   uint64           `json:"affiliateId"`
	Disbursements []DisbursementVO `json:"disbursements"`
	Total         string           `json:"total"`
	Height        int64            `json:"height"`
}

type PendingBalanceVO struct {
	RecipientId uint64 `json:"recipientId"`
	MerchantId  uint64 `json:"merchantId"`
	AffiliateId uint64 `json:"affiliateId"`
	Amount      string `json:"amount"`
	LastUpdated int64  `json:"lastUpdated"`
}

type ScheduleStateVO struct {
	NextDaily   int64 `json:"nextDaily"`
	NextWeekly  int64 `json:"nextWeekly"`
	NextMonthly int64 `json:"nextMonthly"`
}
