package dto

// MerchantConfigReq 商户结算配置
type MerchantConfigReq struct {
	MerchantId    uint64 `json:"merchantId" binding:"required"`
	Schedule      string `json:"schedule" binding:"required"` // immediate|daily|weekly|monthly
	MinThreshold  string `json:"minThreshold"`                // 十进制字符串
	DefaultRateBp int32  `json:"defaultRateBp"`
	Active        *bool  `json:"active"`
}

type SplitRecipientReq struct {
	RecipientId uint64 `json:"recipientId" binding:"required"`
	ShareBp     int32  `json:"shareBp"`
}

type CommissionSplitReq struct {
	MerchantId  uint64              `json:"merchantId" binding:"required"`
	AffiliateId uint64              `json:"affiliateId" binding:"required"`
	Recipients  []SplitRecipientReq `json:"recipients"`
	Active      *bool               `json:"active"`
}

type ThresholdReq struct {
	MerchantId uint64 `json:"merchantId" binding:"required"`
	Threshold  string `json:"threshold" binding:"required"`
}

type AdminGrantReq struct {
	Id     uint64 `json:"id" binding:"required"`
	Active *bool  `json:"active" binding:"required"`
}
