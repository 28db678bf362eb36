package service

import (
	"time"

	"aff-payout-api/internal/dto"
	"aff-payout-api/internal/engine"
	"aff-payout-api/internal/mq"
	"aff-payout-api/internal/utils"
)

// settledPublisher 把结算记录转成 MQ 事件发出去
// 发布失败只记日志，结算本身不回滚
type settledPublisher struct{}

func (settledPublisher) PublishPayoutSettled(rec *engine.PayoutRecord) {
	evt := buildSettledEvent(rec, time.Now().Unix())
	go func() { _ = mq.PublishPayoutSettled(evt) }()
}

func buildSettledEvent(rec *engine.PayoutRecord, settledAt int64) dto.PayoutSettledEvent {
	vo := RecordVO(rec)
	return dto.PayoutSettledEvent{
		RecordId:      vo.RecordId,
		MerchantId:    rec.MerchantID,
		AffiliateId:   rec.AffiliateID,
		Disbursements: vo.Disbursements,
		Total:         utils.FormatMinorUnits(rec.Total, dto.AmountExponent),
		Height:        rec.Height,
		SettledAt:     settledAt,
	}
}
