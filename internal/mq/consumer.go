package mq

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/streadway/amqp"

	"aff-payout-api/internal/dal"
	"aff-payout-api/internal/dto"
	"aff-payout-api/internal/engine"
	"aff-payout-api/internal/utils"
)

const maxRetry = 3

// StartConsumers 消费销售完成事件，驱动佣金入账
// 商户身份取消息里的 merchant_id：MQ 通道只接内部可信上游
func StartConsumers(eng *engine.Engine) {
	if dal.RabbitCh == nil {
		log.Println("RabbitMQ channel not initialized")
		return
	}
	msgs, err := dal.RabbitCh.Consume("sale_completed", "", false, false, false, false, nil)
	if err != nil {
		log.Printf("❌ consume sale_completed failed: %v", err)
		return
	}
	for d := range msgs {
		go handleSaleCompleted(eng, d)
	}
}

func handleSaleCompleted(eng *engine.Engine, d amqp.Delivery) {
	var msg dto.SaleCompletedMsg
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		log.Printf("❌ sale_completed unmarshal err: %v", err)
		d.Nack(false, false)
		return
	}

	if err := recordSale(eng, msg); err != nil {
		log.Printf("❌ record commission failed: sale=%s err=%v", msg.SaleId, err)

		// 业务性拒绝不重试，重投也不会变合法
		if isBusinessReject(err) {
			d.Nack(false, false)
			return
		}

		if msg.RetryCount < maxRetry {
			msg.RetryCount++
			retryBody, _ := json.Marshal(msg)
			_ = dal.RabbitCh.Publish(
				"", "sale_completed", false, false,
				amqp.Publishing{
					ContentType: "application/json",
					Body:        retryBody,
				},
			)
			log.Printf("🔁 retrying sale %s (attempt %d)", msg.SaleId, msg.RetryCount)
		} else {
			log.Printf("🚨 max retry reached for sale %s", msg.SaleId)
		}

		d.Nack(false, false)
		return
	}

	d.Ack(false)
}

func recordSale(eng *engine.Engine, msg dto.SaleCompletedMsg) error {
	amount, err := utils.ParseMinorUnits(msg.Amount, dto.AmountExponent)
	if err != nil {
		return err
	}
	_, err = eng.RecordCommission(context.Background(), msg.MerchantId, msg.MerchantId, msg.AffiliateId, amount)
	return err
}

func isBusinessReject(err error) bool {
	return errors.Is(err, engine.ErrMerchantNotFound) ||
		errors.Is(err, engine.ErrInvalidAmount) ||
		errors.Is(err, engine.ErrInvalidRecipient) ||
		errors.Is(err, engine.ErrNotAuthorized) ||
		errors.Is(err, utils.ErrBadAmount)
}
