package mq

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"aff-payout-api/internal/dal"
	"aff-payout-api/internal/dto"
)

// PublishPayoutSettled 结算完成事件，下游对账/通知方订阅 payout_events
func PublishPayoutSettled(evt dto.PayoutSettledEvent) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(evt)
	err := dal.RabbitCh.Publish(
		"payout_events",
		"payout.settled",
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish payout.settled failed: %v", err)
	}
	return err
}
