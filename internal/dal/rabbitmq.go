package dal

import (
	"log"

	"aff-payout-api/internal/config"

	"github.com/streadway/amqp"
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

func InitRabbitMQ() {
	url := config.C.RabbitMQ.URL
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("rabbitmq dial failed: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel failed: %v", err)
	}

	// exchange & queues
	if err := ch.ExchangeDeclare("commission_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare commission_events failed: %v", err)
	}
	if err := ch.ExchangeDeclare("payout_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare payout_events failed: %v", err)
	}
	if _, err := ch.QueueDeclare("sale_completed", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare sale_completed failed: %v", err)
	}
	if _, err := ch.QueueDeclare("payout_settled", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare payout_settled failed: %v", err)
	}
	if err := ch.QueueBind("sale_completed", "sale.completed", "commission_events", false, nil); err != nil {
		log.Fatalf("queue bind sale_completed failed: %v", err)
	}
	if err := ch.QueueBind("payout_settled", "payout.settled", "payout_events", false, nil); err != nil {
		log.Fatalf("queue bind payout_settled failed: %v", err)
	}

	RabbitConn = conn
	RabbitCh = ch
}
