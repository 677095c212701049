// Package order_publisher hands placed orders to the external
// checkout/payment collaborator over RabbitMQ.  Publishing is
// best-effort from the storefront's point of view: errors are logged
// and returned, and callers complete the shopper's request either way.
package order_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/aframi/cinema-storefront/internal/queue"
)

// orderQueueName is the durable queue the checkout collaborator
// consumes from.
const orderQueueName = "order.placed"

// PublishOrderPlaced publishes an OrderPlacedEvent to the
// "order.placed" queue at the given broker URL.  An empty URL
// disables publishing (local development without a broker).  The
// function never panics; messages are marked persistent so a broker
// restart does not drop handed-off orders.
func PublishOrderPlaced(ctx context.Context, url string, event q.OrderPlacedEvent) error {
	if url == "" {
		return nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		orderQueueName, // name
		true,           // durable
		false,          // autoDelete
		false,          // exclusive
		false,          // noWait
		nil,            // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",             // default exchange
		orderQueueName, // routing key = queue name
		false,          // mandatory
		false,          // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
