// Package queue also contains the background consumer that stands in
// for the external checkout collaborator during development: it
// listens on the order.placed queue and appends each handed-off order
// to logs/orders.log.
package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const orderQueueName = "order.placed"

// StartOrderConsumer connects to RabbitMQ at the given URL, declares
// the durable order.placed queue and consumes it forever, appending
// each order to logs/orders.log in a single-line format.  It runs a
// reconnect loop with backoff and never brings the server down: all
// processing errors are logged and the offending message rejected.
// An empty URL disables the consumer.
func StartOrderConsumer(url string) {
	if url == "" {
		log.Println("order-consumer: no broker URL configured, not starting")
		return
	}

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("order-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("order-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("order-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(orderQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(orderQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			log.Printf("order-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

// handleMessage decodes one OrderPlacedEvent and appends it to the
// order log.
func handleMessage(body []byte) error {
	var ev OrderPlacedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "orders.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open order log: %w", err)
	}
	defer func() { _ = f.Close() }()

	seats := make([]string, 0, len(ev.Seats))
	for _, s := range ev.Seats {
		seats = append(seats, s.ID)
	}
	line := fmt.Sprintf("%s | showtime=%d | %s @ %s %s | seats=%s | add_ons=%d | total=%s\n",
		ev.PlacedAt, ev.ShowtimeID, ev.MovieTitle, ev.TheaterName, ev.ScreenName,
		strings.Join(seats, ","), len(ev.AddOns), ev.GrandTotal)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append order log: %w", err)
	}
	return nil
}
