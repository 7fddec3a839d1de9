package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"freshcart/internal/models"

	amqp "github.com/streadway/amqp"
)

// OrderQueue is the durable queue that carries order lifecycle events.
const OrderQueue = "order_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp channels are not safe for concurrent publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

func declareOrderQueue(ch *amqp.Channel) (amqp.Queue, error) {
	return ch.QueueDeclare(
		OrderQueue, // name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
}

// NewClient connects to RabbitMQ, opens a channel and declares the order queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareOrderQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", OrderQueue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared.", OrderQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishOrderEvent publishes event as persistent JSON to the order queue.
// The event type travels in the message Type property.
func (c *Client) PublishOrderEvent(event models.OrderEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event to JSON: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",         // default exchange
		OrderQueue, // routing key: the queue name
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	log.Printf(" [x] Sent %s event for order %s", event.Type, event.OrderID)
	return nil
}

// DecodeOrderEvent parses a delivery body into an OrderEvent.
func DecodeOrderEvent(body []byte) (models.OrderEvent, error) {
	var event models.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("failed to decode order event: %w", err)
	}
	if event.Type == "" || event.OrderID == "" {
		return event, fmt.Errorf("order event is missing type or order id")
	}
	return event, nil
}

// ConsumeOrderEvents delivers decoded order events to handler until the
// channel closes. Successful events are acked; handler errors nack without
// requeue, as do undecodable messages.
func (c *Client) ConsumeOrderEvents(handler func(models.OrderEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareOrderQueue(c.channel)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for order events on %s", queue.Name)

	go func() {
		for msg := range msgs {
			event, err := DecodeOrderEvent(msg.Body)
			if err == nil {
				err = handler(event)
			}
			if err != nil {
				log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
				if nackErr := msg.Nack(false, false); nackErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
			}
		}
		log.Println("Order event consumer stopped")
	}()

	return nil
}

// LogOrderEvent is the default consumer handler; it records each event.
func LogOrderEvent(event models.OrderEvent) error {
	log.Printf("Received %s for order %s (user %s, total %.2f)", event.Type, event.OrderID, event.UserID, event.TotalPrice)
	return nil
}
