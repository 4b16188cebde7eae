package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RecordHandler processes one decoded record event. A returned error
// dead-letters the delivery.
type RecordHandler func(ctx context.Context, ev RecordEvent) error

// Consumer reads record events from a queue bound to the record exchange.
type Consumer struct {
	channel     *amqp.Channel
	queueName   string
	consumerTag string
	handler     RecordHandler
	logger      *slog.Logger
	wg          sync.WaitGroup
	cancelFunc  context.CancelFunc
}

// NewConsumer declares the exchange and binds a queue to routingKeys, for
// example "customers.*" or "#". An empty queueName asks the broker for an
// exclusive, auto-deleted queue.
func NewConsumer(
	conn *amqp.Connection,
	exchangeName, queueName, consumerTag string,
	routingKeys []string,
	handler RecordHandler,
	logger *slog.Logger,
) (*Consumer, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	if handler == nil {
		return nil, fmt.Errorf("record handler cannot be nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	logger.Info("Declaring exchange", "name", exchangeName, "type", amqp.ExchangeTopic)
	if err := ch.ExchangeDeclare(exchangeName, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchangeName, err)
	}

	durable, exclusive := queueName != "", queueName == ""
	q, err := ch.QueueDeclare(queueName, durable, exclusive, exclusive, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare queue '%s': %w", queueName, err)
	}

	if len(routingKeys) == 0 {
		routingKeys = []string{"#"}
	}
	for _, key := range routingKeys {
		logger.Info("Binding queue", "queue", q.Name, "exchange", exchangeName, "key", key)
		if err := ch.QueueBind(q.Name, key, exchangeName, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("failed to bind queue '%s' with key '%s': %w", q.Name, key, err)
		}
	}

	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	return &Consumer{
		channel:     ch,
		queueName:   q.Name,
		consumerTag: consumerTag,
		handler:     handler,
		logger:      logger.With("component", "consumer", "queue", q.Name),
	}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("Starting message consumption...")
	deliveries, err := c.channel.Consume(c.queueName, c.consumerTag, false, false, false, false, nil)
	if err != nil {
		_ = c.channel.Close()
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-loopCtx.Done():
				c.logger.Info("Consumer context cancelled. Exiting consumption loop.")
				return
			case d, ok := <-deliveries:
				if !ok {
					c.logger.Warn("RabbitMQ delivery channel closed unexpectedly.")
					return
				}
				handleDelivery(loopCtx, d, c.handler, c.logger)
			}
		}
	}()

	return nil
}

func (c *Consumer) Stop() {
	if c.cancelFunc == nil {
		c.logger.Warn("Consumer stop called but it was never started")
		return
	}
	c.logger.Info("Stopping consumer...")
	c.cancelFunc()

	if err := c.channel.Cancel(c.consumerTag, false); err != nil {
		c.logger.Warn("Failed to cancel consumer tag", "tag", c.consumerTag, "error", err)
	}
	c.wg.Wait()

	if err := c.channel.Close(); err != nil {
		c.logger.Error("Failed to close consumer channel", "error", err)
	}
}

// handleDelivery acks an event once the handler accepts it. Anything else is
// dropped without requeue.
func handleDelivery(ctx context.Context, d amqp.Delivery, handler RecordHandler, logger *slog.Logger) {
	logCtx := logger.With(slog.Uint64("deliveryTag", d.DeliveryTag), slog.String("routingKey", d.RoutingKey))

	if d.ContentType != "" && d.ContentType != "application/json" {
		logCtx.WarnContext(ctx, "Received message with unexpected content type. Discarding.", "contentType", d.ContentType)
		_ = d.Reject(false)
		return
	}

	var ev RecordEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		logCtx.ErrorContext(ctx, "Failed to unmarshal RecordEvent", "error", err, "body", string(d.Body))
		_ = d.Nack(false, false)
		return
	}

	if err := handler(ctx, ev); err != nil {
		logCtx.ErrorContext(ctx, "Record event handler failed", slog.Any("error", err))
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}
