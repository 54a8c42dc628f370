package consumer

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/giftwala/giftwala/libs/kafkax"
)

type Handler func(ctx context.Context, msg kafka.Message) error

type inboxStore interface {
	Record(ctx context.Context, eventID, eventType string) (bool, error)
	Discard(ctx context.Context, eventID string) error
}

// Consumer runs one Kafka reader loop with inbox-based dedupe. Offsets are
// committed only once a message is finished, and a failed handler gives its
// inbox claim back, so an order event that hits a transient error is
// redelivered instead of dropped with its capacity movement unapplied.
type Consumer struct {
	reader  *kafka.Reader
	logger  *slog.Logger
	inbox   inboxStore
	handler Handler
}

type Config struct {
	Brokers string
	GroupID string
	Topic   string
}

func New(logger *slog.Logger, inboxRepo inboxStore, cfg Config, handler Handler) *Consumer {
	brokers := kafkax.SplitBrokers(cfg.Brokers)
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{
		reader:  reader,
		logger:  logger,
		inbox:   inboxRepo,
		handler: handler,
	}
}

func (c *Consumer) Run(ctx context.Context) {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("kafka fetch error", "err", err)
			time.Sleep(1 * time.Second)
			continue
		}

		if c.process(ctx, msg) {
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("offset commit failed", "err", err)
			}
		}
	}
}

// process reports whether the message is finished (handled or a known
// duplicate) and its offset may be committed. An unfinished message is
// redelivered after a rebalance or restart.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) bool {
	ctx = kafkax.ExtractTraceContext(ctx, msg)
	ctx, span := otel.Tracer("kafka").Start(ctx, "kafka.consume",
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", msg.Topic),
		),
	)
	defer span.End()

	meta := kafkax.ExtractEventMeta(msg)

	claimed, err := c.inbox.Record(ctx, meta.EventID, meta.EventType)
	if err != nil {
		c.logger.Error("inbox record failed", "err", err, "event_id", meta.EventID)
		span.RecordError(err)
		return false
	}
	if !claimed {
		c.logger.Info("duplicate event ignored", "event_id", meta.EventID, "event_type", meta.EventType)
		return true
	}

	if err := c.handler(ctx, msg); err != nil {
		c.logger.Error("handler error", "err", err, "event_id", meta.EventID)
		span.RecordError(err)
		// Give the claim back so the redelivery is not treated as a
		// duplicate of an event that was never applied.
		if discardErr := c.inbox.Discard(ctx, meta.EventID); discardErr != nil {
			c.logger.Error("inbox discard failed", "err", discardErr, "event_id", meta.EventID)
		}
		return false
	}
	return true
}
