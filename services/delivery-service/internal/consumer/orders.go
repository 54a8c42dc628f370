package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/segmentio/kafka-go"

	"github.com/giftwala/giftwala/services/delivery-service/internal/availability"
	"github.com/giftwala/giftwala/services/delivery-service/internal/outbox"
	"github.com/giftwala/giftwala/services/delivery-service/internal/storage"
)

const (
	TopicOrderPlaced    = "orders.order.placed.v1"
	TopicOrderCancelled = "orders.order.cancelled.v1"
)

type orderEvent struct {
	OrderID      string `json:"order_id"`
	VendorID     string `json:"vendor_id"`
	SlotID       string `json:"slot_id"`
	DeliveryDate string `json:"delivery_date"`
}

type capacityStore interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Reserve(ctx context.Context, tx pgx.Tx, res storage.Reservation) (int, error)
	Release(ctx context.Context, tx pgx.Tx, orderID string) (*storage.Reservation, error)
}

type outboxStore interface {
	Insert(ctx context.Context, tx pgx.Tx, evt outbox.Event) error
}

// OrderHandlers translates order lifecycle events into capacity counter
// movements. Both directions write a capacity event to the outbox in the
// same transaction.
type OrderHandlers struct {
	capacity capacityStore
	outbox   outboxStore
	logger   *slog.Logger
}

func NewOrderHandlers(capacity capacityStore, outboxRepo outboxStore, logger *slog.Logger) *OrderHandlers {
	return &OrderHandlers{capacity: capacity, outbox: outboxRepo, logger: logger}
}

func (h *OrderHandlers) HandleOrderPlaced(ctx context.Context, msg kafka.Message) error {
	var evt orderEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		h.logger.Error("malformed order placed payload", "err", err)
		return nil
	}
	date, err := availability.ParseDate(evt.DeliveryDate)
	if err != nil {
		h.logger.Error("order placed with bad delivery date", "order_id", evt.OrderID, "err", err)
		return nil
	}

	tx, err := h.capacity.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	booked, err := h.capacity.Reserve(ctx, tx, storage.Reservation{
		OrderID:  evt.OrderID,
		VendorID: evt.VendorID,
		SlotID:   evt.SlotID,
		Date:     date,
	})
	eventType := outbox.EventCapacityReserved
	reason := ""
	if errors.Is(err, storage.ErrSlotFull) {
		// The order slipped past the availability check. Record the
		// overflow so order-service can route or refund it.
		h.logger.Warn("capacity exhausted for placed order",
			"order_id", evt.OrderID, "vendor_id", evt.VendorID, "slot_id", evt.SlotID)
		eventType = outbox.EventCapacityRejected
		reason = "capacity exhausted"
	} else if err != nil {
		return fmt.Errorf("reserve capacity for order %s: %w", evt.OrderID, err)
	}

	out, err := outbox.NewCapacityEvent(eventType, evt.OrderID, evt.VendorID, evt.SlotID, date, booked, reason)
	if err != nil {
		return err
	}
	if err := h.outbox.Insert(ctx, tx, out); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (h *OrderHandlers) HandleOrderCancelled(ctx context.Context, msg kafka.Message) error {
	var evt orderEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		h.logger.Error("malformed order cancelled payload", "err", err)
		return nil
	}

	tx, err := h.capacity.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := h.capacity.Release(ctx, tx, evt.OrderID)
	if err != nil {
		return fmt.Errorf("release capacity for order %s: %w", evt.OrderID, err)
	}
	if res == nil {
		h.logger.Info("cancellation for unknown reservation", "order_id", evt.OrderID)
		return tx.Commit(ctx)
	}

	out, err := outbox.NewCapacityEvent(outbox.EventCapacityReleased, res.OrderID, res.VendorID, res.SlotID, res.Date, 0, "")
	if err != nil {
		return err
	}
	if err := h.outbox.Insert(ctx, tx, out); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
