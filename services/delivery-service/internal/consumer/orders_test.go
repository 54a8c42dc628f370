package consumer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/segmentio/kafka-go"

	"github.com/giftwala/giftwala/services/delivery-service/internal/outbox"
	"github.com/giftwala/giftwala/services/delivery-service/internal/storage"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error { t.committed = true; return nil }

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

// fakeCapacity mirrors the repository contract: a reservation rejected for
// a full slot leaves no ledger entry behind, and releasing an order without
// a ledger entry is a no-op.
type fakeCapacity struct {
	booked int
	max    int
	held   map[string]storage.Reservation
	tx     *fakeTx
}

func newFakeCapacity(booked, max int) *fakeCapacity {
	return &fakeCapacity{booked: booked, max: max, held: map[string]storage.Reservation{}}
}

func (f *fakeCapacity) Begin(ctx context.Context) (pgx.Tx, error) {
	f.tx = &fakeTx{}
	return f.tx, nil
}

func (f *fakeCapacity) Reserve(ctx context.Context, tx pgx.Tx, res storage.Reservation) (int, error) {
	if _, ok := f.held[res.OrderID]; ok {
		return f.booked, nil
	}
	if f.booked >= f.max {
		return 0, storage.ErrSlotFull
	}
	f.booked++
	f.held[res.OrderID] = res
	return f.booked, nil
}

func (f *fakeCapacity) Release(ctx context.Context, tx pgx.Tx, orderID string) (*storage.Reservation, error) {
	res, ok := f.held[orderID]
	if !ok {
		return nil, nil
	}
	delete(f.held, orderID)
	f.booked--
	return &res, nil
}

type fakeOutbox struct {
	events []outbox.Event
}

func (f *fakeOutbox) Insert(ctx context.Context, tx pgx.Tx, evt outbox.Event) error {
	f.events = append(f.events, evt)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func orderMessage(t *testing.T, orderID string) kafka.Message {
	t.Helper()
	payload, err := json.Marshal(orderEvent{
		OrderID:      orderID,
		VendorID:     "v1",
		SlotID:       "s1",
		DeliveryDate: "2026-09-02",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return kafka.Message{Key: []byte(orderID), Value: payload}
}

func TestHandleOrderPlacedReservesCapacity(t *testing.T) {
	capacity := newFakeCapacity(9, 10)
	sink := &fakeOutbox{}
	h := NewOrderHandlers(capacity, sink, testLogger())

	if err := h.HandleOrderPlaced(context.Background(), orderMessage(t, "ord-1")); err != nil {
		t.Fatalf("HandleOrderPlaced: %v", err)
	}
	if capacity.booked != 10 {
		t.Fatalf("booked = %d, want 10", capacity.booked)
	}
	if len(sink.events) != 1 || sink.events[0].EventType != outbox.EventCapacityReserved {
		t.Fatalf("events = %+v, want one reserved event", sink.events)
	}
	if !capacity.tx.committed {
		t.Fatal("transaction not committed")
	}
}

// A placed order that finds the slot full must end up holding nothing: the
// rejection is announced, and a later cancellation for that order must not
// free capacity the order never took.
func TestRejectedOrderHoldsNoReservation(t *testing.T) {
	capacity := newFakeCapacity(10, 10)
	sink := &fakeOutbox{}
	h := NewOrderHandlers(capacity, sink, testLogger())

	if err := h.HandleOrderPlaced(context.Background(), orderMessage(t, "ord-late")); err != nil {
		t.Fatalf("HandleOrderPlaced: %v", err)
	}
	if len(sink.events) != 1 || sink.events[0].EventType != outbox.EventCapacityRejected {
		t.Fatalf("events = %+v, want one rejected event", sink.events)
	}
	if !capacity.tx.committed {
		t.Fatal("rejection transaction not committed")
	}

	if err := h.HandleOrderCancelled(context.Background(), orderMessage(t, "ord-late")); err != nil {
		t.Fatalf("HandleOrderCancelled: %v", err)
	}
	if capacity.booked != 10 {
		t.Fatalf("booked = %d after cancelling a rejected order, want 10", capacity.booked)
	}
	for _, evt := range sink.events {
		if evt.EventType == outbox.EventCapacityReleased {
			t.Fatalf("released event emitted for an order that held nothing")
		}
	}
}

func TestHandleOrderPlacedReplay(t *testing.T) {
	capacity := newFakeCapacity(9, 10)
	sink := &fakeOutbox{}
	h := NewOrderHandlers(capacity, sink, testLogger())

	for i := 0; i < 2; i++ {
		if err := h.HandleOrderPlaced(context.Background(), orderMessage(t, "ord-1")); err != nil {
			t.Fatalf("HandleOrderPlaced #%d: %v", i+1, err)
		}
	}
	if capacity.booked != 10 {
		t.Fatalf("booked = %d after replay, want 10", capacity.booked)
	}
}

func TestHandleOrderPlacedMalformed(t *testing.T) {
	capacity := newFakeCapacity(0, 10)
	sink := &fakeOutbox{}
	h := NewOrderHandlers(capacity, sink, testLogger())

	msg := kafka.Message{Value: []byte("not json")}
	if err := h.HandleOrderPlaced(context.Background(), msg); err != nil {
		t.Fatalf("HandleOrderPlaced: %v", err)
	}
	if capacity.tx != nil {
		t.Fatal("transaction opened for a malformed payload")
	}
	if len(sink.events) != 0 {
		t.Fatalf("events = %+v, want none", sink.events)
	}
}

func TestHandleOrderCancelledUnknownOrder(t *testing.T) {
	capacity := newFakeCapacity(5, 10)
	sink := &fakeOutbox{}
	h := NewOrderHandlers(capacity, sink, testLogger())

	if err := h.HandleOrderCancelled(context.Background(), orderMessage(t, "ord-unknown")); err != nil {
		t.Fatalf("HandleOrderCancelled: %v", err)
	}
	if capacity.booked != 5 {
		t.Fatalf("booked = %d, want 5", capacity.booked)
	}
	if len(sink.events) != 0 {
		t.Fatalf("events = %+v, want none", sink.events)
	}
	if !capacity.tx.committed {
		t.Fatal("transaction not committed")
	}
}
