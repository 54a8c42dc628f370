package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/giftwala/giftwala/libs/db"
	"github.com/giftwala/giftwala/services/delivery-service/internal/availability"
)

// CapacityRepository owns the per-(vendor, slot, date) booking counters and
// the reservation ledger that makes reserve/release idempotent per order.
type CapacityRepository struct {
	pool *db.Pool
}

func NewCapacityRepository(pool *db.Pool) *CapacityRepository {
	return &CapacityRepository{pool: pool}
}

func (r *CapacityRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

type Reservation struct {
	OrderID  string
	VendorID string
	SlotID   string
	Date     time.Time
}

// Reserve increments the booked counter for one order. The increment is a
// single compare-and-swap statement, so two concurrent reservations for the
// last remaining unit cannot both succeed. A repeat call for an order that
// already holds a reservation is a no-op.
func (r *CapacityRepository) Reserve(ctx context.Context, tx pgx.Tx, res Reservation) (int, error) {
	tag, err := tx.Exec(ctx, `
		INSERT INTO capacity_reservations (order_id, vendor_id, slot_id, slot_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (order_id) DO NOTHING
	`, res.OrderID, res.VendorID, res.SlotID, res.Date)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		var booked int
		err := tx.QueryRow(ctx, `
			SELECT booked_orders FROM vendor_capacity
			WHERE vendor_id = $1 AND slot_id = $2 AND capacity_date = $3
		`, res.VendorID, res.SlotID, res.Date).Scan(&booked)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return booked, err
	}

	var booked int
	err = tx.QueryRow(ctx, `
		INSERT INTO vendor_capacity (vendor_id, slot_id, capacity_date, booked_orders)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (vendor_id, slot_id, capacity_date)
		DO UPDATE SET booked_orders = vendor_capacity.booked_orders + 1,
		              updated_at = now()
		WHERE vendor_capacity.booked_orders < COALESCE(vendor_capacity.max_orders, $4)
		RETURNING booked_orders
	`, res.VendorID, res.SlotID, res.Date, availability.DefaultSlotCapacity).Scan(&booked)
	if errors.Is(err, pgx.ErrNoRows) {
		// The WHERE clause rejected the update: counter already at limit.
		// Take the ledger row back out so the rejected order holds no
		// reservation a later release could free.
		if _, delErr := tx.Exec(ctx, `
			DELETE FROM capacity_reservations WHERE order_id = $1
		`, res.OrderID); delErr != nil {
			return 0, delErr
		}
		return 0, ErrSlotFull
	}
	if err != nil {
		return 0, err
	}
	return booked, nil
}

// Release frees the capacity held by an order. Unknown orders are ignored so
// cancellation events can be replayed safely.
func (r *CapacityRepository) Release(ctx context.Context, tx pgx.Tx, orderID string) (*Reservation, error) {
	var res Reservation
	err := tx.QueryRow(ctx, `
		DELETE FROM capacity_reservations
		WHERE order_id = $1
		RETURNING order_id, vendor_id::text, slot_id::text, slot_date
	`, orderID).Scan(&res.OrderID, &res.VendorID, &res.SlotID, &res.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE vendor_capacity
		SET booked_orders = GREATEST(booked_orders - 1, 0),
		    updated_at = now()
		WHERE vendor_id = $1 AND slot_id = $2 AND capacity_date = $3
	`, res.VendorID, res.SlotID, res.Date)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
