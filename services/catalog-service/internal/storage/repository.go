package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/giftwala/giftwala/libs/db"
)

var ErrNotFound = errors.New("not found")

// Repository covers the vendor self-service surface: the scheduling data a
// vendor maintains about their own shop. Admin-owned catalog entities live
// in CatalogRepository.
type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

type Vendor struct {
	ID            string
	CityID        string
	Name          string
	Status        string
	VacationStart *time.Time
	VacationEnd   *time.Time
	CreatedAt     time.Time
}

func (r *Repository) GetVendor(ctx context.Context, vendorID string) (Vendor, error) {
	var v Vendor
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, city_id::text, name, status, vacation_start, vacation_end, created_at
		FROM vendors
		WHERE id = $1
	`, vendorID).Scan(&v.ID, &v.CityID, &v.Name, &v.Status, &v.VacationStart, &v.VacationEnd, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vendor{}, ErrNotFound
	}
	return v, err
}

type WeekdayHours struct {
	Weekday     int  `json:"weekday"`
	OpenMinute  int  `json:"openMinute"`
	CloseMinute int  `json:"closeMinute"`
	IsClosed    bool `json:"isClosed"`
}

// ReplaceWorkingHours swaps the vendor's whole week in one transaction so a
// concurrent availability read never sees half a schedule.
func (r *Repository) ReplaceWorkingHours(ctx context.Context, tx pgx.Tx, vendorID string, week []WeekdayHours) error {
	if _, err := tx.Exec(ctx, `DELETE FROM vendor_working_hours WHERE vendor_id = $1`, vendorID); err != nil {
		return err
	}
	for _, h := range week {
		_, err := tx.Exec(ctx, `
			INSERT INTO vendor_working_hours (vendor_id, weekday, open_minute, close_minute, is_closed)
			VALUES ($1, $2, $3, $4, $5)
		`, vendorID, h.Weekday, h.OpenMinute, h.CloseMinute, h.IsClosed)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) ListWorkingHours(ctx context.Context, vendorID string) ([]WeekdayHours, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT weekday, open_minute, close_minute, is_closed
		FROM vendor_working_hours
		WHERE vendor_id = $1
		ORDER BY weekday
	`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WeekdayHours
	for rows.Next() {
		var h WeekdayHours
		if err := rows.Scan(&h.Weekday, &h.OpenMinute, &h.CloseMinute, &h.IsClosed); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repository) SetSlotPreference(ctx context.Context, tx pgx.Tx, vendorID, slotID string, enabled bool) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO vendor_slot_prefs (vendor_id, slot_id, is_enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (vendor_id, slot_id)
		DO UPDATE SET is_enabled = EXCLUDED.is_enabled, updated_at = now()
	`, vendorID, slotID, enabled)
	return err
}

// SetCapacityLimit sets max_orders for a (slot, date) without touching the
// booked counter delivery-service owns.
func (r *Repository) SetCapacityLimit(ctx context.Context, tx pgx.Tx, vendorID, slotID string, date time.Time, maxOrders int) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO vendor_capacity (vendor_id, slot_id, capacity_date, booked_orders, max_orders)
		VALUES ($1, $2, $3, 0, $4)
		ON CONFLICT (vendor_id, slot_id, capacity_date)
		DO UPDATE SET max_orders = EXCLUDED.max_orders, updated_at = now()
	`, vendorID, slotID, date, maxOrders)
	return err
}

func (r *Repository) SetVacation(ctx context.Context, tx pgx.Tx, vendorID string, start, end *time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE vendors
		SET vacation_start = $2, vacation_end = $3, updated_at = now()
		WHERE id = $1
	`, vendorID, start, end)
	return err
}

type VendorProduct struct {
	ProductID          string `json:"productId"`
	IsAvailable        bool   `json:"isAvailable"`
	PreparationMinutes int    `json:"preparationMinutes"`
}

func (r *Repository) UpsertVendorProduct(ctx context.Context, tx pgx.Tx, vendorID string, vp VendorProduct) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO vendor_products (vendor_id, product_id, is_available, preparation_minutes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (vendor_id, product_id)
		DO UPDATE SET is_available = EXCLUDED.is_available,
		              preparation_minutes = EXCLUDED.preparation_minutes,
		              updated_at = now()
	`, vendorID, vp.ProductID, vp.IsAvailable, vp.PreparationMinutes)
	return err
}

func (r *Repository) CreateVendor(ctx context.Context, tx pgx.Tx, cityID, name string) (string, error) {
	id := uuid.NewString()
	_, err := tx.Exec(ctx, `
		INSERT INTO vendors (id, city_id, name, status)
		VALUES ($1, $2, $3, 'PENDING')
	`, id, cityID, name)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) SetVendorStatus(ctx context.Context, tx pgx.Tx, vendorID, status string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE vendors SET status = $2, updated_at = now() WHERE id = $1
	`, vendorID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
