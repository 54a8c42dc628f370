package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/giftwala/giftwala/libs/db"
)

// CatalogRepository covers the admin surface: cities, slots, per-city slot
// configuration, holidays, surcharges and products.
type CatalogRepository struct {
	pool *db.Pool
}

func NewCatalogRepository(pool *db.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

type City struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"isActive"`
}

func (r *CatalogRepository) CreateCity(ctx context.Context, name, slug string) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cities (id, name, slug, is_active)
		VALUES ($1, $2, $3, true)
	`, id, name, slug)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *CatalogRepository) ListCities(ctx context.Context) ([]City, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, name, slug, is_active FROM cities ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []City
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type DeliverySlot struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	SlotGroup  string `json:"slotGroup"`
	BaseCharge int    `json:"baseCharge"`
	IsActive   bool   `json:"isActive"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

func (r *CatalogRepository) CreateSlot(ctx context.Context, s DeliverySlot) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO delivery_slots (id, slug, name, slot_group, base_charge, is_active, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, true, $6::time, $7::time)
	`, id, s.Slug, s.Name, s.SlotGroup, s.BaseCharge, s.StartTime, s.EndTime)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *CatalogRepository) ListSlots(ctx context.Context) ([]DeliverySlot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, slug, name, slot_group, base_charge, is_active,
		       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI')
		FROM delivery_slots
		ORDER BY slug
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DeliverySlot
	for rows.Next() {
		var s DeliverySlot
		if err := rows.Scan(&s.ID, &s.Slug, &s.Name, &s.SlotGroup, &s.BaseCharge, &s.IsActive, &s.StartTime, &s.EndTime); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) UpsertCitySlotConfig(ctx context.Context, cityID, slotID string, enabled bool, chargeOverride *int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO city_slot_configs (city_id, slot_id, is_enabled, charge_override)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (city_id, slot_id)
		DO UPDATE SET is_enabled = EXCLUDED.is_enabled,
		              charge_override = EXCLUDED.charge_override,
		              updated_at = now()
	`, cityID, slotID, enabled, chargeOverride)
	return err
}

type SlotOverride struct {
	Slug          string `json:"slug"`
	Blocked       bool   `json:"blocked"`
	PriceOverride *int   `json:"priceOverride"`
}

type Holiday struct {
	ID        string         `json:"id"`
	Date      string         `json:"date"`
	CityID    *string        `json:"cityId"`
	Mode      string         `json:"mode"`
	Message   string         `json:"message"`
	Overrides []SlotOverride `json:"overrides"`
}

func (r *CatalogRepository) CreateHoliday(ctx context.Context, tx pgx.Tx, h Holiday, date time.Time) (string, error) {
	id := uuid.NewString()
	_, err := tx.Exec(ctx, `
		INSERT INTO delivery_holidays (id, holiday_date, city_id, mode, message, overrides)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, date, h.CityID, h.Mode, h.Message, h.Overrides)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *CatalogRepository) DeleteHoliday(ctx context.Context, tx pgx.Tx, id string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM delivery_holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) ListHolidays(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, to_char(holiday_date, 'YYYY-MM-DD'), city_id::text, mode,
		       COALESCE(message, ''), COALESCE(overrides, '[]'::jsonb)
		FROM delivery_holidays
		WHERE holiday_date BETWEEN $1 AND $2
		ORDER BY holiday_date
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.CityID, &h.Mode, &h.Message, &h.Overrides); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

type Surcharge struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Amount    int    `json:"amount"`
	IsActive  bool   `json:"isActive"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	AppliesTo string `json:"appliesTo"`
}

func (r *CatalogRepository) CreateSurcharge(ctx context.Context, s Surcharge, start, end time.Time) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO delivery_surcharges (id, name, amount, is_active, start_date, end_date, applies_to)
		VALUES ($1, $2, $3, true, $4, $5, $6)
	`, id, s.Name, s.Amount, start, end, s.AppliesTo)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *CatalogRepository) DeactivateSurcharge(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE delivery_surcharges SET is_active = false, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) ListSurcharges(ctx context.Context) ([]Surcharge, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, name, amount, is_active,
		       to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
		       COALESCE(applies_to, 'all')
		FROM delivery_surcharges
		ORDER BY start_date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Surcharge
	for rows.Next() {
		var s Surcharge
		if err := rows.Scan(&s.ID, &s.Name, &s.Amount, &s.IsActive, &s.StartDate, &s.EndDate, &s.AppliesTo); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	CategorySlug string `json:"category"`
	BasePrice    int    `json:"basePrice"`
	IsActive     bool   `json:"isActive"`
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p Product) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, slug, category_slug, base_price, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
	`, id, p.Name, p.Slug, p.CategorySlug, p.BasePrice)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, slug, COALESCE(category_slug, ''), base_price, is_active
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Slug, &p.CategorySlug, &p.BasePrice, &p.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}
