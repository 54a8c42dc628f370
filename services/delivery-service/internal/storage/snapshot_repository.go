package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/giftwala/giftwala/libs/db"
	"github.com/giftwala/giftwala/services/delivery-service/internal/availability"
	"github.com/giftwala/giftwala/services/delivery-service/internal/model"
)

// SnapshotRepository assembles the read model the availability resolver
// consumes. All queries are read-only against catalog-owned tables.
type SnapshotRepository struct {
	pool *db.Pool
}

func NewSnapshotRepository(pool *db.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

func (r *SnapshotRepository) CityByID(ctx context.Context, id string) (model.City, error) {
	return r.city(ctx, `SELECT id::text, name, slug, is_active FROM cities WHERE id = $1`, id)
}

func (r *SnapshotRepository) CityBySlug(ctx context.Context, slug string) (model.City, error) {
	return r.city(ctx, `SELECT id::text, name, slug, is_active FROM cities WHERE slug = $1`, slug)
}

func (r *SnapshotRepository) city(ctx context.Context, query, arg string) (model.City, error) {
	var c model.City
	err := r.pool.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.City{}, ErrNotFound
	}
	if err != nil {
		return model.City{}, err
	}
	return c, nil
}

// Load reads the full snapshot for one (city, product set, date). The four
// table groups are independent, so they are fetched concurrently off the
// pool. An empty productIDs slice matches vendors carrying any available
// product.
func (r *SnapshotRepository) Load(ctx context.Context, cityID string, productIDs []string, date time.Time) (availability.Snapshot, error) {
	var snap availability.Snapshot
	if productIDs == nil {
		productIDs = []string{}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Configs, err = r.loadSlotConfigs(ctx, cityID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Holidays, err = r.loadHolidays(ctx, cityID, date)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Surcharges, err = r.loadSurcharges(ctx, date)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Vendors, err = r.loadVendorStates(ctx, cityID, productIDs, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return availability.Snapshot{}, err
	}
	return snap, nil
}

func (r *SnapshotRepository) loadSlotConfigs(ctx context.Context, cityID string) ([]model.CitySlotConfig, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id::text, s.slug, s.name, s.slot_group, s.base_charge, s.is_active,
		       to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
		       c.is_enabled, c.charge_override
		FROM city_slot_configs c
		JOIN delivery_slots s ON s.id = c.slot_id
		WHERE c.city_id = $1
		ORDER BY s.slug
	`, cityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CitySlotConfig
	for rows.Next() {
		cfg := model.CitySlotConfig{CityID: cityID}
		var group string
		if err := rows.Scan(&cfg.Slot.ID, &cfg.Slot.Slug, &cfg.Slot.Name, &group, &cfg.Slot.BaseCharge, &cfg.Slot.IsActive,
			&cfg.Slot.StartTime, &cfg.Slot.EndTime, &cfg.Enabled, &cfg.ChargeOverride); err != nil {
			return nil, err
		}
		cfg.Slot.Group = model.SlotGroup(group)
		out = append(out, cfg)
	}
	return out, rows.Err()
}

func (r *SnapshotRepository) loadHolidays(ctx context.Context, cityID string, date time.Time) ([]model.DeliveryHoliday, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, holiday_date, city_id::text, mode, COALESCE(message, ''), COALESCE(overrides, '[]'::jsonb)
		FROM delivery_holidays
		WHERE holiday_date = $1 AND (city_id IS NULL OR city_id = $2)
	`, date, cityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DeliveryHoliday
	for rows.Next() {
		var h model.DeliveryHoliday
		var mode string
		if err := rows.Scan(&h.ID, &h.Date, &h.CityID, &mode, &h.Message, &h.Overrides); err != nil {
			return nil, err
		}
		h.Mode = model.HolidayMode(mode)
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *SnapshotRepository) loadSurcharges(ctx context.Context, date time.Time) ([]model.DeliverySurcharge, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, name, amount, is_active, start_date, end_date, COALESCE(applies_to, 'all')
		FROM delivery_surcharges
		WHERE is_active AND start_date <= $1 AND end_date >= $1
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DeliverySurcharge
	for rows.Next() {
		var s model.DeliverySurcharge
		if err := rows.Scan(&s.ID, &s.Name, &s.Amount, &s.IsActive, &s.StartDate, &s.EndDate, &s.AppliesTo); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SnapshotRepository) loadVendorStates(ctx context.Context, cityID string, productIDs []string, date time.Time) ([]availability.VendorState, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.id::text, COALESCE(MAX(vp.preparation_minutes), 0)
		FROM vendors v
		JOIN vendor_products vp ON vp.vendor_id = v.id AND vp.is_available
		WHERE v.city_id = $1
		  AND v.status = 'APPROVED'
		  AND NOT (v.vacation_start IS NOT NULL AND v.vacation_end IS NOT NULL
		           AND $3::date BETWEEN v.vacation_start::date AND v.vacation_end::date)
		  AND (cardinality($2::text[]) = 0 OR vp.product_id::text = ANY($2))
		GROUP BY v.id
	`, cityID, productIDs, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := map[string]*availability.VendorState{}
	var ids []string
	for rows.Next() {
		v := availability.VendorState{
			Hours:     map[time.Weekday]model.WorkingHours{},
			SlotRules: map[string]availability.Rule{},
			Capacity:  map[string]model.VendorCapacity{},
		}
		if err := rows.Scan(&v.ID, &v.PreparationMinutes); err != nil {
			return nil, err
		}
		byID[v.ID] = &v
		ids = append(ids, v.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if err := r.attachWorkingHours(ctx, byID, ids); err != nil {
		return nil, err
	}
	if err := r.attachSlotRules(ctx, byID, ids); err != nil {
		return nil, err
	}
	if err := r.attachCapacity(ctx, byID, ids, date); err != nil {
		return nil, err
	}

	out := make([]availability.VendorState, 0, len(ids))
	for _, id := range ids {
		out = append(out, *byID[id])
	}
	return out, nil
}

func (r *SnapshotRepository) attachWorkingHours(ctx context.Context, byID map[string]*availability.VendorState, ids []string) error {
	rows, err := r.pool.Query(ctx, `
		SELECT vendor_id::text, weekday, open_minute, close_minute, is_closed
		FROM vendor_working_hours
		WHERE vendor_id::text = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var h model.WorkingHours
		var wd int
		if err := rows.Scan(&h.VendorID, &wd, &h.OpenMinute, &h.CloseMinute, &h.IsClosed); err != nil {
			return err
		}
		h.Weekday = time.Weekday(wd)
		if v, ok := byID[h.VendorID]; ok {
			v.HasHours = true
			v.Hours[h.Weekday] = h
		}
	}
	return rows.Err()
}

func (r *SnapshotRepository) attachSlotRules(ctx context.Context, byID map[string]*availability.VendorState, ids []string) error {
	rows, err := r.pool.Query(ctx, `
		SELECT vendor_id::text, slot_id::text, is_enabled
		FROM vendor_slot_prefs
		WHERE vendor_id::text = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var vendorID, slotID string
		var enabled bool
		if err := rows.Scan(&vendorID, &slotID, &enabled); err != nil {
			return err
		}
		if v, ok := byID[vendorID]; ok {
			v.SlotRules[slotID] = availability.RuleFromBool(enabled)
		}
	}
	return rows.Err()
}

func (r *SnapshotRepository) attachCapacity(ctx context.Context, byID map[string]*availability.VendorState, ids []string, date time.Time) error {
	rows, err := r.pool.Query(ctx, `
		SELECT vendor_id::text, slot_id::text, capacity_date, booked_orders, max_orders
		FROM vendor_capacity
		WHERE vendor_id::text = ANY($1) AND capacity_date = $2
	`, ids, date)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c model.VendorCapacity
		if err := rows.Scan(&c.VendorID, &c.SlotID, &c.Date, &c.BookedOrders, &c.MaxOrders); err != nil {
			return err
		}
		if v, ok := byID[c.VendorID]; ok {
			v.Capacity[c.SlotID] = c
		}
	}
	return rows.Err()
}

// SameDayListing is one (product, vendor) pair eligible for same-day
// filtering in a city.
type SameDayListing struct {
	Product            model.Product
	VendorID           string
	PreparationMinutes int
}

func (r *SnapshotRepository) SameDayListings(ctx context.Context, cityID, categorySlug string) ([]SameDayListing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id::text, p.name, p.slug, COALESCE(p.category_slug, ''), p.base_price,
		       v.id::text, vp.preparation_minutes
		FROM products p
		JOIN vendor_products vp ON vp.product_id = p.id AND vp.is_available
		JOIN vendors v ON v.id = vp.vendor_id
		WHERE p.is_active
		  AND v.city_id = $1
		  AND v.status = 'APPROVED'
		  AND NOT (v.vacation_start IS NOT NULL AND v.vacation_end IS NOT NULL
		           AND CURRENT_DATE BETWEEN v.vacation_start::date AND v.vacation_end::date)
		  AND ($2 = '' OR p.category_slug = $2)
		ORDER BY p.slug
	`, cityID, categorySlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SameDayListing
	for rows.Next() {
		var l SameDayListing
		l.Product.IsActive = true
		if err := rows.Scan(&l.Product.ID, &l.Product.Name, &l.Product.Slug, &l.Product.CategorySlug, &l.Product.BasePrice,
			&l.VendorID, &l.PreparationMinutes); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
