package availability

import (
	"sort"
	"time"

	"github.com/giftwala/giftwala/services/delivery-service/internal/model"
)

// DefaultSlotCapacity applies when a capacity row carries no explicit limit.
const DefaultSlotCapacity = 10

const (
	ReasonNoVendors   = "no vendors available for this slot"
	ReasonFullyBooked = "all vendors are fully booked for this date"
	ReasonCutoff      = "preparation time exceeds vendor closing time"
)

// VendorState is everything the resolver needs to know about one vendor that
// carries the requested product(s) in the requested city. Maps are keyed by
// slot id; a missing key means no row exists, which the resolver interprets
// permissively (slot enabled, capacity not tracked yet).
type VendorState struct {
	ID                 string
	PreparationMinutes int
	HasHours           bool
	Hours              map[time.Weekday]model.WorkingHours
	SlotRules          map[string]Rule
	Capacity           map[string]model.VendorCapacity
}

// Snapshot is a point-in-time read of every table the resolver consults,
// already narrowed to one (city, date, product set).
type Snapshot struct {
	Configs    []model.CitySlotConfig
	Holidays   []model.DeliveryHoliday
	Surcharges []model.DeliverySurcharge
	Vendors    []VendorState
}

type Request struct {
	Date time.Time // midnight IST
	Now  time.Time // IST wall clock
}

// SlotQuote is the resolved verdict for one city slot.
type SlotQuote struct {
	ID        string
	Slug      string
	Name      string
	Group     model.SlotGroup
	StartTime string
	EndTime   string
	Available bool
	Full      bool
	Price     int
	Reason    string
	Windows   []Window // fixed group only
}

type Result struct {
	Date          string
	FullyBlocked  bool
	HolidayReason string
	Surcharge     int
	Slots         []SlotQuote
}

// Resolve computes slot availability for one (city, date, product set)
// against a consistent snapshot. It is pure: all I/O and clock reads happen
// before the call.
func Resolve(snap Snapshot, req Request) Result {
	res := Result{
		Date:  req.Date.In(ISTLocation).Format(DateLayout),
		Slots: []SlotQuote{},
	}

	hol := authoritativeHoliday(snap.Holidays)
	if hol != nil {
		res.HolidayReason = hol.Message
		if hol.Mode == model.HolidayFullBlock {
			res.FullyBlocked = true
			return res
		}
	}

	res.Surcharge = sumSurcharges(snap.Surcharges)

	isToday := SameDate(req.Date, req.Now)
	wd := req.Date.In(ISTLocation).Weekday()

	for _, cfg := range snap.Configs {
		if !cfg.Enabled || !cfg.Slot.IsActive {
			continue
		}
		if hol != nil && hol.Mode == model.HolidayStandardOnly && cfg.Slot.Group != model.GroupStandard {
			continue
		}
		var override *model.SlotOverride
		if hol != nil && hol.Mode == model.HolidayCustom {
			override = findOverride(hol.Overrides, cfg.Slot.Slug)
			if override != nil && override.Blocked {
				continue
			}
		}
		res.Slots = append(res.Slots, quoteSlot(cfg, override, snap.Vendors, wd, isToday, req.Now, res.Surcharge))
	}

	sortSlots(res.Slots)
	return res
}

// authoritativeHoliday picks the single holiday that governs the date: a
// city-specific row wins over a global one.
func authoritativeHoliday(holidays []model.DeliveryHoliday) *model.DeliveryHoliday {
	var global *model.DeliveryHoliday
	for i := range holidays {
		if holidays[i].CityID != nil {
			return &holidays[i]
		}
		if global == nil {
			global = &holidays[i]
		}
	}
	return global
}

// sumSurcharges is additive: overlapping active surcharges stack.
func sumSurcharges(rows []model.DeliverySurcharge) int {
	total := 0
	for _, s := range rows {
		if s.IsActive {
			total += s.Amount
		}
	}
	return total
}

func findOverride(overrides []model.SlotOverride, slug string) *model.SlotOverride {
	for i := range overrides {
		if overrides[i].Slug == slug {
			return &overrides[i]
		}
	}
	return nil
}

func quoteSlot(cfg model.CitySlotConfig, override *model.SlotOverride, vendors []VendorState, wd time.Weekday, isToday bool, now time.Time, surcharge int) SlotQuote {
	q := SlotQuote{
		ID:        cfg.Slot.ID,
		Slug:      cfg.Slot.Slug,
		Name:      cfg.Slot.Name,
		Group:     cfg.Slot.Group,
		StartTime: cfg.Slot.StartTime,
		EndTime:   cfg.Slot.EndTime,
	}

	qualifying := qualifyingVendors(vendors, cfg.Slot.ID, wd)

	q.Price = slotPrice(cfg, override, surcharge)
	q.Full = allAtCapacity(qualifying, cfg.Slot.ID)

	switch {
	case len(qualifying) == 0:
		q.Reason = ReasonNoVendors
	case q.Full:
		q.Reason = ReasonFullyBooked
	case isToday && !anyReachableToday(qualifying, wd, now):
		q.Reason = ReasonCutoff
	default:
		q.Available = true
	}

	if cfg.Slot.Group == model.GroupFixed {
		q.Windows = eligibleWindows(qualifying, wd, isToday, now.In(ISTLocation).Hour())
	}
	return q
}

// qualifyingVendors filters to vendors that have the slot enabled and are
// open on the weekday. Both checks default permissive when no row exists.
func qualifyingVendors(vendors []VendorState, slotID string, wd time.Weekday) []VendorState {
	out := make([]VendorState, 0, len(vendors))
	for _, v := range vendors {
		if !v.SlotRules[slotID].Allowed(true) {
			continue
		}
		if !v.openOn(wd) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (v VendorState) openOn(wd time.Weekday) bool {
	if !v.HasHours {
		return true
	}
	h, ok := v.Hours[wd]
	if !ok {
		return true
	}
	return !h.IsClosed
}

// allAtCapacity requires at least one qualifying vendor: an empty set is
// "no vendors", never "full".
func allAtCapacity(vendors []VendorState, slotID string) bool {
	if len(vendors) == 0 {
		return false
	}
	for _, v := range vendors {
		row, ok := v.Capacity[slotID]
		if !ok {
			return false
		}
		if row.BookedOrders < capLimit(row) {
			return false
		}
	}
	return true
}

func capLimit(c model.VendorCapacity) int {
	if c.MaxOrders != nil {
		return *c.MaxOrders
	}
	return DefaultSlotCapacity
}

func anyReachableToday(vendors []VendorState, wd time.Weekday, now time.Time) bool {
	for _, v := range vendors {
		if v.ReachableToday(v.PreparationMinutes, wd, now) {
			return true
		}
	}
	return false
}

// ReachableToday reports whether the vendor can still take a same-day order:
// preparation must finish strictly before closing time. Unlike openOn, a
// missing hours row is conservative here because there is no closing time to
// measure against.
func (v VendorState) ReachableToday(prepMinutes int, wd time.Weekday, now time.Time) bool {
	h, ok := v.Hours[wd]
	if !ok || h.IsClosed {
		return false
	}
	return MinutesOfDay(now)+prepMinutes < h.CloseMinute
}

// slotPrice resolves the customer-facing delivery charge. A CUSTOM holiday
// price override replaces the base calculation and is surcharge-exempt.
func slotPrice(cfg model.CitySlotConfig, override *model.SlotOverride, surcharge int) int {
	if override != nil && override.PriceOverride != nil {
		return *override.PriceOverride
	}
	base := cfg.Slot.BaseCharge
	if cfg.ChargeOverride != nil {
		base = *cfg.ChargeOverride
	}
	return base + surcharge
}

var groupRank = map[model.SlotGroup]int{
	model.GroupStandard:     0,
	model.GroupFixed:        1,
	model.GroupMidnight:     2,
	model.GroupEarlyMorning: 3,
	model.GroupExpress:      4,
}

func sortSlots(slots []SlotQuote) {
	sort.SliceStable(slots, func(i, j int) bool {
		return groupRank[slots[i].Group] < groupRank[slots[j].Group]
	})
}
