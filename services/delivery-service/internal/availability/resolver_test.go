package availability

import (
	"reflect"
	"testing"
	"time"

	"github.com/giftwala/giftwala/services/delivery-service/internal/model"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// 2026-09-02 is a Wednesday.
func testDate(t *testing.T) time.Time {
	t.Helper()
	d, err := ParseDate("2026-09-02")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	return d
}

func at(t *testing.T, date string, hour, minute int) time.Time {
	t.Helper()
	d, err := ParseDate(date)
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func slotConfig(id, slug string, group model.SlotGroup, baseCharge int) model.CitySlotConfig {
	return model.CitySlotConfig{
		CityID: "city-1",
		Slot: model.DeliverySlot{
			ID:         id,
			Slug:       slug,
			Name:       slug,
			Group:      group,
			BaseCharge: baseCharge,
			IsActive:   true,
			StartTime:  "09:00",
			EndTime:    "21:00",
		},
		Enabled: true,
	}
}

func openVendor(id string, prep int) VendorState {
	return VendorState{
		ID:                 id,
		PreparationMinutes: prep,
		Hours:              map[time.Weekday]model.WorkingHours{},
		SlotRules:          map[string]Rule{},
		Capacity:           map[string]model.VendorCapacity{},
	}
}

func vendorWithHours(id string, prep, openMin, closeMin int) VendorState {
	v := openVendor(id, prep)
	v.HasHours = true
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		v.Hours[wd] = model.WorkingHours{VendorID: id, Weekday: wd, OpenMinute: openMin, CloseMinute: closeMin}
	}
	return v
}

func findSlot(t *testing.T, res Result, slug string) SlotQuote {
	t.Helper()
	for _, s := range res.Slots {
		if s.Slug == slug {
			return s
		}
	}
	t.Fatalf("slot %q not in result (%d slots)", slug, len(res.Slots))
	return SlotQuote{}
}

func hasSlot(res Result, slug string) bool {
	for _, s := range res.Slots {
		if s.Slug == slug {
			return true
		}
	}
	return false
}

func TestParseDateIsIST(t *testing.T) {
	d, err := ParseDate("2026-09-02")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := d.Format("2006-01-02 15:04 -0700"); got != "2026-09-02 00:00 +0530" {
		t.Fatalf("wrong parse: %s", got)
	}
	// An evening UTC instant is already the next day in IST.
	utcEvening := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	if !SameDate(utcEvening, d) {
		t.Fatal("2026-09-01 20:00 UTC should be 2026-09-02 in IST")
	}
	if _, err := ParseDate("02-09-2026"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestFullBlockShortCircuits(t *testing.T) {
	snap := Snapshot{
		Configs: []model.CitySlotConfig{slotConfig("s1", "standard", model.GroupStandard, 49)},
		Holidays: []model.DeliveryHoliday{
			{ID: "h1", Mode: model.HolidayFullBlock, Message: "Holi: no deliveries"},
		},
		Surcharges: []model.DeliverySurcharge{{ID: "x", Amount: 50, IsActive: true}},
		Vendors:    []VendorState{openVendor("v1", 60)},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	if !res.FullyBlocked {
		t.Fatal("expected fullyBlocked")
	}
	if len(res.Slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(res.Slots))
	}
	if res.HolidayReason != "Holi: no deliveries" {
		t.Fatalf("wrong reason: %q", res.HolidayReason)
	}
	if res.Surcharge != 0 {
		t.Fatalf("surcharge should not be computed on a blocked date, got %d", res.Surcharge)
	}
}

func TestCityHolidayBeatsGlobal(t *testing.T) {
	snap := Snapshot{
		Configs: []model.CitySlotConfig{
			slotConfig("s1", "standard", model.GroupStandard, 49),
			slotConfig("s2", "midnight", model.GroupMidnight, 249),
		},
		Holidays: []model.DeliveryHoliday{
			{ID: "global", Mode: model.HolidayFullBlock, Message: "global block"},
			{ID: "city", CityID: strPtr("city-1"), Mode: model.HolidayStandardOnly, Message: "city restriction"},
		},
		Vendors: []VendorState{openVendor("v1", 60)},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	if res.FullyBlocked {
		t.Fatal("city STANDARD_ONLY row must override the global FULL_BLOCK")
	}
	if !hasSlot(res, "standard") || hasSlot(res, "midnight") {
		t.Fatalf("expected only standard slot, got %+v", res.Slots)
	}
}

func TestStandardOnlyDropsOtherGroups(t *testing.T) {
	snap := Snapshot{
		Configs: []model.CitySlotConfig{
			slotConfig("s1", "standard", model.GroupStandard, 49),
			slotConfig("s2", "fixed", model.GroupFixed, 99),
			slotConfig("s3", "express", model.GroupExpress, 199),
		},
		Holidays: []model.DeliveryHoliday{
			{ID: "h", Mode: model.HolidayStandardOnly, Message: "festival rush"},
		},
		Vendors: []VendorState{openVendor("v1", 60)},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	if len(res.Slots) != 1 || res.Slots[0].Slug != "standard" {
		t.Fatalf("expected exactly the standard slot, got %+v", res.Slots)
	}
	if res.HolidayReason != "festival rush" {
		t.Fatalf("wrong holiday reason: %q", res.HolidayReason)
	}
}

func TestCustomHolidayOverrides(t *testing.T) {
	snap := Snapshot{
		Configs: []model.CitySlotConfig{
			slotConfig("s1", "standard", model.GroupStandard, 49),
			slotConfig("s2", "midnight", model.GroupMidnight, 249),
			slotConfig("s3", "express", model.GroupExpress, 199),
		},
		Holidays: []model.DeliveryHoliday{
			{
				ID:   "h",
				Mode: model.HolidayCustom,
				Overrides: []model.SlotOverride{
					{Slug: "midnight", Blocked: true},
					{Slug: "express", PriceOverride: intPtr(500)},
				},
			},
		},
		Surcharges: []model.DeliverySurcharge{{ID: "x", Amount: 50, IsActive: true}},
		Vendors:    []VendorState{openVendor("v1", 60)},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	if hasSlot(res, "midnight") {
		t.Fatal("blocked slug must be removed")
	}
	// Price override replaces base+surcharge entirely.
	if got := findSlot(t, res, "express").Price; got != 500 {
		t.Fatalf("override price = %d, want 500 (surcharge-exempt)", got)
	}
	// Untouched slug still pays the surcharge.
	if got := findSlot(t, res, "standard").Price; got != 99 {
		t.Fatalf("standard price = %d, want 49+50", got)
	}
}

func TestSurchargesStack(t *testing.T) {
	cfg := slotConfig("s1", "standard", model.GroupStandard, 49)
	cfg.ChargeOverride = intPtr(79)
	snap := Snapshot{
		Configs: []model.CitySlotConfig{cfg},
		Surcharges: []model.DeliverySurcharge{
			{ID: "a", Amount: 30, IsActive: true},
			{ID: "b", Amount: 20, IsActive: true},
			{ID: "c", Amount: 999, IsActive: false},
		},
		Vendors: []VendorState{openVendor("v1", 60)},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	if res.Surcharge != 50 {
		t.Fatalf("surcharge = %d, want 50", res.Surcharge)
	}
	// City charge override replaces the base charge, then surcharges apply.
	if got := res.Slots[0].Price; got != 129 {
		t.Fatalf("price = %d, want 79+50", got)
	}
}

func TestFullnessRequiresEveryVendorAtCap(t *testing.T) {
	full := openVendor("v1", 60)
	full.Capacity["s1"] = model.VendorCapacity{VendorID: "v1", SlotID: "s1", BookedOrders: 10}

	snap := Snapshot{
		Configs: []model.CitySlotConfig{slotConfig("s1", "standard", model.GroupStandard, 49)},
		Vendors: []VendorState{full, openVendor("v2", 60)},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	if got := res.Slots[0]; got.Full || !got.Available {
		t.Fatalf("one vendor under cap should keep the slot open: %+v", got)
	}

	// v2 with no capacity row removed: only the full vendor remains.
	snap.Vendors = []VendorState{full}
	res = Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	if got := res.Slots[0]; !got.Full || got.Available || got.Reason != ReasonFullyBooked {
		t.Fatalf("expected full slot: %+v", got)
	}
}

func TestCapacityDefaults(t *testing.T) {
	// MaxOrders nil falls back to 10; booked 9 is still open.
	v := openVendor("v1", 60)
	v.Capacity["s1"] = model.VendorCapacity{VendorID: "v1", SlotID: "s1", BookedOrders: 9}
	snap := Snapshot{
		Configs: []model.CitySlotConfig{slotConfig("s1", "standard", model.GroupStandard, 49)},
		Vendors: []VendorState{v},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	if res.Slots[0].Full {
		t.Fatal("9 booked with default limit 10 must not be full")
	}

	// Explicit limit wins over the default.
	v.Capacity["s1"] = model.VendorCapacity{VendorID: "v1", SlotID: "s1", BookedOrders: 3, MaxOrders: intPtr(3)}
	snap.Vendors = []VendorState{v}
	res = Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	if !res.Slots[0].Full {
		t.Fatal("3 booked with explicit limit 3 must be full")
	}
}

func TestNoQualifyingVendors(t *testing.T) {
	optedOut := openVendor("v1", 60)
	optedOut.SlotRules["s1"] = RuleDeny

	closed := vendorWithHours("v2", 60, 9*60, 21*60)
	wd := testDate(t).Weekday()
	closed.Hours[wd] = model.WorkingHours{VendorID: "v2", Weekday: wd, IsClosed: true}

	snap := Snapshot{
		Configs: []model.CitySlotConfig{slotConfig("s1", "standard", model.GroupStandard, 49)},
		Vendors: []VendorState{optedOut, closed},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	got := res.Slots[0]
	if got.Available || got.Full || got.Reason != ReasonNoVendors {
		t.Fatalf("expected no-vendors verdict, got %+v", got)
	}
}

func TestSameDayCutoff(t *testing.T) {
	// Vendor closes at 21:00, prep takes 120 minutes.
	v := vendorWithHours("v1", 120, 9*60, 21*60)
	snap := Snapshot{
		Configs: []model.CitySlotConfig{slotConfig("s1", "express", model.GroupExpress, 199)},
		Vendors: []VendorState{v},
	}
	date := testDate(t)

	// 18:30 today: 1110 + 120 = 1230 < 1260, reachable.
	res := Resolve(snap, Request{Date: date, Now: at(t, "2026-09-02", 18, 30)})
	if !res.Slots[0].Available {
		t.Fatalf("18:30 with 2h prep before 21:00 close should be open: %+v", res.Slots[0])
	}

	// 19:00 today: 1140 + 120 = 1260, not strictly before close.
	res = Resolve(snap, Request{Date: date, Now: at(t, "2026-09-02", 19, 0)})
	if got := res.Slots[0]; got.Available || got.Reason != ReasonCutoff {
		t.Fatalf("exactly-at-close must miss the cutoff: %+v", got)
	}

	// Same clock, but the request is for a future date: no cutoff check.
	res = Resolve(snap, Request{Date: date, Now: at(t, "2026-09-01", 23, 0)})
	if !res.Slots[0].Available {
		t.Fatalf("future-date request must skip the cutoff: %+v", res.Slots[0])
	}
}

func TestSameDayCutoffNeedsExplicitHours(t *testing.T) {
	// No working-hours rows: the vendor qualifies for the slot but there is
	// no closing time to race against, so same-day is not reachable.
	snap := Snapshot{
		Configs: []model.CitySlotConfig{slotConfig("s1", "standard", model.GroupStandard, 49)},
		Vendors: []VendorState{openVendor("v1", 30)},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-09-02", 10, 0)})
	if got := res.Slots[0]; got.Available || got.Reason != ReasonCutoff {
		t.Fatalf("vendor without hours must not accept same-day: %+v", got)
	}
}

func TestFixedWindowExpansion(t *testing.T) {
	// Open 10:00-17:00: only 11-13, 13-15 and 15-17 fit entirely.
	v := vendorWithHours("v1", 60, 10*60, 17*60)
	snap := Snapshot{
		Configs: []model.CitySlotConfig{slotConfig("s1", "fixed", model.GroupFixed, 99)},
		Vendors: []VendorState{v},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	want := []string{"11-13", "13-15", "15-17"}
	got := res.Slots[0].Windows
	if len(got) != len(want) {
		t.Fatalf("windows = %+v, want %v", got, want)
	}
	for i, w := range got {
		if w.Slug != want[i] {
			t.Fatalf("windows = %+v, want %v", got, want)
		}
	}
}

func TestFixedWindowsElapseOnCurrentDay(t *testing.T) {
	v := vendorWithHours("v1", 30, 9*60, 21*60)
	snap := Snapshot{
		Configs: []model.CitySlotConfig{slotConfig("s1", "fixed", model.GroupFixed, 99)},
		Vendors: []VendorState{v},
	}
	// 13:05 today: 09-11, 11-13 and 13-15 have all started.
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-09-02", 13, 5)})
	got := res.Slots[0].Windows
	want := []string{"15-17", "17-19", "19-21"}
	if len(got) != len(want) {
		t.Fatalf("windows = %+v, want %v", got, want)
	}
	for i, w := range got {
		if w.Slug != want[i] {
			t.Fatalf("windows = %+v, want %v", got, want)
		}
	}
}

func TestVendorWithoutHoursCoversAllWindows(t *testing.T) {
	snap := Snapshot{
		Configs: []model.CitySlotConfig{slotConfig("s1", "fixed", model.GroupFixed, 99)},
		Vendors: []VendorState{openVendor("v1", 30)},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	if got := len(res.Slots[0].Windows); got != len(FixedWindows) {
		t.Fatalf("expected all %d windows, got %d", len(FixedWindows), got)
	}
}

func TestSlotOrdering(t *testing.T) {
	snap := Snapshot{
		Configs: []model.CitySlotConfig{
			slotConfig("s5", "express", model.GroupExpress, 199),
			slotConfig("s4", "early-morning", model.GroupEarlyMorning, 149),
			slotConfig("s3", "midnight", model.GroupMidnight, 249),
			slotConfig("s2", "fixed", model.GroupFixed, 99),
			slotConfig("s1", "standard", model.GroupStandard, 49),
		},
		Vendors: []VendorState{openVendor("v1", 60)},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	want := []string{"standard", "fixed", "midnight", "early-morning", "express"}
	for i, slug := range want {
		if res.Slots[i].Slug != slug {
			t.Fatalf("slot[%d] = %s, want %s", i, res.Slots[i].Slug, slug)
		}
	}
}

func TestDisabledConfigsAreSkipped(t *testing.T) {
	disabled := slotConfig("s1", "standard", model.GroupStandard, 49)
	disabled.Enabled = false
	inactive := slotConfig("s2", "express", model.GroupExpress, 199)
	inactive.Slot.IsActive = false
	snap := Snapshot{
		Configs: []model.CitySlotConfig{disabled, inactive},
		Vendors: []VendorState{openVendor("v1", 60)},
	}
	res := Resolve(snap, Request{Date: testDate(t), Now: at(t, "2026-08-30", 10, 0)})
	if len(res.Slots) != 0 {
		t.Fatalf("expected no slots, got %+v", res.Slots)
	}
}

// Resolving the same snapshot twice must produce identical results, down to
// slot order, window lists and reasons.
func TestResolveIsRepeatable(t *testing.T) {
	snap := Snapshot{
		Configs: []model.CitySlotConfig{
			slotConfig("s1", "standard", model.GroupStandard, 49),
			slotConfig("s2", "fixed", model.GroupFixed, 99),
			slotConfig("s3", "midnight", model.GroupMidnight, 249),
			slotConfig("s4", "express", model.GroupExpress, 199),
		},
		Holidays: []model.DeliveryHoliday{
			{
				ID:     "h",
				CityID: strPtr("city-1"),
				Mode:   model.HolidayCustom,
				Overrides: []model.SlotOverride{
					{Slug: "midnight", Blocked: true},
					{Slug: "express", PriceOverride: intPtr(500)},
				},
			},
		},
		Surcharges: []model.DeliverySurcharge{
			{ID: "x1", Name: "festival", Amount: 50, IsActive: true},
			{ID: "x2", Name: "peak", Amount: 25, IsActive: true},
		},
		Vendors: []VendorState{
			vendorWithHours("v1", 120, 540, 1260),
			openVendor("v2", 30),
		},
	}
	req := Request{Date: testDate(t), Now: at(t, "2026-09-02", 10, 0)}

	first := Resolve(snap, req)
	second := Resolve(snap, req)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input resolved differently:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
