package model

import "time"

// Row types read by the availability resolver. All of these are owned and
// mutated by catalog-service; delivery-service only reads them.

type City struct {
	ID       string
	Name     string
	Slug     string
	IsActive bool
}

type SlotGroup string

const (
	GroupStandard     SlotGroup = "standard"
	GroupFixed        SlotGroup = "fixed"
	GroupEarlyMorning SlotGroup = "early-morning"
	GroupExpress      SlotGroup = "express"
	GroupMidnight     SlotGroup = "midnight"
)

type DeliverySlot struct {
	ID         string
	Slug       string
	Name       string
	Group      SlotGroup
	BaseCharge int // INR
	IsActive   bool
	StartTime  string // "HH:MM", 24h
	EndTime    string
}

// CitySlotConfig enables a delivery slot for a city, optionally overriding
// the slot's base charge. A slot with no config row (or a disabled one) is
// unavailable in that city regardless of vendor state.
type CitySlotConfig struct {
	CityID         string
	Slot           DeliverySlot
	Enabled        bool
	ChargeOverride *int
}

type HolidayMode string

const (
	HolidayFullBlock    HolidayMode = "FULL_BLOCK"
	HolidayStandardOnly HolidayMode = "STANDARD_ONLY"
	HolidayCustom       HolidayMode = "CUSTOM"
)

// SlotOverride is one entry of a CUSTOM holiday's per-slot override list.
type SlotOverride struct {
	Slug          string `json:"slug"`
	Blocked       bool   `json:"blocked"`
	PriceOverride *int   `json:"priceOverride"`
}

// DeliveryHoliday applies to one calendar date. CityID nil means the row is
// global; a city-specific row takes precedence over the global one.
type DeliveryHoliday struct {
	ID        string
	Date      time.Time
	CityID    *string
	Mode      HolidayMode
	Message   string
	Overrides []SlotOverride
}

type DeliverySurcharge struct {
	ID        string
	Name      string
	Amount    int // INR, additive
	IsActive  bool
	StartDate time.Time // inclusive
	EndDate   time.Time // inclusive
	AppliesTo string
}

type VendorStatus string

const (
	VendorApproved  VendorStatus = "APPROVED"
	VendorPending   VendorStatus = "PENDING"
	VendorSuspended VendorStatus = "SUSPENDED"
)

type Vendor struct {
	ID            string
	CityID        string
	Name          string
	Status        VendorStatus
	VacationStart *time.Time
	VacationEnd   *time.Time
}

type VendorProduct struct {
	VendorID           string
	ProductID          string
	IsAvailable        bool
	PreparationMinutes int // order acceptance -> dispatch-ready
}

// WorkingHours is one vendor weekday row. A vendor with no rows at all is
// open every day; same-day cutoff checks, however, require an explicit row.
type WorkingHours struct {
	VendorID    string
	Weekday     time.Weekday // 0=Sunday .. 6=Saturday
	OpenMinute  int          // minutes since midnight
	CloseMinute int
	IsClosed    bool
}

// VendorCapacity is the per-(vendor, date, slot) booking counter. A missing
// row means uncapped so far, not full. MaxOrders nil falls back to the
// platform default of 10.
type VendorCapacity struct {
	VendorID     string
	SlotID       string
	Date         time.Time
	BookedOrders int
	MaxOrders    *int
}

type Product struct {
	ID           string
	Name         string
	Slug         string
	CategorySlug string
	BasePrice    int
	IsActive     bool
}
