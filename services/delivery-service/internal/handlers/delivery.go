package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/giftwala/giftwala/services/delivery-service/internal/availability"
	"github.com/giftwala/giftwala/services/delivery-service/internal/model"
	"github.com/giftwala/giftwala/services/delivery-service/internal/outbox"
	"github.com/giftwala/giftwala/services/delivery-service/internal/storage"
	"github.com/giftwala/giftwala/services/delivery-service/internal/vendordir"
)

type DeliveryHandler struct {
	snapshots  *storage.SnapshotRepository
	capacity   *storage.CapacityRepository
	outboxRepo *outbox.Repository
	vendors    vendordir.Provider
	logger     *slog.Logger
	clock      availability.Clock
}

func NewDeliveryHandler(snapshots *storage.SnapshotRepository, capacity *storage.CapacityRepository, outboxRepo *outbox.Repository, vendors vendordir.Provider, logger *slog.Logger, clock availability.Clock) *DeliveryHandler {
	if clock == nil {
		clock = availability.SystemClock{}
	}
	return &DeliveryHandler{
		snapshots:  snapshots,
		capacity:   capacity,
		outboxRepo: outboxRepo,
		vendors:    vendors,
		logger:     logger,
		clock:      clock,
	}
}

type slotItem struct {
	ID          string                `json:"id"`
	Slug        string                `json:"slug"`
	Name        string                `json:"name"`
	SlotGroup   string                `json:"slotGroup"`
	StartTime   string                `json:"startTime"`
	EndTime     string                `json:"endTime"`
	IsAvailable bool                  `json:"isAvailable"`
	IsFull      bool                  `json:"isFull"`
	Price       int                   `json:"price"`
	PriceLabel  string                `json:"priceLabel"`
	Reason      string                `json:"reason,omitempty"`
	Windows     []availability.Window `json:"windows,omitempty"`
}

func toSlotItem(q availability.SlotQuote) slotItem {
	return slotItem{
		ID:          q.ID,
		Slug:        q.Slug,
		Name:        q.Name,
		SlotGroup:   string(q.Group),
		StartTime:   q.StartTime,
		EndTime:     q.EndTime,
		IsAvailable: q.Available,
		IsFull:      q.Full,
		Price:       q.Price,
		PriceLabel:  rupees(q.Price),
		Reason:      q.Reason,
		Windows:     q.Windows,
	}
}

type availabilityResponse struct {
	Date          string     `json:"date"`
	FullyBlocked  bool       `json:"fullyBlocked"`
	HolidayReason string     `json:"holidayReason,omitempty"`
	Surcharge     int        `json:"surcharge"`
	Slots         []slotItem `json:"slots"`
}

// Availability handles GET /api/v1/delivery/availability.
func (h *DeliveryHandler) Availability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	productID := strings.TrimSpace(r.URL.Query().Get("productId"))
	cityID := strings.TrimSpace(r.URL.Query().Get("cityId"))
	if productID == "" || cityID == "" {
		writeError(w, http.StatusBadRequest, "productId and cityId are required")
		return
	}

	_, res, ok := h.resolve(w, r, cityID, []string{productID})
	if !ok {
		return
	}

	items := make([]slotItem, 0, len(res.Slots))
	for _, q := range res.Slots {
		items = append(items, toSlotItem(q))
	}
	writeData(w, http.StatusOK, availabilityResponse{
		Date:          res.Date,
		FullyBlocked:  res.FullyBlocked,
		HolidayReason: res.HolidayReason,
		Surcharge:     res.Surcharge,
		Slots:         items,
	})
}

type slotsResponse struct {
	Date               string                `json:"date"`
	FullyBlocked       bool                  `json:"fullyBlocked"`
	HolidayReason      string                `json:"holidayReason,omitempty"`
	Surcharge          int                   `json:"surcharge"`
	Standard           *slotItem             `json:"standard"`
	FixedWindows       []availability.Window `json:"fixedWindows"`
	Midnight           *slotItem             `json:"midnight"`
	EarlyMorning       *slotItem             `json:"earlyMorning"`
	Express            *slotItem             `json:"express"`
	MaxPreparationTime int                   `json:"maxPreparationTime"`
}

// Slots handles GET /api/v1/delivery/slots. It is the grouped projection of
// the same resolution the availability endpoint performs: per-group slots
// plus the fixed-window breakdown for checkout rendering.
func (h *DeliveryHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cityID := strings.TrimSpace(r.URL.Query().Get("cityId"))
	if cityID == "" {
		writeError(w, http.StatusBadRequest, "cityId is required")
		return
	}
	var productIDs []string
	if raw := strings.TrimSpace(r.URL.Query().Get("productIds")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				productIDs = append(productIDs, id)
			}
		}
	}

	snap, res, ok := h.resolve(w, r, cityID, productIDs)
	if !ok {
		return
	}
	out := groupSlots(res)
	for _, v := range snap.Vendors {
		if v.PreparationMinutes > out.MaxPreparationTime {
			out.MaxPreparationTime = v.PreparationMinutes
		}
	}
	writeData(w, http.StatusOK, out)
}

// resolve runs the shared parse/load/resolve pipeline and writes the error
// response itself when it fails.
func (h *DeliveryHandler) resolve(w http.ResponseWriter, r *http.Request, cityID string, productIDs []string) (availability.Snapshot, availability.Result, bool) {
	ctx := r.Context()

	date, err := availability.ParseDate(strings.TrimSpace(r.URL.Query().Get("date")))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return availability.Snapshot{}, availability.Result{}, false
	}

	city, err := h.snapshots.CityByID(ctx, cityID)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "city not found")
			return availability.Snapshot{}, availability.Result{}, false
		}
		h.logger.Error("city lookup failed", "err", err, "city_id", cityID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return availability.Snapshot{}, availability.Result{}, false
	}
	if !city.IsActive {
		writeError(w, http.StatusNotFound, "city not found")
		return availability.Snapshot{}, availability.Result{}, false
	}

	snap, err := h.snapshots.Load(ctx, city.ID, productIDs, date)
	if err != nil {
		h.logger.Error("snapshot load failed", "err", err, "city_id", cityID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return availability.Snapshot{}, availability.Result{}, false
	}

	return snap, availability.Resolve(snap, availability.Request{Date: date, Now: h.clock.Now()}), true
}

func groupSlots(res availability.Result) slotsResponse {
	out := slotsResponse{
		Date:          res.Date,
		FullyBlocked:  res.FullyBlocked,
		HolidayReason: res.HolidayReason,
		Surcharge:     res.Surcharge,
		FixedWindows:  []availability.Window{},
	}
	for _, q := range res.Slots {
		item := toSlotItem(q)
		switch q.Group {
		case model.GroupStandard:
			if out.Standard == nil {
				out.Standard = &item
			}
		case model.GroupFixed:
			if item.Windows != nil {
				out.FixedWindows = item.Windows
			}
		case model.GroupMidnight:
			if out.Midnight == nil {
				out.Midnight = &item
			}
		case model.GroupEarlyMorning:
			if out.EarlyMorning == nil {
				out.EarlyMorning = &item
			}
		case model.GroupExpress:
			if out.Express == nil {
				out.Express = &item
			}
		}
	}
	return out
}
