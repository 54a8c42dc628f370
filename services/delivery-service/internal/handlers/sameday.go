package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/giftwala/giftwala/services/delivery-service/internal/availability"
	"github.com/giftwala/giftwala/services/delivery-service/internal/storage"
)

type sameDayProduct struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Category   string `json:"category,omitempty"`
	Price      int    `json:"price"`
	PriceLabel string `json:"priceLabel"`
}

type sameDayResponse struct {
	City     string           `json:"city"`
	Date     string           `json:"date"`
	Products []sameDayProduct `json:"products"`
}

// SameDayProducts handles GET /api/v1/products/same-day. A product qualifies
// when at least one vendor carrying it can still prepare an order before its
// closing time today.
func (h *DeliveryHandler) SameDayProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctx := r.Context()

	citySlug := strings.TrimSpace(r.URL.Query().Get("city"))
	if citySlug == "" {
		writeError(w, http.StatusBadRequest, "city is required")
		return
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	city, err := h.snapshots.CityBySlug(ctx, citySlug)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "city not found")
			return
		}
		h.logger.Error("city lookup failed", "err", err, "city_slug", citySlug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !city.IsActive {
		writeError(w, http.StatusNotFound, "city not found")
		return
	}

	now := h.clock.Now()
	y, m, d := now.In(availability.ISTLocation).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, availability.ISTLocation)
	wd := today.Weekday()

	snap, err := h.snapshots.Load(ctx, city.ID, nil, today)
	if err != nil {
		h.logger.Error("snapshot load failed", "err", err, "city_id", city.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	states := make(map[string]availability.VendorState, len(snap.Vendors))
	for _, v := range snap.Vendors {
		states[v.ID] = v
	}

	listings, err := h.snapshots.SameDayListings(ctx, city.ID, category)
	if err != nil {
		h.logger.Error("same-day listing load failed", "err", err, "city_id", city.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	seen := map[string]bool{}
	products := []sameDayProduct{}
	for _, l := range listings {
		if seen[l.Product.ID] {
			continue
		}
		v, ok := states[l.VendorID]
		if !ok || !v.ReachableToday(l.PreparationMinutes, wd, now) {
			continue
		}
		seen[l.Product.ID] = true
		products = append(products, sameDayProduct{
			ID:         l.Product.ID,
			Name:       l.Product.Name,
			Slug:       l.Product.Slug,
			Category:   l.Product.CategorySlug,
			Price:      l.Product.BasePrice,
			PriceLabel: rupees(l.Product.BasePrice),
		})
	}

	writeData(w, http.StatusOK, sameDayResponse{
		City:     city.Slug,
		Date:     now.Format(availability.DateLayout),
		Products: products,
	})
}
