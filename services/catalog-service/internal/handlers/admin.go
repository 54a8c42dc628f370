package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/giftwala/giftwala/services/catalog-service/internal/outbox"
	"github.com/giftwala/giftwala/services/catalog-service/internal/storage"
)

var holidayModes = map[string]bool{
	"FULL_BLOCK":    true,
	"STANDARD_ONLY": true,
	"CUSTOM":        true,
}

var slotGroups = map[string]bool{
	"standard":      true,
	"fixed":         true,
	"early-morning": true,
	"express":       true,
	"midnight":      true,
}

var vendorStatuses = map[string]bool{
	"PENDING":   true,
	"APPROVED":  true,
	"SUSPENDED": true,
}

// AdminHandler is the operations surface behind the gateway's admin role
// check: cities, slots, holidays, surcharges, vendor onboarding.
type AdminHandler struct {
	catalog    *storage.CatalogRepository
	vendors    *storage.Repository
	outboxRepo *outbox.Repository
	logger     *slog.Logger
}

func NewAdminHandler(catalog *storage.CatalogRepository, vendors *storage.Repository, outboxRepo *outbox.Repository, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{catalog: catalog, vendors: vendors, outboxRepo: outboxRepo, logger: logger}
}

func (h *AdminHandler) Cities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cities, err := h.catalog.ListCities(r.Context())
		if err != nil {
			http.Error(w, "failed to list cities", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"cities": cities})
	case http.MethodPost:
		var req struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
		if req.Name == "" || req.Slug == "" {
			http.Error(w, "name and slug required", http.StatusBadRequest)
			return
		}
		id, err := h.catalog.CreateCity(r.Context(), req.Name, req.Slug)
		if err != nil {
			h.logger.Error("create city failed", "err", err)
			http.Error(w, "failed to create city", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AdminHandler) Slots(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		slots, err := h.catalog.ListSlots(r.Context())
		if err != nil {
			http.Error(w, "failed to list slots", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"slots": slots})
	case http.MethodPost:
		var req storage.DeliverySlot
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
		req.Name = strings.TrimSpace(req.Name)
		if req.Slug == "" || req.Name == "" || !slotGroups[req.SlotGroup] {
			http.Error(w, "slug, name and a valid slotGroup are required", http.StatusBadRequest)
			return
		}
		if req.BaseCharge < 0 {
			http.Error(w, "baseCharge must not be negative", http.StatusBadRequest)
			return
		}
		if !validClock(req.StartTime) || !validClock(req.EndTime) {
			http.Error(w, "startTime and endTime must be HH:MM", http.StatusBadRequest)
			return
		}
		id, err := h.catalog.CreateSlot(r.Context(), req)
		if err != nil {
			h.logger.Error("create slot failed", "err", err)
			http.Error(w, "failed to create slot", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AdminHandler) CitySlotConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		CityID         string `json:"cityId"`
		SlotID         string `json:"slotId"`
		Enabled        bool   `json:"enabled"`
		ChargeOverride *int   `json:"chargeOverride"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.CityID) == "" || strings.TrimSpace(req.SlotID) == "" {
		http.Error(w, "cityId and slotId required", http.StatusBadRequest)
		return
	}
	if req.ChargeOverride != nil && *req.ChargeOverride < 0 {
		http.Error(w, "chargeOverride must not be negative", http.StatusBadRequest)
		return
	}
	if err := h.catalog.UpsertCitySlotConfig(r.Context(), req.CityID, req.SlotID, req.Enabled, req.ChargeOverride); err != nil {
		h.logger.Error("upsert city slot config failed", "err", err)
		http.Error(w, "failed to update city slot config", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) Holidays(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		from, to, err := holidayRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		holidays, err := h.catalog.ListHolidays(r.Context(), from, to)
		if err != nil {
			http.Error(w, "failed to list holidays", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"holidays": holidays})
	case http.MethodPost:
		var req storage.Holiday
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		if !holidayModes[req.Mode] {
			http.Error(w, "mode must be FULL_BLOCK, STANDARD_ONLY or CUSTOM", http.StatusBadRequest)
			return
		}
		if req.Mode == "CUSTOM" && len(req.Overrides) == 0 {
			http.Error(w, "CUSTOM mode requires overrides", http.StatusBadRequest)
			return
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
		if err != nil {
			http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		tx, err := h.catalog.Begin(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		defer func() { _ = tx.Rollback(r.Context()) }()

		id, err := h.catalog.CreateHoliday(r.Context(), tx, req, date)
		if err != nil {
			h.logger.Error("create holiday failed", "err", err)
			http.Error(w, "failed to create holiday", http.StatusInternalServerError)
			return
		}
		evt, err := outbox.NewEvent(outbox.EventHolidayChanged, "holiday", id, map[string]any{
			"holiday_id": id,
			"date":       req.Date,
			"mode":       req.Mode,
			"city_id":    req.CityID,
			"action":     "created",
		})
		if err == nil {
			err = h.outboxRepo.Insert(r.Context(), tx, evt)
		}
		if err != nil {
			h.logger.Error("outbox insert failed", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(r.Context()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AdminHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ID) == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}

	tx, err := h.catalog.Begin(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(r.Context()) }()

	if err := h.catalog.DeleteHoliday(r.Context(), tx, req.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "holiday not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete holiday", http.StatusInternalServerError)
		return
	}
	evt, err := outbox.NewEvent(outbox.EventHolidayChanged, "holiday", req.ID, map[string]string{
		"holiday_id": req.ID,
		"action":     "deleted",
	})
	if err == nil {
		err = h.outboxRepo.Insert(r.Context(), tx, evt)
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) Surcharges(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		surcharges, err := h.catalog.ListSurcharges(r.Context())
		if err != nil {
			http.Error(w, "failed to list surcharges", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"surcharges": surcharges})
	case http.MethodPost:
		var req storage.Surcharge
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || req.Amount <= 0 {
			http.Error(w, "name and a positive amount are required", http.StatusBadRequest)
			return
		}
		start, err := time.Parse("2006-01-02", strings.TrimSpace(req.StartDate))
		if err != nil {
			http.Error(w, "invalid startDate, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, err := time.Parse("2006-01-02", strings.TrimSpace(req.EndDate))
		if err != nil {
			http.Error(w, "invalid endDate, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if end.Before(start) {
			http.Error(w, "endDate must not be before startDate", http.StatusBadRequest)
			return
		}
		id, err := h.catalog.CreateSurcharge(r.Context(), req, start, end)
		if err != nil {
			h.logger.Error("create surcharge failed", "err", err)
			http.Error(w, "failed to create surcharge", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AdminHandler) DeactivateSurcharge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ID) == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}
	if err := h.catalog.DeactivateSurcharge(r.Context(), req.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "surcharge not found", http.StatusNotFound)
			return
		}
		h.logger.Error("deactivate surcharge failed", "err", err)
		http.Error(w, "failed to deactivate surcharge", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		CityID string `json:"cityId"`
		Name   string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if strings.TrimSpace(req.CityID) == "" || req.Name == "" {
		http.Error(w, "cityId and name required", http.StatusBadRequest)
		return
	}

	tx, err := h.vendors.Begin(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(r.Context()) }()

	id, err := h.vendors.CreateVendor(r.Context(), tx, req.CityID, req.Name)
	if err != nil {
		h.logger.Error("create vendor failed", "err", err)
		http.Error(w, "failed to create vendor", http.StatusInternalServerError)
		return
	}
	evt, err := outbox.NewEvent(outbox.EventVendorUpdated, "vendor", id, map[string]string{
		"vendor_id": id,
		"changed":   "created",
	})
	if err == nil {
		err = h.outboxRepo.Insert(r.Context(), tx, evt)
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}

func (h *AdminHandler) SetVendorStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		VendorID string `json:"vendorId"`
		Status   string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.VendorID) == "" || !vendorStatuses[req.Status] {
		http.Error(w, "vendorId and a valid status are required", http.StatusBadRequest)
		return
	}

	tx, err := h.vendors.Begin(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(r.Context()) }()

	if err := h.vendors.SetVendorStatus(r.Context(), tx, req.VendorID, req.Status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "vendor not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update vendor status", http.StatusInternalServerError)
		return
	}
	evt, err := outbox.NewEvent(outbox.EventVendorUpdated, "vendor", req.VendorID, map[string]string{
		"vendor_id": req.VendorID,
		"changed":   "status",
		"status":    req.Status,
	})
	if err == nil {
		err = h.outboxRepo.Insert(r.Context(), tx, evt)
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) Products(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		id := strings.TrimSpace(r.URL.Query().Get("id"))
		if id == "" {
			http.Error(w, "id required", http.StatusBadRequest)
			return
		}
		p, err := h.catalog.GetProduct(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			http.Error(w, "failed to load product", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"product": p})
		return
	case http.MethodPost:
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req storage.Product
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	if req.Name == "" || req.Slug == "" || req.BasePrice < 0 {
		http.Error(w, "name, slug and a non-negative basePrice are required", http.StatusBadRequest)
		return
	}
	id, err := h.catalog.CreateProduct(r.Context(), req)
	if err != nil {
		h.logger.Error("create product failed", "err", err)
		http.Error(w, "failed to create product", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// holidayRange defaults to the coming 90 days.
func holidayRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from, to := now.AddDate(0, 0, -1), now.AddDate(0, 0, 90)
	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid from, want YYYY-MM-DD")
		}
		from = t
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid to, want YYYY-MM-DD")
		}
		to = t
	}
	return from, to, nil
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", strings.TrimSpace(s))
	return err == nil
}
