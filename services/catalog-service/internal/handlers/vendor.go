package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/giftwala/giftwala/services/catalog-service/internal/outbox"
	"github.com/giftwala/giftwala/services/catalog-service/internal/storage"
)

// VendorHandler is the vendor self-service surface. The gateway verifies the
// vendor JWT and forwards the vendor id in X-Vendor-Id.
type VendorHandler struct {
	repo       *storage.Repository
	outboxRepo *outbox.Repository
	logger     *slog.Logger
}

func NewVendorHandler(repo *storage.Repository, outboxRepo *outbox.Repository, logger *slog.Logger) *VendorHandler {
	return &VendorHandler{repo: repo, outboxRepo: outboxRepo, logger: logger}
}

func vendorIDFromHeader(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Vendor-Id"))
}

func (h *VendorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vendorID := vendorIDFromHeader(r)
	if vendorID == "" {
		http.Error(w, "missing X-Vendor-Id", http.StatusBadRequest)
		return
	}

	v, err := h.repo.GetVendor(r.Context(), vendorID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "vendor not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to load vendor", http.StatusInternalServerError)
		return
	}

	hours, err := h.repo.ListWorkingHours(r.Context(), vendorID)
	if err != nil {
		http.Error(w, "failed to load working hours", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"vendor_id":      v.ID,
		"city_id":        v.CityID,
		"name":           v.Name,
		"status":         v.Status,
		"vacation_start": v.VacationStart,
		"vacation_end":   v.VacationEnd,
		"working_hours":  hours,
	})
}

func (h *VendorHandler) UpdateWorkingHours(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vendorID := vendorIDFromHeader(r)
	if vendorID == "" {
		http.Error(w, "missing X-Vendor-Id", http.StatusBadRequest)
		return
	}

	var req struct {
		Week []storage.WeekdayHours `json:"week"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	seen := map[int]bool{}
	for _, d := range req.Week {
		if d.Weekday < 0 || d.Weekday > 6 || seen[d.Weekday] {
			http.Error(w, "weekday must be 0-6 and unique", http.StatusBadRequest)
			return
		}
		seen[d.Weekday] = true
		if d.IsClosed {
			continue
		}
		if d.OpenMinute < 0 || d.CloseMinute > 24*60 || d.OpenMinute >= d.CloseMinute {
			http.Error(w, "open_minute must be before close_minute", http.StatusBadRequest)
			return
		}
	}

	tx, err := h.repo.Begin(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(r.Context()) }()

	if err := h.repo.ReplaceWorkingHours(r.Context(), tx, vendorID, req.Week); err != nil {
		h.logger.Error("replace working hours failed", "err", err, "vendor_id", vendorID)
		http.Error(w, "failed to update working hours", http.StatusInternalServerError)
		return
	}
	if err := h.emitScheduleUpdated(r, tx, vendorID, "working_hours"); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VendorHandler) UpdateSlotPreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vendorID := vendorIDFromHeader(r)
	if vendorID == "" {
		http.Error(w, "missing X-Vendor-Id", http.StatusBadRequest)
		return
	}

	var req struct {
		Preferences []struct {
			SlotID  string `json:"slotId"`
			Enabled bool   `json:"enabled"`
		} `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if len(req.Preferences) == 0 {
		http.Error(w, "preferences required", http.StatusBadRequest)
		return
	}

	tx, err := h.repo.Begin(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(r.Context()) }()

	for _, p := range req.Preferences {
		if strings.TrimSpace(p.SlotID) == "" {
			http.Error(w, "slotId required", http.StatusBadRequest)
			return
		}
		if err := h.repo.SetSlotPreference(r.Context(), tx, vendorID, p.SlotID, p.Enabled); err != nil {
			h.logger.Error("set slot preference failed", "err", err, "vendor_id", vendorID)
			http.Error(w, "failed to update slot preferences", http.StatusInternalServerError)
			return
		}
	}
	if err := h.emitScheduleUpdated(r, tx, vendorID, "slot_preferences"); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VendorHandler) UpdateCapacityLimit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vendorID := vendorIDFromHeader(r)
	if vendorID == "" {
		http.Error(w, "missing X-Vendor-Id", http.StatusBadRequest)
		return
	}

	var req struct {
		SlotID    string `json:"slotId"`
		Date      string `json:"date"`
		MaxOrders int    `json:"maxOrders"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.SlotID) == "" {
		http.Error(w, "slotId required", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if req.MaxOrders < 0 || req.MaxOrders > 10000 {
		http.Error(w, "maxOrders out of range", http.StatusBadRequest)
		return
	}

	tx, err := h.repo.Begin(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(r.Context()) }()

	if err := h.repo.SetCapacityLimit(r.Context(), tx, vendorID, req.SlotID, date, req.MaxOrders); err != nil {
		h.logger.Error("set capacity limit failed", "err", err, "vendor_id", vendorID)
		http.Error(w, "failed to update capacity limit", http.StatusInternalServerError)
		return
	}
	if err := h.emitScheduleUpdated(r, tx, vendorID, "capacity_limit"); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VendorHandler) UpdateVacation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vendorID := vendorIDFromHeader(r)
	if vendorID == "" {
		http.Error(w, "missing X-Vendor-Id", http.StatusBadRequest)
		return
	}

	var req struct {
		Start *string `json:"start"`
		End   *string `json:"end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	parse := func(s *string) (*time.Time, error) {
		if s == nil || strings.TrimSpace(*s) == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", strings.TrimSpace(*s))
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	start, err := parse(req.Start)
	if err != nil {
		http.Error(w, "invalid start, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := parse(req.End)
	if err != nil {
		http.Error(w, "invalid end, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if start != nil && end != nil && end.Before(*start) {
		http.Error(w, "end must not be before start", http.StatusBadRequest)
		return
	}

	tx, err := h.repo.Begin(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(r.Context()) }()

	if err := h.repo.SetVacation(r.Context(), tx, vendorID, start, end); err != nil {
		h.logger.Error("set vacation failed", "err", err, "vendor_id", vendorID)
		http.Error(w, "failed to update vacation", http.StatusInternalServerError)
		return
	}
	if err := h.emitVendorUpdated(r, tx, vendorID, "vacation"); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VendorHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vendorID := vendorIDFromHeader(r)
	if vendorID == "" {
		http.Error(w, "missing X-Vendor-Id", http.StatusBadRequest)
		return
	}

	var req storage.VendorProduct
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		http.Error(w, "productId required", http.StatusBadRequest)
		return
	}
	if req.PreparationMinutes < 0 || req.PreparationMinutes > 7*24*60 {
		http.Error(w, "preparationMinutes out of range", http.StatusBadRequest)
		return
	}

	tx, err := h.repo.Begin(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(r.Context()) }()

	if err := h.repo.UpsertVendorProduct(r.Context(), tx, vendorID, req); err != nil {
		h.logger.Error("upsert vendor product failed", "err", err, "vendor_id", vendorID)
		http.Error(w, "failed to update product", http.StatusInternalServerError)
		return
	}
	if err := h.emitVendorUpdated(r, tx, vendorID, "products"); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VendorHandler) emitScheduleUpdated(r *http.Request, tx pgx.Tx, vendorID, field string) error {
	return h.emit(r, tx, outbox.EventScheduleUpdated, vendorID, field)
}

func (h *VendorHandler) emitVendorUpdated(r *http.Request, tx pgx.Tx, vendorID, field string) error {
	return h.emit(r, tx, outbox.EventVendorUpdated, vendorID, field)
}

func (h *VendorHandler) emit(r *http.Request, tx pgx.Tx, eventType, vendorID, field string) error {
	evt, err := outbox.NewEvent(eventType, "vendor", vendorID, map[string]string{
		"vendor_id": vendorID,
		"changed":   field,
	})
	if err == nil {
		err = h.outboxRepo.Insert(r.Context(), tx, evt)
	}
	if err != nil {
		h.logger.Error("outbox insert failed", "err", err, "vendor_id", vendorID)
	}
	return err
}
