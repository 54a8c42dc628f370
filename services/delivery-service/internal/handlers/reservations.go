package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/giftwala/giftwala/services/delivery-service/internal/availability"
	"github.com/giftwala/giftwala/services/delivery-service/internal/outbox"
	"github.com/giftwala/giftwala/services/delivery-service/internal/storage"
)

type reserveRequest struct {
	OrderID  string `json:"orderId"`
	VendorID string `json:"vendorId"`
	SlotID   string `json:"slotId"`
	Date     string `json:"date"`
}

type reserveResponse struct {
	OrderID      string `json:"orderId"`
	BookedOrders int    `json:"bookedOrders"`
}

// Reserve handles POST /api/v1/delivery/reservations. It is the synchronous
// path order-service calls during checkout; the Kafka consumer covers orders
// placed while this endpoint was unreachable.
func (h *DeliveryHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctx := r.Context()

	var req reserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.OrderID = strings.TrimSpace(req.OrderID)
	req.VendorID = strings.TrimSpace(req.VendorID)
	req.SlotID = strings.TrimSpace(req.SlotID)
	if req.OrderID == "" || req.VendorID == "" || req.SlotID == "" {
		writeError(w, http.StatusBadRequest, "orderId, vendorId and slotId are required")
		return
	}
	date, err := availability.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.vendors != nil {
		profile, err := h.vendors.GetVendorProfile(ctx, req.VendorID)
		if err != nil {
			h.logger.Warn("vendor directory lookup failed", "err", err, "vendor_id", req.VendorID)
		} else if profile.Status != "APPROVED" {
			writeError(w, http.StatusUnprocessableEntity, "vendor is not accepting orders")
			return
		}
	}

	tx, err := h.capacity.Begin(ctx)
	if err != nil {
		h.logger.Error("begin tx failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	booked, err := h.capacity.Reserve(ctx, tx, storage.Reservation{
		OrderID:  req.OrderID,
		VendorID: req.VendorID,
		SlotID:   req.SlotID,
		Date:     date,
	})
	if errors.Is(err, storage.ErrSlotFull) {
		writeError(w, http.StatusConflict, "slot is fully booked for this date")
		return
	}
	if err != nil {
		h.logger.Error("reserve failed", "err", err, "order_id", req.OrderID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	evt, err := outbox.NewCapacityEvent(outbox.EventCapacityReserved, req.OrderID, req.VendorID, req.SlotID, date, booked, "")
	if err == nil {
		err = h.outboxRepo.Insert(ctx, tx, evt)
	}
	if err != nil {
		h.logger.Error("outbox insert failed", "err", err, "order_id", req.OrderID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := tx.Commit(ctx); err != nil {
		h.logger.Error("commit failed", "err", err, "order_id", req.OrderID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusCreated, reserveResponse{OrderID: req.OrderID, BookedOrders: booked})
}

type releaseRequest struct {
	OrderID string `json:"orderId"`
}

type releaseResponse struct {
	OrderID  string `json:"orderId"`
	Released bool   `json:"released"`
}

// Release handles POST /api/v1/delivery/reservations/release.
func (h *DeliveryHandler) Release(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctx := r.Context()

	var req releaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.OrderID = strings.TrimSpace(req.OrderID)
	if req.OrderID == "" {
		writeError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	tx, err := h.capacity.Begin(ctx)
	if err != nil {
		h.logger.Error("begin tx failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := h.capacity.Release(ctx, tx, req.OrderID)
	if err != nil {
		h.logger.Error("release failed", "err", err, "order_id", req.OrderID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if res != nil {
		evt, err := outbox.NewCapacityEvent(outbox.EventCapacityReleased, res.OrderID, res.VendorID, res.SlotID, res.Date, 0, "")
		if err == nil {
			err = h.outboxRepo.Insert(ctx, tx, evt)
		}
		if err != nil {
			h.logger.Error("outbox insert failed", "err", err, "order_id", req.OrderID)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}
	if err := tx.Commit(ctx); err != nil {
		h.logger.Error("commit failed", "err", err, "order_id", req.OrderID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, releaseResponse{OrderID: req.OrderID, Released: res != nil})
}
