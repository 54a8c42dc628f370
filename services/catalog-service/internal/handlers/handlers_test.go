package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidClock(t *testing.T) {
	for _, ok := range []string{"00:00", "09:30", "23:59"} {
		if !validClock(ok) {
			t.Errorf("validClock(%q) = false", ok)
		}
	}
	for _, bad := range []string{"24:00", "9am", "", "12:60"} {
		if validClock(bad) {
			t.Errorf("validClock(%q) = true", bad)
		}
	}
}

func TestVendorEndpointsRequireHeader(t *testing.T) {
	h := NewVendorHandler(nil, nil, nil)
	cases := []struct {
		name    string
		method  string
		handler http.HandlerFunc
	}{
		{"profile", http.MethodGet, h.GetProfile},
		{"working-hours", http.MethodPut, h.UpdateWorkingHours},
		{"slot-preferences", http.MethodPut, h.UpdateSlotPreferences},
		{"capacity-limit", http.MethodPut, h.UpdateCapacityLimit},
		{"vacation", http.MethodPut, h.UpdateVacation},
		{"products", http.MethodPut, h.UpdateProduct},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.handler(rec, httptest.NewRequest(tc.method, "/", strings.NewReader("{}")))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestUpdateWorkingHoursValidation(t *testing.T) {
	h := NewVendorHandler(nil, nil, nil)
	cases := []struct {
		name string
		body string
	}{
		{"bad weekday", `{"week":[{"weekday":7,"openMinute":0,"closeMinute":60}]}`},
		{"duplicate weekday", `{"week":[{"weekday":1,"openMinute":0,"closeMinute":60},{"weekday":1,"openMinute":0,"closeMinute":60}]}`},
		{"open after close", `{"week":[{"weekday":1,"openMinute":600,"closeMinute":540}]}`},
		{"not json", `nope`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tc.body))
			req.Header.Set("X-Vendor-Id", "v1")
			rec := httptest.NewRecorder()
			h.UpdateWorkingHours(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestAdminValidation(t *testing.T) {
	h := NewAdminHandler(nil, nil, nil, nil)

	t.Run("holiday mode", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"date":"2026-10-02","mode":"PARTIAL"}`))
		rec := httptest.NewRecorder()
		h.Holidays(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("custom without overrides", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"date":"2026-10-02","mode":"CUSTOM"}`))
		rec := httptest.NewRecorder()
		h.Holidays(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("surcharge dates inverted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/",
			strings.NewReader(`{"name":"Raksha Bandhan","amount":50,"startDate":"2026-08-30","endDate":"2026-08-28"}`))
		rec := httptest.NewRecorder()
		h.Surcharges(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("vendor status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"vendorId":"v1","status":"RETIRED"}`))
		rec := httptest.NewRecorder()
		h.SetVendorStatus(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("deactivate surcharge without id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.DeactivateSurcharge(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("get product without id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h.Products(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("slot group", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/",
			strings.NewReader(`{"slug":"weird","name":"Weird","slotGroup":"overnight","startTime":"09:00","endTime":"21:00"}`))
		rec := httptest.NewRecorder()
		h.Slots(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}
