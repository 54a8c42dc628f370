package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/giftwala/giftwala/services/delivery-service/internal/availability"
	"github.com/giftwala/giftwala/services/delivery-service/internal/model"
)

func TestRupees(t *testing.T) {
	if got := rupees(149); got != "₹149" {
		t.Fatalf("rupees(149) = %q", got)
	}
	if got := rupees(0); got != "₹0" {
		t.Fatalf("rupees(0) = %q", got)
	}
}

func TestGroupSlots(t *testing.T) {
	res := availability.Result{
		Date:      "2026-09-02",
		Surcharge: 50,
		Slots: []availability.SlotQuote{
			{ID: "s1", Slug: "standard", Group: model.GroupStandard, Available: true, Price: 99},
			{ID: "s2", Slug: "fixed", Group: model.GroupFixed, Available: true, Price: 149,
				Windows: []availability.Window{{Slug: "09-11", StartHour: 9, EndHour: 11}}},
			{ID: "s3", Slug: "express", Group: model.GroupExpress, Reason: availability.ReasonNoVendors},
		},
	}
	out := groupSlots(res)
	if out.Standard == nil || out.Standard.Slug != "standard" || !out.Standard.IsAvailable {
		t.Fatalf("standard = %+v", out.Standard)
	}
	if len(out.FixedWindows) != 1 || out.FixedWindows[0].Slug != "09-11" {
		t.Fatalf("fixedWindows = %+v", out.FixedWindows)
	}
	if out.Express == nil || out.Express.IsAvailable || out.Express.Reason != availability.ReasonNoVendors {
		t.Fatalf("express = %+v", out.Express)
	}
	if out.Midnight != nil || out.EarlyMorning != nil {
		t.Fatal("absent groups must stay nil")
	}
	if out.Surcharge != 50 {
		t.Fatalf("surcharge = %d", out.Surcharge)
	}
}

func TestToSlotItemPriceLabel(t *testing.T) {
	item := toSlotItem(availability.SlotQuote{ID: "s1", Price: 249, Group: model.GroupMidnight})
	if item.PriceLabel != "₹249" {
		t.Fatalf("priceLabel = %q", item.PriceLabel)
	}
	if item.SlotGroup != "midnight" {
		t.Fatalf("slotGroup = %q", item.SlotGroup)
	}
}

func TestMethodChecks(t *testing.T) {
	h := NewDeliveryHandler(nil, nil, nil, nil, nil, nil)
	cases := []struct {
		name    string
		method  string
		handler http.HandlerFunc
	}{
		{"availability", http.MethodPost, h.Availability},
		{"slots", http.MethodDelete, h.Slots},
		{"same-day", http.MethodPost, h.SameDayProducts},
		{"reserve", http.MethodGet, h.Reserve},
		{"release", http.MethodGet, h.Release},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.handler(rec, httptest.NewRequest(tc.method, "/", nil))
			if rec.Code != http.StatusMethodNotAllowed {
				t.Fatalf("status = %d", rec.Code)
			}
			var env envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if env.Success {
				t.Fatal("expected success=false")
			}
		})
	}
}

func TestAvailabilityRequiresParams(t *testing.T) {
	h := NewDeliveryHandler(nil, nil, nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	h.Availability(rec, httptest.NewRequest(http.MethodGet, "/api/v1/delivery/availability?cityId=c1", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
