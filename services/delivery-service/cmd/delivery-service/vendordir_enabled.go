//go:build protogen

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/giftwala/giftwala/services/delivery-service/internal/vendordir"
)

func setupVendorDirectoryRoutes(_ context.Context, mux *http.ServeMux, _ *slog.Logger, provider vendordir.Provider) {
	if provider == nil {
		return
	}

	mux.HandleFunc("/debug/vendor-directory", func(w http.ResponseWriter, r *http.Request) {
		vendorID := r.URL.Query().Get("vendor_id")
		if vendorID == "" {
			http.Error(w, "vendor_id is required", http.StatusBadRequest)
			return
		}

		reqCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		profile, err := provider.GetVendorProfile(reqCtx, vendorID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(profile)
	})
}
