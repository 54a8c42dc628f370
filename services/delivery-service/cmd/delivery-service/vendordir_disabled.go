//go:build !protogen

package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/giftwala/giftwala/services/delivery-service/internal/vendordir"
)

func setupVendorDirectoryRoutes(_ context.Context, _ *http.ServeMux, _ *slog.Logger, _ vendordir.Provider) {
}
