package main

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/giftwala/giftwala/libs/config"
	"github.com/giftwala/giftwala/libs/db"
	"github.com/giftwala/giftwala/libs/httpx"
	"github.com/giftwala/giftwala/libs/kafkax"
	otelx "github.com/giftwala/giftwala/libs/otel"
	"github.com/giftwala/giftwala/libs/runtime"
	"github.com/giftwala/giftwala/services/catalog-service/internal/handlers"
	"github.com/giftwala/giftwala/services/catalog-service/internal/outbox"
	"github.com/giftwala/giftwala/services/catalog-service/internal/storage"
)

func main() {
	service := config.String("SERVICE_NAME", "catalog-service")
	port, err := config.Port("PORT", "8081")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	vendorRepo := storage.NewRepository(pool)
	catalogRepo := storage.NewCatalogRepository(pool)
	outboxRepo := outbox.NewRepository(pool)

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: config.Duration("OUTBOX_POLL_INTERVAL", 2*time.Second),
		BatchSize: config.Int("OUTBOX_BATCH_SIZE", 50),
	})
	go outboxPublisher.Run(ctx)

	if err := startGrpcServer(ctx, logger, vendorRepo); err != nil {
		logger.Error("grpc server failed to start", "err", err)
	}

	vendorHandler := handlers.NewVendorHandler(vendorRepo, outboxRepo, logger)
	adminHandler := handlers.NewAdminHandler(catalogRepo, vendorRepo, outboxRepo, logger)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/vendor/profile", vendorHandler.GetProfile)
	mux.HandleFunc("/api/v1/vendor/working-hours", vendorHandler.UpdateWorkingHours)
	mux.HandleFunc("/api/v1/vendor/slot-preferences", vendorHandler.UpdateSlotPreferences)
	mux.HandleFunc("/api/v1/vendor/capacity-limits", vendorHandler.UpdateCapacityLimit)
	mux.HandleFunc("/api/v1/vendor/vacation", vendorHandler.UpdateVacation)
	mux.HandleFunc("/api/v1/vendor/products", vendorHandler.UpdateProduct)

	mux.HandleFunc("/api/v1/admin/cities", adminHandler.Cities)
	mux.HandleFunc("/api/v1/admin/slots", adminHandler.Slots)
	mux.HandleFunc("/api/v1/admin/city-slot-configs", adminHandler.CitySlotConfig)
	mux.HandleFunc("/api/v1/admin/holidays", adminHandler.Holidays)
	mux.HandleFunc("/api/v1/admin/holidays/delete", adminHandler.DeleteHoliday)
	mux.HandleFunc("/api/v1/admin/surcharges", adminHandler.Surcharges)
	mux.HandleFunc("/api/v1/admin/surcharges/deactivate", adminHandler.DeactivateSurcharge)
	mux.HandleFunc("/api/v1/admin/vendors", adminHandler.CreateVendor)
	mux.HandleFunc("/api/v1/admin/vendors/status", adminHandler.SetVendorStatus)
	mux.HandleFunc("/api/v1/admin/products", adminHandler.Products)

	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "catalog")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
