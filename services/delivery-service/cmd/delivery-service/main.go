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
	"github.com/giftwala/giftwala/services/delivery-service/internal/consumer"
	"github.com/giftwala/giftwala/services/delivery-service/internal/handlers"
	"github.com/giftwala/giftwala/services/delivery-service/internal/inbox"
	"github.com/giftwala/giftwala/services/delivery-service/internal/outbox"
	"github.com/giftwala/giftwala/services/delivery-service/internal/storage"
	"github.com/giftwala/giftwala/services/delivery-service/internal/vendordir"
)

func main() {
	service := config.String("SERVICE_NAME", "delivery-service")
	port, err := config.Port("PORT", "8082")
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

	snapshots := storage.NewSnapshotRepository(pool)
	capacity := storage.NewCapacityRepository(pool)
	outboxRepo := outbox.NewRepository(pool)

	vendorProvider, err := vendordir.NewProvider(config.String("CATALOG_GRPC_ADDR", ""))
	if err != nil {
		logger.Error("vendor directory init failed; reservations skip the directory check", "err", err)
		vendorProvider = nil
	}

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: config.Duration("OUTBOX_POLL_INTERVAL", 2*time.Second),
		BatchSize: config.Int("OUTBOX_BATCH_SIZE", 50),
	})
	go outboxPublisher.Run(ctx)

	inboxRepo := inbox.NewRepository(pool)
	orderHandlers := consumer.NewOrderHandlers(capacity, outboxRepo, logger)
	startConsumer := func(topic string, handler consumer.Handler) {
		brokers := config.String("KAFKA_BROKERS", "")
		if brokers == "" || topic == "" {
			return
		}
		c := consumer.New(logger, inboxRepo, consumer.Config{
			Brokers: brokers,
			GroupID: config.String("KAFKA_GROUP_ID", "delivery-service"),
			Topic:   topic,
		}, handler)
		go c.Run(ctx)
	}
	startConsumer(consumer.TopicOrderPlaced, orderHandlers.HandleOrderPlaced)
	startConsumer(consumer.TopicOrderCancelled, orderHandlers.HandleOrderCancelled)

	deliveryHandler := handlers.NewDeliveryHandler(snapshots, capacity, outboxRepo, vendorProvider, logger, nil)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	setupVendorDirectoryRoutes(ctx, mux, logger, vendorProvider)
	mux.HandleFunc("/api/v1/delivery/availability", deliveryHandler.Availability)
	mux.HandleFunc("/api/v1/delivery/slots", deliveryHandler.Slots)
	mux.HandleFunc("/api/v1/products/same-day", deliveryHandler.SameDayProducts)
	mux.HandleFunc("/api/v1/delivery/reservations", deliveryHandler.Reserve)
	mux.HandleFunc("/api/v1/delivery/reservations/release", deliveryHandler.Release)

	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "delivery")
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
