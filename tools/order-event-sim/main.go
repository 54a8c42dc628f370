package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/giftwala/giftwala/libs/kafkax"
)

// Publishes a fake order lifecycle event so the delivery capacity consumer
// can be exercised without running an order service.
func main() {
	var (
		brokers  = flag.String("brokers", getenv("KAFKA_BROKERS", "localhost:9092"), "kafka brokers, comma separated")
		evtType  = flag.String("type", getenv("ORDER_EVENT_TYPE", "orders.order.placed.v1"), "orders.order.placed.v1 or orders.order.cancelled.v1")
		orderID  = flag.String("order-id", getenv("ORDER_ID", ""), "order id (random when empty)")
		vendorID = flag.String("vendor-id", getenv("VENDOR_ID", ""), "vendor id")
		slotID   = flag.String("slot-id", getenv("SLOT_ID", ""), "delivery slot id")
		date     = flag.String("date", getenv("DELIVERY_DATE", ""), "delivery date YYYY-MM-DD")
	)
	flag.Parse()

	switch *evtType {
	case "orders.order.placed.v1":
		if strings.TrimSpace(*vendorID) == "" || strings.TrimSpace(*slotID) == "" || strings.TrimSpace(*date) == "" {
			fatal("VENDOR_ID, SLOT_ID and DELIVERY_DATE are required for placed events")
		}
		if _, err := time.Parse("2006-01-02", *date); err != nil {
			fatal("DELIVERY_DATE must be YYYY-MM-DD")
		}
	case "orders.order.cancelled.v1":
		if strings.TrimSpace(*orderID) == "" {
			fatal("ORDER_ID is required for cancelled events")
		}
	default:
		fatal("unsupported event type: " + *evtType)
	}

	id := strings.TrimSpace(*orderID)
	if id == "" {
		id = uuid.NewString()
	}

	payload, err := json.Marshal(map[string]string{
		"order_id":      id,
		"vendor_id":     *vendorID,
		"slot_id":       *slotID,
		"delivery_date": *date,
	})
	if err != nil {
		fatal(err.Error())
	}

	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  kafkax.SplitBrokers(*brokers),
		Balancer: &kafka.Hash{},
	})
	defer writer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	eventID := uuid.NewString()
	err = writer.WriteMessages(ctx, kafka.Message{
		Topic: *evtType,
		Key:   []byte(id),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(eventID)},
			{Key: "event_type", Value: []byte(*evtType)},
		},
	})
	if err != nil {
		fatal(err.Error())
	}

	fmt.Printf("published %s order_id=%s event_id=%s\n", *evtType, id, eventID)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(2)
}
