package outbox

import (
	"encoding/json"
	"time"
)

// Topic names equal the event type, one topic per event.
const (
	EventCapacityReserved = "delivery.capacity.reserved.v1"
	EventCapacityReleased = "delivery.capacity.released.v1"
	EventCapacityRejected = "delivery.capacity.rejected.v1"
)

// Event is the envelope written to the outbox table inside the same
// transaction as the state change it announces.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

type CapacityPayload struct {
	OrderID      string `json:"order_id"`
	VendorID     string `json:"vendor_id"`
	SlotID       string `json:"slot_id"`
	Date         string `json:"date"`
	BookedOrders int    `json:"booked_orders,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

func NewCapacityEvent(eventType, orderID, vendorID, slotID string, date time.Time, booked int, reason string) (Event, error) {
	payload, err := json.Marshal(CapacityPayload{
		OrderID:      orderID,
		VendorID:     vendorID,
		SlotID:       slotID,
		Date:         date.Format("2006-01-02"),
		BookedOrders: booked,
		Reason:       reason,
	})
	if err != nil {
		return Event{}, err
	}
	return Event{
		AggregateType: "capacity",
		AggregateID:   orderID,
		EventType:     eventType,
		Payload:       payload,
	}, nil
}
