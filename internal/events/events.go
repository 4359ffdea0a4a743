package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventReservationCreated   = "reservation_created"
	EventReservationConfirmed = "reservation_confirmed"
	EventReservationCancelled = "reservation_cancelled"
	EventReservationDeleted   = "reservation_deleted"
	EventRefundRequested      = "refund_requested"
	EventRefundProcessed      = "refund_processed"
	EventStatusChanged        = "reservation_status_changed"
)

// ReservationEventPayload is the minimal reservation snapshot handed to
// event consumers.
type ReservationEventPayload struct {
	ReservationID string `json:"reservation_id"`
	GuestID       string `json:"guest_id"`
	HotelID       string `json:"hotel_id"`
	HotelName     string `json:"hotel_name"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	TotalPrice    int64  `json:"total_price"`
	Status        string `json:"status"`
	ChangedBy     string `json:"changed_by,omitempty"`
}

// RefundEventPayload carries the cancellation outcome.
type RefundEventPayload struct {
	ReservationID string `json:"reservation_id"`
	GuestID       string `json:"guest_id"`
	TransactionID string `json:"transaction_id,omitempty"`
	RefundAmount  int64  `json:"refund_amount"`
	DaysBefore    int    `json:"days_before"`
}

// Event is a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for an event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type. Handlers run
// synchronously; the caller decides the concurrency model.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event. A nil bus is
// a no-op so callers can leave events unwired.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
