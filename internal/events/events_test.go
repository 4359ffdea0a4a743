package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishJSON(t *testing.T) {
	bus := NewEventBus()

	var got ReservationEventPayload
	calls := 0
	bus.Subscribe(EventReservationCreated, func(event *Event) error {
		calls++
		return json.Unmarshal(event.Payload, &got)
	})

	payload := ReservationEventPayload{
		ReservationID: "res-1",
		GuestID:       "guest-1",
		HotelName:     "Espinas Palace",
		TotalPrice:    6000000,
		Status:        "pending",
	}
	require.NoError(t, bus.PublishJSON(EventReservationCreated, payload))

	assert.Equal(t, 1, calls)
	assert.Equal(t, payload, got)
}

func TestEventBus_OnlyMatchingSubscribers(t *testing.T) {
	bus := NewEventBus()

	created, cancelled := 0, 0
	bus.Subscribe(EventReservationCreated, func(*Event) error { created++; return nil })
	bus.Subscribe(EventReservationCancelled, func(*Event) error { cancelled++; return nil })

	require.NoError(t, bus.PublishJSON(EventReservationCancelled, RefundEventPayload{ReservationID: "res-1"}))

	assert.Zero(t, created)
	assert.Equal(t, 1, cancelled)
}

func TestEventBus_NilBusIsNoop(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventReservationCreated, nil))
}
