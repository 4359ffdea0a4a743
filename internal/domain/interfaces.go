package domain

import (
	"context"
	"time"

	"mihman/internal/models"
)

// Store is the data-access surface the booking logic depends on. Every call
// is a single remote round-trip from the caller's point of view; multi-step
// consistency is the caller's problem.
type Store interface {
	CreateHotel(ctx context.Context, hotel *models.Hotel) error
	GetHotel(ctx context.Context, id string) (*models.Hotel, error)
	ListHotels(ctx context.Context, filter models.HotelFilter) ([]*models.Hotel, error)
	UpdateHotel(ctx context.Context, hotel *models.Hotel) error
	DeleteHotel(ctx context.Context, id string) error

	CreateReservation(ctx context.Context, r *models.Reservation) error
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	ListReservationsByHotel(ctx context.Context, hotelID string) ([]*models.Reservation, error)
	ListReservationsByGuest(ctx context.Context, guestID string) ([]*models.Reservation, error)
	ListReservationsByDateRange(ctx context.Context, from, to string) ([]*models.Reservation, error)
	UpdateBookingStatus(ctx context.Context, id, status string) error
	DeleteReservation(ctx context.Context, id string) error

	CreateTransaction(ctx context.Context, t *models.Transaction) error
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)
	ListTransactionsByGuest(ctx context.Context, guestID string) ([]*models.Transaction, error)
	ListTransactionsByReservation(ctx context.Context, reservationID string) ([]*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id, txType, status string, processedAt *time.Time) error
	DeleteTransaction(ctx context.Context, id string) error
	DeleteTransactionsByReservation(ctx context.Context, reservationID string) error
}

// ReservationCache holds per-guest reservation list snapshots.
// Get returns (nil, nil) on a miss.
type ReservationCache interface {
	Get(ctx context.Context, guestID string) ([]*models.Reservation, error)
	Set(ctx context.Context, guestID string, reservations []*models.Reservation) error
	Invalidate(ctx context.Context, guestID string) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
