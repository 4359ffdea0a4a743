package repository

import (
	"context"
	"sync"
	"time"

	"mihman/internal/models"
)

// MemoryReservationCache is the in-process fallback when Redis is down.
// Entries expire lazily on read.
type MemoryReservationCache struct {
	entries sync.Map
	ttl     time.Duration
}

type memoryEntry struct {
	reservations []*models.Reservation
	expiresAt    time.Time
}

func NewMemoryReservationCache(ttl time.Duration) *MemoryReservationCache {
	return &MemoryReservationCache{ttl: ttl}
}

func (r *MemoryReservationCache) Get(ctx context.Context, guestID string) ([]*models.Reservation, error) {
	val, ok := r.entries.Load(guestID)
	if !ok {
		return nil, nil
	}
	entry := val.(*memoryEntry)
	if time.Now().After(entry.expiresAt) {
		r.entries.Delete(guestID)
		return nil, nil
	}
	return entry.reservations, nil
}

func (r *MemoryReservationCache) Set(ctx context.Context, guestID string, reservations []*models.Reservation) error {
	r.entries.Store(guestID, &memoryEntry{
		reservations: reservations,
		expiresAt:    time.Now().Add(r.ttl),
	})
	return nil
}

func (r *MemoryReservationCache) Invalidate(ctx context.Context, guestID string) error {
	r.entries.Delete(guestID)
	return nil
}
