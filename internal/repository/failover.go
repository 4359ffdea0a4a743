package repository

import (
	"context"
	"sync/atomic"
	"time"

	"mihman/internal/domain"
	"mihman/internal/models"

	"github.com/rs/zerolog"
)

// FailoverReservationCache serves from the primary cache until it errors,
// then pins reads and writes to the fallback. The primary is retried once
// a minute.
type FailoverReservationCache struct {
	primary   domain.ReservationCache
	fallback  domain.ReservationCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverReservationCache(primary, fallback domain.ReservationCache, logger *zerolog.Logger) *FailoverReservationCache {
	return &FailoverReservationCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverReservationCache) markDown(err error) {
	r.logger.Error().Err(err).Msg("primary reservation cache failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck = time.Now()
}

func (r *FailoverReservationCache) Get(ctx context.Context, guestID string) ([]*models.Reservation, error) {
	if !r.isDown.Load() {
		reservations, err := r.primary.Get(ctx, guestID)
		if err == nil {
			return reservations, nil
		}
		r.markDown(err)
	}

	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		reservations, err := r.primary.Get(ctx, guestID)
		if err == nil {
			r.isDown.Store(false)
			return reservations, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.Get(ctx, guestID)
}

func (r *FailoverReservationCache) Set(ctx context.Context, guestID string, reservations []*models.Reservation) error {
	if !r.isDown.Load() {
		err := r.primary.Set(ctx, guestID, reservations)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.Set(ctx, guestID, reservations)
}

func (r *FailoverReservationCache) Invalidate(ctx context.Context, guestID string) error {
	if !r.isDown.Load() {
		err := r.primary.Invalidate(ctx, guestID)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.Invalidate(ctx, guestID)
}
