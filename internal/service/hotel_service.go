package service

import (
	"context"
	"errors"
	"fmt"

	"mihman/internal/database"
	"mihman/internal/domain"
	"mihman/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrHotelInvalid rejects catalog writes missing required fields.
var ErrHotelInvalid = errors.New("invalid hotel")

// HotelService is the admin catalog surface.
type HotelService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewHotelService(store domain.Store, logger *zerolog.Logger) *HotelService {
	return &HotelService{store: store, logger: logger}
}

func validateHotel(hotel *models.Hotel) error {
	if hotel.Name == "" {
		return fmt.Errorf("%w: name is required", ErrHotelInvalid)
	}
	if hotel.City == "" {
		return fmt.Errorf("%w: city is required", ErrHotelInvalid)
	}
	if hotel.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrHotelInvalid)
	}
	if hotel.MaxGuests <= 0 {
		return fmt.Errorf("%w: max guests must be positive", ErrHotelInvalid)
	}
	return nil
}

func (s *HotelService) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	if err := validateHotel(hotel); err != nil {
		return err
	}
	if hotel.ID == "" {
		hotel.ID = uuid.New().String()
	}
	if hotel.Status == "" {
		hotel.Status = models.HotelActive
	}
	if err := s.store.CreateHotel(ctx, hotel); err != nil {
		return err
	}
	s.logger.Info().Str("hotel_id", hotel.ID).Str("name", hotel.Name).Msg("hotel created")
	return nil
}

func (s *HotelService) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	return s.store.GetHotel(ctx, id)
}

func (s *HotelService) ListHotels(ctx context.Context, filter models.HotelFilter) ([]*models.Hotel, error) {
	return s.store.ListHotels(ctx, filter)
}

func (s *HotelService) UpdateHotel(ctx context.Context, hotel *models.Hotel) error {
	if err := validateHotel(hotel); err != nil {
		return err
	}
	return s.store.UpdateHotel(ctx, hotel)
}

func (s *HotelService) DeleteHotel(ctx context.Context, id string) error {
	return s.store.DeleteHotel(ctx, id)
}

// SeedHotels loads the configured catalog on startup, skipping hotels that
// already exist.
func (s *HotelService) SeedHotels(ctx context.Context, hotels []models.Hotel) error {
	for i := range hotels {
		hotel := hotels[i]
		_, err := s.store.GetHotel(ctx, hotel.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, database.ErrNotFound) {
			return err
		}
		if err := s.CreateHotel(ctx, &hotel); err != nil {
			return fmt.Errorf("failed to seed hotel %s: %w", hotel.ID, err)
		}
	}
	return nil
}
