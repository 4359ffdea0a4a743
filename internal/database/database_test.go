package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mihman/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testHotel() *models.Hotel {
	return &models.Hotel{
		ID:         uuid.New().String(),
		Name:       "Espinas Palace",
		City:       "Tehran",
		Price:      2000000,
		MaxGuests:  4,
		Category:   "luxury",
		Rating:     4.7,
		Images:     []string{"lobby.jpg", "pool.jpg"},
		Facilities: []string{"wifi", "parking"},
		Status:     models.HotelActive,
	}
}

func testReservation(hotelID string) *models.Reservation {
	return &models.Reservation{
		ID:             uuid.New().String(),
		GuestID:        "guest-1",
		HotelID:        hotelID,
		HotelName:      "Espinas Palace",
		Price:          2000000,
		TotalPrice:     6000000,
		Nights:         3,
		CheckIn:        "2026-10-10",
		CheckOut:       "2026-10-13",
		Adults:         2,
		Children:       1,
		BookingStatus:  models.BookingPending,
		CheckInStatus:  models.CheckStatusPending,
		CheckOutStatus: models.CheckStatusPending,
	}
}

func TestNewDB_DirectoryCreation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)
}

func TestNewDB_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Table creation must be idempotent.
	db, err = NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestHotelCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	hotel := testHotel()
	require.NoError(t, db.CreateHotel(ctx, hotel))

	t.Run("Get", func(t *testing.T) {
		got, err := db.GetHotel(ctx, hotel.ID)
		require.NoError(t, err)
		assert.Equal(t, hotel.Name, got.Name)
		assert.Equal(t, hotel.Price, got.Price)
		assert.Equal(t, []string{"lobby.jpg", "pool.jpg"}, got.Images)
		assert.Equal(t, []string{"wifi", "parking"}, got.Facilities)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := db.GetHotel(ctx, "no-such-hotel")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		hotel.Price = 2500000
		hotel.Status = models.HotelInactive
		require.NoError(t, db.UpdateHotel(ctx, hotel))

		got, err := db.GetHotel(ctx, hotel.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2500000), got.Price)
		assert.Equal(t, models.HotelInactive, got.Status)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		missing := testHotel()
		assert.ErrorIs(t, db.UpdateHotel(ctx, missing), ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, db.DeleteHotel(ctx, hotel.ID))
		_, err := db.GetHotel(ctx, hotel.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, db.DeleteHotel(ctx, hotel.ID), ErrNotFound)
	})
}

func TestListHotels_Filters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tehran := testHotel()
	tehran.Name = "Espinas Palace"
	tehran.City = "Tehran"
	tehran.Price = 2000000
	require.NoError(t, db.CreateHotel(ctx, tehran))

	shiraz := testHotel()
	shiraz.ID = uuid.New().String()
	shiraz.Name = "Zandiyeh"
	shiraz.City = "Shiraz"
	shiraz.Price = 1200000
	shiraz.Category = "traditional"
	shiraz.MaxGuests = 2
	require.NoError(t, db.CreateHotel(ctx, shiraz))

	t.Run("All", func(t *testing.T) {
		hotels, err := db.ListHotels(ctx, models.HotelFilter{})
		require.NoError(t, err)
		assert.Len(t, hotels, 2)
	})

	t.Run("ByCity", func(t *testing.T) {
		hotels, err := db.ListHotels(ctx, models.HotelFilter{City: "Shiraz"})
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "Zandiyeh", hotels[0].Name)
	})

	t.Run("ByPriceRange", func(t *testing.T) {
		hotels, err := db.ListHotels(ctx, models.HotelFilter{MinPrice: 1500000})
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "Espinas Palace", hotels[0].Name)

		hotels, err = db.ListHotels(ctx, models.HotelFilter{MaxPrice: 1500000})
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "Zandiyeh", hotels[0].Name)
	})

	t.Run("ByGuests", func(t *testing.T) {
		hotels, err := db.ListHotels(ctx, models.HotelFilter{MaxGuests: 3})
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "Espinas Palace", hotels[0].Name)
	})

	t.Run("Search", func(t *testing.T) {
		hotels, err := db.ListHotels(ctx, models.HotelFilter{Search: "zand"})
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "Zandiyeh", hotels[0].Name)
	})
}

func TestReservationCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	res := testReservation("hotel-1")
	require.NoError(t, db.CreateReservation(ctx, res))
	assert.False(t, res.CreatedAt.IsZero())

	t.Run("Get", func(t *testing.T) {
		got, err := db.GetReservation(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, res.GuestID, got.GuestID)
		assert.Equal(t, "2026-10-10", got.CheckIn)
		assert.Equal(t, models.BookingPending, got.BookingStatus)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := db.GetReservation(ctx, "no-such-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UpdateBookingStatus", func(t *testing.T) {
		require.NoError(t, db.UpdateBookingStatus(ctx, res.ID, models.BookingConfirmed))
		got, err := db.GetReservation(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, got.BookingStatus)
	})

	t.Run("UpdateBookingStatusMissing", func(t *testing.T) {
		err := db.UpdateBookingStatus(ctx, "no-such-id", models.BookingConfirmed)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ListByHotel", func(t *testing.T) {
		list, err := db.ListReservationsByHotel(ctx, "hotel-1")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("ListByGuest", func(t *testing.T) {
		list, err := db.ListReservationsByGuest(ctx, "guest-1")
		require.NoError(t, err)
		assert.Len(t, list, 1)

		list, err = db.ListReservationsByGuest(ctx, "guest-2")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("ListByDateRange", func(t *testing.T) {
		list, err := db.ListReservationsByDateRange(ctx, "2026-10-01", "2026-10-31")
		require.NoError(t, err)
		assert.Len(t, list, 1)

		list, err = db.ListReservationsByDateRange(ctx, "2026-11-01", "2026-11-30")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, db.DeleteReservation(ctx, res.ID))
		_, err := db.GetReservation(ctx, res.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, db.DeleteReservation(ctx, res.ID), ErrNotFound)
	})
}

func TestTransactionCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tx := &models.Transaction{
		ID:            uuid.New().String(),
		GuestID:       "guest-1",
		ReservationID: "res-1",
		Amount:        6000000,
		Type:          models.TransactionPayment,
		Status:        models.TxStatusPending,
		Description:   "Espinas Palace, 3 nights",
	}
	require.NoError(t, db.CreateTransaction(ctx, tx))

	t.Run("Get", func(t *testing.T) {
		got, err := db.GetTransaction(ctx, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(6000000), got.Amount)
		assert.Equal(t, "res-1", got.ReservationID)
		assert.Nil(t, got.ProcessedAt)
	})

	t.Run("NullableReservationID", func(t *testing.T) {
		orphan := &models.Transaction{
			ID:      uuid.New().String(),
			GuestID: "guest-1",
			Amount:  1000,
			Type:    models.TransactionPayment,
			Status:  models.TxStatusPending,
		}
		require.NoError(t, db.CreateTransaction(ctx, orphan))

		got, err := db.GetTransaction(ctx, orphan.ID)
		require.NoError(t, err)
		assert.Empty(t, got.ReservationID)
	})

	t.Run("Update", func(t *testing.T) {
		now := time.Now()
		err := db.UpdateTransaction(ctx, tx.ID, models.TransactionRefundProcessed, models.TxStatusCompleted, &now)
		require.NoError(t, err)

		got, err := db.GetTransaction(ctx, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionRefundProcessed, got.Type)
		assert.Equal(t, models.TxStatusCompleted, got.Status)
		require.NotNil(t, got.ProcessedAt)
		assert.WithinDuration(t, now, *got.ProcessedAt, time.Second)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		err := db.UpdateTransaction(ctx, "no-such-id", models.TransactionPayment, models.TxStatusFailed, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ListByReservation", func(t *testing.T) {
		list, err := db.ListTransactionsByReservation(ctx, "res-1")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("ListByGuest", func(t *testing.T) {
		list, err := db.ListTransactionsByGuest(ctx, "guest-1")
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("DeleteByReservation", func(t *testing.T) {
		require.NoError(t, db.DeleteTransactionsByReservation(ctx, "res-1"))
		list, err := db.ListTransactionsByReservation(ctx, "res-1")
		require.NoError(t, err)
		assert.Empty(t, list)

		// Second cascade over an empty set still succeeds.
		assert.NoError(t, db.DeleteTransactionsByReservation(ctx, "res-1"))
	})
}
