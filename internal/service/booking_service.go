package service

import (
	"context"
	"fmt"
	"time"

	"mihman/internal/calendar"
	"mihman/internal/domain"
	"mihman/internal/events"
	"mihman/internal/metrics"
	"mihman/internal/models"
	"mihman/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BookingService owns the reservation lifecycle: creation with conflict
// checking, cancellation with refund tiering, status transitions and refund
// approval. Multi-step writes are compensated best-effort; the store offers
// no transactions across calls.
type BookingService struct {
	store      domain.Store
	cache      domain.ReservationCache
	eventBus   domain.EventPublisher
	fetchRetry worker.RetryPolicy
	logger     *zerolog.Logger
	now        func() time.Time
}

func NewBookingService(store domain.Store, cache domain.ReservationCache, eventBus domain.EventPublisher, fetchRetry worker.RetryPolicy, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		store:      store,
		cache:      cache,
		eventBus:   eventBus,
		fetchRetry: fetchRetry,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateReservationRequest is the guest's booking submission. Dates accept
// both Gregorian YYYY-MM-DD and Jalali YYYY/MM/DD input.
type CreateReservationRequest struct {
	GuestID  string `json:"guest_id"`
	HotelID  string `json:"hotel_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Notes    string `json:"notes,omitempty"`
}

// FindConflict scans the hotel's reservations for one that still blocks its
// dates and overlaps the candidate range. Ranges are half-open, so a
// check-in on another stay's check-out day is allowed. The list is fetched
// fresh on every call; a fetch error aborts rather than risk a false
// negative.
func (s *BookingService) FindConflict(ctx context.Context, hotelID string, checkIn, checkOut time.Time) (*models.Reservation, error) {
	existing, err := s.store.ListReservationsByHotel(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotel reservations: %w", err)
	}

	for _, r := range existing {
		if r.Inactive() {
			continue
		}
		start, err := calendar.ParseDate(r.CheckIn)
		if err != nil {
			s.logger.Warn().Str("reservation_id", r.ID).Str("check_in", r.CheckIn).Msg("skipping reservation with unparseable check-in")
			continue
		}
		end, err := calendar.ParseDate(r.CheckOut)
		if err != nil {
			s.logger.Warn().Str("reservation_id", r.ID).Str("check_out", r.CheckOut).Msg("skipping reservation with unparseable check-out")
			continue
		}
		if calendar.Overlaps(checkIn, checkOut, start, end) {
			return r, nil
		}
	}
	return nil, nil
}

// CreateReservation validates the request, checks for conflicts, and writes
// the reservation plus its payment transaction as a compensated sequence:
// if the payment write fails, the already-created reservation is deleted.
func (s *BookingService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*models.Reservation, error) {
	checkIn, err := calendar.ParseDate(req.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("%w: check-in %q", ErrInvalidDate, req.CheckIn)
	}
	checkOut, err := calendar.ParseDate(req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: check-out %q", ErrInvalidDate, req.CheckOut)
	}
	nights := calendar.Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, fmt.Errorf("%w: check-out must be after check-in", ErrInvalidDate)
	}

	hotel, err := s.store.GetHotel(ctx, req.HotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotel: %w", err)
	}
	if req.Adults+req.Children > hotel.MaxGuests {
		return nil, fmt.Errorf("%w: %d guests, capacity %d", ErrGuestLimit, req.Adults+req.Children, hotel.MaxGuests)
	}

	conflict, err := s.FindConflict(ctx, req.HotelID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		metrics.IncReservationConflict()
		return nil, fmt.Errorf("%w: overlaps reservation %s", ErrDatesUnavailable, conflict.ID)
	}

	reservation := &models.Reservation{
		ID:             uuid.New().String(),
		GuestID:        req.GuestID,
		HotelID:        hotel.ID,
		HotelName:      hotel.Name,
		Price:          hotel.Price,
		TotalPrice:     hotel.Price * int64(nights),
		Nights:         nights,
		CheckIn:        calendar.FormatDate(checkIn),
		CheckOut:       calendar.FormatDate(checkOut),
		Adults:         req.Adults,
		Children:       req.Children,
		Notes:          req.Notes,
		BookingStatus:  models.BookingPending,
		CheckInStatus:  models.CheckStatusPending,
		CheckOutStatus: models.CheckStatusPending,
	}

	sg := newSaga(s.logger)
	if err := s.store.CreateReservation(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	sg.onRollback("delete reservation", func(ctx context.Context) error {
		return s.store.DeleteReservation(ctx, reservation.ID)
	})

	payment := &models.Transaction{
		ID:            uuid.New().String(),
		GuestID:       req.GuestID,
		ReservationID: reservation.ID,
		Amount:        reservation.TotalPrice,
		Type:          models.TransactionPayment,
		Status:        models.TxStatusSuccessful,
		Description:   fmt.Sprintf("%s, %d nights", hotel.Name, nights),
	}
	if err := s.store.CreateTransaction(ctx, payment); err != nil {
		sg.rollback(ctx)
		return nil, fmt.Errorf("failed to create payment transaction: %w", err)
	}

	s.invalidateGuestCache(ctx, req.GuestID)
	s.publishReservation(events.EventReservationCreated, reservation, "guest")
	metrics.IncReservationCreated()

	s.logger.Info().
		Str("reservation_id", reservation.ID).
		Str("hotel_id", hotel.ID).
		Int64("total_price", reservation.TotalPrice).
		Msg("reservation created")
	return reservation, nil
}

// QuoteRefundForReservation previews the cancellation outcome without
// writing anything.
func (s *BookingService) QuoteRefundForReservation(ctx context.Context, reservationID string) (RefundQuote, error) {
	reservation, err := s.store.GetReservation(ctx, reservationID)
	if err != nil {
		return RefundQuote{}, fmt.Errorf("failed to fetch reservation: %w", err)
	}
	if !reservation.RefundEligible() {
		return RefundQuote{}, fmt.Errorf("%w: status %s", ErrNotCancellable, reservation.BookingStatus)
	}
	return QuoteRefund(reservation.TotalPrice, reservation.CheckIn, s.now()), nil
}

// CancelReservation runs the guest cancellation flow. A refundable stay
// moves to cancelled_refund_pending with one negative refund_request
// transaction written alongside; a non-refundable one is cancelled
// directly with no transaction. Duplicate attempts are rejected before any
// write.
func (s *BookingService) CancelReservation(ctx context.Context, reservationID string) (*models.Reservation, *models.Transaction, error) {
	reservation, err := s.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch reservation: %w", err)
	}
	if !reservation.RefundEligible() {
		return nil, nil, fmt.Errorf("%w: status %s", ErrNotCancellable, reservation.BookingStatus)
	}
	if err := s.checkNotFrozen(reservation, models.BookingCancelled); err != nil {
		return nil, nil, err
	}

	existing, err := s.store.ListTransactionsByReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch reservation transactions: %w", err)
	}
	for _, t := range existing {
		if t.ActiveRefundRequest() {
			return nil, nil, fmt.Errorf("%w: transaction %s", ErrDuplicateRefund, t.ID)
		}
	}

	quote := QuoteRefund(reservation.TotalPrice, reservation.CheckIn, s.now())

	var refund *models.Transaction
	newStatus := models.BookingCancelled
	sg := newSaga(s.logger)

	if quote.Amount > 0 {
		newStatus = models.BookingCancelledRefundPending
		refund = &models.Transaction{
			ID:            uuid.New().String(),
			GuestID:       reservation.GuestID,
			ReservationID: reservation.ID,
			Amount:        -quote.Amount,
			Type:          models.TransactionRefundRequest,
			Status:        models.TxStatusPending,
			Description:   quote.Message,
		}
		if err := s.store.CreateTransaction(ctx, refund); err != nil {
			return nil, nil, fmt.Errorf("failed to create refund request: %w", err)
		}
		sg.onRollback("delete refund request", func(ctx context.Context) error {
			return s.store.DeleteTransaction(ctx, refund.ID)
		})
	}

	if err := s.store.UpdateBookingStatus(ctx, reservationID, newStatus); err != nil {
		sg.rollback(ctx)
		return nil, nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	updated := s.refetch(ctx, reservationID, newStatus)
	s.invalidateGuestCache(ctx, reservation.GuestID)
	metrics.IncCancellation(quote.Tier)

	if refund != nil {
		_ = s.eventBus.PublishJSON(events.EventRefundRequested, events.RefundEventPayload{
			ReservationID: reservation.ID,
			GuestID:       reservation.GuestID,
			TransactionID: refund.ID,
			RefundAmount:  quote.Amount,
			DaysBefore:    quote.DaysBefore,
		})
	}
	s.publishReservation(events.EventReservationCancelled, updated, "guest")

	s.logger.Info().
		Str("reservation_id", reservationID).
		Str("status", newStatus).
		Int64("refund", quote.Amount).
		Int("days_before", quote.DaysBefore).
		Msg("reservation cancelled")
	return updated, refund, nil
}

// allowedTransitions is the booking lifecycle. completed, cancelled and
// refund_processed are terminal.
var allowedTransitions = map[string][]string{
	models.BookingPending: {
		models.BookingConfirmed,
		models.BookingCompleted,
		models.BookingCancelled,
		models.BookingCancelledRefundPending,
	},
	models.BookingConfirmed: {
		models.BookingCompleted,
		models.BookingCancelled,
		models.BookingCancelledRefundPending,
	},
	models.BookingCancelledRefundPending: {
		models.BookingRefundProcessed,
	},
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// checkNotFrozen rejects changes on a stay whose check-out has passed,
// except marking it completed. An unparseable check-out does not freeze.
func (s *BookingService) checkNotFrozen(r *models.Reservation, target string) error {
	if target == models.BookingCompleted {
		return nil
	}
	checkOut, err := calendar.ParseDate(r.CheckOut)
	if err != nil {
		return nil
	}
	if calendar.DaysBetween(checkOut, s.now()) > 0 {
		return fmt.Errorf("%w: checked out %s", ErrStayCompleted, r.CheckOut)
	}
	return nil
}

// UpdateBookingStatus applies an admin status change through the lifecycle
// guard, then re-reads the reservation to confirm the visible state.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, reservationID, newStatus, changedBy string) (*models.Reservation, error) {
	reservation, err := s.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservation: %w", err)
	}
	if !transitionAllowed(reservation.BookingStatus, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.BookingStatus, newStatus)
	}
	if err := s.checkNotFrozen(reservation, newStatus); err != nil {
		return nil, err
	}

	if err := s.store.UpdateBookingStatus(ctx, reservationID, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	updated := s.refetch(ctx, reservationID, newStatus)
	s.invalidateGuestCache(ctx, reservation.GuestID)

	eventType := events.EventStatusChanged
	if newStatus == models.BookingConfirmed {
		eventType = events.EventReservationConfirmed
	}
	s.publishReservation(eventType, updated, changedBy)

	s.logger.Info().
		Str("reservation_id", reservationID).
		Str("from", reservation.BookingStatus).
		Str("to", newStatus).
		Str("changed_by", changedBy).
		Msg("booking status updated")
	return updated, nil
}

// ApproveRefund finalizes a pending refund request as a paired update:
// first the transaction, then the reservation. If the second write fails
// the first is not rolled back; the mismatch surfaces on the next read.
func (s *BookingService) ApproveRefund(ctx context.Context, transactionID string) error {
	tx, err := s.store.GetTransaction(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to fetch transaction: %w", err)
	}
	if tx.Type != models.TransactionRefundRequest || tx.Status != models.TxStatusPending {
		return fmt.Errorf("%w: transaction %s is %s/%s", ErrInvalidTransition, tx.ID, tx.Type, tx.Status)
	}

	processedAt := s.now()
	if err := s.store.UpdateTransaction(ctx, tx.ID, models.TransactionRefundProcessed, models.TxStatusCompleted, &processedAt); err != nil {
		return fmt.Errorf("failed to update refund transaction: %w", err)
	}

	if tx.ReservationID != "" {
		if err := s.store.UpdateBookingStatus(ctx, tx.ReservationID, models.BookingRefundProcessed); err != nil {
			s.logger.Error().Err(err).
				Str("transaction_id", tx.ID).
				Str("reservation_id", tx.ReservationID).
				Msg("refund transaction updated but reservation status write failed")
			return fmt.Errorf("failed to update reservation after refund: %w", err)
		}
		s.refetch(ctx, tx.ReservationID, models.BookingRefundProcessed)
	}

	s.invalidateGuestCache(ctx, tx.GuestID)
	metrics.IncRefundProcessed()
	_ = s.eventBus.PublishJSON(events.EventRefundProcessed, events.RefundEventPayload{
		ReservationID: tx.ReservationID,
		GuestID:       tx.GuestID,
		TransactionID: tx.ID,
		RefundAmount:  -tx.Amount,
	})

	s.logger.Info().
		Str("transaction_id", tx.ID).
		Str("reservation_id", tx.ReservationID).
		Int64("amount", tx.Amount).
		Msg("refund approved")
	return nil
}

// GetReservation fetches one reservation.
func (s *BookingService) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	return s.store.GetReservation(ctx, id)
}

// ListGuestReservations returns a guest's reservations, serving from the
// snapshot cache when fresh. The store fetch is the one retrying call in
// the system: up to two extra attempts with linear backoff.
func (s *BookingService) ListGuestReservations(ctx context.Context, guestID string) ([]*models.Reservation, error) {
	if cached, err := s.cache.Get(ctx, guestID); err == nil && cached != nil {
		return cached, nil
	}

	var reservations []*models.Reservation
	err := s.fetchRetry.Do(ctx, func() error {
		var fetchErr error
		reservations, fetchErr = s.store.ListReservationsByGuest(ctx, guestID)
		return fetchErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guest reservations: %w", err)
	}

	if err := s.cache.Set(ctx, guestID, reservations); err != nil {
		s.logger.Warn().Err(err).Str("guest_id", guestID).Msg("failed to cache guest reservations")
	}
	return reservations, nil
}

// ListHotelReservations fetches a hotel's reservations, always fresh.
func (s *BookingService) ListHotelReservations(ctx context.Context, hotelID string) ([]*models.Reservation, error) {
	return s.store.ListReservationsByHotel(ctx, hotelID)
}

// DeleteReservation is the admin hard delete: transactions first, then the
// reservation with a delete-verification re-read in the store.
func (s *BookingService) DeleteReservation(ctx context.Context, reservationID string) error {
	reservation, err := s.store.GetReservation(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("failed to fetch reservation: %w", err)
	}

	if err := s.store.DeleteTransactionsByReservation(ctx, reservationID); err != nil {
		return err
	}
	if err := s.store.DeleteReservation(ctx, reservationID); err != nil {
		return err
	}

	s.invalidateGuestCache(ctx, reservation.GuestID)
	s.publishReservation(events.EventReservationDeleted, reservation, "admin")

	s.logger.Info().Str("reservation_id", reservationID).Msg("reservation deleted")
	return nil
}

// refetch confirms the visible state after a status write. The re-read is
// defensive, not authoritative: on error the locally patched record is
// returned instead.
func (s *BookingService) refetch(ctx context.Context, reservationID, wantStatus string) *models.Reservation {
	updated, err := s.store.GetReservation(ctx, reservationID)
	if err != nil {
		s.logger.Warn().Err(err).Str("reservation_id", reservationID).Msg("post-write re-read failed")
		return &models.Reservation{ID: reservationID, BookingStatus: wantStatus}
	}
	if updated.BookingStatus != wantStatus {
		s.logger.Warn().
			Str("reservation_id", reservationID).
			Str("want", wantStatus).
			Str("got", updated.BookingStatus).
			Msg("post-write state mismatch")
	}
	return updated
}

func (s *BookingService) invalidateGuestCache(ctx context.Context, guestID string) {
	if err := s.cache.Invalidate(ctx, guestID); err != nil {
		s.logger.Warn().Err(err).Str("guest_id", guestID).Msg("failed to invalidate guest cache")
	}
}

func (s *BookingService) publishReservation(eventType string, r *models.Reservation, changedBy string) {
	if r == nil {
		return
	}
	_ = s.eventBus.PublishJSON(eventType, events.ReservationEventPayload{
		ReservationID: r.ID,
		GuestID:       r.GuestID,
		HotelID:       r.HotelID,
		HotelName:     r.HotelName,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		TotalPrice:    r.TotalPrice,
		Status:        r.BookingStatus,
		ChangedBy:     changedBy,
	})
}
