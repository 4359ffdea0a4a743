package service

import (
	"context"

	"mihman/internal/domain"
	"mihman/internal/models"
)

// TransactionService is the read-only payment ledger surface. Transaction
// writes happen only through the booking flows.
type TransactionService struct {
	store domain.Store
}

func NewTransactionService(store domain.Store) *TransactionService {
	return &TransactionService{store: store}
}

func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

func (s *TransactionService) ListGuestTransactions(ctx context.Context, guestID string) ([]*models.Transaction, error) {
	return s.store.ListTransactionsByGuest(ctx, guestID)
}

func (s *TransactionService) ListReservationTransactions(ctx context.Context, reservationID string) ([]*models.Transaction, error) {
	return s.store.ListTransactionsByReservation(ctx, reservationID)
}
