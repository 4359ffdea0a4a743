package models

import "time"

// Transaction amounts are signed: payments positive, refunds negative.
// ReservationID is empty for transactions not tied to a reservation.
type Transaction struct {
	ID            string     `json:"id"`
	GuestID       string     `json:"guest_id"`
	ReservationID string     `json:"reservation_id,omitempty"`
	Amount        int64      `json:"amount"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Description   string     `json:"description,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

// ActiveRefundRequest reports whether this transaction is a refund request
// that still blocks another cancellation attempt.
func (t *Transaction) ActiveRefundRequest() bool {
	if t.Type != TransactionRefundRequest {
		return false
	}
	return t.Status == TxStatusPending || t.Status == TxStatusCompleted
}
