package models

// Booking status lifecycle: pending -> confirmed -> completed, with
// cancellation branches pending|confirmed -> cancelled, and
// pending|confirmed -> cancelled_refund_pending -> refund_processed.
const (
	BookingPending                = "pending"
	BookingConfirmed              = "confirmed"
	BookingCancelled              = "cancelled"
	BookingCancelledRefundPending = "cancelled_refund_pending"
	BookingRefundProcessed        = "refund_processed"
	BookingCompleted              = "completed"
)

const (
	CheckStatusPending   = "pending"
	CheckStatusCompleted = "completed"
)

const (
	TransactionPayment         = "payment"
	TransactionRefundRequest   = "refund_request"
	TransactionRefundProcessed = "refund_processed"
)

const (
	TxStatusPending    = "pending"
	TxStatusCompleted  = "completed"
	TxStatusFailed     = "failed"
	TxStatusSuccessful = "successful"
	TxStatusCancelled  = "cancelled"
)

const (
	HotelActive   = "active"
	HotelInactive = "inactive"
)

// Refund tiers by whole days until check-in.
const (
	// RefundFullTierDays strictly more days than this: 90% back
	RefundFullTierDays = 7

	// RefundHalfTierDays strictly more days than this, up to the full tier: 50% back
	RefundHalfTierDays = 2

	RefundFullPercent = 90
	RefundHalfPercent = 50
)

const (
	// ReservationFetchRetries extra attempts when reading a guest's reservation list
	ReservationFetchRetries = 2

	// ReservationFetchDelaySeconds base delay between attempts, grows linearly
	ReservationFetchDelaySeconds = 1

	// ReservationCacheTTL lifetime of the cached guest reservation list
	ReservationCacheTTL = 5 * 60 // 5 minutes in seconds

	// DefaultExportRangeMonthsBefore/After default export window around today
	DefaultExportRangeMonthsBefore = 1
	DefaultExportRangeMonthsAfter  = 2
)
