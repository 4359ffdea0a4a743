package service

import (
	"fmt"
	"time"

	"mihman/internal/calendar"
	"mihman/internal/models"
)

// Refund tier labels, also used as metric labels.
const (
	TierFull = "full"
	TierHalf = "half"
	TierNone = "none"
)

// RefundQuote is the outcome of the cancellation policy for one reservation
// at one point in time.
type RefundQuote struct {
	Amount     int64  `json:"amount"`
	DaysBefore int    `json:"days_before"`
	Tier       string `json:"tier"`
	Message    string `json:"message"`
}

// QuoteRefund computes the refund for cancelling "now". Whole days until
// check-in decide the tier: more than 7 days gives 90% back, more than 2
// days gives 50%, anything closer gives nothing. Fractions are floored by
// integer division. An unparseable check-in date quotes zero instead of
// failing, so a broken row can still be cancelled without a refund.
func QuoteRefund(totalPrice int64, checkIn string, now time.Time) RefundQuote {
	in, err := calendar.ParseDate(checkIn)
	if err != nil {
		return RefundQuote{
			Amount:  0,
			Tier:    TierNone,
			Message: "invalid check-in date, no refund can be calculated",
		}
	}

	days := calendar.DaysBetween(now, in)
	switch {
	case days > models.RefundFullTierDays:
		return RefundQuote{
			Amount:     totalPrice * models.RefundFullPercent / 100,
			DaysBefore: days,
			Tier:       TierFull,
			Message: fmt.Sprintf("more than %d days before check-in, %d%% refund",
				models.RefundFullTierDays, models.RefundFullPercent),
		}
	case days > models.RefundHalfTierDays:
		return RefundQuote{
			Amount:     totalPrice * models.RefundHalfPercent / 100,
			DaysBefore: days,
			Tier:       TierHalf,
			Message: fmt.Sprintf("%d days or less before check-in, %d%% refund",
				models.RefundFullTierDays, models.RefundHalfPercent),
		}
	default:
		return RefundQuote{
			Amount:     0,
			DaysBefore: days,
			Tier:       TierNone,
			Message: fmt.Sprintf("%d days or less before check-in, no refund",
				models.RefundHalfTierDays),
		}
	}
}
