package service

import "errors"

var (
	// ErrGuestLimit rejects a reservation whose headcount exceeds the
	// hotel's capacity.
	ErrGuestLimit = errors.New("guest count exceeds hotel capacity")

	// ErrDatesUnavailable rejects a reservation overlapping an active one.
	ErrDatesUnavailable = errors.New("dates unavailable for this hotel")

	// ErrDuplicateRefund rejects a second cancellation while a refund
	// request is still pending or completed.
	ErrDuplicateRefund = errors.New("refund request already exists for this reservation")

	// ErrNotCancellable rejects cancelling a reservation that is already
	// cancelled, refunded or completed.
	ErrNotCancellable = errors.New("reservation is not eligible for cancellation")

	// ErrStayCompleted rejects status changes on a stay whose check-out
	// date has passed.
	ErrStayCompleted = errors.New("stay already completed, status is frozen")

	// ErrInvalidDate rejects unparseable or inverted date ranges.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidTransition rejects a booking status change the lifecycle
	// does not allow.
	ErrInvalidTransition = errors.New("invalid booking status transition")
)
