package models

import "time"

// Reservation keeps dates as Gregorian YYYY-MM-DD strings, the format the
// store persists. The three status fields are independent flat columns.
type Reservation struct {
	ID             string    `json:"id"`
	GuestID        string    `json:"guest_id"`
	HotelID        string    `json:"hotel_id"`
	HotelName      string    `json:"hotel_name"`
	Price          int64     `json:"price"`
	TotalPrice     int64     `json:"total_price"`
	Nights         int       `json:"nights"`
	CheckIn        string    `json:"check_in"`
	CheckOut       string    `json:"check_out"`
	Adults         int       `json:"adults"`
	Children       int       `json:"children"`
	Notes          string    `json:"notes,omitempty"`
	BookingStatus  string    `json:"booking_status"`
	CheckInStatus  string    `json:"check_in_status"`
	CheckOutStatus string    `json:"check_out_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Guests returns the total headcount.
func (r *Reservation) Guests() int {
	return r.Adults + r.Children
}

// Inactive reports whether the reservation no longer blocks its dates.
func (r *Reservation) Inactive() bool {
	switch r.BookingStatus {
	case BookingCancelled, BookingCancelledRefundPending, BookingRefundProcessed:
		return true
	}
	return false
}

// RefundEligible reports whether cancelling may still produce a refund.
func (r *Reservation) RefundEligible() bool {
	return r.BookingStatus == BookingPending || r.BookingStatus == BookingConfirmed
}
