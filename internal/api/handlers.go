package api

import (
	"net/http"
	"strconv"
	"strings"

	"mihman/internal/calendar"
	"mihman/internal/export"
	"mihman/internal/models"
	"mihman/internal/service"
)

func (s *HTTPServer) handleReservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req service.CreateReservationRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		reservation, err := s.bookings.CreateReservation(r.Context(), req)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, reservation)

	case http.MethodGet:
		hotelID := strings.TrimSpace(r.URL.Query().Get("hotel_id"))
		if hotelID == "" {
			writeError(w, http.StatusBadRequest, "hotel_id is required")
			return
		}
		reservations, err := s.bookings.ListHotelReservations(r.Context(), hotelID)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleReservationByID(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path, "/api/v1/reservations/")
	if len(parts) == 0 {
		writeError(w, http.StatusBadRequest, "reservation id is required")
		return
	}
	id := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			reservation, err := s.bookings.GetReservation(r.Context(), id)
			if err != nil {
				s.writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, reservation)
		case http.MethodDelete:
			if err := s.bookings.DeleteReservation(r.Context(), id); err != nil {
				s.writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	switch parts[1] {
	case "cancel":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		reservation, refund, err := s.bookings.CancelReservation(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"reservation": reservation,
			"refund":      refund,
		})

	case "status":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req struct {
			Status    string `json:"status"`
			ChangedBy string `json:"changed_by"`
		}
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Status == "" {
			writeError(w, http.StatusBadRequest, "status is required")
			return
		}
		if req.ChangedBy == "" {
			req.ChangedBy = "admin"
		}
		reservation, err := s.bookings.UpdateBookingStatus(r.Context(), id, req.Status, req.ChangedBy)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reservation)

	case "refund-quote":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		quote, err := s.bookings.QuoteRefundForReservation(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, quote)

	case "transactions":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		transactions, err := s.transactions.ListReservationTransactions(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})

	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleGuest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	parts := pathParts(r.URL.Path, "/api/v1/guests/")
	if len(parts) != 2 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	guestID := parts[0]

	switch parts[1] {
	case "reservations":
		reservations, err := s.bookings.ListGuestReservations(r.Context(), guestID)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})

	case "transactions":
		transactions, err := s.transactions.ListGuestTransactions(r.Context(), guestID)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})

	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	transactions, err := s.transactions.ListTransactions(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
}

func (s *HTTPServer) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path, "/api/v1/transactions/")
	if len(parts) == 0 {
		writeError(w, http.StatusBadRequest, "transaction id is required")
		return
	}
	id := parts[0]

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		tx, err := s.transactions.GetTransaction(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tx)
		return
	}

	if parts[1] == "approve-refund" {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := s.bookings.ApproveRefund(r.Context(), id); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "refund_processed"})
		return
	}

	writeError(w, http.StatusNotFound, "not found")
}

func (s *HTTPServer) handleHotels(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := models.HotelFilter{
			City:     strings.TrimSpace(r.URL.Query().Get("city")),
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
			Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		}
		if raw := r.URL.Query().Get("min_price"); raw != "" {
			if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
				filter.MinPrice = v
			}
		}
		if raw := r.URL.Query().Get("max_price"); raw != "" {
			if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
				filter.MaxPrice = v
			}
		}
		if raw := r.URL.Query().Get("guests"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				filter.MaxGuests = v
			}
		}
		hotels, err := s.hotels.ListHotels(r.Context(), filter)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"hotels": hotels})

	case http.MethodPost:
		var hotel models.Hotel
		if err := decodeBody(r, &hotel); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := s.hotels.CreateHotel(r.Context(), &hotel); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, hotel)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleHotelByID(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path, "/api/v1/hotels/")
	if len(parts) == 0 {
		writeError(w, http.StatusBadRequest, "hotel id is required")
		return
	}
	id := parts[0]

	if len(parts) == 2 && parts[1] == "availability" {
		s.handleAvailability(w, r, id)
		return
	}
	if len(parts) != 1 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		hotel, err := s.hotels.GetHotel(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, hotel)

	case http.MethodPut:
		var hotel models.Hotel
		if err := decodeBody(r, &hotel); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		hotel.ID = id
		if err := s.hotels.UpdateHotel(r.Context(), &hotel); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, hotel)

	case http.MethodDelete:
		if err := s.hotels.DeleteHotel(r.Context(), id); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleAvailability is the conflict probe: does this hotel have an active
// reservation overlapping the given range?
func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request, hotelID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	checkInRaw := strings.TrimSpace(r.URL.Query().Get("check_in"))
	checkOutRaw := strings.TrimSpace(r.URL.Query().Get("check_out"))
	if checkInRaw == "" || checkOutRaw == "" {
		writeError(w, http.StatusBadRequest, "check_in and check_out are required")
		return
	}

	checkIn, err := calendar.ParseDate(checkInRaw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid check_in date")
		return
	}
	checkOut, err := calendar.ParseDate(checkOutRaw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid check_out date")
		return
	}

	conflict, err := s.bookings.FindConflict(r.Context(), hotelID, checkIn, checkOut)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := map[string]any{"available": conflict == nil}
	if conflict != nil {
		resp["conflicting_reservation"] = conflict.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleExportReservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	from, to := export.DefaultRange(timeNow())
	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		parsed, err := calendar.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date")
			return
		}
		from = parsed
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
		parsed, err := calendar.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date")
			return
		}
		to = parsed
	}

	path, err := s.exporter.ExportReservations(r.Context(), from, to)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file": path})
}

func (s *HTTPServer) handleExportTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	path, err := s.exporter.ExportTransactions(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file": path})
}
