package server

import (
	"net/http"

	"itemshare-api/internal/service"
)

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var in service.CreateBookingInput
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	booking, err := s.bookings.Create(r.Context(), CallerID(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Metrics.BookingCreated()
	s.writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) decideBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	booking, err := s.bookings.Decide(r.Context(), CallerID(r.Context()), id, r.URL.Query().Get("approved"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Metrics.BookingDecided(booking.Status)
	s.writeJSON(w, http.StatusOK, booking)
}

func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	booking, err := s.bookings.GetByID(r.Context(), CallerID(r.Context()), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, booking)
}

func (s *Server) listBookingsByBooker(w http.ResponseWriter, r *http.Request) {
	from, size, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	bookings, err := s.bookings.ListByBooker(r.Context(), CallerID(r.Context()), stateParam(r), from, size)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) listBookingsByOwner(w http.ResponseWriter, r *http.Request) {
	from, size, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	bookings, err := s.bookings.ListByOwner(r.Context(), CallerID(r.Context()), stateParam(r), from, size)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bookings)
}
