package model

import "time"

// BookingStatus is the persisted lifecycle status of a booking.
// WAITING is the initial status; APPROVED and REJECTED are terminal.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// State is a query-time classification of bookings relative to "now".
// It is never persisted; WAITING and REJECTED filter on status, the
// rest filter on the booking window.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps a state token to a State. The second return value is
// false for unrecognized tokens.
func ParseState(s string) (State, bool) {
	switch State(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(s), true
	}
	return "", false
}

// Booking reserves an item for the [Start, End) window. Item and Booker
// are display summaries joined at read time, never stored on the row.
type Booking struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	ItemID   int64         `json:"itemId"`
	BookerID int64         `json:"bookerId"`
	Status   BookingStatus `json:"status"`

	Item   *Item `json:"item,omitempty"`
	Booker *User `json:"booker,omitempty"`
}

// BookingRef is the short booking form attached to item views.
type BookingRef struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// Ref returns the short form of b, or nil for a nil booking.
func (b *Booking) Ref() *BookingRef {
	if b == nil {
		return nil
	}
	return &BookingRef{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}
