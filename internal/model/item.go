package model

// Item is something a user offers for booking. Owner is immutable after
// creation; RequestID links the item to the request it was created in
// response to, if any.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"-"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// ItemDetails is the item view returned by single-item and owner
// listings. Comments is always present (empty, never null); LastBooking
// and NextBooking are attached only for the item's owner.
type ItemDetails struct {
	Item
	LastBooking *BookingRef `json:"lastBooking,omitempty"`
	NextBooking *BookingRef `json:"nextBooking,omitempty"`
	Comments    []*Comment  `json:"comments"`
}
