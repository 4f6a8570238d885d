package model

import "time"

// ItemRequest is a wish for an item that does not exist yet. Items
// holds the items created in response; it is derived by joining items
// on their request id, not stored.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"-"`
	Created     time.Time `json:"created"`
	Items       []*Item   `json:"items"`
}
