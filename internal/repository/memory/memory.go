// Package memory is the in-memory repository implementation. It backs
// service and handler tests and keeps no state outside the Store value;
// all access is serialized by a single mutex, which also gives the
// conditional status update its atomicity.
package memory

import (
	"sync"

	"itemshare-api/internal/model"
	"itemshare-api/internal/repository"
)

type core struct {
	mu sync.Mutex

	users    map[int64]*model.User
	items    map[int64]*model.Item
	bookings map[int64]*model.Booking
	comments map[int64]*model.Comment
	requests map[int64]*model.ItemRequest

	seq int64
}

func (c *core) nextID() int64 {
	c.seq++
	return c.seq
}

// NewStore returns a Store backed by process memory.
func NewStore() *repository.Store {
	c := &core{
		users:    make(map[int64]*model.User),
		items:    make(map[int64]*model.Item),
		bookings: make(map[int64]*model.Booking),
		comments: make(map[int64]*model.Comment),
		requests: make(map[int64]*model.ItemRequest),
	}
	return &repository.Store{
		Users:    &userRepo{c},
		Items:    &itemRepo{c},
		Bookings: &bookingRepo{c},
		Comments: &commentRepo{c},
		Requests: &requestRepo{c},
	}
}
