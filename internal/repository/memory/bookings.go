package memory

import (
	"context"
	"sort"
	"time"

	"itemshare-api/internal/model"
	"itemshare-api/internal/repository"
)

type bookingRepo struct {
	c *core
}

func (r *bookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	booking.ID = r.c.nextID()
	cp := *booking
	cp.Item, cp.Booker = nil, nil
	r.c.bookings[booking.ID] = &cp
	return nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	b, ok := r.c.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	b, ok := r.c.bookings[id]
	if !ok || b.Status != from {
		return repository.ErrConcurrentModification
	}
	b.Status = to
	return nil
}

// matches applies the ledger's state predicates. CURRENT is strict on
// both bounds.
func matches(b *model.Booking, state model.State, now time.Time) bool {
	switch state {
	case model.StatePast:
		return b.End.Before(now)
	case model.StateFuture:
		return b.Start.After(now)
	case model.StateCurrent:
		return b.Start.Before(now) && b.End.After(now)
	case model.StateWaiting:
		return b.Status == model.StatusWaiting
	case model.StateRejected:
		return b.Status == model.StatusRejected
	default:
		return true
	}
}

func paginate(bookings []*model.Booking, limit, offset int) []*model.Booking {
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Start.After(bookings[j].Start) })
	if offset >= len(bookings) {
		return []*model.Booking{}
	}
	bookings = bookings[offset:]
	if limit > 0 && limit < len(bookings) {
		bookings = bookings[:limit]
	}
	return bookings
}

func (r *bookingRepo) ListByBooker(ctx context.Context, bookerID int64, f repository.BookingFilter) ([]*model.Booking, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	bookings := []*model.Booking{}
	for _, b := range r.c.bookings {
		if b.BookerID == bookerID && matches(b, f.State, f.Now) {
			cp := *b
			bookings = append(bookings, &cp)
		}
	}
	return paginate(bookings, f.Limit, f.Offset), nil
}

func (r *bookingRepo) ListByOwner(ctx context.Context, ownerID int64, f repository.BookingFilter) ([]*model.Booking, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	bookings := []*model.Booking{}
	for _, b := range r.c.bookings {
		it, ok := r.c.items[b.ItemID]
		if !ok || it.OwnerID != ownerID {
			continue
		}
		if matches(b, f.State, f.Now) {
			cp := *b
			bookings = append(bookings, &cp)
		}
	}
	return paginate(bookings, f.Limit, f.Offset), nil
}

func (r *bookingRepo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	var last *model.Booking
	for _, b := range r.c.bookings {
		if b.ItemID != itemID || b.Status != model.StatusApproved || b.Start.After(now) {
			continue
		}
		if last == nil || b.Start.After(last.Start) {
			last = b
		}
	}
	if last == nil {
		return nil, nil
	}
	cp := *last
	return &cp, nil
}

func (r *bookingRepo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	var next *model.Booking
	for _, b := range r.c.bookings {
		if b.ItemID != itemID || b.Status != model.StatusApproved || !b.Start.After(now) {
			continue
		}
		if next == nil || b.Start.Before(next.Start) {
			next = b
		}
	}
	if next == nil {
		return nil, nil
	}
	cp := *next
	return &cp, nil
}

func (r *bookingRepo) HasCompletedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	for _, b := range r.c.bookings {
		if b.ItemID == itemID && b.BookerID == bookerID &&
			b.Status == model.StatusApproved && !b.End.After(now) {
			return true, nil
		}
	}
	return false, nil
}
