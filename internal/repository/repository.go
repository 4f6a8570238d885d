// Package repository defines the persistence contracts consumed by the
// services. Two implementations exist: postgres (production) and memory
// (tests). Lookups return (nil, nil) when the entity does not exist;
// only the services translate that into a client-facing error.
package repository

import (
	"context"
	"errors"
	"time"

	"itemshare-api/internal/model"
)

// ErrConcurrentModification is returned by conditional updates when the
// guarded row was changed underneath the caller (e.g. a booking decided
// by a concurrent request).
var ErrConcurrentModification = errors.New("concurrent modification")

// BookingFilter selects bookings for the ledger list queries. Now is
// the classification instant supplied by the caller's clock; Limit and
// Offset are already resolved to row bounds.
type BookingFilter struct {
	State  model.State
	Now    time.Time
	Limit  int
	Offset int
}

type Users interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type Items interface {
	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	Delete(ctx context.Context, id int64) error
	// ListByOwner returns the owner's items ordered by id ascending.
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Item, error)
	// Search matches text against name and description of available
	// items, case-insensitively.
	Search(ctx context.Context, text string) ([]*model.Item, error)
	// ListByRequest returns items created in response to a request.
	ListByRequest(ctx context.Context, requestID int64) ([]*model.Item, error)
}

type Bookings interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	// UpdateStatus transitions a booking from one status to another.
	// It returns ErrConcurrentModification when the row is no longer in
	// the expected status, which serializes decisions per booking.
	UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) error
	// ListByBooker and ListByOwner return bookings ordered by start
	// descending, filtered per the ledger's state predicates.
	ListByBooker(ctx context.Context, bookerID int64, f BookingFilter) ([]*model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, f BookingFilter) ([]*model.Booking, error)
	// LastForItem returns the approved booking with the greatest start
	// at or before now; NextForItem the approved booking with the
	// smallest start strictly after now.
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	// HasCompletedApproved reports whether the booker holds an approved
	// booking of the item that ended at or before now.
	HasCompletedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type Comments interface {
	Create(ctx context.Context, comment *model.Comment) error
	// ListByItem returns comments with the author's current name joined
	// in, ordered by creation time ascending.
	ListByItem(ctx context.Context, itemID int64) ([]*model.Comment, error)
}

type Requests interface {
	Create(ctx context.Context, request *model.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	// ListByRequester returns the user's own requests, newest first.
	ListByRequester(ctx context.Context, requesterID int64) ([]*model.ItemRequest, error)
	// ListOther returns other users' requests, oldest first, paginated.
	ListOther(ctx context.Context, excludeUserID int64, limit, offset int) ([]*model.ItemRequest, error)
}

// Store bundles the per-entity repositories behind a single injection
// point for the services.
type Store struct {
	Users    Users
	Items    Items
	Bookings Bookings
	Comments Comments
	Requests Requests
}
