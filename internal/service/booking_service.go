package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"itemshare-api/internal/apperr"
	"itemshare-api/internal/model"
	"itemshare-api/internal/repository"

	"go.uber.org/zap"
)

// BookingService owns the booking lifecycle: creation into WAITING, a
// single owner decision to APPROVED or REJECTED, visibility rules, and
// the state-filtered ledger queries.
type BookingService struct {
	users    repository.Users
	items    repository.Items
	bookings repository.Bookings
	clock    Clock
	logger   *zap.Logger
}

func NewBookingService(store *repository.Store, clock Clock, logger *zap.Logger) *BookingService {
	return &BookingService{
		users:    store.Users,
		items:    store.Items,
		bookings: store.Bookings,
		clock:    clock,
		logger:   logger,
	}
}

// CreateBookingInput is the payload for Create. Start and End must both
// be present; zero values are rejected.
type CreateBookingInput struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Create places a booking in WAITING after validating the window, the
// item's availability, and that the booker is not the owner. A
// self-booking attempt is reported as "not found" so the caller cannot
// probe their own denial.
func (s *BookingService) Create(ctx context.Context, bookerID int64, in CreateBookingInput) (*model.Booking, error) {
	booker, err := s.getUser(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.getItem(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if in.Start.IsZero() || in.End.IsZero() || !in.Start.Before(in.End) || in.Start.Before(now) {
		return nil, apperr.InvalidInputf("invalid booking window [%s, %s)",
			in.Start.Format(time.RFC3339), in.End.Format(time.RFC3339))
	}
	if !item.Available {
		return nil, apperr.BusinessRulef("item %d is not available", item.ID)
	}
	if item.OwnerID == bookerID {
		return nil, apperr.NotFoundf("booking for item %d", item.ID)
	}

	booking := &model.Booking{
		Start:    in.Start,
		End:      in.End,
		ItemID:   item.ID,
		BookerID: bookerID,
		Status:   model.StatusWaiting,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	booking.Item = item
	booking.Booker = booker

	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("item_id", item.ID),
		zap.Int64("booker_id", bookerID),
		zap.Time("start", booking.Start),
		zap.Time("end", booking.End),
	)
	return booking, nil
}

// Decide applies the owner's approval or rejection. The decision token
// must parse as a boolean; a booking is decided at most once, enforced
// by a conditional status update in the store.
func (s *BookingService) Decide(ctx context.Context, callerID, bookingID int64, decision string) (*model.Booking, error) {
	if _, err := s.getUser(ctx, callerID); err != nil {
		return nil, err
	}
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.getItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != callerID {
		// Non-owners never learn the booking exists.
		return nil, apperr.NotFoundf("booking %d", bookingID)
	}
	if booking.Status != model.StatusWaiting {
		return nil, apperr.BusinessRulef("booking %d already decided", bookingID)
	}

	approved, err := strconv.ParseBool(decision)
	if err != nil {
		return nil, apperr.InvalidInputf("invalid approved value %q", decision)
	}
	to := model.StatusRejected
	if approved {
		to = model.StatusApproved
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, model.StatusWaiting, to); err != nil {
		if errors.Is(err, repository.ErrConcurrentModification) {
			return nil, apperr.BusinessRulef("booking %d already decided", bookingID)
		}
		return nil, err
	}
	booking.Status = to
	if err := s.attachDetails(ctx, []*model.Booking{booking}); err != nil {
		return nil, err
	}

	s.logger.Info("booking decided",
		zap.Int64("booking_id", bookingID),
		zap.Int64("owner_id", callerID),
		zap.String("status", string(to)),
	)
	return booking, nil
}

// GetByID returns the booking only to its booker or the item's owner;
// everyone else gets "not found".
func (s *BookingService) GetByID(ctx context.Context, callerID, bookingID int64) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.getItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if callerID != booking.BookerID && callerID != item.OwnerID {
		return nil, apperr.NotFoundf("booking %d", bookingID)
	}
	if err := s.attachDetails(ctx, []*model.Booking{booking}); err != nil {
		return nil, err
	}
	return booking, nil
}

// ListByBooker returns the caller's own bookings filtered by state.
func (s *BookingService) ListByBooker(ctx context.Context, callerID int64, state string, from, size int) ([]*model.Booking, error) {
	return s.list(ctx, callerID, state, from, size, s.bookings.ListByBooker)
}

// ListByOwner returns bookings of items the caller owns, filtered by
// state.
func (s *BookingService) ListByOwner(ctx context.Context, callerID int64, state string, from, size int) ([]*model.Booking, error) {
	return s.list(ctx, callerID, state, from, size, s.bookings.ListByOwner)
}

type listFunc func(ctx context.Context, subjectID int64, f repository.BookingFilter) ([]*model.Booking, error)

func (s *BookingService) list(ctx context.Context, callerID int64, state string, from, size int, fetch listFunc) ([]*model.Booking, error) {
	if _, err := s.getUser(ctx, callerID); err != nil {
		return nil, err
	}
	st, ok := model.ParseState(state)
	if !ok {
		return nil, apperr.InvalidInputf("unknown state: %s", state)
	}
	limit, offset, err := pageBounds(from, size)
	if err != nil {
		return nil, err
	}

	bookings, err := fetch(ctx, callerID, repository.BookingFilter{
		State:  st,
		Now:    s.clock.Now(),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	if err := s.attachDetails(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// attachDetails joins the current item and booker summaries onto the
// bookings. Summaries are never persisted with the booking, so display
// data always reflects present entity state.
func (s *BookingService) attachDetails(ctx context.Context, bookings []*model.Booking) error {
	items := map[int64]*model.Item{}
	users := map[int64]*model.User{}

	for _, b := range bookings {
		item, ok := items[b.ItemID]
		if !ok {
			var err error
			item, err = s.items.GetByID(ctx, b.ItemID)
			if err != nil {
				return err
			}
			items[b.ItemID] = item
		}
		booker, ok := users[b.BookerID]
		if !ok {
			var err error
			booker, err = s.users.GetByID(ctx, b.BookerID)
			if err != nil {
				return err
			}
			users[b.BookerID] = booker
		}
		b.Item = item
		b.Booker = booker
	}
	return nil
}

func (s *BookingService) getUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFoundf("user %d", id)
	}
	return user, nil
}

func (s *BookingService) getItem(ctx context.Context, id int64) (*model.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return nil, apperr.NotFoundf("item %d", id)
	}
	return item, nil
}

func (s *BookingService) getBooking(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, apperr.NotFoundf("booking %d", id)
	}
	return booking, nil
}
