package service

import (
	"context"
	"fmt"
	"strings"

	"itemshare-api/internal/apperr"
	"itemshare-api/internal/model"
	"itemshare-api/internal/repository"

	"go.uber.org/zap"
)

// ItemService manages the shareable catalog: item CRUD, text search,
// and the rental-gated comments.
type ItemService struct {
	users    repository.Users
	items    repository.Items
	bookings repository.Bookings
	comments repository.Comments
	requests repository.Requests
	clock    Clock
	logger   *zap.Logger
}

func NewItemService(store *repository.Store, clock Clock, logger *zap.Logger) *ItemService {
	return &ItemService{
		users:    store.Users,
		items:    store.Items,
		bookings: store.Bookings,
		comments: store.Comments,
		requests: store.Requests,
		clock:    clock,
		logger:   logger,
	}
}

// CreateItemInput carries the item payload. Available is a pointer so
// an omitted flag is distinguishable from an explicit false.
type CreateItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemInput carries a partial update; nil fields are left as-is.
type UpdateItemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, in CreateItemInput) (*model.Item, error) {
	if _, err := s.getUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.InvalidInputf("item name must not be blank")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.InvalidInputf("item description must not be blank")
	}
	if in.Available == nil {
		return nil, apperr.InvalidInputf("item availability must be set")
	}
	if in.RequestID != nil {
		req, err := s.requests.GetByID(ctx, *in.RequestID)
		if err != nil {
			return nil, fmt.Errorf("get request: %w", err)
		}
		if req == nil {
			return nil, apperr.NotFoundf("request %d", *in.RequestID)
		}
	}

	item := &model.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		zap.Int64("item_id", item.ID),
		zap.Int64("owner_id", ownerID),
	)
	return item, nil
}

// Update applies a partial edit. Only the owner may edit; anyone else
// is told the item does not exist.
func (s *ItemService) Update(ctx context.Context, callerID, itemID int64, in UpdateItemInput) (*model.Item, error) {
	if _, err := s.getUser(ctx, callerID); err != nil {
		return nil, err
	}
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != callerID {
		return nil, apperr.NotFoundf("item %d", itemID)
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperr.InvalidInputf("item name must not be blank")
		}
		item.Name = *in.Name
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, apperr.InvalidInputf("item description must not be blank")
		}
		item.Description = *in.Description
	}
	if in.Available != nil {
		item.Available = *in.Available
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID returns the item with its comments. The last/next approved
// booking summaries are attached only when the caller owns the item.
func (s *ItemService) GetByID(ctx context.Context, callerID, itemID int64) (*model.ItemDetails, error) {
	if _, err := s.getUser(ctx, callerID); err != nil {
		return nil, err
	}
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, item, item.OwnerID == callerID)
}

// ListByOwner returns the caller's items with full details.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]*model.ItemDetails, error) {
	if _, err := s.getUser(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	details := make([]*model.ItemDetails, 0, len(items))
	for _, item := range items {
		d, err := s.details(ctx, item, true)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// Search matches text against available items. Blank text yields an
// empty result rather than the whole catalog.
func (s *ItemService) Search(ctx context.Context, callerID int64, text string) ([]*model.Item, error) {
	if _, err := s.getUser(ctx, callerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []*model.Item{}, nil
	}
	return s.items.Search(ctx, text)
}

// Delete removes an item. Owner-only; non-owners get "not found".
func (s *ItemService) Delete(ctx context.Context, callerID, itemID int64) error {
	if _, err := s.getUser(ctx, callerID); err != nil {
		return err
	}
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != callerID {
		return apperr.NotFoundf("item %d", itemID)
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}
	s.logger.Info("item deleted",
		zap.Int64("item_id", itemID),
		zap.Int64("owner_id", callerID),
	)
	return nil
}

// AddComment records feedback on an item. Only a user who actually
// rented the item (an approved booking that already ended) may comment.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error) {
	author, err := s.getUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperr.InvalidInputf("comment text must not be blank")
	}
	if len(text) > model.MaxCommentLength {
		return nil, apperr.InvalidInputf("comment text exceeds %d characters", model.MaxCommentLength)
	}

	now := s.clock.Now()
	ok, err := s.bookings.HasCompletedApproved(ctx, item.ID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.BusinessRulef("user %d has no completed booking of item %d", authorID, item.ID)
	}

	comment := &model.Comment{
		Text:       text,
		ItemID:     item.ID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// details assembles the read model for a single item.
func (s *ItemService) details(ctx context.Context, item *model.Item, forOwner bool) (*model.ItemDetails, error) {
	d := &model.ItemDetails{Item: *item}

	if forOwner {
		now := s.clock.Now()
		last, err := s.bookings.LastForItem(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.NextForItem(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		d.LastBooking = last.Ref()
		d.NextBooking = next.Ref()
	}

	comments, err := s.comments.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	d.Comments = comments
	return d, nil
}

func (s *ItemService) getUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFoundf("user %d", id)
	}
	return user, nil
}

func (s *ItemService) getItem(ctx context.Context, id int64) (*model.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return nil, apperr.NotFoundf("item %d", id)
	}
	return item, nil
}
