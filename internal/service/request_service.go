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

// RequestService handles item requests: wishes for items that do not
// exist yet, later answered by items created with a request reference.
type RequestService struct {
	users    repository.Users
	items    repository.Items
	requests repository.Requests
	clock    Clock
	logger   *zap.Logger
}

func NewRequestService(store *repository.Store, clock Clock, logger *zap.Logger) *RequestService {
	return &RequestService{
		users:    store.Users,
		items:    store.Items,
		requests: store.Requests,
		clock:    clock,
		logger:   logger,
	}
}

// CreateRequestInput is the request payload.
type CreateRequestInput struct {
	Description string `json:"description"`
}

func (s *RequestService) Create(ctx context.Context, requesterID int64, in CreateRequestInput) (*model.ItemRequest, error) {
	if _, err := s.getUser(ctx, requesterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.InvalidInputf("request description must not be blank")
	}

	request := &model.ItemRequest{
		Description: in.Description,
		RequesterID: requesterID,
		Created:     s.clock.Now(),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	request.Items = []*model.Item{}

	s.logger.Info("request created",
		zap.Int64("request_id", request.ID),
		zap.Int64("requester_id", requesterID),
	)
	return request, nil
}

// ListOwn returns the caller's requests, newest first, with answers.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]*model.ItemRequest, error) {
	if _, err := s.getUser(ctx, requesterID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// ListAll returns other users' requests, oldest first, paginated.
func (s *RequestService) ListAll(ctx context.Context, callerID int64, from, size int) ([]*model.ItemRequest, error) {
	if _, err := s.getUser(ctx, callerID); err != nil {
		return nil, err
	}
	limit, offset, err := pageBounds(from, size)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.ListOther(ctx, callerID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *RequestService) GetByID(ctx context.Context, callerID, requestID int64) (*model.ItemRequest, error) {
	if _, err := s.getUser(ctx, callerID); err != nil {
		return nil, err
	}
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if request == nil {
		return nil, apperr.NotFoundf("request %d", requestID)
	}
	if err := s.attachItems(ctx, []*model.ItemRequest{request}); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) attachItems(ctx context.Context, requests []*model.ItemRequest) error {
	for _, req := range requests {
		items, err := s.items.ListByRequest(ctx, req.ID)
		if err != nil {
			return err
		}
		req.Items = items
	}
	return nil
}

func (s *RequestService) getUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFoundf("user %d", id)
	}
	return user, nil
}
