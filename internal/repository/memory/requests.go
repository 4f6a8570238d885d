package memory

import (
	"context"
	"sort"

	"itemshare-api/internal/model"
)

type requestRepo struct {
	c *core
}

func (r *requestRepo) Create(ctx context.Context, request *model.ItemRequest) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	request.ID = r.c.nextID()
	cp := *request
	cp.Items = nil
	r.c.requests[request.ID] = &cp
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	req, ok := r.c.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *requestRepo) ListByRequester(ctx context.Context, requesterID int64) ([]*model.ItemRequest, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	requests := []*model.ItemRequest{}
	for _, req := range r.c.requests {
		if req.RequesterID == requesterID {
			cp := *req
			requests = append(requests, &cp)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].Created.Equal(requests[j].Created) {
			return requests[i].ID > requests[j].ID
		}
		return requests[i].Created.After(requests[j].Created)
	})
	return requests, nil
}

func (r *requestRepo) ListOther(ctx context.Context, excludeUserID int64, limit, offset int) ([]*model.ItemRequest, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	requests := []*model.ItemRequest{}
	for _, req := range r.c.requests {
		if req.RequesterID != excludeUserID {
			cp := *req
			requests = append(requests, &cp)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].Created.Equal(requests[j].Created) {
			return requests[i].ID < requests[j].ID
		}
		return requests[i].Created.Before(requests[j].Created)
	})
	if offset >= len(requests) {
		return []*model.ItemRequest{}, nil
	}
	requests = requests[offset:]
	if limit > 0 && limit < len(requests) {
		requests = requests[:limit]
	}
	return requests, nil
}
