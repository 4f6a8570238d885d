package memory

import (
	"context"
	"sort"
	"strings"

	"itemshare-api/internal/apperr"
	"itemshare-api/internal/model"
)

type itemRepo struct {
	c *core
}

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	item.ID = r.c.nextID()
	cp := *item
	r.c.items[item.ID] = &cp
	return nil
}

func (r *itemRepo) Update(ctx context.Context, item *model.Item) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.items[item.ID]; !ok {
		return apperr.NotFoundf("item %d", item.ID)
	}
	cp := *item
	r.c.items[item.ID] = &cp
	return nil
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	it, ok := r.c.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *itemRepo) Delete(ctx context.Context, id int64) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.items[id]; !ok {
		return apperr.NotFoundf("item %d", id)
	}
	delete(r.c.items, id)
	return nil
}

func (r *itemRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Item, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items := []*model.Item{}
	for _, it := range r.c.items {
		if it.OwnerID == ownerID {
			cp := *it
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *itemRepo) Search(ctx context.Context, text string) ([]*model.Item, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	needle := strings.ToLower(text)
	items := []*model.Item{}
	for _, it := range r.c.items {
		if !it.Available {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name), needle) ||
			strings.Contains(strings.ToLower(it.Description), needle) {
			cp := *it
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *itemRepo) ListByRequest(ctx context.Context, requestID int64) ([]*model.Item, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items := []*model.Item{}
	for _, it := range r.c.items {
		if it.RequestID != nil && *it.RequestID == requestID {
			cp := *it
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}
