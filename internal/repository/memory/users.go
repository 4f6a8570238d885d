package memory

import (
	"context"
	"sort"

	"itemshare-api/internal/apperr"
	"itemshare-api/internal/model"
)

type userRepo struct {
	c *core
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	for _, u := range r.c.users {
		if u.Email == user.Email {
			return apperr.Conflictf("email %s already registered", user.Email)
		}
	}
	user.ID = r.c.nextID()
	cp := *user
	r.c.users[user.ID] = &cp
	return nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.users[user.ID]; !ok {
		return apperr.NotFoundf("user %d", user.ID)
	}
	for _, u := range r.c.users {
		if u.ID != user.ID && u.Email == user.Email {
			return apperr.Conflictf("email %s already registered", user.Email)
		}
	}
	cp := *user
	r.c.users[user.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	u, ok := r.c.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) List(ctx context.Context) ([]*model.User, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	users := make([]*model.User, 0, len(r.c.users))
	for _, u := range r.c.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.users[id]; !ok {
		return apperr.NotFoundf("user %d", id)
	}
	delete(r.c.users, id)
	// Items owned by the user go with it; bookings and comments stay as
	// historical records.
	for itemID, it := range r.c.items {
		if it.OwnerID == id {
			delete(r.c.items, itemID)
		}
	}
	return nil
}
