package memory

import (
	"context"
	"sort"

	"itemshare-api/internal/model"
)

type commentRepo struct {
	c *core
}

func (r *commentRepo) Create(ctx context.Context, comment *model.Comment) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	comment.ID = r.c.nextID()
	cp := *comment
	r.c.comments[comment.ID] = &cp
	return nil
}

func (r *commentRepo) ListByItem(ctx context.Context, itemID int64) ([]*model.Comment, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	comments := []*model.Comment{}
	for _, cm := range r.c.comments {
		if cm.ItemID != itemID {
			continue
		}
		cp := *cm
		// Join the author's current name, mirroring the SQL view.
		if u, ok := r.c.users[cm.AuthorID]; ok {
			cp.AuthorName = u.Name
		}
		comments = append(comments, &cp)
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].Created.Equal(comments[j].Created) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].Created.Before(comments[j].Created)
	})
	return comments, nil
}
