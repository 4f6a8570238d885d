package postgres

import (
	"context"
	"fmt"

	"itemshare-api/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type commentRepo struct {
	pool *pgxpool.Pool
}

func (r *commentRepo) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (text, item_id, author_id, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		comment.Text, comment.ItemID, comment.AuthorID, comment.Created,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *commentRepo) ListByItem(ctx context.Context, itemID int64) ([]*model.Comment, error) {
	// Author name is joined live so renames show up on old comments.
	query := `
		SELECT c.id, c.text, c.item_id, c.author_id, COALESCE(u.name, ''), c.created
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.item_id = $1
		ORDER BY c.created, c.id
	`
	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
