package postgres

import (
	"context"
	"errors"
	"fmt"

	"itemshare-api/internal/apperr"
	"itemshare-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type itemRepo struct {
	pool *pgxpool.Pool
}

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		item.Name, item.Description, item.Available, item.OwnerID, item.RequestID,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (r *itemRepo) Update(ctx context.Context, item *model.Item) error {
	query := `
		UPDATE items
		SET name = $1, description = $2, available = $3
		WHERE id = $4
	`
	tag, err := r.pool.Exec(ctx, query, item.Name, item.Description, item.Available, item.ID)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("item %d", item.ID)
	}
	return nil
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE id = $1
	`
	var item model.Item
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &item.RequestID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by id: %w", err)
	}
	return &item, nil
}

func (r *itemRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("item %d", id)
	}
	return nil
}

func (r *itemRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE owner_id = $1
		ORDER BY id
	`
	return r.queryItems(ctx, query, ownerID)
}

func (r *itemRepo) Search(ctx context.Context, text string) ([]*model.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE available AND (name ILIKE $1 OR description ILIKE $1)
		ORDER BY id
	`
	return r.queryItems(ctx, query, "%"+text+"%")
}

func (r *itemRepo) ListByRequest(ctx context.Context, requestID int64) ([]*model.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE request_id = $1
		ORDER BY id
	`
	return r.queryItems(ctx, query, requestID)
}

func (r *itemRepo) queryItems(ctx context.Context, query string, args ...any) ([]*model.Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := []*model.Item{}
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &item.RequestID,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
