package postgres

import (
	"context"
	"errors"
	"fmt"

	"itemshare-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type requestRepo struct {
	pool *pgxpool.Pool
}

func (r *requestRepo) Create(ctx context.Context, request *model.ItemRequest) error {
	query := `
		INSERT INTO requests (description, requester_id, created)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		request.Description, request.RequesterID, request.Created,
	).Scan(&request.ID)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	query := `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE id = $1
	`
	var req model.ItemRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.Description, &req.RequesterID, &req.Created,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request by id: %w", err)
	}
	return &req, nil
}

func (r *requestRepo) ListByRequester(ctx context.Context, requesterID int64) ([]*model.ItemRequest, error) {
	query := `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE requester_id = $1
		ORDER BY created DESC, id DESC
	`
	return r.queryRequests(ctx, query, requesterID)
}

func (r *requestRepo) ListOther(ctx context.Context, excludeUserID int64, limit, offset int) ([]*model.ItemRequest, error) {
	query := fmt.Sprintf(`
		SELECT id, description, requester_id, created
		FROM requests
		WHERE requester_id <> $1
		ORDER BY created, id
		LIMIT %d OFFSET %d
	`, limit, offset)
	return r.queryRequests(ctx, query, excludeUserID)
}

func (r *requestRepo) queryRequests(ctx context.Context, query string, args ...any) ([]*model.ItemRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	requests := []*model.ItemRequest{}
	for rows.Next() {
		var req model.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}
