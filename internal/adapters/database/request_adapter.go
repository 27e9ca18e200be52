package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/gearshare/backend/internal/domain/entities"
	"github.com/gearshare/backend/internal/domain/repositories"
	"github.com/gearshare/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/gearshare/backend/pkg/errors"
)

var requestColumns = []interface{}{"id", "description", "requestor_id", "created"}

// RequestAdapter implements the RequestRepository interface
type RequestAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRequestAdapter creates a new item request adapter
func NewRequestAdapter(client *postgres.Client) repositories.RequestRepository {
	return &RequestAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new item request and assigns its id
func (a *RequestAdapter) Create(ctx context.Context, request *entities.ItemRequest) error {
	query, args, err := a.db.Insert("requests").
		Rows(goqu.Record{
			"description":  request.Description,
			"requestor_id": request.RequestorID,
			"created":      request.Created,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&request.ID); err != nil {
		return apperrors.NewInternalError("failed to create request", err)
	}

	return nil
}

// GetByID retrieves an item request by id
func (a *RequestAdapter) GetByID(ctx context.Context, id int64) (*entities.ItemRequest, error) {
	query, args, err := a.db.Select(requestColumns...).
		From("requests").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	request := &entities.ItemRequest{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).
		Scan(&request.ID, &request.Description, &request.RequestorID, &request.Created)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("request with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get request", err)
	}

	return request, nil
}

// ListByRequestor retrieves a user's requests, newest first
func (a *RequestAdapter) ListByRequestor(ctx context.Context, requestorID int64) ([]*entities.ItemRequest, error) {
	query, args, err := a.db.Select(requestColumns...).
		From("requests").
		Where(goqu.Ex{"requestor_id": requestorID}).
		Order(goqu.C("created").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryRequests(ctx, query, args)
}

// ListExcluding retrieves other users' requests, newest first, page-windowed
func (a *RequestAdapter) ListExcluding(ctx context.Context, userID int64, offset, limit int) ([]*entities.ItemRequest, error) {
	query, args, err := a.db.Select(requestColumns...).
		From("requests").
		Where(goqu.C("requestor_id").Neq(userID)).
		Order(goqu.C("created").Desc()).
		Offset(uint(offset)).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryRequests(ctx, query, args)
}

func (a *RequestAdapter) queryRequests(ctx context.Context, query string, args []interface{}) ([]*entities.ItemRequest, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query requests", err)
	}
	defer rows.Close()

	requests := []*entities.ItemRequest{}
	for rows.Next() {
		request := &entities.ItemRequest{}
		if err := rows.Scan(&request.ID, &request.Description, &request.RequestorID, &request.Created); err != nil {
			return nil, apperrors.NewInternalError("failed to scan request", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate requests", err)
	}

	return requests, nil
}
