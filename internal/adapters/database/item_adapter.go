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

var itemColumns = []interface{}{"id", "name", "description", "available", "owner_id", "request_id"}

// ItemAdapter implements the ItemRepository interface
type ItemAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewItemAdapter creates a new item adapter
func NewItemAdapter(client *postgres.Client) repositories.ItemRepository {
	return &ItemAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new item and assigns its id
func (a *ItemAdapter) Create(ctx context.Context, item *entities.Item) error {
	query, args, err := a.db.Insert("items").
		Rows(goqu.Record{
			"name":        item.Name,
			"description": item.Description,
			"available":   item.Available,
			"owner_id":    item.OwnerID,
			"request_id":  item.RequestID,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return apperrors.NewInternalError("failed to create item", err)
	}

	return nil
}

// GetByID retrieves an item by id
func (a *ItemAdapter) GetByID(ctx context.Context, id int64) (*entities.Item, error) {
	query, args, err := a.db.Select(itemColumns...).
		From("items").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	item, err := a.scanItem(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("item with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get item", err)
	}

	return item, nil
}

// Update overwrites an item's mutable fields
func (a *ItemAdapter) Update(ctx context.Context, item *entities.Item) error {
	query, args, err := a.db.Update("items").
		Set(goqu.Record{
			"name":        item.Name,
			"description": item.Description,
			"available":   item.Available,
		}).
		Where(goqu.Ex{"id": item.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update item", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("item with id %d not found", item.ID))
	}

	return nil
}

// ListByOwner retrieves all items owned by a user
func (a *ItemAdapter) ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Item, error) {
	query, args, err := a.db.Select(itemColumns...).
		From("items").
		Where(goqu.Ex{"owner_id": ownerID}).
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryItems(ctx, query, args)
}

// Search retrieves available items matching text in name or description
func (a *ItemAdapter) Search(ctx context.Context, text string) ([]*entities.Item, error) {
	pattern := "%" + text + "%"
	query, args, err := a.db.Select(itemColumns...).
		From("items").
		Where(
			goqu.C("available").IsTrue(),
			goqu.Or(
				goqu.C("name").ILike(pattern),
				goqu.C("description").ILike(pattern),
			),
		).
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryItems(ctx, query, args)
}

// ListByRequest retrieves all items fulfilling an item request
func (a *ItemAdapter) ListByRequest(ctx context.Context, requestID int64) ([]*entities.Item, error) {
	query, args, err := a.db.Select(itemColumns...).
		From("items").
		Where(goqu.Ex{"request_id": requestID}).
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryItems(ctx, query, args)
}

func (a *ItemAdapter) queryItems(ctx context.Context, query string, args []interface{}) ([]*entities.Item, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query items", err)
	}
	defer rows.Close()

	items := []*entities.Item{}
	for rows.Next() {
		item, err := a.scanItem(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate items", err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *ItemAdapter) scanItem(row rowScanner) (*entities.Item, error) {
	item := &entities.Item{}
	var requestID sql.NullInt64

	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.OwnerID,
		&requestID,
	)
	if err != nil {
		return nil, err
	}

	if requestID.Valid {
		item.RequestID = &requestID.Int64
	}

	return item, nil
}
