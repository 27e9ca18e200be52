package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/gearshare/backend/internal/domain/entities"
	"github.com/gearshare/backend/internal/domain/repositories"
	"github.com/gearshare/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/gearshare/backend/pkg/errors"
)

// CommentAdapter implements the CommentRepository interface
type CommentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCommentAdapter creates a new comment adapter
func NewCommentAdapter(client *postgres.Client) repositories.CommentRepository {
	return &CommentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new comment and assigns its id
func (a *CommentAdapter) Create(ctx context.Context, comment *entities.Comment) error {
	query, args, err := a.db.Insert("comments").
		Rows(goqu.Record{
			"text":      comment.Text,
			"item_id":   comment.ItemID,
			"author_id": comment.AuthorID,
			"created":   comment.Created,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&comment.ID); err != nil {
		return apperrors.NewInternalError("failed to create comment", err)
	}

	return nil
}

// ListByItem retrieves an item's comments in insertion order, with the
// author name joined in for presentation
func (a *CommentAdapter) ListByItem(ctx context.Context, itemID int64) ([]entities.Comment, error) {
	query, args, err := a.db.Select(
		goqu.I("c.id"), goqu.I("c.text"), goqu.I("c.item_id"),
		goqu.I("c.author_id"), goqu.I("u.name"), goqu.I("c.created"),
	).
		From(goqu.T("comments").As("c")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("c.author_id").Eq(goqu.I("u.id")))).
		Where(goqu.I("c.item_id").Eq(itemID)).
		Order(goqu.I("c.id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query comments", err)
	}
	defer rows.Close()

	comments := []entities.Comment{}
	for rows.Next() {
		comment := entities.Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.Text,
			&comment.ItemID,
			&comment.AuthorID,
			&comment.AuthorName,
			&comment.Created,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan comment", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate comments", err)
	}

	return comments, nil
}
