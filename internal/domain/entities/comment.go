package entities

import (
	"time"
)

// Comment represents a post-use comment left on an item
type Comment struct {
	ID       int64     `json:"id" db:"id"`
	Text     string    `json:"text" db:"text"`
	ItemID   int64     `json:"item_id" db:"item_id"`
	AuthorID int64     `json:"author_id" db:"author_id"`
	// AuthorName is denormalized into the comment on read for presentation.
	AuthorName string    `json:"author_name" db:"author_name"`
	Created    time.Time `json:"created" db:"created"`
}
