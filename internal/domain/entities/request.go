package entities

import (
	"time"
)

// ItemRequest represents a user's ask for an item nobody has listed yet
type ItemRequest struct {
	ID          int64     `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	RequestorID int64     `json:"requestor_id" db:"requestor_id"`
	Created     time.Time `json:"created" db:"created"`
}
