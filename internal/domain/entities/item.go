package entities

// Item represents a listed item offered for sharing
type Item struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Available   bool   `json:"available" db:"available"`
	OwnerID     int64  `json:"owner_id" db:"owner_id"`
	// RequestID links back to the item request this listing fulfills, if any.
	RequestID *int64 `json:"request_id,omitempty" db:"request_id"`
}

// ItemUpdate carries a partial item mutation; nil fields are left untouched
type ItemUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}
