package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PlaceStore reads catalog entries.
type PlaceStore interface {
	List(ctx context.Context) ([]Place, error)
}

// Place is a catalog entry. Search and filtering happen presentation-side.
type Place struct {
	ID          uuid.UUID
	Title       string
	Description string
	ImageURL    string
	Category    string
	CreatedAt   time.Time
}
