package postgres

import (
	"context"
	"fmt"

	"github.com/placeguide/account-core/internal/model"
)

var _ model.PlaceStore = (*PlaceRepository)(nil)

type PlaceRepository struct {
	db *Connection
}

func NewPlaceRepository(db *Connection) *PlaceRepository {
	return &PlaceRepository{db: db}
}

func (r *PlaceRepository) List(ctx context.Context) ([]model.Place, error) {
	query := `SELECT id, title, description, image_url, category, created_at
			  FROM places ORDER BY title`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	defer rows.Close()

	var places []model.Place
	for rows.Next() {
		var p model.Place
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Category, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read places: %w", err)
	}

	return places, nil
}
