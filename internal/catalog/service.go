package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/placeguide/account-core/internal/logger"
	"github.com/placeguide/account-core/internal/model"
	"github.com/placeguide/account-core/internal/session"
)

// Service serves the place catalog to signed-in users. Filtering is done
// in-process over the full list, so search and category narrowing compose
// freely on the presentation side.
type Service struct {
	places   model.PlaceStore
	sessions *session.Manager
	logger   *logger.Logger
}

func NewService(places model.PlaceStore, sessions *session.Manager, l *logger.Logger) *Service {
	return &Service{
		places:   places,
		sessions: sessions,
		logger:   l,
	}
}

// List returns every catalog entry. It requires a live session.
func (s *Service) List(ctx context.Context) ([]model.Place, error) {
	if s.sessions.AuthStatus() == model.StatusUnauthenticated {
		return nil, model.ErrNotAuthenticated
	}

	places, err := s.places.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}

	return places, nil
}

// Search returns entries whose title or description contains the query,
// case-insensitively, optionally narrowed to a category. An empty query
// matches everything.
func (s *Service) Search(ctx context.Context, query, category string) ([]model.Place, error) {
	places, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))

	matched := make([]model.Place, 0, len(places))
	for _, p := range places {
		if category != "" && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		matched = append(matched, p)
	}

	return matched, nil
}
