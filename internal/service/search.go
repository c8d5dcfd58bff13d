package service

import (
	"context"
	"strings"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/repository"
)

// Filter selects the field a search query is matched against.
type Filter string

const (
	FilterTitle     Filter = "title"
	FilterGenre     Filter = "genre"
	FilterPublisher Filter = "publisher"
)

// ParseFilter maps a query-string value to a Filter. Unknown values are not ok.
func ParseFilter(s string) (Filter, bool) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterTitle, FilterGenre, FilterPublisher:
		return f, true
	}
	return "", false
}

// Search runs a case-insensitive substring search and returns matches newest
// first. A blank query or unknown filter yields no results.
func Search(ctx context.Context, repo repository.Repository, filter Filter, query string) ([]*models.Game, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Game{}, nil
	}

	var (
		games []*models.Game
		err   error
	)
	switch filter {
	case FilterTitle:
		games, err = repo.SearchGamesByTitle(ctx, query)
	case FilterGenre:
		games, err = repo.SearchGamesByGenre(ctx, query)
	case FilterPublisher:
		games, err = repo.SearchGamesByPublisher(ctx, query)
	default:
		return []*models.Game{}, nil
	}
	if err != nil {
		return nil, err
	}
	return repo.SortGamesByDate(games), nil
}
