package service

import (
	"context"
	"net/url"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/repository"
)

// ActionGenre is the genre featured on the home page.
const ActionGenre = "Action"

// AllGamesByDate returns every game, newest first.
func AllGamesByDate(ctx context.Context, repo repository.Repository) ([]*models.Game, error) {
	games, err := repo.GetAllGames(ctx)
	if err != nil {
		return nil, err
	}
	return repo.SortGamesByDate(games), nil
}

// RecentGames returns the n newest games.
func RecentGames(ctx context.Context, repo repository.Repository, n int) ([]*models.Game, error) {
	games, err := AllGamesByDate(ctx, repo)
	if err != nil {
		return nil, err
	}
	return head(games, n), nil
}

// GenreGames returns up to n games of the named genre in id order.
func GenreGames(ctx context.Context, repo repository.Repository, name string, n int) ([]*models.Game, error) {
	games, err := GamesByGenreName(ctx, repo, name)
	if err != nil {
		return nil, err
	}
	return head(games, n), nil
}

// GamesByGenreName filters by exact genre name.
func GamesByGenreName(ctx context.Context, repo repository.Repository, name string) ([]*models.Game, error) {
	return repo.GetGamesByGenre(ctx, &models.Genre{Name: name})
}

// GamesByPublisherName filters by exact publisher name.
func GamesByPublisherName(ctx context.Context, repo repository.Repository, name string) ([]*models.Game, error) {
	return repo.GetGamesByPublisher(ctx, &models.Publisher{Name: name})
}

// Link pairs a sidebar label with the API path listing its games.
type Link struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// GenreLinks returns one link per genre, in name order.
func GenreLinks(ctx context.Context, repo repository.Repository, basePath string) ([]Link, error) {
	genres, err := repo.GetAllGenres(ctx)
	if err != nil {
		return nil, err
	}
	links := make([]Link, 0, len(genres))
	for _, g := range genres {
		links = append(links, Link{Name: g.Name, Path: basePath + "/genres/" + url.PathEscape(g.Name) + "/games"})
	}
	return links, nil
}

// PublisherLinks returns one link per publisher, in name order.
func PublisherLinks(ctx context.Context, repo repository.Repository, basePath string) ([]Link, error) {
	publishers, err := repo.GetAllPublishers(ctx)
	if err != nil {
		return nil, err
	}
	links := make([]Link, 0, len(publishers))
	for _, p := range publishers {
		links = append(links, Link{Name: p.Name, Path: basePath + "/publishers/" + url.PathEscape(p.Name) + "/games"})
	}
	return links, nil
}

func head[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
