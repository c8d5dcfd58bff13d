// Package repository defines the storage contract for the catalog.
//
// Every backend must behave identically:
//
//   - Add* inserts when no entity with the same identity exists and is a
//     silent no-op otherwise. A nil or identity-less argument is ignored.
//   - Get* returns nil (and a nil error) when nothing matches.
//   - GetAll* returns entities in ascending identity order.
//   - Search* matches case-insensitive substrings and returns each game once,
//     in ascending id order.
//   - Update* persists mutations of an entity obtained from Get*.
//
// Errors are reserved for storage failures and consistency violations.
package repository

import (
	"context"

	"gamecatalog/backend/internal/models"
)

// Repository is the storage contract used by the service and handler layers.
type Repository interface {
	AddGame(ctx context.Context, game *models.Game) error
	AddGenre(ctx context.Context, genre *models.Genre) error
	AddPublisher(ctx context.Context, publisher *models.Publisher) error
	AddUser(ctx context.Context, user *models.User) error

	// AddReview records a review already attached to its user and game by
	// models.AddReview. It fails with ErrReviewNotLinked otherwise.
	AddReview(ctx context.Context, review *models.Review) error

	GetGame(ctx context.Context, id int) (*models.Game, error)
	// GetUser matches usernames case-insensitively.
	GetUser(ctx context.Context, username string) (*models.User, error)

	GetGamesByGenre(ctx context.Context, genre *models.Genre) ([]*models.Game, error)
	GetGamesByPublisher(ctx context.Context, publisher *models.Publisher) ([]*models.Game, error)

	GetAllGames(ctx context.Context) ([]*models.Game, error)
	GetAllGenres(ctx context.Context) ([]*models.Genre, error)
	GetAllPublishers(ctx context.Context) ([]*models.Publisher, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)

	SearchGamesByTitle(ctx context.Context, query string) ([]*models.Game, error)
	SearchGamesByGenre(ctx context.Context, query string) ([]*models.Game, error)
	SearchGamesByPublisher(ctx context.Context, query string) ([]*models.Game, error)

	// SortGamesByDate returns a new slice ordered by release date, newest first.
	SortGamesByDate(games []*models.Game) []*models.Game

	UpdateGame(ctx context.Context, game *models.Game) error
	UpdateUser(ctx context.Context, user *models.User) error
}

// Sessioner is implemented by backends that need a request-scoped session.
// The returned release func must be called exactly once when the request ends.
type Sessioner interface {
	Session(ctx context.Context) (Repository, func())
}

// ReviewLinked reports whether the review is attached to both its user and game.
func ReviewLinked(r *models.Review) bool {
	if r == nil || r.User == nil || r.Game == nil {
		return false
	}
	return r.User.HasReview(r) && r.Game.HasReview(r)
}
