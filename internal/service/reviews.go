package service

import (
	"context"
	"errors"
	"time"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/repository"
)

// TimestampLayout is how review timestamps are written.
const TimestampLayout = "2006-01-02 15:04:05"

// SubmitReview attaches a new review to the user and the game, records it,
// refreshes the game's average rating and persists both sides.
func SubmitReview(ctx context.Context, repo repository.Repository, username string, gameID, rating int, comment string, now time.Time) (*models.Review, error) {
	user, game, err := userAndGame(ctx, repo, username, gameID)
	if err != nil {
		return nil, err
	}

	review, err := models.AddReview(user, game, rating, comment, now.Format(TimestampLayout))
	if err != nil {
		if errors.Is(err, models.ErrInvalid) {
			return nil, ErrInvalidReview.WithCause(err)
		}
		return nil, err
	}
	if err := repo.AddReview(ctx, review); err != nil {
		return nil, err
	}
	if err := repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	game.UpdateAverageRating()
	if err := repo.UpdateGame(ctx, game); err != nil {
		return nil, err
	}
	return review, nil
}
