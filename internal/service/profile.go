package service

import (
	"context"
	"slices"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/repository"
)

// FavouriteGames returns the user's favourites in id order.
func FavouriteGames(ctx context.Context, repo repository.Repository, username string) ([]*models.Game, error) {
	user, err := GetUser(ctx, repo, username)
	if err != nil {
		return nil, err
	}
	games := slices.Clone(user.FavouriteGames)
	slices.SortFunc(games, models.CompareGames)
	return games, nil
}

// UserReviews returns the reviews the user wrote.
func UserReviews(ctx context.Context, repo repository.Repository, username string) ([]*models.Review, error) {
	user, err := GetUser(ctx, repo, username)
	if err != nil {
		return nil, err
	}
	return slices.Clone(user.Reviews), nil
}

func userAndGame(ctx context.Context, repo repository.Repository, username string, gameID int) (*models.User, *models.Game, error) {
	user, err := GetUser(ctx, repo, username)
	if err != nil {
		return nil, nil, err
	}
	game, err := repo.GetGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	if game == nil {
		return nil, nil, ErrGameNotFound
	}
	return user, game, nil
}

// AddFavourite marks a game as one of the user's favourites.
func AddFavourite(ctx context.Context, repo repository.Repository, username string, gameID int) error {
	user, game, err := userAndGame(ctx, repo, username, gameID)
	if err != nil {
		return err
	}
	user.AddFavourite(game)
	return repo.UpdateUser(ctx, user)
}

// RemoveFavourite drops a game from the user's favourites.
func RemoveFavourite(ctx context.Context, repo repository.Repository, username string, gameID int) error {
	user, game, err := userAndGame(ctx, repo, username, gameID)
	if err != nil {
		return err
	}
	user.RemoveFavourite(game.ID)
	return repo.UpdateUser(ctx, user)
}
