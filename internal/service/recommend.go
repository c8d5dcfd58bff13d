package service

import (
	"context"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/repository"
)

// RecommendedGames returns the games sharing the most genres with game,
// newest first. game itself is never included. A game without genres, or
// without any other game sharing one, gets no recommendations.
func RecommendedGames(ctx context.Context, repo repository.Repository, game *models.Game) ([]*models.Game, error) {
	if game == nil {
		return []*models.Game{}, nil
	}

	counts := make(map[int]int)
	var order []*models.Game
	for _, genre := range game.Genres {
		if genre == nil {
			continue
		}
		games, err := repo.GetGamesByGenre(ctx, genre)
		if err != nil {
			return nil, err
		}
		for _, g := range games {
			if g.ID == game.ID {
				continue
			}
			if counts[g.ID] == 0 {
				order = append(order, g)
			}
			counts[g.ID]++
		}
	}
	if len(order) == 0 {
		return []*models.Game{}, nil
	}

	best := 0
	for _, n := range counts {
		best = max(best, n)
	}
	recommended := make([]*models.Game, 0, len(order))
	for _, g := range order {
		if counts[g.ID] == best {
			recommended = append(recommended, g)
		}
	}
	return repo.SortGamesByDate(recommended), nil
}

// GameDetail loads a game and makes sure its recommendations are computed.
// Recommendations are computed on the first call and persisted with the game;
// later calls reuse them.
func GameDetail(ctx context.Context, repo repository.Repository, id int) (*models.Game, error) {
	game, err := repo.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if len(game.Recommended) > 0 {
		return game, nil
	}

	recommended, err := RecommendedGames(ctx, repo, game)
	if err != nil {
		return nil, err
	}
	if len(recommended) == 0 {
		return game, nil
	}
	game.Recommended = recommended
	if err := repo.UpdateGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}
