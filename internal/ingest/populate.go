package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gamecatalog/backend/internal/logging"
	"gamecatalog/backend/internal/repository"
)

const (
	GamesFile = "games.csv"
	UsersFile = "users.csv"
)

// Options controls what Populate loads.
type Options struct {
	// Users also loads users.csv, with favourites and reviews.
	Users bool
}

// Report counts what a load read and skipped.
type Report struct {
	Games      int `json:"games"`
	Genres     int `json:"genres"`
	Publishers int `json:"publishers"`
	Users      int `json:"users"`
	Reviews    int `json:"reviews"`
	Skipped    int `json:"skipped"`
}

// Populate loads games.csv, and optionally users.csv, from dir into repo.
// Games, genres and publishers are added first, then users, then each
// user's reviews. A missing users file is logged and ignored.
func Populate(ctx context.Context, repo repository.Repository, dir string, hasher Hasher, opts Options) (Report, error) {
	var report Report

	gamesFile, err := os.Open(filepath.Join(dir, GamesFile))
	if err != nil {
		return report, fmt.Errorf("open games: %w", err)
	}
	defer gamesFile.Close()

	catalog, err := ReadGames(gamesFile)
	if err != nil {
		return report, err
	}
	report.Skipped += catalog.Skipped

	for _, g := range catalog.Games {
		if err := repo.AddGame(ctx, g); err != nil {
			return report, err
		}
	}
	for _, g := range catalog.Genres {
		if err := repo.AddGenre(ctx, g); err != nil {
			return report, err
		}
	}
	for _, p := range catalog.Publishers {
		if err := repo.AddPublisher(ctx, p); err != nil {
			return report, err
		}
	}
	report.Games = len(catalog.Games)
	report.Genres = len(catalog.Genres)
	report.Publishers = len(catalog.Publishers)

	if opts.Users {
		if err := populateUsers(ctx, repo, dir, catalog, hasher, &report); err != nil {
			return report, err
		}
	}

	logging.Info().
		Str("dir", dir).
		Int("games", report.Games).
		Int("genres", report.Genres).
		Int("publishers", report.Publishers).
		Int("users", report.Users).
		Int("reviews", report.Reviews).
		Int("skipped", report.Skipped).
		Msg("catalog loaded")
	return report, nil
}

func populateUsers(ctx context.Context, repo repository.Repository, dir string, catalog *Catalog, hasher Hasher, report *Report) error {
	usersFile, err := os.Open(filepath.Join(dir, UsersFile))
	if errors.Is(err, fs.ErrNotExist) {
		logging.Warn().Str("dir", dir).Msg("no users file, skipping users")
		return nil
	}
	if err != nil {
		return fmt.Errorf("open users: %w", err)
	}
	defer usersFile.Close()

	set, err := ReadUsers(usersFile, catalog, hasher)
	if err != nil {
		return err
	}
	report.Skipped += set.Skipped

	for _, u := range set.Users {
		if err := repo.AddUser(ctx, u); err != nil {
			return err
		}
	}
	reviewed := map[int]bool{}
	for _, r := range set.Reviews {
		if err := repo.AddReview(ctx, r); err != nil {
			return err
		}
		reviewed[r.GameID] = true
	}
	for _, g := range catalog.Games {
		if !reviewed[g.ID] {
			continue
		}
		g.UpdateAverageRating()
		if err := repo.UpdateGame(ctx, g); err != nil {
			return err
		}
	}
	report.Users = len(set.Users)
	report.Reviews = len(set.Reviews)
	return nil
}
