package service

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"testing"
	"time"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/repository"
	"gamecatalog/backend/internal/repository/gormrepo"
	"gamecatalog/backend/internal/repository/memory"
	"gamecatalog/backend/internal/repository/repotest"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// plainHasher stores passwords with a marker prefix.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (plainHasher) Verify(digest, plain string) bool  { return digest == "hashed:"+plain }

// countingRepo records UpdateGame calls.
type countingRepo struct {
	repository.Repository
	gameUpdates int
}

func (r *countingRepo) UpdateGame(ctx context.Context, game *models.Game) error {
	r.gameUpdates++
	return r.Repository.UpdateGame(ctx, game)
}

func newGormRepo(t *testing.T) repository.Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gormrepo.AutoMigrate(db))
	return gormrepo.New(db)
}

// eachBackend runs fn against a seeded repository of every kind.
func eachBackend(t *testing.T, fn func(t *testing.T, repo repository.Repository)) {
	backends := map[string]func(t *testing.T) repository.Repository{
		"memory": func(t *testing.T) repository.Repository { return memory.New() },
		"gorm":   newGormRepo,
	}
	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			repotest.Seed(t, repo)
			fn(t, repo)
		})
	}
}

func gameIDs(games []*models.Game) []int {
	out := make([]int, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID)
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := make([]int, 20)
	for i := range items {
		items[i] = i
	}

	assert.Equal(t, items[0:16], Paginate(16, 1, items))
	assert.Equal(t, items[16:20], Paginate(16, 2, items))
	assert.Empty(t, Paginate(16, 3, items))
	assert.Empty(t, Paginate(16, 0, items))
	assert.Empty(t, Paginate(0, 1, items))
	assert.Empty(t, Paginate(16, 1, []int{}))

	// Offsets that would overflow an int are still past the end.
	assert.Empty(t, Paginate(16, math.MaxInt, items))
	assert.Empty(t, Paginate(16, 1<<60+1, items))
	assert.Empty(t, Paginate(math.MaxInt, 2, items))
	assert.Equal(t, items, Paginate(math.MaxInt, 1, items))

	assert.Equal(t, 2, PageCount(16, 20))
	assert.Equal(t, 1, PageCount(16, 16))
	assert.Equal(t, 0, PageCount(16, 0))
	assert.Equal(t, 1, PageCount(math.MaxInt, 20))
}

func TestRegister_NameNotUnique(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()
		_, err := Register(ctx, repo, plainHasher{}, "marklee", "Password1")
		require.NoError(t, err)

		_, err = Register(ctx, repo, plainHasher{}, "marklee", "Password2")
		assert.ErrorIs(t, err, ErrNameNotUnique)
		_, err = Register(ctx, repo, plainHasher{}, "MarkLee", "Password2")
		assert.ErrorIs(t, err, ErrNameNotUnique)

		user, err := GetUser(ctx, repo, "MARKLEE")
		require.NoError(t, err)
		assert.Equal(t, "marklee", user.Username)
		assert.Equal(t, "hashed:Password1", user.PasswordHash)
	})
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid", "marklee", "Password1", false},
		{"short username", "ab", "Password1", true},
		{"blank username", "   ", "Password1", true},
		{"short password", "marklee", "Pass1", true},
		{"no digit", "marklee", "Password", true},
		{"no upper", "marklee", "password1", true},
		{"no lower", "marklee", "PASSWORD1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.username, tt.password)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, CodeValidation, e.Code)
			assert.Equal(t, http.StatusBadRequest, StatusOf(err))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()
		_, err := Register(ctx, repo, plainHasher{}, "arianagrande", "Password1")
		require.NoError(t, err)

		user, err := Authenticate(ctx, repo, plainHasher{}, "ArianaGrande", "Password1")
		require.NoError(t, err)
		assert.Equal(t, "arianagrande", user.Username)

		_, err = Authenticate(ctx, repo, plainHasher{}, "arianagrande", "wrong")
		assert.ErrorIs(t, err, ErrAuthentication)
		assert.Equal(t, http.StatusUnauthorized, StatusOf(err))

		_, err = Authenticate(ctx, repo, plainHasher{}, "nobody", "Password1")
		assert.ErrorIs(t, err, ErrUnknownUser)
		assert.Equal(t, http.StatusNotFound, StatusOf(err))
	})
}

func TestErrorsMatchByCode(t *testing.T) {
	wrapped := ErrInvalidReview.WithCause(models.ErrInvalid)
	assert.ErrorIs(t, wrapped, ErrInvalidReview)
	assert.ErrorIs(t, wrapped, models.ErrInvalid)
	assert.NotErrorIs(t, ErrUnknownUser, ErrGameNotFound)
	assert.Equal(t, http.StatusConflict, StatusOf(ErrNameNotUnique))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestParseFilter(t *testing.T) {
	f, ok := ParseFilter(" Genre ")
	assert.True(t, ok)
	assert.Equal(t, FilterGenre, f)

	_, ok = ParseFilter("price")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		games, err := Search(ctx, repo, FilterGenre, "  racing ")
		require.NoError(t, err)
		assert.Equal(t, []int{1066890, 3010}, gameIDs(games), "newest first")

		games, err = Search(ctx, repo, FilterPublisher, "ACTIVISION")
		require.NoError(t, err)
		assert.Equal(t, []int{311120, 7940}, gameIDs(games))

		games, err = Search(ctx, repo, FilterTitle, "ninja")
		require.NoError(t, err)
		assert.Equal(t, []int{435790}, gameIDs(games))

		games, err = Search(ctx, repo, FilterTitle, "   ")
		require.NoError(t, err)
		assert.Empty(t, games)

		games, err = Search(ctx, repo, Filter("price"), "1")
		require.NoError(t, err)
		assert.Empty(t, games)
	})
}

func TestCatalog(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		all, err := AllGamesByDate(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, []int{1228870, 1066890, 435790, 267360, 311120, 7940, 3010}, gameIDs(all))

		recent, err := RecentGames(ctx, repo, 4)
		require.NoError(t, err)
		assert.Equal(t, []int{1228870, 1066890, 435790, 267360}, gameIDs(recent))

		action, err := GenreGames(ctx, repo, ActionGenre, 2)
		require.NoError(t, err)
		assert.Equal(t, []int{7940, 435790}, gameIDs(action))

		none, err := GamesByGenreName(ctx, repo, "Puzzle")
		require.NoError(t, err)
		assert.Empty(t, none)

		byPublisher, err := GamesByPublisherName(ctx, repo, "Techland")
		require.NoError(t, err)
		assert.Equal(t, []int{3010}, gameIDs(byPublisher))

		links, err := PublisherLinks(ctx, repo, "/api/v1")
		require.NoError(t, err)
		require.NotEmpty(t, links)
		assert.Equal(t, Link{Name: "Activision", Path: "/api/v1/publishers/Activision/games"}, links[0])
		assert.Equal(t, "/api/v1/publishers/Activision%20Blizzard/games", links[1].Path)

		genreLinks, err := GenreLinks(ctx, repo, "/api/v1")
		require.NoError(t, err)
		assert.Len(t, genreLinks, 8)
		assert.Equal(t, "Action", genreLinks[0].Name)
	})
}

func TestRecommendedGames(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		tests := []struct {
			name string
			id   int
			want []int
		}{
			// Racing and Simulation are shared with Xpand Rally only.
			{"single best overlap", 1066890, []int{3010}},
			{"ties kept and sorted by date", 7940, []int{1228870, 435790}},
			{"casual", 311120, []int{267360}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				game, err := repo.GetGame(ctx, tt.id)
				require.NoError(t, err)

				got, err := RecommendedGames(ctx, repo, game)
				require.NoError(t, err)
				assert.Equal(t, tt.want, gameIDs(got))
				assert.NotContains(t, gameIDs(got), tt.id)
			})
		}

		lonely := repotest.NewGame(t, 999, "Lonely Puzzle", "Jan 1, 2021", "", "Puzzle")
		require.NoError(t, repo.AddGame(ctx, lonely))
		got, err := RecommendedGames(ctx, repo, lonely)
		require.NoError(t, err)
		assert.Empty(t, got)

		bare := repotest.NewGame(t, 1000, "No Genres", "", "")
		got, err = RecommendedGames(ctx, repo, bare)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestGameDetail_MemoizesRecommendations(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()
		counting := &countingRepo{Repository: repo}

		game, err := GameDetail(ctx, counting, 7940)
		require.NoError(t, err)
		assert.Equal(t, []int{1228870, 435790}, gameIDs(game.Recommended))
		assert.Equal(t, 1, counting.gameUpdates)

		again, err := GameDetail(ctx, counting, 7940)
		require.NoError(t, err)
		assert.Equal(t, []int{1228870, 435790}, gameIDs(again.Recommended))
		assert.Equal(t, 1, counting.gameUpdates, "second view reuses stored recommendations")

		_, err = GameDetail(ctx, counting, 42)
		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestFavourites(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()
		_, err := Register(ctx, repo, plainHasher{}, "fan", "Password1")
		require.NoError(t, err)

		require.NoError(t, AddFavourite(ctx, repo, "fan", 3010))
		require.NoError(t, AddFavourite(ctx, repo, "FAN", 7940))
		require.NoError(t, AddFavourite(ctx, repo, "fan", 7940))

		games, err := FavouriteGames(ctx, repo, "fan")
		require.NoError(t, err)
		assert.Equal(t, []int{3010, 7940}, gameIDs(games))

		require.NoError(t, RemoveFavourite(ctx, repo, "fan", 3010))
		games, err = FavouriteGames(ctx, repo, "fan")
		require.NoError(t, err)
		assert.Equal(t, []int{7940}, gameIDs(games))

		assert.ErrorIs(t, AddFavourite(ctx, repo, "ghost", 3010), ErrUnknownUser)
		assert.ErrorIs(t, AddFavourite(ctx, repo, "fan", 1), ErrGameNotFound)
		_, err = FavouriteGames(ctx, repo, "ghost")
		assert.ErrorIs(t, err, ErrUnknownUser)
	})
}

func TestSubmitReview(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()
		_, err := Register(ctx, repo, plainHasher{}, "critic", "Password1")
		require.NoError(t, err)
		now := time.Date(2023, 10, 1, 12, 30, 0, 0, time.UTC)

		review, err := SubmitReview(ctx, repo, "critic", 7940, 4, "  solid shooter ", now)
		require.NoError(t, err)
		assert.Equal(t, "solid shooter", review.Comment)
		assert.Equal(t, "2023-10-01 12:30:00", review.Timestamp)

		_, err = SubmitReview(ctx, repo, "critic", 7940, 2, "aged badly", now.Add(time.Hour))
		require.NoError(t, err)

		game, err := repo.GetGame(ctx, 7940)
		require.NoError(t, err)
		assert.Len(t, game.Reviews, 2)
		assert.Equal(t, 3.0, game.AverageRating)

		reviews, err := UserReviews(ctx, repo, "critic")
		require.NoError(t, err)
		assert.Len(t, reviews, 2)

		_, err = SubmitReview(ctx, repo, "critic", 7940, 6, "off the scale", now)
		assert.ErrorIs(t, err, ErrInvalidReview)
		assert.True(t, strings.Contains(err.Error(), "rating"))

		_, err = SubmitReview(ctx, repo, "critic", 1, 3, "missing", now)
		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}
