// Package repotest holds the behavioural suite every repository backend must pass.
package repotest

import (
	"context"
	"testing"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty repository for one test.
type Factory func(t *testing.T) repository.Repository

// Run executes the suite against the backend produced by newRepo.
func Run(t *testing.T, newRepo Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, repo repository.Repository)
	}{
		{"AllGamesAscendingByID", testAllGamesAscendingByID},
		{"AddIsInsertIfAbsent", testAddIsInsertIfAbsent},
		{"AddIgnoresInvalidInput", testAddIgnoresInvalidInput},
		{"AllGenresAndPublishersSorted", testAllGenresAndPublishersSorted},
		{"AddGameRegistersGenresAndPublisher", testAddGameRegistersRelated},
		{"GetGame", testGetGame},
		{"UsersCaseInsensitive", testUsersCaseInsensitive},
		{"FilterByGenreAndPublisher", testFilterByGenreAndPublisher},
		{"SearchByTitle", testSearchByTitle},
		{"SearchByGenreDeduplicates", testSearchByGenreDeduplicates},
		{"SearchByPublisher", testSearchByPublisher},
		{"SortGamesByDate", testSortGamesByDate},
		{"AddReviewRequiresLinkage", testAddReviewRequiresLinkage},
		{"AddReviewRecordsOnce", testAddReviewRecordsOnce},
		{"UpdateGamePersists", testUpdateGamePersists},
		{"UpdateUserPersistsFavourites", testUpdateUserPersistsFavourites},
		{"NonASCIICaseFolding", testNonASCIICaseFolding},
		{"LinkedGameAddedLater", testLinkedGameAddedLater},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newRepo(t))
		})
	}
}

// NewGame builds a game for fixtures.
func NewGame(t *testing.T, id int, title, date, publisher string, genres ...string) *models.Game {
	t.Helper()
	g, err := models.NewGame(id, title)
	require.NoError(t, err)
	g.ReleaseDate = date
	if publisher != "" {
		p, err := models.NewPublisher(publisher)
		require.NoError(t, err)
		g.SetPublisher(p)
	}
	for _, name := range genres {
		genre, err := models.NewGenre(name)
		require.NoError(t, err)
		g.AddGenre(genre)
	}
	return g
}

// Seed loads a small catalog shared by the suite and the service tests.
func Seed(t *testing.T, repo repository.Repository) {
	t.Helper()
	ctx := context.Background()
	games := []*models.Game{
		NewGame(t, 7940, "Call of Duty 4", "Nov 12, 2007", "Activision", "Action"),
		NewGame(t, 3010, "Xpand Rally", "Jan 1, 2004", "Techland", "Racing", "Simulation"),
		NewGame(t, 1066890, "Automobilista 2", "Mar 20, 2020", "Reiza Studios", "Racing", "Simulation", "Indie"),
		NewGame(t, 435790, "10 Second Ninja X", "Jul 19, 2016", "Curve Digital", "Action", "Indie"),
		NewGame(t, 311120, "Basketball Pro", "Oct 21, 2008", "Activision Blizzard", "Sports", "Casual"),
		NewGame(t, 1228870, "Bartlow's Dread Machine", "Aug 31, 2020", "Beep Games", "Action", "Adventure", "Indie"),
		NewGame(t, 267360, "100% Orange Juice", "May 23, 2014", "Fruitbat Factory", "Casual", "Strategy"),
	}
	for _, g := range games {
		require.NoError(t, repo.AddGame(ctx, g))
		for _, genre := range g.Genres {
			require.NoError(t, repo.AddGenre(ctx, genre))
		}
		require.NoError(t, repo.AddPublisher(ctx, g.Publisher))
	}
}

func ids(games []*models.Game) []int {
	out := make([]int, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID)
	}
	return out
}

func testAllGamesAscendingByID(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	for _, g := range []*models.Game{
		NewGame(t, 127, "NCT", "Jan 1, 2020", ""),
		NewGame(t, 4, "The Sims 4", "Sep 2, 2014", ""),
		NewGame(t, 333, "The Sims 3", "Jun 2, 2009", ""),
	} {
		require.NoError(t, repo.AddGame(ctx, g))
	}

	games, err := repo.GetAllGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 127, 333}, ids(games))
}

func testAddIsInsertIfAbsent(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.AddGame(ctx, NewGame(t, 127, "Neo Culture Technology", "", "")))
	require.NoError(t, repo.AddGame(ctx, NewGame(t, 127, "Another title", "", "")))
	require.NoError(t, repo.AddGenre(ctx, &models.Genre{Name: "Adventure"}))
	require.NoError(t, repo.AddGenre(ctx, &models.Genre{Name: "Adventure"}))
	require.NoError(t, repo.AddPublisher(ctx, &models.Publisher{Name: "EA Sports"}))
	require.NoError(t, repo.AddPublisher(ctx, &models.Publisher{Name: "EA Sports"}))
	require.NoError(t, repo.AddUser(ctx, &models.User{Username: "user1", PasswordHash: "x"}))
	require.NoError(t, repo.AddUser(ctx, &models.User{Username: "user1", PasswordHash: "y"}))

	games, err := repo.GetAllGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Neo Culture Technology", games[0].Title)

	genres, err := repo.GetAllGenres(ctx)
	require.NoError(t, err)
	assert.Len(t, genres, 1)

	publishers, err := repo.GetAllPublishers(ctx)
	require.NoError(t, err)
	assert.Len(t, publishers, 1)

	users, err := repo.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "x", users[0].PasswordHash)
}

func testAddIgnoresInvalidInput(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	assert.NoError(t, repo.AddGame(ctx, nil))
	assert.NoError(t, repo.AddGame(ctx, &models.Game{}))
	assert.NoError(t, repo.AddGenre(ctx, nil))
	assert.NoError(t, repo.AddGenre(ctx, &models.Genre{}))
	assert.NoError(t, repo.AddPublisher(ctx, nil))
	assert.NoError(t, repo.AddUser(ctx, nil))
	assert.NoError(t, repo.AddReview(ctx, nil))

	games, err := repo.GetAllGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)
	genres, err := repo.GetAllGenres(ctx)
	require.NoError(t, err)
	assert.Empty(t, genres)
}

func testAllGenresAndPublishersSorted(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	for _, name := range []string{"Card Game", "Adventure", "Simulation"} {
		require.NoError(t, repo.AddGenre(ctx, &models.Genre{Name: name}))
	}
	for _, name := range []string{"Nintendo", "EA Sports", "Warner Bros"} {
		require.NoError(t, repo.AddPublisher(ctx, &models.Publisher{Name: name}))
	}
	for _, name := range []string{"user2", "user1", "user3"} {
		require.NoError(t, repo.AddUser(ctx, &models.User{Username: name, PasswordHash: "x"}))
	}

	genres, err := repo.GetAllGenres(ctx)
	require.NoError(t, err)
	var genreNames []string
	for _, g := range genres {
		genreNames = append(genreNames, g.Name)
	}
	assert.Equal(t, []string{"Adventure", "Card Game", "Simulation"}, genreNames)

	publishers, err := repo.GetAllPublishers(ctx)
	require.NoError(t, err)
	var publisherNames []string
	for _, p := range publishers {
		publisherNames = append(publisherNames, p.Name)
	}
	assert.Equal(t, []string{"EA Sports", "Nintendo", "Warner Bros"}, publisherNames)

	users, err := repo.GetAllUsers(ctx)
	require.NoError(t, err)
	var usernames []string
	for _, u := range users {
		usernames = append(usernames, u.Username)
	}
	assert.Equal(t, []string{"user1", "user2", "user3"}, usernames)
}

func testAddGameRegistersRelated(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.AddGame(ctx, NewGame(t, 1, "Game", "", "Valve", "Action", "Indie")))

	genres, err := repo.GetAllGenres(ctx)
	require.NoError(t, err)
	assert.Len(t, genres, 2)

	publishers, err := repo.GetAllPublishers(ctx)
	require.NoError(t, err)
	require.Len(t, publishers, 1)
	assert.Equal(t, "Valve", publishers[0].Name)
}

func testGetGame(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	Seed(t, repo)

	g, err := repo.GetGame(ctx, 7940)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "Call of Duty 4", g.Title)
	assert.Equal(t, "Activision", g.PublisherLabel())
	assert.True(t, g.HasGenre("Action"))

	for _, missing := range []int{2, 0, -5} {
		g, err = repo.GetGame(ctx, missing)
		require.NoError(t, err)
		assert.Nil(t, g)
	}
}

func testUsersCaseInsensitive(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.AddUser(ctx, &models.User{Username: "marklee", PasswordHash: "first"}))
	require.NoError(t, repo.AddUser(ctx, &models.User{Username: "MarkLee", PasswordHash: "second"}))

	u, err := repo.GetUser(ctx, "MARKLEE")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "marklee", u.Username)
	assert.Equal(t, "first", u.PasswordHash)

	users, err := repo.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	u, err = repo.GetUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func testFilterByGenreAndPublisher(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	Seed(t, repo)

	action, err := repo.GetGamesByGenre(ctx, &models.Genre{Name: "Action"})
	require.NoError(t, err)
	assert.Equal(t, []int{7940, 435790, 1228870}, ids(action))

	// Exact match only.
	none, err := repo.GetGamesByGenre(ctx, &models.Genre{Name: "action"})
	require.NoError(t, err)
	assert.Empty(t, none)

	none, err = repo.GetGamesByGenre(ctx, &models.Genre{Name: "Card Game"})
	require.NoError(t, err)
	assert.Empty(t, none)

	none, err = repo.GetGamesByGenre(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	byPub, err := repo.GetGamesByPublisher(ctx, &models.Publisher{Name: "Activision"})
	require.NoError(t, err)
	assert.Equal(t, []int{7940}, ids(byPub))

	none, err = repo.GetGamesByPublisher(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testSearchByTitle(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	Seed(t, repo)

	lower, err := repo.SearchGamesByTitle(ctx, "ball")
	require.NoError(t, err)
	upper, err := repo.SearchGamesByTitle(ctx, "BALL")
	require.NoError(t, err)
	assert.Equal(t, []int{311120}, ids(lower))
	assert.Equal(t, ids(lower), ids(upper))

	exact, err := repo.SearchGamesByTitle(ctx, "Automobilista 2")
	require.NoError(t, err)
	assert.Equal(t, []int{1066890}, ids(exact))

	// Wildcards are literal.
	percent, err := repo.SearchGamesByTitle(ctx, "%")
	require.NoError(t, err)
	assert.Equal(t, []int{267360}, ids(percent))

	none, err := repo.SearchGamesByTitle(ctx, "abcdefghijklmnopqrstuvwxyz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testSearchByGenreDeduplicates(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	Seed(t, repo)

	// "a" matches Action, Racing, Casual, Adventure, Simulation, Strategy:
	// several games belong to more than one of them.
	games, err := repo.SearchGamesByGenre(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []int{3010, 7940, 267360, 311120, 435790, 1066890, 1228870}, ids(games))

	upper, err := repo.SearchGamesByGenre(ctx, "AC")
	require.NoError(t, err)
	assert.Equal(t, []int{3010, 7940, 435790, 1066890, 1228870}, ids(upper))

	none, err := repo.SearchGamesByGenre(ctx, "abcdefghijklmnopqrstuvwxyz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testSearchByPublisher(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	Seed(t, repo)

	games, err := repo.SearchGamesByPublisher(ctx, "activision")
	require.NoError(t, err)
	assert.Equal(t, []int{7940, 311120}, ids(games))

	// Activision, Activision Blizzard and Fruitbat Factory.
	games, err = repo.SearchGamesByPublisher(ctx, "Ac")
	require.NoError(t, err)
	assert.Equal(t, []int{7940, 267360, 311120}, ids(games))

	none, err := repo.SearchGamesByPublisher(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testSortGamesByDate(t *testing.T, repo repository.Repository) {
	games := []*models.Game{
		NewGame(t, 1, "Old", "Jan 1, 2004", ""),
		NewGame(t, 2, "Tie A", "Oct 21, 2008", ""),
		NewGame(t, 3, "Undated", "", ""),
		NewGame(t, 4, "New", "Aug 31, 2020", ""),
		NewGame(t, 5, "Tie B", "Oct 21, 2008", ""),
	}
	sorted := repo.SortGamesByDate(games)
	assert.Equal(t, []int{4, 2, 5, 1, 3}, ids(sorted))
	// Input untouched.
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(games))

	for i := 0; i+1 < len(sorted); i++ {
		a, okA := sorted[i].ReleaseTime()
		b, okB := sorted[i+1].ReleaseTime()
		if okA && okB {
			assert.False(t, a.Before(b))
		}
	}
}

func testAddReviewRequiresLinkage(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	Seed(t, repo)
	require.NoError(t, repo.AddUser(ctx, &models.User{Username: "baekhyunbyun", PasswordHash: "x"}))

	user, err := repo.GetUser(ctx, "baekhyunbyun")
	require.NoError(t, err)
	game, err := repo.GetGame(ctx, 7940)
	require.NoError(t, err)

	loose := &models.Review{User: user, Game: game, Rating: 3, Comment: "loose", Timestamp: "t"}
	err = repo.AddReview(ctx, loose)
	assert.ErrorIs(t, err, repository.ErrReviewNotLinked)

	// Attached to the user only.
	user.Reviews = append(user.Reviews, loose)
	err = repo.AddReview(ctx, loose)
	assert.ErrorIs(t, err, repository.ErrReviewNotLinked)
}

func testAddReviewRecordsOnce(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	Seed(t, repo)
	require.NoError(t, repo.AddUser(ctx, &models.User{Username: "arianagrande", PasswordHash: "x"}))

	user, err := repo.GetUser(ctx, "arianagrande")
	require.NoError(t, err)
	game, err := repo.GetGame(ctx, 1066890)
	require.NoError(t, err)

	review, err := models.AddReview(user, game, 4, "great sim", "2023-10-01 10:00:00")
	require.NoError(t, err)
	require.NoError(t, repo.AddReview(ctx, review))
	require.NoError(t, repo.AddReview(ctx, review))

	reloaded, err := repo.GetGame(ctx, 1066890)
	require.NoError(t, err)
	require.Len(t, reloaded.Reviews, 1)
	assert.True(t, reloaded.Reviews[0].Equal(review))

	author, err := repo.GetUser(ctx, "arianagrande")
	require.NoError(t, err)
	require.Len(t, author.Reviews, 1)
	assert.True(t, author.HasReview(review))
}

func testUpdateGamePersists(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	Seed(t, repo)

	game, err := repo.GetGame(ctx, 1066890)
	require.NoError(t, err)
	other, err := repo.GetGame(ctx, 3010)
	require.NoError(t, err)

	require.NoError(t, game.SetPrice(12.5))
	game.Recommended = []*models.Game{other}
	require.NoError(t, repo.UpdateGame(ctx, game))

	reloaded, err := repo.GetGame(ctx, 1066890)
	require.NoError(t, err)
	assert.Equal(t, 12.5, reloaded.Price)
	assert.Equal(t, []int{3010}, ids(reloaded.Recommended))
	assert.Len(t, reloaded.Genres, 3)
}

func testUpdateUserPersistsFavourites(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	Seed(t, repo)
	require.NoError(t, repo.AddUser(ctx, &models.User{Username: "fan", PasswordHash: "x"}))

	user, err := repo.GetUser(ctx, "fan")
	require.NoError(t, err)
	a, err := repo.GetGame(ctx, 7940)
	require.NoError(t, err)
	b, err := repo.GetGame(ctx, 3010)
	require.NoError(t, err)

	user.AddFavourite(a)
	user.AddFavourite(b)
	require.NoError(t, repo.UpdateUser(ctx, user))

	reloaded, err := repo.GetUser(ctx, "fan")
	require.NoError(t, err)
	assert.True(t, reloaded.IsFavourite(7940))
	assert.True(t, reloaded.IsFavourite(3010))

	reloaded.RemoveFavourite(7940)
	require.NoError(t, repo.UpdateUser(ctx, reloaded))

	again, err := repo.GetUser(ctx, "fan")
	require.NoError(t, err)
	assert.False(t, again.IsFavourite(7940))
	assert.True(t, again.IsFavourite(3010))
}

func testNonASCIICaseFolding(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	Seed(t, repo)
	require.NoError(t, repo.AddGame(ctx, NewGame(t, 359320, "ÉLITE Dangerous", "Apr 2, 2015", "Frontier Développements", "Simulación")))

	byTitle, err := repo.SearchGamesByTitle(ctx, "élite")
	require.NoError(t, err)
	assert.Equal(t, []int{359320}, ids(byTitle))

	byGenre, err := repo.SearchGamesByGenre(ctx, "SIMULACIÓN")
	require.NoError(t, err)
	assert.Equal(t, []int{359320}, ids(byGenre))

	byPublisher, err := repo.SearchGamesByPublisher(ctx, "DÉVELOPPEMENTS")
	require.NoError(t, err)
	assert.Equal(t, []int{359320}, ids(byPublisher))

	require.NoError(t, repo.AddUser(ctx, &models.User{Username: "Ölaf", PasswordHash: "first"}))
	require.NoError(t, repo.AddUser(ctx, &models.User{Username: "ölaf", PasswordHash: "second"}))

	u, err := repo.GetUser(ctx, "ÖLAF")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Ölaf", u.Username)
	assert.Equal(t, "first", u.PasswordHash)

	users, err := repo.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

// A game linked before it is stored keeps its own fields once it is added.
func testLinkedGameAddedLater(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	Seed(t, repo)

	game, err := repo.GetGame(ctx, 7940)
	require.NoError(t, err)
	later := NewGame(t, 500, "Later Game", "Jan 5, 2021", "Valve", "Puzzle")
	require.NoError(t, later.SetPrice(19.99))
	game.Recommended = []*models.Game{later}
	require.NoError(t, repo.UpdateGame(ctx, game))

	require.NoError(t, repo.AddUser(ctx, &models.User{Username: "fan", PasswordHash: "x"}))
	user, err := repo.GetUser(ctx, "fan")
	require.NoError(t, err)
	user.AddFavourite(later)
	require.NoError(t, repo.UpdateUser(ctx, user))

	require.NoError(t, repo.AddGame(ctx, later))

	stored, err := repo.GetGame(ctx, 500)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Later Game", stored.Title)
	assert.Equal(t, 19.99, stored.Price)
	assert.Equal(t, "Valve", stored.PublisherLabel())
	assert.True(t, stored.HasGenre("Puzzle"))

	byPublisher, err := repo.GetGamesByPublisher(ctx, &models.Publisher{Name: "Valve"})
	require.NoError(t, err)
	assert.Equal(t, []int{500}, ids(byPublisher))
}
