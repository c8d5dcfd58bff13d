package ingest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gamecatalog/backend/internal/logging"
	"gamecatalog/backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gamesHeader = "AppID,Name,Release date,Price,About the game,Header image,Website,Movies,Screenshots,Publishers,Genres\n"

const gamesCSV = "\ufeff" + gamesHeader +
	`7940,Call of Duty 4,"Nov 12, 2007",9.99,Modern warfare.,https://cdn.example.com/7940.jpg,,https://cdn.example.com/7940.mp4,,Activision,Action` + "\n" +
	`3010,Xpand Rally,"Jan 1, 2004",4.99,Rally racing.,https://cdn.example.com/3010.jpg,http://xpand.example.com,,"https://cdn.example.com/s1.jpg,https://cdn.example.com/s2.jpg",Techland,"Racing,Simulation"` + "\n" +
	`1066890,Automobilista 2,"Mar 20, 2020",24.99,Sim racing.,https://cdn.example.com/1066890.jpg,,,,Reiza Studios,"Racing, Simulation, Indie"` + "\n" +
	`abc,Broken id,"Jan 1, 2020",1.00,,,,,,Nobody,Action` + "\n" +
	`12,Broken price,"Jan 1, 2020",free,,,,,,Nobody,Action` + "\n" +
	`13,,"Jan 1, 2020",1.00,,,,,,Nobody,Action` + "\n" +
	`7940,Duplicate,"Jan 1, 2020",1.00,,,,,,Nobody,Action` + "\n" +
	`14,Short row` + "\n"

const usersCSV = "Username,Password,Reviews,Favourites\n" +
	`marklee,Password1,"7940,Call of Duty 4,5,Great game, loved it,2023-10-01 10:00:00|3010,Xpand Rally,3,ok,2023-10-02 10:00:00",3010|7940` + "\n" +
	`MarkLee,Password1,,` + "\n" +
	`ghost,Password1,"999,Missing,4,nope,2023-10-01 10:00:00",` + "\n" +
	`badrating,Password1,"7940,Call of Duty 4,9,too high,2023-10-01 10:00:00",` + "\n" +
	`hashed,$2a$10$abcdefghijklmnopqrstuuK8o9j1Rz2VdCeTfV1rZ2F3L4N5P6Q7W,,1066890` + "\n"

type fakeHasher struct{ calls int }

func (h *fakeHasher) Hash(plain string) (string, error) {
	h.calls++
	return "digest:" + plain, nil
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.Config{Level: "info"}) })
	return &buf
}

func TestReadGames(t *testing.T) {
	logs := captureLogs(t)

	catalog, err := ReadGames(strings.NewReader(gamesCSV))
	require.NoError(t, err)

	require.Len(t, catalog.Games, 3)
	assert.Equal(t, 3010, catalog.Games[0].ID)
	assert.Equal(t, 7940, catalog.Games[1].ID)
	assert.Equal(t, 1066890, catalog.Games[2].ID)
	assert.Equal(t, 5, catalog.Skipped)
	assert.Contains(t, logs.String(), "skipping row")

	cod := catalog.Game(7940)
	require.NotNil(t, cod)
	assert.Equal(t, "Call of Duty 4", cod.Title)
	assert.Equal(t, 9.99, cod.Price)
	assert.Equal(t, "Nov 12, 2007", cod.ReleaseDate)
	assert.Equal(t, "https://cdn.example.com/7940.mp4", cod.TrailerURL)
	assert.Equal(t, "Activision", cod.PublisherLabel())

	rally := catalog.Game(3010)
	require.NotNil(t, rally)
	assert.Equal(t, "https://cdn.example.com/s1.jpg", rally.TrailerURL, "falls back to the first screenshot")
	assert.Equal(t, "http://xpand.example.com", rally.WebsiteURL)

	sim := catalog.Game(1066890)
	require.NotNil(t, sim)
	assert.Empty(t, sim.TrailerURL)
	assert.True(t, sim.HasGenre("Indie"))

	// Genre instances are shared across games.
	var names []string
	for _, g := range catalog.Genres {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Action", "Indie", "Racing", "Simulation"}, names)
	assert.Same(t, rally.Genres[0], sim.Genres[0])

	require.Len(t, catalog.Publishers, 3)
	assert.Nil(t, catalog.Game(12))
}

func TestReadGames_EmptyInput(t *testing.T) {
	_, err := ReadGames(strings.NewReader(""))
	assert.Error(t, err)

	catalog, err := ReadGames(strings.NewReader(gamesHeader))
	require.NoError(t, err)
	assert.Empty(t, catalog.Games)
}

func TestReadUsers(t *testing.T) {
	captureLogs(t)
	catalog, err := ReadGames(strings.NewReader(gamesCSV))
	require.NoError(t, err)

	hasher := &fakeHasher{}
	set, err := ReadUsers(strings.NewReader(usersCSV), catalog, hasher)
	require.NoError(t, err)

	require.Len(t, set.Users, 2)
	assert.Equal(t, 3, set.Skipped)

	mark := set.Users[0]
	assert.Equal(t, "marklee", mark.Username)
	assert.Equal(t, "digest:Password1", mark.PasswordHash)
	assert.True(t, mark.IsFavourite(3010))
	assert.True(t, mark.IsFavourite(7940))

	require.Len(t, mark.Reviews, 2)
	assert.Equal(t, "Great game, loved it", mark.Reviews[0].Comment)
	assert.Equal(t, 5, mark.Reviews[0].Rating)
	assert.Equal(t, "2023-10-01 10:00:00", mark.Reviews[0].Timestamp)
	assert.True(t, catalog.Game(7940).HasReview(mark.Reviews[0]))
	assert.Len(t, set.Reviews, 2)

	hashed := set.Users[1]
	assert.True(t, strings.HasPrefix(hashed.PasswordHash, "$2a$10$"), "existing digests are kept")
	assert.Equal(t, 1, hasher.calls)
}

func TestParseReview(t *testing.T) {
	r, err := parseReview("7940, Call of Duty 4, 4, fun, 2023-10-01")
	require.NoError(t, err)
	assert.Equal(t, reviewRow{GameID: 7940, Rating: 4, Comment: "fun", Timestamp: "2023-10-01"}, r)

	_, err = parseReview("7940,Call of Duty 4,4")
	assert.Error(t, err)
	_, err = parseReview("x,Call of Duty 4,4,fun,2023")
	assert.Error(t, err)
}

func TestPopulate(t *testing.T) {
	captureLogs(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, GamesFile), []byte(gamesCSV), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile), []byte(usersCSV), 0o600))

	ctx := context.Background()
	repo := memory.New()
	report, err := Populate(ctx, repo, dir, &fakeHasher{}, Options{Users: true})
	require.NoError(t, err)

	assert.Equal(t, Report{Games: 3, Genres: 4, Publishers: 3, Users: 2, Reviews: 2, Skipped: 8}, report)

	games, err := repo.GetAllGames(ctx)
	require.NoError(t, err)
	assert.Len(t, games, 3)

	user, err := repo.GetUser(ctx, "MARKLEE")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Len(t, user.Reviews, 2)

	cod, err := repo.GetGame(ctx, 7940)
	require.NoError(t, err)
	assert.Equal(t, 5.0, cod.AverageRating)
}

func TestPopulate_GamesOnly(t *testing.T) {
	captureLogs(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, GamesFile), []byte(gamesCSV), 0o600))

	ctx := context.Background()
	repo := memory.New()
	report, err := Populate(ctx, repo, dir, &fakeHasher{}, Options{Users: true})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Users)

	users, err := repo.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestPopulate_MissingGamesFile(t *testing.T) {
	_, err := Populate(context.Background(), memory.New(), t.TempDir(), &fakeHasher{}, Options{})
	assert.Error(t, err)
}
