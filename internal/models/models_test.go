package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGame(t *testing.T, id int, title string) *Game {
	t.Helper()
	g, err := NewGame(id, title)
	require.NoError(t, err)
	return g
}

func TestNewGame_Validation(t *testing.T) {
	tests := []struct {
		name    string
		id      int
		title   string
		wantErr bool
	}{
		{"valid", 7940, "Call of Duty 4", false},
		{"zero id", 0, "Nope", true},
		{"negative id", -3, "Nope", true},
		{"blank title", 12, "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGame(tt.id, tt.title)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalid))
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, g.ID)
		})
	}
}

func TestGame_EqualityByIDOnly(t *testing.T) {
	a := mustGame(t, 4, "The Sims 4")
	b := mustGame(t, 4, "Renamed")
	c := mustGame(t, 127, "The Sims 4")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, -1, CompareGames(a, c))
	assert.Equal(t, 1, CompareGames(c, a))
	assert.Equal(t, 0, CompareGames(a, b))
}

func TestGame_SetPriceRejectsNegative(t *testing.T) {
	g := mustGame(t, 1, "Game")
	require.NoError(t, g.SetPrice(9.99))
	assert.Error(t, g.SetPrice(-1))
	assert.Equal(t, 9.99, g.Price)
}

func TestGame_GenresAreASet(t *testing.T) {
	g := mustGame(t, 1, "Game")
	action, _ := NewGenre("Action")
	g.AddGenre(action)
	g.AddGenre(&Genre{Name: "Action"})
	g.AddGenre(nil)
	assert.Len(t, g.Genres, 1)

	// Names are case-sensitive.
	g.AddGenre(&Genre{Name: "action"})
	assert.Len(t, g.Genres, 2)

	g.RemoveGenre("Action")
	assert.False(t, g.HasGenre("Action"))
	assert.True(t, g.HasGenre("action"))
}

func TestGame_SetPublisher(t *testing.T) {
	g := mustGame(t, 1, "Game")
	assert.Equal(t, "", g.PublisherLabel())

	p, _ := NewPublisher("Activision")
	g.SetPublisher(p)
	require.NotNil(t, g.PublisherName)
	assert.Equal(t, "Activision", *g.PublisherName)
	assert.Equal(t, "Activision", g.PublisherLabel())

	g.SetPublisher(nil)
	assert.Nil(t, g.PublisherName)
}

func TestGame_ReleaseTime(t *testing.T) {
	g := mustGame(t, 1, "Game")
	g.ReleaseDate = "Oct 21, 2008"
	rt, ok := g.ReleaseTime()
	require.True(t, ok)
	assert.Equal(t, 2008, rt.Year())

	g.ReleaseDate = "sometime"
	_, ok = g.ReleaseTime()
	assert.False(t, ok)
}

func TestAddReview_AttachesToBothSides(t *testing.T) {
	u, err := NewUser("marklee", "digest")
	require.NoError(t, err)
	g := mustGame(t, 316260, "Disney Infinity 3.0")

	r, err := AddReview(u, g, 4, "  fun  ", "2023-10-01 12:00:00")
	require.NoError(t, err)

	assert.Equal(t, "fun", r.Comment)
	assert.Same(t, u, r.User)
	assert.Same(t, g, r.Game)
	assert.True(t, u.HasReview(r))
	assert.True(t, g.HasReview(r))

	// Same tuple again is not attached twice.
	_, err = AddReview(u, g, 4, "fun", "2023-10-01 12:00:00")
	require.NoError(t, err)
	assert.Len(t, u.Reviews, 1)
	assert.Len(t, g.Reviews, 1)
}

func TestAddReview_RejectsBadInput(t *testing.T) {
	u, _ := NewUser("marklee", "digest")
	g := mustGame(t, 1, "Game")

	for _, rating := range []int{0, 6, -1} {
		_, err := AddReview(u, g, rating, "x", "now")
		assert.ErrorIs(t, err, ErrInvalid)
	}
	_, err := AddReview(nil, g, 3, "x", "now")
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, g.Reviews)
}

func TestGame_UpdateAverageRating(t *testing.T) {
	u, _ := NewUser("a", "digest")
	g := mustGame(t, 1, "Game")
	g.UpdateAverageRating()
	assert.Equal(t, 0.0, g.AverageRating)

	_, _ = AddReview(u, g, 5, "great", "t1")
	_, _ = AddReview(u, g, 2, "meh", "t2")
	g.UpdateAverageRating()
	assert.Equal(t, 3.5, g.AverageRating)
}

func TestUser_Favourites(t *testing.T) {
	u, _ := NewUser("marklee", "digest")
	g := mustGame(t, 1, "Game")

	u.AddFavourite(g)
	u.AddFavourite(mustGame(t, 1, "Same id"))
	assert.Len(t, u.FavouriteGames, 1)
	assert.True(t, u.IsFavourite(1))

	u.RemoveFavourite(1)
	assert.False(t, u.IsFavourite(1))
}

func TestRemove_KeepsEarlierSlices(t *testing.T) {
	g := mustGame(t, 1, "Game")
	for _, name := range []string{"Action", "Indie", "Racing"} {
		g.AddGenre(&Genre{Name: name})
	}
	genres := g.Genres
	g.RemoveGenre("Action")
	assert.Equal(t, []string{"Action", "Indie", "Racing"}, []string{genres[0].Name, genres[1].Name, genres[2].Name})
	require.Len(t, g.Genres, 2)
	assert.Equal(t, "Indie", g.Genres[0].Name)

	u, _ := NewUser("marklee", "digest")
	for id := 1; id <= 3; id++ {
		u.AddFavourite(mustGame(t, id, "Game"))
	}
	favourites := u.FavouriteGames
	u.RemoveFavourite(1)
	assert.Equal(t, 1, favourites[0].ID)
	assert.Equal(t, 2, favourites[1].ID)
	assert.Equal(t, 3, favourites[2].ID)
	assert.False(t, u.IsFavourite(1))
	assert.Len(t, u.FavouriteGames, 2)
}

func TestUser_EqualityIsCaseSensitive(t *testing.T) {
	a, _ := NewUser("MarkLee", "x")
	b, _ := NewUser("marklee", "x")
	assert.False(t, a.Equal(b))
	assert.Negative(t, CompareUsers(a, b))
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser(" ", "digest")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = NewUser("name", "")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestNewGenreAndPublisher_Trim(t *testing.T) {
	g, err := NewGenre("  Indie ")
	require.NoError(t, err)
	assert.Equal(t, "Indie", g.Name)

	_, err = NewGenre("")
	assert.ErrorIs(t, err, ErrInvalid)

	p, err := NewPublisher(" Valve ")
	require.NoError(t, err)
	assert.Equal(t, "Valve", p.Name)
	assert.Equal(t, -1, ComparePublishers(&Publisher{Name: "EA Sports"}, p))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "élite dangerous", Fold("ÉLITE Dangerous"))
	assert.Equal(t, Fold("Ölaf"), Fold("öLAF"))

	g := mustGame(t, 1, "ÉLITE")
	require.NoError(t, g.BeforeSave(nil))
	assert.Equal(t, "élite", g.TitleFold)

	u := &User{Username: "Ölaf"}
	require.NoError(t, u.BeforeSave(nil))
	assert.Equal(t, "ölaf", u.UsernameFold)

	genre := &Genre{Name: "Simulación"}
	require.NoError(t, genre.BeforeSave(nil))
	assert.Equal(t, "simulación", genre.NameFold)

	p := &Publisher{Name: "Développeur"}
	require.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, "développeur", p.NameFold)
}
