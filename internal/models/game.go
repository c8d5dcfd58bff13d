package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ReleaseDateLayout is the layout release dates are stored in, e.g. "Oct 21, 2008".
const ReleaseDateLayout = "Jan 2, 2006"

// Game represents a game in the catalog.
// ID is the identity: it is set by NewGame and must not change afterwards.
type Game struct {
	ID            int        `gorm:"primaryKey;autoIncrement:false"`
	Title         string     `gorm:"not null"`
	TitleFold     string     `gorm:"index"`
	Price         float64    `gorm:"not null;default:0"`
	ReleaseDate   string     `gorm:"size:50"`
	Description   string
	ImageURL      string     `gorm:"size:512"`
	WebsiteURL    string     `gorm:"size:512"`
	TrailerURL    string     `gorm:"size:512"`
	AverageRating float64    `gorm:"not null;default:0"`
	PublisherName *string    `gorm:"size:255;index"`
	Publisher     *Publisher `gorm:"foreignKey:PublisherName;references:Name"`
	Genres        []*Genre   `gorm:"many2many:game_genres;joinForeignKey:GameID;joinReferences:GenreName"`
	Reviews       []*Review  `gorm:"foreignKey:GameID"`

	// Recommended is computed on first detail view and kept from then on.
	// An empty slice means "not computed yet".
	Recommended []*Game `gorm:"many2many:recommended_games;joinForeignKey:GameID;joinReferences:RecommendedGameID"`
}

// NewGame creates a game with the given identity and title.
func NewGame(id int, title string) (*Game, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: game id must be positive, got %d", ErrInvalid, id)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: game title must not be empty", ErrInvalid)
	}
	return &Game{ID: id, Title: title}, nil
}

// SetPrice sets the price. Negative prices are rejected.
func (g *Game) SetPrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative, got %v", ErrInvalid, price)
	}
	g.Price = price
	return nil
}

// SetPublisher links the game to a publisher. A nil publisher clears it.
func (g *Game) SetPublisher(p *Publisher) {
	g.Publisher = p
	if p == nil {
		g.PublisherName = nil
		return
	}
	name := p.Name
	g.PublisherName = &name
}

// PublisherLabel returns the publisher name or an empty string.
func (g *Game) PublisherLabel() string {
	if g.Publisher != nil {
		return g.Publisher.Name
	}
	if g.PublisherName != nil {
		return *g.PublisherName
	}
	return ""
}

// AddGenre adds a genre unless one with the same name is already present.
func (g *Game) AddGenre(genre *Genre) {
	if genre == nil || g.HasGenre(genre.Name) {
		return
	}
	g.Genres = append(g.Genres, genre)
}

// RemoveGenre removes the genre with the given name, if present.
// Slices previously taken from Genres are left as they were.
func (g *Game) RemoveGenre(name string) {
	for i, genre := range g.Genres {
		if genre.Name == name {
			g.Genres = slices.Delete(slices.Clone(g.Genres), i, i+1)
			return
		}
	}
}

// HasGenre reports whether the game belongs to the named genre.
func (g *Game) HasGenre(name string) bool {
	for _, genre := range g.Genres {
		if genre.Name == name {
			return true
		}
	}
	return false
}

// HasReview reports whether an equal review is attached to the game.
func (g *Game) HasReview(r *Review) bool {
	return containsReview(g.Reviews, r)
}

// UpdateAverageRating recomputes AverageRating from the attached reviews.
func (g *Game) UpdateAverageRating() {
	if len(g.Reviews) == 0 {
		g.AverageRating = 0
		return
	}
	total := 0
	for _, r := range g.Reviews {
		total += r.Rating
	}
	g.AverageRating = float64(total) / float64(len(g.Reviews))
}

// ReleaseTime parses ReleaseDate. ok is false when the date is missing or malformed.
func (g *Game) ReleaseTime() (t time.Time, ok bool) {
	t, err := time.Parse(ReleaseDateLayout, strings.TrimSpace(g.ReleaseDate))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Equal reports whether both games have the same identity.
func (g *Game) Equal(other *Game) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.ID == other.ID
}

func (g *Game) String() string {
	return fmt.Sprintf("<Game %d, %s>", g.ID, g.Title)
}

// CompareGames orders games by ID.
func CompareGames(a, b *Game) int {
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}
