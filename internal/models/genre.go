package models

import (
	"fmt"
	"strings"
)

// Genre represents a game category (e.g., "Action", "Indie").
// Name is the identity and is case-sensitive.
type Genre struct {
	Name     string `gorm:"primaryKey;size:64"`
	NameFold string `gorm:"size:64;index"`
}

// NewGenre creates a genre, trimming surrounding whitespace from the name.
func NewGenre(name string) (*Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: genre name must not be empty", ErrInvalid)
	}
	return &Genre{Name: name}, nil
}

func (g *Genre) String() string {
	return fmt.Sprintf("<Genre %s>", g.Name)
}

// CompareGenres orders genres by name.
func CompareGenres(a, b *Genre) int {
	return strings.Compare(a.Name, b.Name)
}
