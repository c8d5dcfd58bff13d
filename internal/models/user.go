package models

import (
	"fmt"
	"slices"
	"strings"
)

// User represents a registered user.
// Username is the identity. Case-insensitive uniqueness is enforced by the
// repositories, not here.
type User struct {
	Username       string    `gorm:"primaryKey;size:255"`
	UsernameFold   string    `gorm:"size:255;index"`
	PasswordHash   string    `gorm:"size:255;not null"`
	Reviews        []*Review `gorm:"foreignKey:Username;references:Username"`
	FavouriteGames []*Game   `gorm:"many2many:favourites;joinForeignKey:Username;joinReferences:GameID"`
}

// NewUser creates a user from a username and an already hashed password.
func NewUser(username, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", ErrInvalid)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("%w: password must not be empty", ErrInvalid)
	}
	return &User{Username: username, PasswordHash: passwordHash}, nil
}

// AddFavourite adds a game to the user's favourites unless already present.
func (u *User) AddFavourite(g *Game) {
	if g == nil || u.IsFavourite(g.ID) {
		return
	}
	u.FavouriteGames = append(u.FavouriteGames, g)
}

// RemoveFavourite removes the game with the given ID from the favourites.
// Slices previously taken from FavouriteGames are left as they were.
func (u *User) RemoveFavourite(gameID int) {
	for i, g := range u.FavouriteGames {
		if g.ID == gameID {
			u.FavouriteGames = slices.Delete(slices.Clone(u.FavouriteGames), i, i+1)
			return
		}
	}
}

// IsFavourite reports whether the game is among the user's favourites.
func (u *User) IsFavourite(gameID int) bool {
	for _, g := range u.FavouriteGames {
		if g.ID == gameID {
			return true
		}
	}
	return false
}

// HasReview reports whether an equal review is attached to the user.
func (u *User) HasReview(r *Review) bool {
	return containsReview(u.Reviews, r)
}

// Equal reports whether both users have the same username.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Username == other.Username
}

func (u *User) String() string {
	return fmt.Sprintf("<User %s>", u.Username)
}

// CompareUsers orders users by username.
func CompareUsers(a, b *User) int {
	return strings.Compare(a.Username, b.Username)
}
