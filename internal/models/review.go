package models

import (
	"fmt"
	"strings"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating and comment on a game.
// It has no identity of its own: two reviews are equal when user, game,
// rating, comment and timestamp all match. ID is a storage key only.
type Review struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:255;not null;index"`
	GameID    int    `gorm:"not null;index"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"not null"`
	Timestamp string `gorm:"size:64"`

	User *User `gorm:"foreignKey:Username;references:Username"`
	Game *Game `gorm:"foreignKey:GameID"`
}

// AddReview creates a review and attaches it to both the user and the game.
// This is the only way reviews come into existence.
func AddReview(user *User, game *Game, rating int, comment, timestamp string) (*Review, error) {
	if user == nil || game == nil {
		return nil, fmt.Errorf("%w: review needs a user and a game", ErrInvalid)
	}
	if rating < MinRating || rating > MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d, got %d", ErrInvalid, MinRating, MaxRating, rating)
	}

	r := &Review{
		Username:  user.Username,
		GameID:    game.ID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		Timestamp: timestamp,
		User:      user,
		Game:      game,
	}
	if !user.HasReview(r) {
		user.Reviews = append(user.Reviews, r)
	}
	if !game.HasReview(r) {
		game.Reviews = append(game.Reviews, r)
	}
	return r, nil
}

// Equal compares the (user, game, rating, comment, timestamp) tuple.
func (r *Review) Equal(other *Review) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Username == other.Username &&
		r.GameID == other.GameID &&
		r.Rating == other.Rating &&
		r.Comment == other.Comment &&
		r.Timestamp == other.Timestamp
}

func (r *Review) String() string {
	return fmt.Sprintf("<Review %s on %d: %d>", r.Username, r.GameID, r.Rating)
}

func containsReview(reviews []*Review, r *Review) bool {
	if r == nil {
		return false
	}
	for _, existing := range reviews {
		if existing.Equal(r) {
			return true
		}
	}
	return false
}
