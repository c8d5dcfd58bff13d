package ingest

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gamecatalog/backend/internal/models"
)

// Hasher hashes plaintext passwords found in the users file.
type Hasher interface {
	Hash(plain string) (string, error)
}

type userRow struct {
	Username  string `validate:"required"`
	Password  string `validate:"required"`
	Reviews   []reviewRow
	Favourite []int `validate:"dive,gt=0"`
}

// reviewRow is one pipe-separated "gameId,title,rating,comment,date" entry.
type reviewRow struct {
	GameID    int    `validate:"gt=0"`
	Rating    int    `validate:"min=1,max=5"`
	Comment   string
	Timestamp string
}

// UserSet is the content of a users file. Every review is already attached
// to its user and its catalog game.
type UserSet struct {
	Users   []*models.User
	Reviews []*models.Review
	Skipped int
}

// ReadUsers parses a users export against an already loaded catalog.
// Rows referencing unknown games, and usernames already seen in any case,
// are skipped.
func ReadUsers(r io.Reader, catalog *Catalog, hasher Hasher) (*UserSet, error) {
	t, err := newTable("users.csv", r)
	if err != nil {
		return nil, err
	}

	set := &UserSet{}
	seen := map[string]bool{}
	for {
		rec, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if !malformed(err) {
				return nil, fmt.Errorf("read %s: %w", t.name, err)
			}
			skip(t, err)
			set.Skipped++
			continue
		}

		parsed, err := parseUserRow(rec, catalog)
		if err == nil && seen[models.Fold(parsed.Username)] {
			err = fmt.Errorf("duplicate username %q", parsed.Username)
		}
		if err != nil {
			skip(t, err)
			set.Skipped++
			continue
		}

		user, reviews, err := parsed.toUser(catalog, hasher)
		if err != nil {
			skip(t, err)
			set.Skipped++
			continue
		}
		seen[models.Fold(user.Username)] = true
		set.Users = append(set.Users, user)
		set.Reviews = append(set.Reviews, reviews...)
	}
	return set, nil
}

func parseUserRow(rec row, catalog *Catalog) (*userRow, error) {
	fields := map[string]string{}
	for _, column := range []string{"Username", "Password", "Reviews", "Favourites"} {
		v, err := rec.get(column)
		if err != nil {
			return nil, err
		}
		fields[column] = v
	}

	parsed := &userRow{
		Username: strings.TrimSpace(fields["Username"]),
		Password: fields["Password"],
	}
	for _, entry := range splitList(fields["Reviews"], "|") {
		review, err := parseReview(entry)
		if err != nil {
			return nil, err
		}
		parsed.Reviews = append(parsed.Reviews, review)
	}
	for _, entry := range splitList(fields["Favourites"], "|") {
		id, err := strconv.Atoi(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid favourite %q: %w", entry, err)
		}
		parsed.Favourite = append(parsed.Favourite, id)
	}
	if err := validate.Struct(parsed); err != nil {
		return nil, err
	}

	for _, rv := range parsed.Reviews {
		if err := validate.Struct(rv); err != nil {
			return nil, err
		}
		if catalog.Game(rv.GameID) == nil {
			return nil, fmt.Errorf("review references unknown game %d", rv.GameID)
		}
	}
	for _, id := range parsed.Favourite {
		if catalog.Game(id) == nil {
			return nil, fmt.Errorf("favourite references unknown game %d", id)
		}
	}
	return parsed, nil
}

// parseReview reads "gameId,title,rating,comment,date". The comment may
// itself contain commas; the date is always the last field.
func parseReview(entry string) (reviewRow, error) {
	parts := strings.Split(entry, ",")
	if len(parts) < 5 {
		return reviewRow{}, fmt.Errorf("review %q: want 5 fields, got %d", entry, len(parts))
	}
	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return reviewRow{}, fmt.Errorf("review %q: invalid game id: %w", entry, err)
	}
	rating, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return reviewRow{}, fmt.Errorf("review %q: invalid rating: %w", entry, err)
	}
	last := len(parts) - 1
	return reviewRow{
		GameID:    id,
		Rating:    rating,
		Comment:   strings.TrimSpace(strings.Join(parts[3:last], ",")),
		Timestamp: strings.TrimSpace(parts[last]),
	}, nil
}

func (r *userRow) toUser(catalog *Catalog, hasher Hasher) (*models.User, []*models.Review, error) {
	digest := r.Password
	if !isBcryptDigest(digest) {
		var err error
		if digest, err = hasher.Hash(r.Password); err != nil {
			return nil, nil, fmt.Errorf("hash password for %q: %w", r.Username, err)
		}
	}
	user, err := models.NewUser(r.Username, digest)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range r.Favourite {
		user.AddFavourite(catalog.Game(id))
	}

	reviews := make([]*models.Review, 0, len(r.Reviews))
	for _, rv := range r.Reviews {
		review, err := models.AddReview(user, catalog.Game(rv.GameID), rv.Rating, rv.Comment, rv.Timestamp)
		if err != nil {
			return nil, nil, err
		}
		reviews = append(reviews, review)
	}
	return user, reviews, nil
}

func isBcryptDigest(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) && len(s) == 60 {
			return true
		}
	}
	return false
}
