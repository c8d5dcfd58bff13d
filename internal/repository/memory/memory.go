// Package memory implements repository.Repository with sorted in-process slices.
//
// Entities are stored and handed out by pointer. Mutating an entity returned
// by GetGame or GetUser mutates the stored entity; UpdateGame and UpdateUser
// exist so callers holding a different instance can persist it explicitly.
// The mutex guards the containers only, not the entities' fields.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/repository"
)

// Repository keeps every container sorted by identity at all times.
type Repository struct {
	mu         sync.RWMutex
	games      []*models.Game
	genres     []*models.Genre
	publishers []*models.Publisher
	users      []*models.User
	reviews    []*models.Review
}

var _ repository.Repository = (*Repository)(nil)

// New constructs an empty Repository.
func New() *Repository {
	return &Repository{}
}

// insertSorted inserts v at its ordered position unless an equal element is
// already present. It reports whether v was inserted.
func insertSorted[T any](s *[]T, v T, cmp func(a, b T) int) bool {
	i, found := slices.BinarySearchFunc(*s, v, cmp)
	if found {
		return false
	}
	*s = slices.Insert(*s, i, v)
	return true
}

// replaceSorted stores v, replacing an element with the same identity.
func replaceSorted[T any](s *[]T, v T, cmp func(a, b T) int) {
	i, found := slices.BinarySearchFunc(*s, v, cmp)
	if found {
		(*s)[i] = v
		return
	}
	*s = slices.Insert(*s, i, v)
}

func (r *Repository) AddGame(_ context.Context, game *models.Game) error {
	if game == nil || game.ID <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if insertSorted(&r.games, game, models.CompareGames) {
		r.registerRelated(game)
	}
	return nil
}

// registerRelated records the game's genres and publisher the way the
// relational backend does when it saves a game. It must be called with mu held.
func (r *Repository) registerRelated(game *models.Game) {
	for _, genre := range game.Genres {
		if genre != nil && genre.Name != "" {
			insertSorted(&r.genres, genre, models.CompareGenres)
		}
	}
	if game.Publisher != nil && game.Publisher.Name != "" {
		insertSorted(&r.publishers, game.Publisher, models.ComparePublishers)
	}
}

func (r *Repository) AddGenre(_ context.Context, genre *models.Genre) error {
	if genre == nil || genre.Name == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	insertSorted(&r.genres, genre, models.CompareGenres)
	return nil
}

func (r *Repository) AddPublisher(_ context.Context, publisher *models.Publisher) error {
	if publisher == nil || publisher.Name == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	insertSorted(&r.publishers, publisher, models.ComparePublishers)
	return nil
}

// AddUser also rejects usernames that differ only in case from an existing one.
func (r *Repository) AddUser(_ context.Context, user *models.User) error {
	if user == nil || user.Username == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findUser(user.Username) != nil {
		return nil
	}
	insertSorted(&r.users, user, models.CompareUsers)
	return nil
}

func (r *Repository) AddReview(_ context.Context, review *models.Review) error {
	if review == nil {
		return nil
	}
	if !repository.ReviewLinked(review) {
		return repository.ErrReviewNotLinked
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.Equal(review) {
			return nil
		}
	}
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *Repository) GetGame(_ context.Context, id int) (*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, found := slices.BinarySearchFunc(r.games, id, func(g *models.Game, id int) int {
		return g.ID - id
	})
	if !found {
		return nil, nil
	}
	return r.games[i], nil
}

func (r *Repository) GetUser(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findUser(username), nil
}

// findUser must be called with mu held.
func (r *Repository) findUser(username string) *models.User {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}
	for _, u := range r.users {
		if models.Fold(u.Username) == models.Fold(username) {
			return u
		}
	}
	return nil
}

func (r *Repository) GetGamesByGenre(_ context.Context, genre *models.Genre) ([]*models.Game, error) {
	if genre == nil {
		return []*models.Game{}, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(g *models.Game) bool { return g.HasGenre(genre.Name) }), nil
}

func (r *Repository) GetGamesByPublisher(_ context.Context, publisher *models.Publisher) ([]*models.Game, error) {
	if publisher == nil {
		return []*models.Game{}, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(g *models.Game) bool {
		return g.PublisherLabel() != "" && g.PublisherLabel() == publisher.Name
	}), nil
}

// filter must be called with mu held. Results keep ascending id order.
func (r *Repository) filter(keep func(*models.Game) bool) []*models.Game {
	out := []*models.Game{}
	for _, g := range r.games {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

func (r *Repository) GetAllGames(_ context.Context) ([]*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.games), nil
}

func (r *Repository) GetAllGenres(_ context.Context) ([]*models.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.genres), nil
}

func (r *Repository) GetAllPublishers(_ context.Context) ([]*models.Publisher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.publishers), nil
}

func (r *Repository) GetAllUsers(_ context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.users), nil
}

func (r *Repository) SearchGamesByTitle(_ context.Context, query string) ([]*models.Game, error) {
	q := models.Fold(query)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(g *models.Game) bool {
		return strings.Contains(models.Fold(g.Title), q)
	}), nil
}

func (r *Repository) SearchGamesByGenre(_ context.Context, query string) ([]*models.Game, error) {
	q := models.Fold(query)
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[int]*models.Game)
	for _, genre := range r.genres {
		if !strings.Contains(models.Fold(genre.Name), q) {
			continue
		}
		for _, g := range r.games {
			if g.HasGenre(genre.Name) {
				found[g.ID] = g
			}
		}
	}
	return sortedGames(found), nil
}

func (r *Repository) SearchGamesByPublisher(_ context.Context, query string) ([]*models.Game, error) {
	q := models.Fold(query)
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[int]*models.Game)
	for _, p := range r.publishers {
		if !strings.Contains(models.Fold(p.Name), q) {
			continue
		}
		for _, g := range r.games {
			if g.PublisherLabel() == p.Name {
				found[g.ID] = g
			}
		}
	}
	return sortedGames(found), nil
}

// sortedGames flattens an id-keyed set into ascending id order.
func sortedGames(set map[int]*models.Game) []*models.Game {
	out := make([]*models.Game, 0, len(set))
	for _, g := range set {
		out = append(out, g)
	}
	slices.SortFunc(out, models.CompareGames)
	return out
}

func (r *Repository) SortGamesByDate(games []*models.Game) []*models.Game {
	return repository.SortGamesByDate(games)
}

func (r *Repository) UpdateGame(_ context.Context, game *models.Game) error {
	if game == nil || game.ID <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	replaceSorted(&r.games, game, models.CompareGames)
	r.registerRelated(game)
	return nil
}

func (r *Repository) UpdateUser(_ context.Context, user *models.User) error {
	if user == nil || user.Username == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.findUser(user.Username); existing != nil && existing.Username != user.Username {
		// A different account already owns this name in another case.
		return nil
	}
	replaceSorted(&r.users, user, models.CompareUsers)
	return nil
}
