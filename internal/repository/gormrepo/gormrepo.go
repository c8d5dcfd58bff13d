// Package gormrepo implements repository.Repository on a relational database through gorm.
package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides gorm-based persistence for the catalog.
// The zero value is not usable; construct it with New.
type Repository struct {
	db     *gorm.DB
	closed atomic.Bool
}

var (
	_ repository.Repository = (*Repository)(nil)
	_ repository.Sessioner  = (*Repository)(nil)
)

// AutoMigrate creates or updates every table the repository needs, then
// fills fold columns on rows written before those columns existed.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Publisher{},
		&models.Genre{},
		&models.Game{},
		&models.User{},
		&models.Review{},
	)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := refold[models.Publisher](tx, "name_fold"); err != nil {
			return err
		}
		if err := refold[models.Genre](tx, "name_fold"); err != nil {
			return err
		}
		if err := refold[models.Game](tx, "title_fold"); err != nil {
			return err
		}
		return refold[models.User](tx, "username_fold")
	})
}

// refold re-saves rows whose fold column is still empty so their BeforeSave hook fills it.
func refold[T any](tx *gorm.DB, column string) error {
	var rows []*T
	if err := tx.Where(column + " = '' OR " + column + " IS NULL").Find(&rows).Error; err != nil {
		return fmt.Errorf("refold %s: %w", column, err)
	}
	for _, row := range rows {
		if err := tx.Omit(clause.Associations).Save(row).Error; err != nil {
			return fmt.Errorf("refold %s: %w", column, err)
		}
	}
	return nil
}

// New wraps an open database handle.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Session returns a repository bound to ctx on a fresh gorm session.
// After release is called every operation on it fails with ErrSessionClosed.
func (r *Repository) Session(ctx context.Context) (repository.Repository, func()) {
	s := &Repository{db: r.db.Session(&gorm.Session{NewDB: true, Context: ctx})}
	return s, func() { s.closed.Store(true) }
}

func (r *Repository) conn(ctx context.Context) (*gorm.DB, error) {
	if r.closed.Load() {
		return nil, repository.ErrSessionClosed
	}
	if ctx == nil {
		return r.db, nil
	}
	return r.db.WithContext(ctx), nil
}

// write runs fn in a transaction that commits when fn returns nil and rolls back otherwise.
func (r *Repository) write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(fn)
}

func exists(tx *gorm.DB, model any, query string, args ...any) (bool, error) {
	var n int64
	if err := tx.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// region --- Adds ---

func (r *Repository) AddGame(ctx context.Context, game *models.Game) error {
	if game == nil || game.ID <= 0 {
		return nil
	}
	err := r.write(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.Game{}, "id = ?", game.ID)
		if err != nil || found {
			return err
		}
		if err := savePublisher(tx, game); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(game).Error; err != nil {
			return err
		}
		return replaceGameLinks(tx, game)
	})
	if err != nil {
		return fmt.Errorf("add game %d: %w", game.ID, err)
	}
	return nil
}

func (r *Repository) AddGenre(ctx context.Context, genre *models.Genre) error {
	if genre == nil || genre.Name == "" {
		return nil
	}
	err := r.write(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(genre).Error
	})
	if err != nil {
		return fmt.Errorf("add genre %q: %w", genre.Name, err)
	}
	return nil
}

func (r *Repository) AddPublisher(ctx context.Context, publisher *models.Publisher) error {
	if publisher == nil || publisher.Name == "" {
		return nil
	}
	err := r.write(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(publisher).Error
	})
	if err != nil {
		return fmt.Errorf("add publisher %q: %w", publisher.Name, err)
	}
	return nil
}

// AddUser also treats usernames differing only in case as the same identity.
func (r *Repository) AddUser(ctx context.Context, user *models.User) error {
	if user == nil || user.Username == "" {
		return nil
	}
	err := r.write(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.User{}, "username_fold = ?", models.Fold(user.Username))
		if err != nil || found {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		return replaceFavourites(tx, user)
	})
	if err != nil {
		return fmt.Errorf("add user %q: %w", user.Username, err)
	}
	return nil
}

func (r *Repository) AddReview(ctx context.Context, review *models.Review) error {
	if review == nil {
		return nil
	}
	if !repository.ReviewLinked(review) {
		return repository.ErrReviewNotLinked
	}
	review.Username = review.User.Username
	review.GameID = review.Game.ID

	err := r.write(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.Review{},
			"username = ? AND game_id = ? AND rating = ? AND comment = ? AND timestamp = ?",
			review.Username, review.GameID, review.Rating, review.Comment, review.Timestamp)
		if err != nil || found {
			return err
		}
		return tx.Omit(clause.Associations).Create(review).Error
	})
	if err != nil {
		return fmt.Errorf("add review by %q on %d: %w", review.Username, review.GameID, err)
	}
	return nil
}

// endregion

// region --- Reads ---

func preloadGames(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Publisher").
		Preload("Genres").
		Preload("Reviews", orderByID).
		Preload("Recommended").
		Preload("Recommended.Publisher").
		Preload("Recommended.Genres")
}

func preloadUsers(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Reviews", orderByID).
		Preload("Reviews.Game").
		Preload("FavouriteGames").
		Preload("FavouriteGames.Publisher").
		Preload("FavouriteGames.Genres")
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// normalizeGames applies the in-process orderings the relational store does not guarantee.
func normalizeGames(games []*models.Game) []*models.Game {
	for _, g := range games {
		slices.SortFunc(g.Genres, models.CompareGenres)
		g.Recommended = repository.SortGamesByDate(g.Recommended)
	}
	slices.SortFunc(games, models.CompareGames)
	return games
}

func (r *Repository) findGames(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*models.Game, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	games := []*models.Game{}
	if err := preloadGames(scope(db)).Find(&games).Error; err != nil {
		return nil, err
	}
	return normalizeGames(games), nil
}

func (r *Repository) GetGame(ctx context.Context, id int) (*models.Game, error) {
	if id <= 0 {
		return nil, nil
	}
	games, err := r.findGames(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id).Limit(1)
	})
	if err != nil {
		return nil, fmt.Errorf("get game %d: %w", id, err)
	}
	if len(games) == 0 {
		return nil, nil
	}
	return games[0], nil
}

func (r *Repository) GetUser(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil
	}
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	err = preloadUsers(db).Where("username_fold = ?", models.Fold(username)).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	normalizeGames(user.FavouriteGames)
	return &user, nil
}

func (r *Repository) GetGamesByGenre(ctx context.Context, genre *models.Genre) ([]*models.Game, error) {
	if genre == nil {
		return []*models.Game{}, nil
	}
	games, err := r.findGames(ctx, func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).Table("game_genres").
			Select("game_id").Where("genre_name = ?", genre.Name)
		return db.Where("id IN (?)", sub)
	})
	if err != nil {
		return nil, fmt.Errorf("games by genre %q: %w", genre.Name, err)
	}
	return games, nil
}

func (r *Repository) GetGamesByPublisher(ctx context.Context, publisher *models.Publisher) ([]*models.Game, error) {
	if publisher == nil {
		return []*models.Game{}, nil
	}
	games, err := r.findGames(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("publisher_name = ?", publisher.Name)
	})
	if err != nil {
		return nil, fmt.Errorf("games by publisher %q: %w", publisher.Name, err)
	}
	return games, nil
}

func (r *Repository) GetAllGames(ctx context.Context) ([]*models.Game, error) {
	games, err := r.findGames(ctx, func(db *gorm.DB) *gorm.DB { return db })
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (r *Repository) GetAllGenres(ctx context.Context) ([]*models.Genre, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	genres := []*models.Genre{}
	if err := db.Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	slices.SortFunc(genres, models.CompareGenres)
	return genres, nil
}

func (r *Repository) GetAllPublishers(ctx context.Context) ([]*models.Publisher, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	publishers := []*models.Publisher{}
	if err := db.Find(&publishers).Error; err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	slices.SortFunc(publishers, models.ComparePublishers)
	return publishers, nil
}

func (r *Repository) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	users := []*models.User{}
	if err := preloadUsers(db).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	slices.SortFunc(users, models.CompareUsers)
	return users, nil
}

// likePattern builds a case-folded substring pattern, escaping LIKE wildcards.
// It is matched against the *_fold columns, which hold models.Fold of the name.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(models.Fold(query))
	return "%" + escaped + "%"
}

func (r *Repository) SearchGamesByTitle(ctx context.Context, query string) ([]*models.Game, error) {
	games, err := r.findGames(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where(`title_fold LIKE ? ESCAPE '\'`, likePattern(query))
	})
	if err != nil {
		return nil, fmt.Errorf("search titles %q: %w", query, err)
	}
	return games, nil
}

func (r *Repository) SearchGamesByGenre(ctx context.Context, query string) ([]*models.Game, error) {
	games, err := r.findGames(ctx, func(db *gorm.DB) *gorm.DB {
		fresh := db.Session(&gorm.Session{NewDB: true})
		names := fresh.Model(&models.Genre{}).
			Select("name").Where(`name_fold LIKE ? ESCAPE '\'`, likePattern(query))
		sub := fresh.Table("game_genres").Select("game_id").Where("genre_name IN (?)", names)
		return db.Where("id IN (?)", sub)
	})
	if err != nil {
		return nil, fmt.Errorf("search genres %q: %w", query, err)
	}
	return games, nil
}

func (r *Repository) SearchGamesByPublisher(ctx context.Context, query string) ([]*models.Game, error) {
	games, err := r.findGames(ctx, func(db *gorm.DB) *gorm.DB {
		names := db.Session(&gorm.Session{NewDB: true}).Model(&models.Publisher{}).
			Select("name").Where(`name_fold LIKE ? ESCAPE '\'`, likePattern(query))
		return db.Where("publisher_name IN (?)", names)
	})
	if err != nil {
		return nil, fmt.Errorf("search publishers %q: %w", query, err)
	}
	return games, nil
}

func (r *Repository) SortGamesByDate(games []*models.Game) []*models.Game {
	return repository.SortGamesByDate(games)
}

// endregion

// region --- Updates ---

// UpdateGame upserts the game row and replaces its genre and recommendation sets.
// Reviews are recorded through AddReview only.
func (r *Repository) UpdateGame(ctx context.Context, game *models.Game) error {
	if game == nil || game.ID <= 0 {
		return nil
	}
	err := r.write(ctx, func(tx *gorm.DB) error {
		if err := savePublisher(tx, game); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(game).Error; err != nil {
			return err
		}
		return replaceGameLinks(tx, game)
	})
	if err != nil {
		return fmt.Errorf("update game %d: %w", game.ID, err)
	}
	return nil
}

// UpdateUser upserts the user row and replaces the favourites set.
func (r *Repository) UpdateUser(ctx context.Context, user *models.User) error {
	if user == nil || user.Username == "" {
		return nil
	}
	err := r.write(ctx, func(tx *gorm.DB) error {
		clash, err := exists(tx, &models.User{},
			"username_fold = ? AND username <> ?", models.Fold(user.Username), user.Username)
		if err != nil || clash {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(user).Error; err != nil {
			return err
		}
		return replaceFavourites(tx, user)
	})
	if err != nil {
		return fmt.Errorf("update user %q: %w", user.Username, err)
	}
	return nil
}

// savePublisher makes sure the game's publisher row exists and the foreign key is set.
func savePublisher(tx *gorm.DB, game *models.Game) error {
	if game.Publisher == nil {
		return nil
	}
	game.SetPublisher(game.Publisher)
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Publisher{Name: game.Publisher.Name}).Error
}

// replaceGameLinks rewrites the game's many-to-many rows. Associations are
// replaced through a key-only owner and key-only targets so gorm never
// cascades into reviews or overwrites the caller's slices.
func replaceGameLinks(tx *gorm.DB, game *models.Game) error {
	owner := &models.Game{ID: game.ID}

	genres := make([]*models.Genre, 0, len(game.Genres))
	for _, g := range game.Genres {
		if g != nil && g.Name != "" {
			genres = append(genres, &models.Genre{Name: g.Name})
		}
	}
	if len(genres) > 0 {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&genres).Error; err != nil {
			return err
		}
	}
	if err := replaceAssociation(tx, owner, "Genres", genres, len(genres)); err != nil {
		return err
	}

	recommended, err := storedGameKeys(tx, game.Recommended)
	if err != nil {
		return err
	}
	return replaceAssociation(tx, owner, "Recommended", recommended, len(recommended))
}

func replaceFavourites(tx *gorm.DB, user *models.User) error {
	owner := &models.User{Username: user.Username}
	favourites, err := storedGameKeys(tx, user.FavouriteGames)
	if err != nil {
		return err
	}
	return replaceAssociation(tx, owner, "FavouriteGames", favourites, len(favourites))
}

func replaceAssociation(tx *gorm.DB, owner any, name string, values any, n int) error {
	assoc := tx.Model(owner).Association(name)
	if n == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}

// storedGameKeys returns key-only copies of the games that already have a row.
// Links to games not stored yet are dropped; writing them would leave a
// placeholder row that a later AddGame treats as the game itself.
func storedGameKeys(tx *gorm.DB, games []*models.Game) ([]*models.Game, error) {
	wanted := make([]int, 0, len(games))
	for _, g := range games {
		if g != nil && g.ID > 0 {
			wanted = append(wanted, g.ID)
		}
	}
	if len(wanted) == 0 {
		return nil, nil
	}
	var stored []int
	if err := tx.Model(&models.Game{}).Where("id IN ?", wanted).Pluck("id", &stored).Error; err != nil {
		return nil, err
	}
	keys := make([]*models.Game, 0, len(stored))
	for _, id := range wanted {
		if slices.Contains(stored, id) {
			keys = append(keys, &models.Game{ID: id})
		}
	}
	return keys, nil
}

// endregion
