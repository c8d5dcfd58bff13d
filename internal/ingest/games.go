package ingest

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"gamecatalog/backend/internal/logging"
	"gamecatalog/backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// gameRow is one line of games.csv after type conversion.
type gameRow struct {
	ID          int     `validate:"gt=0"`
	Title       string  `validate:"required"`
	Price       float64 `validate:"gte=0"`
	ReleaseDate string
	Description string
	ImageURL    string `validate:"omitempty,url"`
	WebsiteURL  string
	TrailerURL  string
	Publisher   string
	Genres      []string `validate:"dive,required"`
}

// Catalog is the content of a games file. Genres and publishers are shared
// between the games that reference them.
type Catalog struct {
	Games      []*models.Game
	Genres     []*models.Genre
	Publishers []*models.Publisher
	Skipped    int
}

// Game returns the catalog game with the given id, or nil.
func (c *Catalog) Game(id int) *models.Game {
	i, found := slices.BinarySearchFunc(c.Games, id, func(g *models.Game, id int) int {
		return g.ID - id
	})
	if !found {
		return nil
	}
	return c.Games[i]
}

// ReadGames parses a games export. Malformed or duplicate rows are skipped.
func ReadGames(r io.Reader) (*Catalog, error) {
	t, err := newTable("games.csv", r)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{}
	genres := map[string]*models.Genre{}
	publishers := map[string]*models.Publisher{}
	seen := map[int]bool{}

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
			catalog.Skipped++
			continue
		}

		parsed, err := parseGameRow(rec)
		if err == nil && seen[parsed.ID] {
			err = fmt.Errorf("duplicate game id %d", parsed.ID)
		}
		if err != nil {
			skip(t, err)
			catalog.Skipped++
			continue
		}
		seen[parsed.ID] = true

		game, err := parsed.toGame(genres, publishers)
		if err != nil {
			skip(t, err)
			catalog.Skipped++
			continue
		}
		catalog.Games = append(catalog.Games, game)
	}

	slices.SortFunc(catalog.Games, models.CompareGames)
	for _, g := range genres {
		catalog.Genres = append(catalog.Genres, g)
	}
	slices.SortFunc(catalog.Genres, models.CompareGenres)
	for _, p := range publishers {
		catalog.Publishers = append(catalog.Publishers, p)
	}
	slices.SortFunc(catalog.Publishers, models.ComparePublishers)
	return catalog, nil
}

func parseGameRow(rec row) (*gameRow, error) {
	fields := map[string]string{}
	for _, column := range []string{
		"AppID", "Name", "Release date", "Price", "About the game",
		"Header image", "Website", "Movies", "Screenshots", "Publishers", "Genres",
	} {
		v, err := rec.get(column)
		if err != nil {
			return nil, err
		}
		fields[column] = v
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields["AppID"]))
	if err != nil {
		return nil, fmt.Errorf("invalid AppID %q: %w", fields["AppID"], err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(fields["Price"]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid Price %q: %w", fields["Price"], err)
	}

	trailer := firstEntry(fields["Movies"])
	if trailer == "" {
		trailer = firstEntry(fields["Screenshots"])
	}

	parsed := &gameRow{
		ID:          id,
		Title:       strings.TrimSpace(fields["Name"]),
		Price:       price,
		ReleaseDate: strings.TrimSpace(fields["Release date"]),
		Description: fields["About the game"],
		ImageURL:    strings.TrimSpace(fields["Header image"]),
		WebsiteURL:  strings.TrimSpace(fields["Website"]),
		TrailerURL:  trailer,
		Publisher:   strings.TrimSpace(fields["Publishers"]),
		Genres:      splitList(fields["Genres"], ","),
	}
	if err := validate.Struct(parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func (r *gameRow) toGame(genres map[string]*models.Genre, publishers map[string]*models.Publisher) (*models.Game, error) {
	game, err := models.NewGame(r.ID, r.Title)
	if err != nil {
		return nil, err
	}
	if err := game.SetPrice(r.Price); err != nil {
		return nil, err
	}
	game.ReleaseDate = r.ReleaseDate
	game.Description = r.Description
	game.ImageURL = r.ImageURL
	game.WebsiteURL = r.WebsiteURL
	game.TrailerURL = r.TrailerURL

	if r.Publisher != "" {
		p, ok := publishers[r.Publisher]
		if !ok {
			p = &models.Publisher{Name: r.Publisher}
			publishers[r.Publisher] = p
		}
		game.SetPublisher(p)
	}
	for _, name := range r.Genres {
		g, ok := genres[name]
		if !ok {
			g = &models.Genre{Name: name}
			genres[name] = g
		}
		game.AddGenre(g)
	}
	return game, nil
}

// firstEntry returns the first comma-separated entry of a URL list.
func firstEntry(list string) string {
	if entries := splitList(list, ","); len(entries) > 0 {
		return entries[0]
	}
	return ""
}

func skip(t *table, err error) {
	logging.Warn().Err(err).Str("file", t.name).Int("line", t.line).Msg("skipping row")
}
