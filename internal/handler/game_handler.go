package handler

import (
	"net/http"

	"gamecatalog/backend/internal/auth"
	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Number of games in each home page strip.
const homeStripSize = 4

// region --- DTOs ---

type GameResponse struct {
	ID            int      `json:"id" example:"7940"`
	Title         string   `json:"title" example:"Call of Duty 4"`
	Price         float64  `json:"price" example:"9.99"`
	ReleaseDate   string   `json:"release_date" example:"Nov 12, 2007"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	WebsiteURL    string   `json:"website_url"`
	TrailerURL    string   `json:"trailer_url"`
	Publisher     string   `json:"publisher" example:"Activision"`
	Genres        []string `json:"genres"`
	AverageRating float64  `json:"average_rating" example:"4.5"`
	IsFavourite   bool     `json:"is_favourite"`
}

func toGameResponse(game *models.Game, favourite bool) GameResponse {
	genres := make([]string, 0, len(game.Genres))
	for _, g := range game.Genres {
		if g != nil {
			genres = append(genres, g.Name)
		}
	}
	return GameResponse{
		ID:            game.ID,
		Title:         game.Title,
		Price:         game.Price,
		ReleaseDate:   game.ReleaseDate,
		Description:   game.Description,
		ImageURL:      game.ImageURL,
		WebsiteURL:    game.WebsiteURL,
		TrailerURL:    game.TrailerURL,
		Publisher:     game.PublisherLabel(),
		Genres:        genres,
		AverageRating: game.AverageRating,
		IsFavourite:   favourite,
	}
}

// gameConverter marks the caller's favourites while converting.
func gameConverter(favouriteIDs map[int]bool) func(*models.Game) GameResponse {
	return func(g *models.Game) GameResponse {
		return toGameResponse(g, favouriteIDs[g.ID])
	}
}

func toGameResponses(games []*models.Game, favouriteIDs map[int]bool) []GameResponse {
	convert := gameConverter(favouriteIDs)
	out := make([]GameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, convert(g))
	}
	return out
}

type ReviewResponse struct {
	Username  string `json:"username" example:"marklee"`
	GameID    int    `json:"game_id" example:"7940"`
	GameTitle string `json:"game_title,omitempty" example:"Call of Duty 4"`
	Rating    int    `json:"rating" example:"5"`
	Comment   string `json:"comment" example:"Great game"`
	Timestamp string `json:"timestamp" example:"2024-03-01 18:04:11"`
}

func toReviewResponse(r *models.Review) ReviewResponse {
	resp := ReviewResponse{
		Username:  r.Username,
		GameID:    r.GameID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Timestamp: r.Timestamp,
	}
	if r.Game != nil {
		resp.GameTitle = r.Game.Title
	}
	return resp
}

// GameDetailResponse is a game with its reviews and recommendations.
type GameDetailResponse struct {
	GameResponse
	Reviews     []ReviewResponse `json:"reviews"`
	Recommended []GameResponse   `json:"recommended"`
}

// HomeResponse holds the two strips shown on the home page.
type HomeResponse struct {
	Recent []GameResponse `json:"recent"`
	Action []GameResponse `json:"action"`
}

// FavouriteResponse reports the favourite state after a change.
type FavouriteResponse struct {
	GameID      int  `json:"game_id" example:"7940"`
	IsFavourite bool `json:"is_favourite" example:"true"`
}

// PaginatedGameResponse defines the structure for a paginated list of games.
type PaginatedGameResponse struct {
	Data []GameResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// endregion

// region --- Game Handlers ---

// GetHome godoc
// @Summary      Home page games
// @Description  Returns the most recently released games and a selection of action games.
// @Tags         games
// @Produce      json
// @Success      200  {object}  HomeResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /home [get]
func (h *Handler) GetHome(c *gin.Context) {
	ctx := c.Request.Context()
	repo := h.Repo(c)

	recent, err := service.RecentGames(ctx, repo, homeStripSize)
	if err != nil {
		respondError(c, err)
		return
	}
	action, err := service.GenreGames(ctx, repo, service.ActionGenre, homeStripSize)
	if err != nil {
		respondError(c, err)
		return
	}

	favourites := h.favouriteIDs(c)
	c.JSON(http.StatusOK, HomeResponse{
		Recent: toGameResponses(recent, favourites),
		Action: toGameResponses(action, favourites),
	})
}

// GetGames godoc
// @Summary      List all games
// @Description  Lists the whole catalog newest first, one page at a time.
// @Tags         games
// @Produce      json
// @Param        page  query     int  false  "Page number" default(1)
// @Success      200   {object}  PaginatedGameResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /games [get]
func (h *Handler) GetGames(c *gin.Context) {
	games, err := service.AllGamesByDate(c.Request.Context(), h.Repo(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginate(games, pageParam(c), h.pageSize, gameConverter(h.favouriteIDs(c))))
}

// GetGameByID godoc
// @Summary      Get a game by ID
// @Description  Retrieves a game with its reviews and recommended games. Recommendations are computed on first view.
// @Tags         games
// @Produce      json
// @Param        id   path      int  true  "Game ID"
// @Success      200  {object}  GameDetailResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id} [get]
func (h *Handler) GetGameByID(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}

	game, err := service.GameDetail(c.Request.Context(), h.Repo(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	favourites := h.favouriteIDs(c)
	resp := GameDetailResponse{
		GameResponse: toGameResponse(game, favourites[game.ID]),
		Reviews:      make([]ReviewResponse, 0, len(game.Reviews)),
		Recommended:  toGameResponses(game.Recommended, favourites),
	}
	for _, r := range game.Reviews {
		resp.Reviews = append(resp.Reviews, toReviewResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// AddFavourite godoc
// @Summary      Add a game to favourites
// @Description  Marks a game as a favourite of the current user. Adding twice is harmless.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Game ID"
// @Success      200  {object}  FavouriteResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id}/favourite [post]
func (h *Handler) AddFavourite(c *gin.Context) {
	h.setFavourite(c, true)
}

// RemoveFavourite godoc
// @Summary      Remove a game from favourites
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Game ID"
// @Success      200  {object}  FavouriteResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id}/favourite [delete]
func (h *Handler) RemoveFavourite(c *gin.Context) {
	h.setFavourite(c, false)
}

func (h *Handler) setFavourite(c *gin.Context, favourite bool) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}
	username, _ := auth.Username(c)

	change := service.RemoveFavourite
	if favourite {
		change = service.AddFavourite
	}
	if err := change(c.Request.Context(), h.Repo(c), username, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FavouriteResponse{GameID: id, IsFavourite: favourite})
}

// endregion
