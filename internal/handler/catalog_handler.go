package handler

import (
	"context"
	"net/http"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/repository"
	"gamecatalog/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// LinkResponse names a genre or publisher and the path listing its games.
type LinkResponse struct {
	Name string `json:"name" example:"Action"`
	Path string `json:"path" example:"/api/v1/genres/Action/games"`
}

func toLinkResponses(links []service.Link) []LinkResponse {
	out := make([]LinkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, LinkResponse{Name: l.Name, Path: l.Path})
	}
	return out
}

// endregion

// region --- Catalog Handlers ---

// GetGenres godoc
// @Summary      List genres
// @Description  Lists every genre in name order, each with the path of its game listing.
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   LinkResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /genres [get]
func (h *Handler) GetGenres(c *gin.Context) {
	links, err := service.GenreLinks(c.Request.Context(), h.Repo(c), BasePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLinkResponses(links))
}

// GetPublishers godoc
// @Summary      List publishers
// @Description  Lists every publisher in name order, each with the path of its game listing.
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   LinkResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /publishers [get]
func (h *Handler) GetPublishers(c *gin.Context) {
	links, err := service.PublisherLinks(c.Request.Context(), h.Repo(c), BasePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLinkResponses(links))
}

// GetGamesByGenre godoc
// @Summary      List games of a genre
// @Description  Lists the games carrying the named genre, newest first. An unknown genre gives an empty page.
// @Tags         catalog
// @Produce      json
// @Param        name  path      string  true   "Genre name"
// @Param        page  query     int     false  "Page number" default(1)
// @Success      200   {object}  PaginatedGameResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /genres/{name}/games [get]
func (h *Handler) GetGamesByGenre(c *gin.Context) {
	h.listGames(c, service.GamesByGenreName)
}

// GetGamesByPublisher godoc
// @Summary      List games of a publisher
// @Description  Lists the games of the named publisher, newest first. An unknown publisher gives an empty page.
// @Tags         catalog
// @Produce      json
// @Param        name  path      string  true   "Publisher name"
// @Param        page  query     int     false  "Page number" default(1)
// @Success      200   {object}  PaginatedGameResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /publishers/{name}/games [get]
func (h *Handler) GetGamesByPublisher(c *gin.Context) {
	h.listGames(c, service.GamesByPublisherName)
}

type gameLister func(ctx context.Context, repo repository.Repository, name string) ([]*models.Game, error)

func (h *Handler) listGames(c *gin.Context, list gameLister) {
	games, err := list(c.Request.Context(), h.Repo(c), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginate(games, pageParam(c), h.pageSize, gameConverter(h.favouriteIDs(c))))
}

// endregion
