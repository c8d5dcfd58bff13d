package handler

import (
	"net/http"

	"gamecatalog/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchGames godoc
// @Summary      Search games
// @Description  Case-insensitive substring search on title, genre or publisher. Results are newest first.
// @Tags         games
// @Produce      json
// @Param        query   query     string  false  "Search text"
// @Param        filter  query     string  false  "Field to match" Enums(title, genre, publisher) default(title)
// @Param        page    query     int     false  "Page number" default(1)
// @Success      200     {object}  PaginatedGameResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /search [get]
func (h *Handler) SearchGames(c *gin.Context) {
	filter, ok := service.ParseFilter(c.DefaultQuery("filter", string(service.FilterTitle)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown search filter"})
		return
	}

	games, err := service.Search(c.Request.Context(), h.Repo(c), filter, c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginate(games, pageParam(c), h.pageSize, gameConverter(h.favouriteIDs(c))))
}
