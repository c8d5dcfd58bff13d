package handler

import (
	"io"
	"net/http"

	"gamecatalog/backend/internal/auth"
	"gamecatalog/backend/internal/hub"
	"gamecatalog/backend/internal/logging"
	"gamecatalog/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// streamBuffer is how many events a slow stream may fall behind before
// the hub starts dropping them.
const streamBuffer = 8

// region --- DTOs ---

// ReviewInput defines the structure for posting a review.
type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required" example:"5"`
	Comment string `json:"comment" binding:"required" example:"Still holds up."`
}

// endregion

// region --- Review Handlers ---

// PostReview godoc
// @Summary      Review a game
// @Description  Adds a review by the current user, refreshes the game's average rating and notifies stream listeners.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int          true  "Game ID"
// @Param        input  body      ReviewInput  true  "Review"
// @Success      201    {object}  ReviewResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse
// @Router       /games/{id}/reviews [post]
func (h *Handler) PostReview(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}
	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	username, _ := auth.Username(c)

	review, err := service.SubmitReview(c.Request.Context(), h.Repo(c), username, id, input.Rating, input.Comment, h.now())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := toReviewResponse(review)
	h.hub.Broadcast(id, hub.Event{Type: hub.EventReviewAdded, Payload: resp})
	c.JSON(http.StatusCreated, resp)
}

// StreamReviews godoc
// @Summary      Stream new reviews
// @Description  Server-sent events for reviews posted on a game while the connection is open.
// @Tags         reviews
// @Produce      text/event-stream
// @Param        id   path      int  true  "Game ID"
// @Success      200  {string}  string "event stream"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id}/reviews/stream [get]
func (h *Handler) StreamReviews(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}
	game, err := h.Repo(c).GetGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if game == nil {
		respondError(c, service.ErrGameNotFound)
		return
	}

	client := make(hub.Client, streamBuffer)
	h.hub.Subscribe(id, client)
	defer h.hub.Unsubscribe(id, client)
	logging.Debug().Int("game_id", id).Msg("review stream opened")

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, open := <-client:
			if !open {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
	logging.Debug().Int("game_id", id).Msg("review stream closed")
}

// endregion
