package handler

import (
	"net/http"
	"strconv"
	"time"

	"gamecatalog/backend/internal/auth"
	"gamecatalog/backend/internal/hub"
	"gamecatalog/backend/internal/logging"
	"gamecatalog/backend/internal/repository"
	"gamecatalog/backend/internal/service"
	"gamecatalog/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const repositoryKey = "repository"

// Handler serves the HTTP API. It owns no state of its own beyond its
// collaborators; every request works against Repo(c).
type Handler struct {
	repo     repository.Repository
	hasher   service.PasswordHasher
	issuer   *jwt.Issuer
	hub      *hub.Hub
	pageSize int
	now      func() time.Time
}

// New wires a Handler. pageSize falls back to service.DefaultPageSize.
func New(repo repository.Repository, hasher service.PasswordHasher, issuer *jwt.Issuer, h *hub.Hub, pageSize int) *Handler {
	if pageSize < 1 {
		pageSize = service.DefaultPageSize
	}
	if h == nil {
		h = hub.NewHub()
	}
	return &Handler{
		repo:     repo,
		hasher:   hasher,
		issuer:   issuer,
		hub:      h,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// RepositorySession gives each request its own repository session when the
// backend supports one, and releases it however the request ends.
func (h *Handler) RepositorySession() gin.HandlerFunc {
	return func(c *gin.Context) {
		repo := h.repo
		if s, ok := h.repo.(repository.Sessioner); ok {
			scoped, release := s.Session(c.Request.Context())
			defer release()
			repo = scoped
		}
		c.Set(repositoryKey, repo)
		c.Next()
	}
}

// Repo returns the repository serving the current request.
func (h *Handler) Repo(c *gin.Context) repository.Repository {
	if v, ok := c.Get(repositoryKey); ok {
		if repo, ok := v.(repository.Repository); ok {
			return repo
		}
	}
	return h.repo
}

// respondError writes err as {"error": ...} with the status its code maps to.
// Unexpected errors are logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := service.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logging.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func gameIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return 0, false
	}
	return id, true
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

// favouriteIDs returns the ids of the caller's favourites, or nil for
// anonymous requests.
func (h *Handler) favouriteIDs(c *gin.Context) map[int]bool {
	username, ok := auth.Username(c)
	if !ok {
		return nil
	}
	user, err := h.Repo(c).GetUser(c.Request.Context(), username)
	if err != nil || user == nil {
		return nil
	}
	ids := make(map[int]bool, len(user.FavouriteGames))
	for _, g := range user.FavouriteGames {
		ids[g.ID] = true
	}
	return ids
}
