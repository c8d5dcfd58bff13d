package handler

import (
	"net/http"

	"gamecatalog/backend/internal/auth"
	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username string `json:"username" binding:"required" example:"marklee"`
	Password string `json:"password" binding:"required" example:"Password1"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Username string `json:"username" binding:"required" example:"marklee"`
	Password string `json:"password" binding:"required" example:"Password1"`
}

// TokenResponse carries a freshly issued token.
type TokenResponse struct {
	Token    string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	Username string `json:"username" example:"marklee"`
}

// ProfileResponse defines the structure for the authenticated user's own profile.
type ProfileResponse struct {
	Username       string           `json:"username" example:"marklee"`
	FavouriteGames []GameResponse   `json:"favourite_games"`
	Reviews        []ReviewResponse `json:"reviews"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user and returns an authentication token. Usernames are unique regardless of case.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  TokenResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := service.Register(c.Request.Context(), h.Repo(c), h.hasher, input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondToken(c, http.StatusCreated, user)
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with username and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  TokenResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := service.Authenticate(c.Request.Context(), h.Repo(c), h.hasher, input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondToken(c, http.StatusOK, user)
}

// The token carries the stored spelling of the username, not the typed one.
func (h *Handler) respondToken(c *gin.Context, status int, user *models.User) {
	token, err := h.issuer.GenerateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(status, TokenResponse{Token: token, Username: user.Username})
}

// endregion

// region --- User Handlers ---

// GetMyProfile godoc
// @Summary      Get current user's profile
// @Description  Retrieves the authenticated user's favourites and reviews.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *Handler) GetMyProfile(c *gin.Context) {
	username, _ := auth.Username(c)
	ctx := c.Request.Context()
	repo := h.Repo(c)

	favourites, err := service.FavouriteGames(ctx, repo, username)
	if err != nil {
		respondError(c, err)
		return
	}
	reviews, err := service.UserReviews(ctx, repo, username)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := ProfileResponse{
		Username:       username,
		FavouriteGames: make([]GameResponse, 0, len(favourites)),
		Reviews:        make([]ReviewResponse, 0, len(reviews)),
	}
	for _, g := range favourites {
		resp.FavouriteGames = append(resp.FavouriteGames, toGameResponse(g, true))
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, toReviewResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// endregion
