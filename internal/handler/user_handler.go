package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/service"
)

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type ConfirmEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

func newAuthResponse(s *service.Session) AuthResponse {
	return AuthResponse{
		Token:        s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    int(s.ExpiresIn.Seconds()),
		User:         newUserResponse(s.User),
	}
}

// Register godoc
// @Summary  Register a new user and mail a confirmation code
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    request body RegisterRequest true "User data"
// @Success  201 {object} UserResponse
// @Failure  400 {object} map[string]string
// @Router   /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

// ConfirmEmail godoc
// @Summary  Confirm an email address with the mailed code
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    request body ConfirmEmailRequest true "Address and code"
// @Success  200 {object} map[string]string
// @Failure  400 {object} map[string]string
// @Router   /confirm-email [post]
func (h *UserHandler) ConfirmEmail(c *gin.Context) {
	var req ConfirmEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := h.users.ConfirmEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		respondError(c, err, "Failed to confirm email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email confirmed"})
}

// Login godoc
// @Summary  Log in and receive an access and a refresh token
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    request body LoginRequest true "Credentials"
// @Success  200 {object} AuthResponse
// @Failure  401 {object} map[string]string
// @Router   /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	session, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(session))
}

// Refresh godoc
// @Summary  Exchange a refresh token for a new token pair
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    request body RefreshRequest true "Refresh token"
// @Success  200 {object} AuthResponse
// @Failure  401 {object} map[string]string
// @Router   /refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	session, err := h.users.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, "Failed to refresh token")
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(session))
}

// Revoke godoc
// @Summary   Revoke every refresh token of the current user
// @Tags      Users
// @Security  BearerAuth
// @Success   204
// @Router    /revoke [post]
func (h *UserHandler) Revoke(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.users.Revoke(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to revoke tokens")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateMe godoc
// @Summary   Change the current user's display name
// @Tags      Users
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     request body UpdateProfileRequest true "Profile"
// @Success   200 {object} UserResponse
// @Failure   400 {object} map[string]string
// @Router    /me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
