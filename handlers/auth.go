package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cvmate/backend/auth"
	"github.com/cvmate/backend/models"
	"github.com/cvmate/backend/storage"
)

// AuthHandler handles authentication and profile requests
type AuthHandler struct {
	store      *storage.FirestoreClient
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store *storage.FirestoreClient, jwtService *auth.JWTService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		store:      store,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register handles user registration with email/password
// @Summary Register a new user
// @Description Register a new user with name, email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.Response "Registration successful"
// @Failure 400 {object} models.Response "Invalid request body or user exists"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Name, email and password are required"))
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to process registration"))
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     models.RoleUser,
	}

	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("User already exists"))
		return
	}

	token, err := h.jwtService.GenerateToken(user)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate token"))
		return
	}

	h.logger.Info("user registered", zap.String("email", user.Email))
	c.JSON(http.StatusCreated, models.OK(models.AuthData{Token: token, User: user}))
}

// Login handles user login with email/password
// @Summary Login user
// @Description Login with email and password to get a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.Response "Login successful"
// @Failure 400 {object} models.Response "Invalid request body"
// @Failure 401 {object} models.Response "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Email and password are required"))
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, models.Fail("Invalid email or password"))
		return
	}

	token, err := h.jwtService.GenerateToken(user)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate token"))
		return
	}

	h.logger.Info("user logged in", zap.String("email", user.Email))
	c.JSON(http.StatusOK, models.OK(models.AuthData{Token: token, User: user}))
}

// GetProfile retrieves the current user's profile
// @Summary Get user profile
// @Description Get the authenticated user's profile information
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response "User profile"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 404 {object} models.Response "User not found"
// @Router /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.store.GetUserByEmail(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, models.Fail("User not found"))
		return
	}

	c.JSON(http.StatusOK, models.OK(user))
}

// UpdateProfile updates the current user's profile
// @Summary Update user profile
// @Description Update the authenticated user's name, bio or avatar
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProfileRequest true "Update profile request"
// @Success 200 {object} models.Response "Profile updated"
// @Failure 400 {object} models.Response "Invalid request body"
// @Failure 401 {object} models.Response "Unauthorized"
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	callerID := auth.CallerID(c)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}

	if len(updates) > 0 {
		if err := h.store.UpdateUser(c.Request.Context(), callerID, updates); err != nil {
			h.logger.Error("failed to update profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to update profile"))
			return
		}
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), callerID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.Fail("User not found"))
		return
	}

	c.JSON(http.StatusOK, models.OK(user))
}
