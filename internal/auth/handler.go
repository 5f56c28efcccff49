package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles authentication endpoints
type Handler struct {
	service *Service
	issuer  *TokenIssuer
	logger  *zap.Logger
}

// NewHandler creates the auth handler
func NewHandler(service *Service, issuer *TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{service: service, issuer: issuer, logger: logger}
}

// RegisterRoutes registers auth routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.GET("/profile", RequireAuth(h.issuer), h.Profile)
	}
}

// Login handles POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username, password, and role are required"})
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req)
	if err == ErrInvalidCredentials {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Profile handles GET /api/auth/profile
func (h *Handler) Profile(c *gin.Context) {
	claims := ClaimsFrom(c)

	user, err := h.service.Profile(c.Request.Context(), claims.UserID)
	if err == ErrUserNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.logger.Error("profile lookup failed", zap.Error(err), zap.String("user_id", claims.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
