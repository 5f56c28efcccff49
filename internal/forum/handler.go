package forum

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
)

// PostRequest is the forum post payload
type PostRequest struct {
	Message   string  `json:"message"`
	ProjectID *string `json:"project_id"`
}

// Handler handles forum endpoints
type Handler struct {
	repo   Repository
	issuer *auth.TokenIssuer
	logger *zap.Logger
}

// NewHandler creates the forum handler
func NewHandler(repo Repository, issuer *auth.TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, issuer: issuer, logger: logger}
}

// RegisterRoutes registers forum routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authed := r.Group("", auth.RequireAuth(h.issuer))
	{
		authed.GET("/forum/messages", h.List)
		authed.POST("/forum/messages", h.Post)
	}
}

// List handles GET /api/forum/messages
func (h *Handler) List(c *gin.Context) {
	messages, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list forum messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Post handles POST /api/forum/messages. Empty message text is rejected
// before anything is written.
func (h *Handler) Post(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message content is required"})
		return
	}

	claims := auth.ClaimsFrom(c)
	msg := &Message{
		UserID:    claims.UserID,
		UserName:  claims.Name,
		ProjectID: req.ProjectID,
		Message:   req.Message,
		Type:      "update",
	}

	if err := h.repo.Create(c.Request.Context(), msg); err != nil {
		h.logger.Error("failed to post forum message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message posted successfully",
		"data":    msg,
	})
}
