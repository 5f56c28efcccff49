package agencies

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
)

// Handler handles agency endpoints
type Handler struct {
	repo   Repository
	issuer *auth.TokenIssuer
	logger *zap.Logger
}

// NewHandler creates the agencies handler
func NewHandler(repo Repository, issuer *auth.TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, issuer: issuer, logger: logger}
}

// RegisterRoutes registers agency routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/agencies",
		auth.RequireAuth(h.issuer),
		auth.RequireRoles(auth.RoleCentralMinistry),
		h.List)
}

// List handles GET /api/agencies
func (h *Handler) List(c *gin.Context) {
	agencies, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list agencies", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, agencies)
}
