package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pm-ajay/scheme-portal/portal-backend/internal/agencies"
	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/projects"
)

// Handler handles dashboard and public portal endpoints
type Handler struct {
	aggregator *Aggregator
	projects   projects.Repository
	agencies   agencies.Repository
	issuer     *auth.TokenIssuer
	logger     *zap.Logger
}

// NewHandler creates the dashboard handler
func NewHandler(aggregator *Aggregator, projects projects.Repository, agencies agencies.Repository, issuer *auth.TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{
		aggregator: aggregator,
		projects:   projects,
		agencies:   agencies,
		issuer:     issuer,
		logger:     logger,
	}
}

// RegisterRoutes registers dashboard and public routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/summary", auth.RequireAuth(h.issuer), h.Summary)

	public := r.Group("/public")
	{
		public.GET("/summary", h.PublicSummary)
		public.GET("/projects", h.PublicProjects)
		public.GET("/agencies", h.PublicAgencies)
	}
}

// Summary handles GET /api/dashboard/summary
func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.aggregator.Summary(c.Request.Context(), auth.ClaimsFrom(c))
	if err != nil {
		h.logger.Error("failed to build dashboard summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// PublicSummary handles GET /api/public/summary
func (h *Handler) PublicSummary(c *gin.Context) {
	summary, err := h.aggregator.PublicSummary(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to build public summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// PublicProjects handles GET /api/public/projects
func (h *Handler) PublicProjects(c *gin.Context) {
	list, err := h.projects.PublicList(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list public projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// PublicAgencies handles GET /api/public/agencies
func (h *Handler) PublicAgencies(c *gin.Context) {
	list, err := h.agencies.PublicList(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list public agencies", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}
