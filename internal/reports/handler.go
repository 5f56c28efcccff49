package reports

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
)

// Handler handles report export endpoints
type Handler struct {
	service *Service
	issuer  *auth.TokenIssuer
	logger  *zap.Logger
}

// NewHandler creates the reports handler
func NewHandler(service *Service, issuer *auth.TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{service: service, issuer: issuer, logger: logger}
}

// RegisterRoutes registers report routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reports/projects/export",
		auth.RequireAuth(h.issuer),
		auth.RequireRoles(auth.RoleCentralMinistry, auth.RoleStateAdmin),
		h.ExportProjects)
}

// ExportProjects handles GET /api/reports/projects/export
func (h *Handler) ExportProjects(c *gin.Context) {
	format := c.DefaultQuery("format", FormatExcel)

	result, err := h.service.ProjectRegister(c.Request.Context(), auth.ClaimsFrom(c), format)
	if err == ErrUnsupportedFormat {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported export format"})
		return
	}
	if err != nil {
		h.logger.Error("failed to export project register", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
