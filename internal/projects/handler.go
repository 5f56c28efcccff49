package projects

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/uploads"
)

// Handler handles project endpoints
type Handler struct {
	service *Service
	store   *uploads.Store
	issuer  *auth.TokenIssuer
	logger  *zap.Logger
}

// NewHandler creates the projects handler
func NewHandler(service *Service, store *uploads.Store, issuer *auth.TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{service: service, store: store, issuer: issuer, logger: logger}
}

// RegisterRoutes registers project routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authed := r.Group("", auth.RequireAuth(h.issuer))
	{
		authed.GET("/projects", h.List)
		authed.POST("/projects/create",
			auth.RequireRoles(auth.RoleStateAdmin), h.Create)
		authed.PUT("/projects/:projectId/status",
			auth.RequireRoles(auth.RoleImplementingAgency), h.UpdateStatus)
		authed.PUT("/projects/:projectId/progress",
			auth.RequireRoles(auth.RoleImplementingAgency), h.UpdateProgress)
		authed.POST("/projects/:projectId/approve-funds",
			auth.RequireRoles(auth.RoleCentralMinistry), h.ApproveFunds)
		authed.GET("/progress/history", h.History)
	}

	r.GET("/project-types", h.Types)
}

// List handles GET /api/projects
func (h *Handler) List(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	result, err := h.service.List(c.Request.Context(), claims)
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Create handles POST /api/projects/create
func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	project, err := h.service.Create(c.Request.Context(), auth.ClaimsFrom(c), req)
	if err == ErrValidation {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	if err != nil {
		h.logger.Error("failed to create project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": project,
	})
}

// UpdateStatus handles PUT /api/projects/:projectId/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	project, err := h.service.UpdateStatus(c.Request.Context(), auth.ClaimsFrom(c), c.Param("projectId"), req)
	if h.respondUpdateError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project status updated successfully",
		"project": project,
	})
}

// UpdateProgress handles PUT /api/projects/:projectId/progress (multipart)
func (h *Handler) UpdateProgress(c *gin.Context) {
	req := DetailedUpdateRequest{
		Status:             c.PostForm("status"),
		Milestone:          c.PostForm("milestone"),
		Notes:              c.PostForm("notes"),
		Issues:             c.PostForm("issues"),
		NextSteps:          c.PostForm("next_steps"),
		ExpectedCompletion: c.PostForm("expected_completion"),
	}
	if raw, ok := c.GetPostForm("progress_percentage"); ok {
		progress, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		req.ProgressPercentage = &progress
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["files"] {
			stored, err := h.store.Save(fh)
			if err != nil {
				h.logger.Error("failed to store attachment", zap.Error(err), zap.String("file", fh.Filename))
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
				return
			}
			req.Files = append(req.Files, stored)
		}
	}

	project, err := h.service.UpdateProgress(c.Request.Context(), auth.ClaimsFrom(c), c.Param("projectId"), req)
	if h.respondUpdateError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Progress updated successfully",
		"project": project,
	})
}

// ApproveFunds handles POST /api/projects/:projectId/approve-funds
func (h *Handler) ApproveFunds(c *gin.Context) {
	var req struct {
		ApprovedAmount int64 `json:"approved_amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	project, err := h.service.ApproveFunds(c.Request.Context(), auth.ClaimsFrom(c), c.Param("projectId"), req.ApprovedAmount)
	if err == ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}
	if h.respondUpdateError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Funds approved successfully",
		"project": project,
	})
}

// History handles GET /api/progress/history
func (h *Handler) History(c *gin.Context) {
	history, err := h.service.History(c.Request.Context(), auth.ClaimsFrom(c))
	if err != nil {
		h.logger.Error("failed to load progress history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// Types handles GET /api/project-types
func (h *Handler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, ProjectTypes)
}

// respondUpdateError writes the error response for update flows and reports
// whether the request is done.
func (h *Handler) respondUpdateError(c *gin.Context, err error) bool {
	switch err {
	case nil:
		return false
	case ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "Project not found or access denied"})
	case ErrConflict:
		c.JSON(http.StatusConflict, gin.H{"message": "Project was modified by another user, please retry"})
	default:
		h.logger.Error("project update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
	return true
}
