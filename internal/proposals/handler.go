package proposals

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
)

// Handler handles proposal endpoints
type Handler struct {
	service *Service
	issuer  *auth.TokenIssuer
	logger  *zap.Logger
}

// NewHandler creates the proposals handler
func NewHandler(service *Service, issuer *auth.TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{service: service, issuer: issuer, logger: logger}
}

// RegisterRoutes registers proposal routes. The /state/proposals pair is the
// legacy path kept for older clients.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authed := r.Group("", auth.RequireAuth(h.issuer))
	{
		authed.GET("/proposals", h.List)
		authed.POST("/proposals",
			auth.RequireRoles(auth.RoleStateAdmin), h.Submit)
		authed.PUT("/proposals/:proposalId/assign",
			auth.RequireRoles(auth.RoleCentralMinistry), h.Assign)
		authed.PUT("/proposals/:proposalId/review",
			auth.RequireRoles(auth.RoleImplementingAgency), h.Review)
		authed.PUT("/proposals/:proposalId/accept",
			auth.RequireRoles(auth.RoleImplementingAgency), h.Accept)

		authed.GET("/state/proposals", h.List)
		authed.POST("/state/proposals",
			auth.RequireRoles(auth.RoleStateAdmin), h.Submit)
	}
}

// List handles GET /api/proposals
func (h *Handler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), auth.ClaimsFrom(c))
	if err != nil {
		h.logger.Error("failed to list proposals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Submit handles POST /api/proposals
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All required fields must be provided"})
		return
	}

	proposal, err := h.service.Submit(c.Request.Context(), auth.ClaimsFrom(c), req)
	if err == ErrValidation {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All required fields must be provided"})
		return
	}
	if err != nil {
		h.logger.Error("failed to submit proposal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Proposal submitted successfully",
		"data":    proposal,
	})
}

// Assign handles PUT /api/proposals/:proposalId/assign
func (h *Handler) Assign(c *gin.Context) {
	id, ok := h.proposalID(c)
	if !ok {
		return
	}

	var req struct {
		AgencyID string `json:"agency_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AgencyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Agency ID is required"})
		return
	}

	proposal, err := h.service.Assign(c.Request.Context(), id, req.AgencyID)
	switch err {
	case nil:
	case ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "Proposal not found"})
		return
	case ErrAgencyNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "Agency not found"})
		return
	default:
		h.logger.Error("failed to assign proposal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Proposal assigned successfully",
		"proposal": proposal,
	})
}

// Review handles PUT /api/proposals/:proposalId/review
func (h *Handler) Review(c *gin.Context) {
	id, ok := h.proposalID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	proposal, err := h.service.Review(c.Request.Context(), auth.ClaimsFrom(c), id, req)
	switch err {
	case nil:
	case ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "Proposal not found or not assigned to your agency"})
		return
	case ErrBadTransition:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status transition not allowed"})
		return
	default:
		h.logger.Error("failed to review proposal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Proposal review updated successfully",
		"proposal": proposal,
	})
}

// Accept handles PUT /api/proposals/:proposalId/accept
func (h *Handler) Accept(c *gin.Context) {
	id, ok := h.proposalID(c)
	if !ok {
		return
	}

	var req AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	proposal, project, err := h.service.Accept(c.Request.Context(), auth.ClaimsFrom(c), id, req)
	switch err {
	case nil:
	case ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "Proposal not found or not assigned to your agency"})
		return
	case ErrBadTransition:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status transition not allowed"})
		return
	default:
		h.logger.Error("failed to accept proposal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Proposal accepted and project created successfully",
		"proposal": proposal,
		"project":  project,
	})
}

func (h *Handler) proposalID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("proposalId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid proposal ID"})
		return 0, false
	}
	return uint(id), true
}
