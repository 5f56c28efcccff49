package village

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/scope"
)

// SubmitNeedRequest is the needs-assessment submission payload
type SubmitNeedRequest struct {
	NeedsType             string `json:"needs_type"`
	Description           string `json:"description"`
	Priority              string `json:"priority"`
	ExpectedBeneficiaries int    `json:"expected_beneficiaries"`
	EstimatedCost         int64  `json:"estimated_cost"`
	Justification         string `json:"justification"`
}

// SubmitFeedbackRequest is the project feedback payload
type SubmitFeedbackRequest struct {
	ProjectID    string `json:"project_id"`
	FeedbackType string `json:"feedback_type"`
	Content      string `json:"content"`
	Rating       *int   `json:"rating"`
}

// Handler handles village-committee endpoints
type Handler struct {
	repo   Repository
	issuer *auth.TokenIssuer
	logger *zap.Logger
}

// NewHandler creates the village handler
func NewHandler(repo Repository, issuer *auth.TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, issuer: issuer, logger: logger}
}

// RegisterRoutes registers village routes. Feedback reads live under /state
// because state admins are the primary consumer.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authed := r.Group("", auth.RequireAuth(h.issuer))
	{
		authed.POST("/village/needs",
			auth.RequireRoles(auth.RoleVillageCommittee), h.SubmitNeed)
		authed.GET("/village/needs", h.ListNeeds)
		authed.POST("/village/feedback",
			auth.RequireRoles(auth.RoleVillageCommittee), h.SubmitFeedback)
		authed.GET("/state/feedback", h.ListFeedback)
	}
}

// SubmitNeed handles POST /api/village/needs. Location columns come from the
// committee's claims, not the payload.
func (h *Handler) SubmitNeed(c *gin.Context) {
	var req SubmitNeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Needs type, description, and priority are required"})
		return
	}
	if req.NeedsType == "" || req.Description == "" || req.Priority == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Needs type, description, and priority are required"})
		return
	}

	claims := auth.ClaimsFrom(c)
	need := &NeedsAssessment{
		Village:               strOrEmpty(claims.Village),
		State:                 strOrEmpty(claims.State),
		District:              strOrEmpty(claims.District),
		NeedsType:             req.NeedsType,
		Description:           req.Description,
		Priority:              req.Priority,
		ExpectedBeneficiaries: req.ExpectedBeneficiaries,
		EstimatedCost:         req.EstimatedCost,
		Justification:         req.Justification,
		SubmittedBy:           claims.UserID,
		Status:                "Submitted",
	}

	if err := h.repo.CreateNeed(c.Request.Context(), need); err != nil {
		h.logger.Error("failed to submit needs assessment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Village needs submitted successfully",
		"data":    need,
	})
}

// ListNeeds handles GET /api/village/needs
func (h *Handler) ListNeeds(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	needs, err := h.repo.ListNeeds(c.Request.Context(), scope.ForClaims(claims))
	if err != nil {
		h.logger.Error("failed to list needs assessments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, needs)
}

// SubmitFeedback handles POST /api/village/feedback
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Project ID, feedback type, and content are required"})
		return
	}
	if req.ProjectID == "" || req.FeedbackType == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Project ID, feedback type, and content are required"})
		return
	}

	claims := auth.ClaimsFrom(c)
	fb := &Feedback{
		ProjectID:    req.ProjectID,
		FeedbackType: req.FeedbackType,
		Content:      req.Content,
		Rating:       req.Rating,
		Village:      strOrEmpty(claims.Village),
		State:        strOrEmpty(claims.State),
		SubmittedBy:  claims.UserID,
	}

	if err := h.repo.CreateFeedback(c.Request.Context(), fb); err != nil {
		h.logger.Error("failed to submit feedback", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Feedback submitted successfully",
		"data":    fb,
	})
}

// ListFeedback handles GET /api/state/feedback
func (h *Handler) ListFeedback(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	feedback, err := h.repo.ListFeedback(c.Request.Context(), scope.ForClaims(claims))
	if err != nil {
		h.logger.Error("failed to list feedback", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
