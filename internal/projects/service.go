package projects

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/scope"
	"pm-ajay/scheme-portal/portal-backend/internal/uploads"
)

// Service errors mapped to HTTP statuses by the handler
var (
	ErrNotFound   = errors.New("project not found or access denied")
	ErrConflict   = errors.New("project was modified concurrently")
	ErrValidation = errors.New("missing required fields")
)

// ProjectTypes is the fixed catalogue of scheme project types
var ProjectTypes = []string{
	"Infrastructure",
	"Education",
	"Healthcare",
	"Training",
	"Agriculture",
	"Water Management",
	"Sanitation",
	"Transportation",
	"Technology",
	"Hostel",
	"Community Center",
	"Sports",
	"Environment",
}

// CreateProjectRequest is the state-admin project submission payload
type CreateProjectRequest struct {
	Name                   string  `json:"name"`
	Description            string  `json:"description"`
	Type                   string  `json:"type"`
	State                  string  `json:"state"`
	District               string  `json:"district"`
	Village                string  `json:"village"`
	BudgetAllocated        int64   `json:"budget_allocated"`
	Timeline               string  `json:"timeline"`
	Objectives             string  `json:"objectives"`
	ExpectedBeneficiaries  int     `json:"expected_beneficiaries"`
	ImplementationStrategy string  `json:"implementation_strategy"`
	MonitoringPlan         string  `json:"monitoring_plan"`
	RiskAssessment         string  `json:"risk_assessment"`
	SustainabilityPlan     string  `json:"sustainability_plan"`
	SubmittedBy            *string `json:"submitted_by"`
}

// UpdateStatusRequest is the quick status update payload
type UpdateStatusRequest struct {
	Status             string `json:"status"`
	ProgressPercentage int    `json:"progress_percentage"`
}

// DetailedUpdateRequest is the detailed progress update payload. File
// attachments arrive separately through the multipart form. A nil
// ProgressPercentage means the form omitted the field, so the stored
// value is left alone.
type DetailedUpdateRequest struct {
	Status             string
	ProgressPercentage *int
	Milestone          string
	Notes              string
	Issues             string
	NextSteps          string
	ExpectedCompletion string
	Files              []uploads.StoredFile
}

// Service implements project operations
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates the project service
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns the projects visible to the authenticated role
func (s *Service) List(ctx context.Context, claims *auth.Claims) ([]Project, error) {
	return s.repo.List(ctx, scope.ForClaims(claims))
}

// Create records a new project submitted by a state admin. The project
// starts unapproved with zero progress.
func (s *Service) Create(ctx context.Context, claims *auth.Claims, req CreateProjectRequest) (*Project, error) {
	if req.Name == "" || req.Description == "" || req.Type == "" ||
		req.State == "" || req.District == "" || req.Village == "" || req.BudgetAllocated == 0 {
		return nil, ErrValidation
	}

	submittedBy := req.SubmittedBy
	if submittedBy == nil {
		id := claims.UserID
		submittedBy = &id
	}

	project := &Project{
		ID:                     NewProjectID(),
		Name:                   req.Name,
		Description:            req.Description,
		Type:                   req.Type,
		State:                  req.State,
		District:               req.District,
		Village:                req.Village,
		BudgetAllocated:        req.BudgetAllocated,
		ProgressPercentage:     0,
		Status:                 "Pending Approval",
		SubmittedBy:            submittedBy,
		Objectives:             req.Objectives,
		ExpectedBeneficiaries:  req.ExpectedBeneficiaries,
		ImplementationStrategy: req.ImplementationStrategy,
		MonitoringPlan:         req.MonitoringPlan,
		RiskAssessment:         req.RiskAssessment,
		SustainabilityPlan:     req.SustainabilityPlan,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID),
		zap.String("state", project.State))

	return project, nil
}

// UpdateStatus performs the quick status update and appends a history row.
// Returns ErrNotFound when the project does not exist or is not assigned to
// the requesting agency; ownership failures are indistinguishable from
// missing rows on purpose.
func (s *Service) UpdateStatus(ctx context.Context, claims *auth.Claims, projectID string, req UpdateStatusRequest) (*Project, error) {
	project, err := s.repo.FindOwned(ctx, projectID, claims.UserID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	affected, err := s.repo.UpdateVersioned(ctx, projectID, project.Version, map[string]interface{}{
		"status":              req.Status,
		"progress_percentage": req.ProgressPercentage,
		"updated_at":          time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrConflict
	}

	entry := &ProgressHistory{
		ProjectID:          projectID,
		ProgressPercentage: req.ProgressPercentage,
		Status:             req.Status,
		UpdatedBy:          claims.UserID,
	}
	if err := s.repo.AddHistory(ctx, entry); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, projectID)
}

// UpdateProgress performs the detailed progress update with attachment
// metadata and a full history row.
func (s *Service) UpdateProgress(ctx context.Context, claims *auth.Claims, projectID string, req DetailedUpdateRequest) (*Project, error) {
	project, err := s.repo.FindOwned(ctx, projectID, claims.UserID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.ProgressPercentage != nil {
		updates["progress_percentage"] = *req.ProgressPercentage
	}
	if req.ExpectedCompletion != "" {
		updates["expected_completion"] = req.ExpectedCompletion
	}

	affected, err := s.repo.UpdateVersioned(ctx, projectID, project.Version, updates)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrConflict
	}

	historyProgress := project.ProgressPercentage
	if req.ProgressPercentage != nil {
		historyProgress = *req.ProgressPercentage
	}
	entry := &ProgressHistory{
		ProjectID:          projectID,
		ProgressPercentage: historyProgress,
		Status:             req.Status,
		Milestone:          req.Milestone,
		Notes:              req.Notes,
		Issues:             req.Issues,
		NextSteps:          req.NextSteps,
		FilesCount:         len(req.Files),
		UpdatedBy:          claims.UserID,
	}
	if len(req.Files) > 0 {
		meta, err := json.Marshal(req.Files)
		if err != nil {
			return nil, err
		}
		entry.Attachments = datatypes.JSON(meta)
	}
	if err := s.repo.AddHistory(ctx, entry); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, projectID)
}

// ApproveFunds records the ministry's fund approval on a project
func (s *Service) ApproveFunds(ctx context.Context, claims *auth.Claims, projectID string, approvedAmount int64) (*Project, error) {
	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	affected, err := s.repo.UpdateVersioned(ctx, projectID, project.Version, map[string]interface{}{
		"approved_amount": approvedAmount,
		"approved_by":     claims.UserID,
		"approval_date":   now,
		"approval_status": "Approved",
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrConflict
	}

	s.logger.Info("funds approved",
		zap.String("project_id", projectID),
		zap.Int64("approved_amount", approvedAmount))

	return s.repo.FindByID(ctx, projectID)
}

// History returns the progress audit trail: agencies see their own projects,
// every other authenticated role sees everything.
func (s *Service) History(ctx context.Context, claims *auth.Claims) ([]ProgressHistory, error) {
	agencyID := ""
	if claims.Role == auth.RoleImplementingAgency {
		agencyID = claims.UserID
	}
	return s.repo.History(ctx, agencyID)
}
