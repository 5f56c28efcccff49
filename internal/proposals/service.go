package proposals

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"pm-ajay/scheme-portal/portal-backend/internal/agencies"
	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/projects"
	"pm-ajay/scheme-portal/portal-backend/internal/scope"
	"pm-ajay/scheme-portal/portal-backend/pkg/workflows"
)

// Service errors mapped to HTTP statuses by the handler
var (
	ErrNotFound       = errors.New("proposal not found or not assigned to your agency")
	ErrAgencyNotFound = errors.New("agency not found")
	ErrValidation     = errors.New("missing required fields")
	ErrBadTransition  = errors.New("status transition not allowed")
)

// milestoneTemplate is the fixed four-phase plan every accepted proposal's
// project starts with.
var milestoneTemplate = []projects.Milestone{
	{Phase: "Planning", Status: projects.MilestoneInProgress},
	{Phase: "Approval", Status: projects.MilestonePending},
	{Phase: "Implementation", Status: projects.MilestonePending},
	{Phase: "Completion", Status: projects.MilestonePending},
}

// SubmitRequest is the state-admin proposal submission payload
type SubmitRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	ProjectType     string  `json:"project_type"`
	EstimatedBudget int64   `json:"estimated_budget"`
	Timeline        string  `json:"timeline"`
	District        string  `json:"district"`
	Village         *string `json:"village"`
}

// ReviewRequest is the agency review payload
type ReviewRequest struct {
	Status         string `json:"status"`
	ReviewComments string `json:"review_comments"`
}

// AcceptRequest is the agency acceptance payload
type AcceptRequest struct {
	StartDate          string `json:"start_date"`
	ExpectedCompletion string `json:"expected_completion"`
	ImplementationPlan string `json:"implementation_plan"`
}

// Service implements the proposal lifecycle
type Service struct {
	repo     Repository
	agencies agencies.Repository
	machine  *workflows.StateMachine
	logger   *zap.Logger
}

// NewService creates the proposal service
func NewService(repo Repository, agencyRepo agencies.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		agencies: agencyRepo,
		machine:  workflows.NewStateMachine(),
		logger:   logger,
	}
}

// List returns the proposals visible to the authenticated role
func (s *Service) List(ctx context.Context, claims *auth.Claims) ([]Proposal, error) {
	return s.repo.List(ctx, scope.ForClaims(claims))
}

// Submit records a new proposal in the Submitted state. State is taken from
// the submitter's claims, never from the payload.
func (s *Service) Submit(ctx context.Context, claims *auth.Claims, req SubmitRequest) (*Proposal, error) {
	if req.Title == "" || req.Description == "" || req.ProjectType == "" ||
		req.EstimatedBudget == 0 || req.Timeline == "" {
		return nil, ErrValidation
	}

	state := ""
	if claims.State != nil {
		state = *claims.State
	}

	proposal := &Proposal{
		Title:           req.Title,
		Description:     req.Description,
		ProjectType:     req.ProjectType,
		EstimatedBudget: req.EstimatedBudget,
		Timeline:        req.Timeline,
		State:           state,
		District:        req.District,
		Village:         req.Village,
		Status:          workflows.StatusSubmitted,
		SubmittedBy:     claims.UserID,
	}

	if err := s.repo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	s.logger.Info("proposal submitted",
		zap.Uint("proposal_id", proposal.ID),
		zap.String("state", proposal.State))

	return proposal, nil
}

// Assign hands a proposal to an implementing agency. Ministry only; both the
// proposal and the agency must exist.
func (s *Service) Assign(ctx context.Context, id uint, agencyID string) (*Proposal, error) {
	proposal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrNotFound
	}

	agency, err := s.agencies.FindByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, ErrAgencyNotFound
	}

	if err := s.repo.Assign(ctx, id, agencyID, time.Now()); err != nil {
		return nil, err
	}

	s.logger.Info("proposal assigned",
		zap.Uint("proposal_id", id),
		zap.String("agency_id", agencyID))

	return s.repo.FindByID(ctx, id)
}

// Review lets the assigned agency record a review outcome. The three review
// statuses are interchangeable; anything else is rejected up front.
func (s *Service) Review(ctx context.Context, claims *auth.Claims, id uint, req ReviewRequest) (*Proposal, error) {
	if !workflows.IsReviewStatus(req.Status) {
		return nil, ErrBadTransition
	}

	proposal, err := s.repo.FindAssigned(ctx, id, claims.UserID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrNotFound
	}

	if !s.machine.CanTransition(proposal.Status, req.Status) {
		return nil, ErrBadTransition
	}

	if err := s.repo.Review(ctx, id, req.Status, claims.UserID, time.Now()); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

// Accept moves the proposal to Accepted and creates its project with the
// four-phase milestone plan, all in one transaction.
func (s *Service) Accept(ctx context.Context, claims *auth.Claims, id uint, req AcceptRequest) (*Proposal, *projects.Project, error) {
	proposal, err := s.repo.FindAssigned(ctx, id, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	if proposal == nil {
		return nil, nil, ErrNotFound
	}

	if !s.machine.CanTransition(proposal.Status, workflows.StatusAccepted) {
		return nil, nil, ErrBadTransition
	}

	startDate := req.StartDate
	if startDate == "" {
		startDate = time.Now().Format("2006-01-02")
	}

	agencyID := claims.UserID
	village := ""
	if proposal.Village != nil {
		village = *proposal.Village
	}

	project := &projects.Project{
		ID:                 projects.NewProjectID(),
		Name:               proposal.Title,
		Description:        proposal.Description,
		Type:               proposal.ProjectType,
		State:              proposal.State,
		District:           proposal.District,
		Village:            village,
		BudgetAllocated:    proposal.EstimatedBudget,
		ProgressPercentage: 0,
		Status:             "Planning",
		StartDate:          &startDate,
		ImplementingAgency: &agencyID,
	}
	if req.ExpectedCompletion != "" {
		project.ExpectedCompletion = &req.ExpectedCompletion
	}

	milestones := make([]projects.Milestone, len(milestoneTemplate))
	copy(milestones, milestoneTemplate)

	if err := s.repo.Accept(ctx, id, claims.UserID, project, milestones); err != nil {
		return nil, nil, err
	}

	s.logger.Info("proposal accepted",
		zap.Uint("proposal_id", id),
		zap.String("project_id", project.ID),
		zap.String("agency_id", agencyID))

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, project, nil
}
