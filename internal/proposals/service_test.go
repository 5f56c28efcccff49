package proposals

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pm-ajay/scheme-portal/portal-backend/internal/agencies"
	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/projects"
	"pm-ajay/scheme-portal/portal-backend/internal/scope"
	"pm-ajay/scheme-portal/portal-backend/pkg/workflows"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, sc scope.RoleScope) ([]Proposal, error) {
	args := m.Called(ctx, sc)
	return args.Get(0).([]Proposal), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, proposal *Proposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Proposal), args.Error(1)
}

func (m *MockRepository) FindAssigned(ctx context.Context, id uint, agencyID string) (*Proposal, error) {
	args := m.Called(ctx, id, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Proposal), args.Error(1)
}

func (m *MockRepository) Assign(ctx context.Context, id uint, agencyID string, at time.Time) error {
	args := m.Called(ctx, id, agencyID, at)
	return args.Error(0)
}

func (m *MockRepository) Review(ctx context.Context, id uint, status, reviewerID string, at time.Time) error {
	args := m.Called(ctx, id, status, reviewerID, at)
	return args.Error(0)
}

func (m *MockRepository) Accept(ctx context.Context, id uint, reviewerID string, project *projects.Project, milestones []projects.Milestone) error {
	args := m.Called(ctx, id, reviewerID, project, milestones)
	return args.Error(0)
}

// MockAgencyRepository is a mock implementation of agencies.Repository
type MockAgencyRepository struct {
	mock.Mock
}

func (m *MockAgencyRepository) List(ctx context.Context) ([]agencies.Agency, error) {
	args := m.Called(ctx)
	return args.Get(0).([]agencies.Agency), args.Error(1)
}

func (m *MockAgencyRepository) PublicList(ctx context.Context) ([]agencies.Agency, error) {
	args := m.Called(ctx)
	return args.Get(0).([]agencies.Agency), args.Error(1)
}

func (m *MockAgencyRepository) FindByID(ctx context.Context, id string) (*agencies.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agencies.Agency), args.Error(1)
}

func agencyClaims(id string) *auth.Claims {
	return &auth.Claims{UserID: id, Role: auth.RoleImplementingAgency}
}

func TestSubmitRequiresFields(t *testing.T) {
	service := NewService(new(MockRepository), new(MockAgencyRepository), zap.NewNop())

	_, err := service.Submit(context.Background(), &auth.Claims{UserID: "sa001"}, SubmitRequest{
		Title: "Missing everything else",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssignUnknownAgency(t *testing.T) {
	repo := new(MockRepository)
	agencyRepo := new(MockAgencyRepository)
	service := NewService(repo, agencyRepo, zap.NewNop())

	repo.On("FindByID", mock.Anything, uint(1)).Return(&Proposal{ID: 1, Status: workflows.StatusSubmitted}, nil)
	agencyRepo.On("FindByID", mock.Anything, "ia999").Return(nil, nil)

	_, err := service.Assign(context.Background(), 1, "ia999")
	assert.ErrorIs(t, err, ErrAgencyNotFound)
}

func TestReviewUnassignedProposal(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, new(MockAgencyRepository), zap.NewNop())

	repo.On("FindAssigned", mock.Anything, uint(7), "ia001").Return(nil, nil)

	_, err := service.Review(context.Background(), agencyClaims("ia001"), 7, ReviewRequest{Status: workflows.StatusApproved})
	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertNotCalled(t, "Review")
}

func TestReviewRejectsNonReviewStatus(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, new(MockAgencyRepository), zap.NewNop())

	_, err := service.Review(context.Background(), agencyClaims("ia001"), 7, ReviewRequest{Status: workflows.StatusAccepted})
	assert.ErrorIs(t, err, ErrBadTransition)
	repo.AssertNotCalled(t, "FindAssigned")
}

func TestAcceptRejectedProposal(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, new(MockAgencyRepository), zap.NewNop())

	repo.On("FindAssigned", mock.Anything, uint(3), "ia001").
		Return(&Proposal{ID: 3, Status: workflows.StatusRejected}, nil)

	_, _, err := service.Accept(context.Background(), agencyClaims("ia001"), 3, AcceptRequest{})
	assert.ErrorIs(t, err, ErrBadTransition)
	repo.AssertNotCalled(t, "Accept")
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// a file-backed database: the in-memory driver does not survive gorm's
	// connection pooling
	path := filepath.Join(t.TempDir(), "portal_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&auth.User{},
		&agencies.Agency{},
		&projects.Project{},
		&projects.Milestone{},
		&Proposal{},
	)
	assert.NoError(t, err)
	return db
}

func TestAcceptCreatesProjectWithMilestonePlan(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	assert.NoError(t, db.Create(&auth.User{ID: "sa001", Username: "maharashtra_admin", Password: "x", Name: "Maharashtra State Administrator", Role: auth.RoleStateAdmin}).Error)
	assert.NoError(t, db.Create(&auth.User{ID: "ia002", Username: "skill_agency1", Password: "x", Name: "Skill Development Institute", Role: auth.RoleImplementingAgency}).Error)
	assert.NoError(t, db.Create(&agencies.Agency{ID: "ia002", Name: "Skill Development Institute", Type: "Training & Skill Development"}).Error)

	repo := NewRepository(db)
	agencyRepo := agencies.NewRepository(db)
	service := NewService(repo, agencyRepo, zap.NewNop())

	village := "Wada"
	proposal, err := service.Submit(ctx, &auth.Claims{UserID: "sa001", Role: auth.RoleStateAdmin, State: strPtr("Maharashtra")}, SubmitRequest{
		Title:           "Modern Library & Digital Hub",
		Description:     "Community library with digital access facilities",
		ProjectType:     "Infrastructure",
		EstimatedBudget: 4500000,
		Timeline:        "9 months",
		District:        "Palghar",
		Village:         &village,
	})
	assert.NoError(t, err)
	assert.Equal(t, workflows.StatusSubmitted, proposal.Status)
	assert.Equal(t, "Maharashtra", proposal.State)

	assigned, err := service.Assign(ctx, proposal.ID, "ia002")
	assert.NoError(t, err)
	assert.Equal(t, workflows.StatusAssigned, assigned.Status)
	assert.Equal(t, "ia002", *assigned.AssignedAgency)

	accepted, project, err := service.Accept(ctx, agencyClaims("ia002"), proposal.ID, AcceptRequest{
		StartDate:          "2024-06-01",
		ExpectedCompletion: "2025-03-01",
	})
	assert.NoError(t, err)
	assert.Equal(t, workflows.StatusAccepted, accepted.Status)
	assert.Equal(t, "ia002", *accepted.ReviewedBy)

	assert.Equal(t, "Modern Library & Digital Hub", project.Name)
	assert.Equal(t, int64(4500000), project.BudgetAllocated)
	assert.Equal(t, 0, project.ProgressPercentage)
	assert.Equal(t, "Planning", project.Status)
	assert.Equal(t, "ia002", *project.ImplementingAgency)
	assert.Equal(t, "2024-06-01", *project.StartDate)

	var milestones []projects.Milestone
	assert.NoError(t, db.Where("project_id = ?", project.ID).Order("id").Find(&milestones).Error)
	assert.Len(t, milestones, 4)
	assert.Equal(t, "Planning", milestones[0].Phase)
	assert.Equal(t, projects.MilestoneInProgress, milestones[0].Status)
	for _, m := range milestones[1:] {
		assert.Equal(t, projects.MilestonePending, m.Status)
	}

	// accepted is terminal
	_, _, err = service.Accept(ctx, agencyClaims("ia002"), proposal.ID, AcceptRequest{})
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestAcceptByDifferentAgency(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	assert.NoError(t, db.Create(&agencies.Agency{ID: "ia001", Name: "Bharat Infrastructure Pvt Ltd", Type: "Infrastructure Development"}).Error)

	repo := NewRepository(db)
	service := NewService(repo, agencies.NewRepository(db), zap.NewNop())

	proposal := &Proposal{
		Title: "Solar Power Installation", Description: "d", ProjectType: "Infrastructure",
		EstimatedBudget: 8500000, Timeline: "6 months",
		State: "Haryana", District: "Rohtak",
		Status: workflows.StatusSubmitted, SubmittedBy: "sa002",
	}
	assert.NoError(t, repo.Create(ctx, proposal))
	_, err := service.Assign(ctx, proposal.ID, "ia001")
	assert.NoError(t, err)

	// another agency cannot accept it
	_, _, err = service.Accept(ctx, agencyClaims("ia003"), proposal.ID, AcceptRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func strPtr(s string) *string { return &s }
