package projects

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "portal_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	err = db.AutoMigrate(&auth.User{}, &Project{}, &Milestone{}, &ProgressHistory{})
	assert.NoError(t, err)
	return db
}

func strPtr(s string) *string { return &s }

func seedFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()

	users := []auth.User{
		{ID: "ia001", Username: "infra_agency1", Password: "x", Name: "Bharat Infrastructure Pvt Ltd", Role: auth.RoleImplementingAgency},
		{ID: "ia002", Username: "skill_agency1", Password: "x", Name: "Skill Development Institute", Role: auth.RoleImplementingAgency},
	}
	assert.NoError(t, db.Create(&users).Error)

	fixtures := []Project{
		{ID: "PROJ001", Name: "Rural Road Construction", Type: "Infrastructure", State: "Maharashtra", District: "Mumbai", Village: "Thane Rural", BudgetAllocated: 25000000, Status: "In Progress", ProgressPercentage: 75, ImplementingAgency: strPtr("ia001")},
		{ID: "PROJ002", Name: "Smart Water Management", Type: "Infrastructure", State: "Maharashtra", District: "Pune", Village: "Shirur", BudgetAllocated: 18000000, Status: "In Progress", ProgressPercentage: 30, ImplementingAgency: strPtr("ia002")},
		{ID: "PROJ003", Name: "Girls Hostel Construction", Type: "Hostel", State: "Haryana", District: "Jhajjar", Village: "Ramgarh", BudgetAllocated: 15000000, Status: "In Progress", ProgressPercentage: 60, ImplementingAgency: strPtr("ia002")},
	}
	assert.NoError(t, db.Create(&fixtures).Error)
}

func claims(userID, role string, state, village *string) *auth.Claims {
	return &auth.Claims{UserID: userID, Role: role, State: state, Village: village}
}

func TestListScopedByRole(t *testing.T) {
	db := openTestDB(t)
	seedFixtures(t, db)
	service := NewService(NewRepository(db), zap.NewNop())
	ctx := context.Background()

	ministry, err := service.List(ctx, claims("cm001", auth.RoleCentralMinistry, nil, nil))
	assert.NoError(t, err)
	assert.Len(t, ministry, 3)

	state, err := service.List(ctx, claims("sa001", auth.RoleStateAdmin, strPtr("Maharashtra"), nil))
	assert.NoError(t, err)
	assert.Len(t, state, 2)

	village, err := service.List(ctx, claims("vc002", auth.RoleVillageCommittee, strPtr("Haryana"), strPtr("Ramgarh")))
	assert.NoError(t, err)
	assert.Len(t, village, 1)
	assert.Equal(t, "PROJ003", village[0].ID)

	agency, err := service.List(ctx, claims("ia002", auth.RoleImplementingAgency, nil, nil))
	assert.NoError(t, err)
	assert.Len(t, agency, 2)
	// agency names resolved from the users table
	assert.Equal(t, "Skill Development Institute", agency[0].AgencyName)
}

func TestCreateStartsUnapproved(t *testing.T) {
	db := openTestDB(t)
	service := NewService(NewRepository(db), zap.NewNop())

	project, err := service.Create(context.Background(),
		claims("sa001", auth.RoleStateAdmin, strPtr("Maharashtra"), nil),
		CreateProjectRequest{
			Name: "Community Sports Complex", Description: "d", Type: "Sports",
			State: "Maharashtra", District: "Nagpur", Village: "Kamptee",
			BudgetAllocated: 9000000,
		})

	assert.NoError(t, err)
	assert.Equal(t, "Pending Approval", project.Status)
	assert.Equal(t, 0, project.ProgressPercentage)
	assert.Equal(t, "sa001", *project.SubmittedBy)
	assert.Contains(t, project.ID, "PROJ_")
}

func TestCreateValidation(t *testing.T) {
	service := NewService(NewRepository(openTestDB(t)), zap.NewNop())

	_, err := service.Create(context.Background(),
		claims("sa001", auth.RoleStateAdmin, nil, nil),
		CreateProjectRequest{Name: "No budget"})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatusOwnershipBehavesLikeMissing(t *testing.T) {
	db := openTestDB(t)
	seedFixtures(t, db)
	service := NewService(NewRepository(db), zap.NewNop())

	// PROJ001 belongs to ia001
	_, err := service.UpdateStatus(context.Background(),
		claims("ia002", auth.RoleImplementingAgency, nil, nil),
		"PROJ001", UpdateStatusRequest{Status: "Completed", ProgressPercentage: 100})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusWritesHistory(t *testing.T) {
	db := openTestDB(t)
	seedFixtures(t, db)
	service := NewService(NewRepository(db), zap.NewNop())
	ctx := context.Background()

	project, err := service.UpdateStatus(ctx,
		claims("ia001", auth.RoleImplementingAgency, nil, nil),
		"PROJ001", UpdateStatusRequest{Status: "Near Completion", ProgressPercentage: 90})

	assert.NoError(t, err)
	assert.Equal(t, "Near Completion", project.Status)
	assert.Equal(t, 90, project.ProgressPercentage)

	var history []ProgressHistory
	assert.NoError(t, db.Where("project_id = ?", "PROJ001").Find(&history).Error)
	assert.Len(t, history, 1)
	assert.Equal(t, 90, history[0].ProgressPercentage)
	assert.Equal(t, "ia001", history[0].UpdatedBy)
}

func intPtr(v int) *int { return &v }

func TestDetailedUpdateStatusOnlyKeepsProgress(t *testing.T) {
	db := openTestDB(t)
	seedFixtures(t, db)
	service := NewService(NewRepository(db), zap.NewNop())

	// no progress_percentage in the form, the stored value stays at 75
	project, err := service.UpdateProgress(context.Background(),
		claims("ia001", auth.RoleImplementingAgency, nil, nil),
		"PROJ001", DetailedUpdateRequest{Status: "Near Completion", Notes: "awaiting final inspection"})

	assert.NoError(t, err)
	assert.Equal(t, "Near Completion", project.Status)
	assert.Equal(t, 75, project.ProgressPercentage)

	var history []ProgressHistory
	assert.NoError(t, db.Where("project_id = ?", "PROJ001").Find(&history).Error)
	assert.Len(t, history, 1)
	assert.Equal(t, 75, history[0].ProgressPercentage)
}

func TestDetailedUpdateExplicitZeroProgress(t *testing.T) {
	db := openTestDB(t)
	seedFixtures(t, db)
	service := NewService(NewRepository(db), zap.NewNop())

	project, err := service.UpdateProgress(context.Background(),
		claims("ia001", auth.RoleImplementingAgency, nil, nil),
		"PROJ001", DetailedUpdateRequest{ProgressPercentage: intPtr(0), Notes: "restarting after redesign"})

	assert.NoError(t, err)
	assert.Equal(t, 0, project.ProgressPercentage)
}

func TestConcurrentUpdateConflicts(t *testing.T) {
	db := openTestDB(t)
	seedFixtures(t, db)
	repo := NewRepository(db)
	service := NewService(repo, zap.NewNop())
	ctx := context.Background()
	agency := claims("ia001", auth.RoleImplementingAgency, nil, nil)

	stale, err := repo.FindOwned(ctx, "PROJ001", "ia001")
	assert.NoError(t, err)

	// another writer bumps the version first
	_, err = service.UpdateStatus(ctx, agency, "PROJ001", UpdateStatusRequest{Status: "In Progress", ProgressPercentage: 80})
	assert.NoError(t, err)

	// the stale version loses
	affected, err := repo.UpdateVersioned(ctx, "PROJ001", stale.Version, map[string]interface{}{
		"progress_percentage": 77,
	})
	assert.NoError(t, err)
	assert.Zero(t, affected)
}

func TestApproveFunds(t *testing.T) {
	db := openTestDB(t)
	seedFixtures(t, db)
	service := NewService(NewRepository(db), zap.NewNop())

	project, err := service.ApproveFunds(context.Background(),
		claims("cm001", auth.RoleCentralMinistry, nil, nil),
		"PROJ002", 18000000)

	assert.NoError(t, err)
	assert.Equal(t, "Approved", project.ApprovalStatus)
	assert.Equal(t, int64(18000000), *project.ApprovedAmount)
	assert.Equal(t, "cm001", *project.ApprovedBy)
	assert.NotNil(t, project.ApprovalDate)
}

func TestHistoryScopedToAgency(t *testing.T) {
	db := openTestDB(t)
	seedFixtures(t, db)
	service := NewService(NewRepository(db), zap.NewNop())
	ctx := context.Background()

	_, err := service.UpdateStatus(ctx, claims("ia001", auth.RoleImplementingAgency, nil, nil),
		"PROJ001", UpdateStatusRequest{Status: "In Progress", ProgressPercentage: 80})
	assert.NoError(t, err)
	_, err = service.UpdateStatus(ctx, claims("ia002", auth.RoleImplementingAgency, nil, nil),
		"PROJ002", UpdateStatusRequest{Status: "In Progress", ProgressPercentage: 40})
	assert.NoError(t, err)

	own, err := service.History(ctx, claims("ia001", auth.RoleImplementingAgency, nil, nil))
	assert.NoError(t, err)
	assert.Len(t, own, 1)
	assert.Equal(t, "PROJ001", own[0].ProjectID)
	assert.Equal(t, "Rural Road Construction", own[0].ProjectName)

	all, err := service.History(ctx, claims("cm001", auth.RoleCentralMinistry, nil, nil))
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
