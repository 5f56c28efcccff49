package projects

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/scope"
)

// Repository handles project, milestone, and progress-history data access
type Repository interface {
	List(ctx context.Context, sc scope.RoleScope) ([]Project, error)
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	FindOwned(ctx context.Context, id, agencyID string) (*Project, error)
	// UpdateVersioned applies updates only when the stored version still
	// matches; it returns the number of rows affected (0 means a concurrent
	// writer won).
	UpdateVersioned(ctx context.Context, id string, version int, updates map[string]interface{}) (int64, error)
	CreateMilestones(ctx context.Context, milestones []Milestone) error
	AddHistory(ctx context.Context, entry *ProgressHistory) error
	History(ctx context.Context, agencyID string) ([]ProgressHistory, error)
	PublicList(ctx context.Context) ([]Project, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed project repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context, sc scope.RoleScope) ([]Project, error) {
	var result []Project
	err := r.db.WithContext(ctx).
		Scopes(sc.Projects).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("milestones.id")
		}).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	if err := r.fillAgencyNames(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// fillAgencyNames resolves implementing_agency ids to display names in one
// users query instead of a join per row.
func (r *gormRepository) fillAgencyNames(ctx context.Context, result []Project) error {
	ids := make([]string, 0, len(result))
	for i := range result {
		if result[i].ImplementingAgency != nil {
			ids = append(ids, *result[i].ImplementingAgency)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var users []auth.User
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return err
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for i := range result {
		if result[i].ImplementingAgency != nil {
			result[i].AgencyName = names[*result[i].ImplementingAgency]
		}
	}
	return nil
}

func (r *gormRepository) Create(ctx context.Context, project *Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*Project, error) {
	var project Project
	err := r.db.WithContext(ctx).
		Preload("Milestones").
		Where("id = ?", id).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *gormRepository) FindOwned(ctx context.Context, id, agencyID string) (*Project, error) {
	var project Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND implementing_agency = ?", id, agencyID).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *gormRepository) UpdateVersioned(ctx context.Context, id string, version int, updates map[string]interface{}) (int64, error) {
	updates["version"] = version + 1
	result := r.db.WithContext(ctx).Model(&Project{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *gormRepository) CreateMilestones(ctx context.Context, milestones []Milestone) error {
	return r.db.WithContext(ctx).Create(&milestones).Error
}

func (r *gormRepository) AddHistory(ctx context.Context, entry *ProgressHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// History returns progress updates newest first. An empty agencyID returns
// every project's history; otherwise only projects owned by that agency.
func (r *gormRepository) History(ctx context.Context, agencyID string) ([]ProgressHistory, error) {
	var entries []ProgressHistory
	query := r.db.WithContext(ctx).Model(&ProgressHistory{}).Order("update_date DESC")
	if agencyID != "" {
		query = query.Where("project_id IN (?)",
			r.db.Model(&Project{}).Select("id").Where("implementing_agency = ?", agencyID))
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProjectID)
	}
	if len(ids) > 0 {
		var rows []Project
		if err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, err
		}
		names := make(map[string]string, len(rows))
		for _, p := range rows {
			names[p.ID] = p.Name
		}
		for i := range entries {
			entries[i].ProjectName = names[entries[i].ProjectID]
		}
	}

	return entries, nil
}

// PublicList returns every project with the reduced public field set
func (r *gormRepository) PublicList(ctx context.Context) ([]Project, error) {
	var result []Project
	err := r.db.WithContext(ctx).
		Select("id", "name", "description", "type", "state", "district", "village",
			"budget_allocated", "progress_percentage", "status", "start_date", "expected_completion").
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}
