package village

import (
	"context"

	"gorm.io/gorm"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/scope"
)

// Repository handles needs-assessment and feedback data access
type Repository interface {
	CreateNeed(ctx context.Context, need *NeedsAssessment) error
	ListNeeds(ctx context.Context, sc scope.RoleScope) ([]NeedsAssessment, error)
	CreateFeedback(ctx context.Context, fb *Feedback) error
	ListFeedback(ctx context.Context, sc scope.RoleScope) ([]Feedback, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed village repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateNeed(ctx context.Context, need *NeedsAssessment) error {
	return r.db.WithContext(ctx).Create(need).Error
}

func (r *gormRepository) ListNeeds(ctx context.Context, sc scope.RoleScope) ([]NeedsAssessment, error) {
	var needs []NeedsAssessment
	err := r.db.WithContext(ctx).
		Scopes(sc.Needs).
		Order("created_at DESC").
		Find(&needs).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(needs))
	for _, n := range needs {
		ids = append(ids, n.SubmittedBy)
	}
	names, err := r.userNames(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range needs {
		needs[i].SubmittedByName = names[needs[i].SubmittedBy]
	}
	return needs, nil
}

func (r *gormRepository) CreateFeedback(ctx context.Context, fb *Feedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *gormRepository) ListFeedback(ctx context.Context, sc scope.RoleScope) ([]Feedback, error) {
	var feedback []Feedback
	err := r.db.WithContext(ctx).
		Scopes(sc.Feedback).
		Order("created_at DESC").
		Find(&feedback).Error
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(feedback))
	projectIDs := make([]string, 0, len(feedback))
	for _, f := range feedback {
		userIDs = append(userIDs, f.SubmittedBy)
		projectIDs = append(projectIDs, f.ProjectID)
	}
	names, err := r.userNames(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	projectNames := make(map[string]string)
	if len(projectIDs) > 0 {
		type row struct {
			ID   string
			Name string
		}
		var rows []row
		if err := r.db.WithContext(ctx).Table("projects").Select("id", "name").Where("id IN ?", projectIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, p := range rows {
			projectNames[p.ID] = p.Name
		}
	}

	for i := range feedback {
		feedback[i].SubmittedByName = names[feedback[i].SubmittedBy]
		feedback[i].ProjectName = projectNames[feedback[i].ProjectID]
	}
	return feedback, nil
}

func (r *gormRepository) userNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string)
	if len(ids) == 0 {
		return names, nil
	}
	var users []auth.User
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}
