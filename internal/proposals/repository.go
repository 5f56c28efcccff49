package proposals

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/projects"
	"pm-ajay/scheme-portal/portal-backend/internal/scope"
)

// Repository handles proposal data access
type Repository interface {
	List(ctx context.Context, sc scope.RoleScope) ([]Proposal, error)
	Create(ctx context.Context, proposal *Proposal) error
	FindByID(ctx context.Context, id uint) (*Proposal, error)
	FindAssigned(ctx context.Context, id uint, agencyID string) (*Proposal, error)
	Assign(ctx context.Context, id uint, agencyID string, at time.Time) error
	Review(ctx context.Context, id uint, status, reviewerID string, at time.Time) error
	// Accept marks the proposal accepted and creates the project with its
	// milestones in a single transaction; a failure anywhere rolls back
	// everything.
	Accept(ctx context.Context, id uint, reviewerID string, project *projects.Project, milestones []projects.Milestone) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed proposal repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context, sc scope.RoleScope) ([]Proposal, error) {
	var result []Proposal
	err := r.db.WithContext(ctx).
		Scopes(sc.Proposals).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	if err := r.fillNames(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// fillNames resolves submitter, reviewer, and agency display names
func (r *gormRepository) fillNames(ctx context.Context, result []Proposal) error {
	userIDs := make([]string, 0, len(result)*2)
	agencyIDs := make([]string, 0, len(result))
	for _, p := range result {
		userIDs = append(userIDs, p.SubmittedBy)
		if p.ReviewedBy != nil {
			userIDs = append(userIDs, *p.ReviewedBy)
		}
		if p.AssignedAgency != nil {
			agencyIDs = append(agencyIDs, *p.AssignedAgency)
		}
	}
	if len(userIDs) == 0 {
		return nil
	}

	var users []auth.User
	if err := r.db.WithContext(ctx).Select("id", "name", "state").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return err
	}
	userNames := make(map[string]auth.User, len(users))
	for _, u := range users {
		userNames[u.ID] = u
	}

	agencyNames := make(map[string]string)
	if len(agencyIDs) > 0 {
		type row struct {
			ID   string
			Name string
		}
		var rows []row
		if err := r.db.WithContext(ctx).Table("agencies").Select("id", "name").Where("id IN ?", agencyIDs).Find(&rows).Error; err != nil {
			return err
		}
		for _, a := range rows {
			agencyNames[a.ID] = a.Name
		}
	}

	for i := range result {
		if u, ok := userNames[result[i].SubmittedBy]; ok {
			result[i].SubmittedByName = u.Name
			if u.State != nil {
				result[i].SubmitterState = *u.State
			}
		}
		if result[i].ReviewedBy != nil {
			result[i].ReviewedByName = userNames[*result[i].ReviewedBy].Name
		}
		if result[i].AssignedAgency != nil {
			result[i].AssignedAgencyName = agencyNames[*result[i].AssignedAgency]
		}
	}
	return nil
}

func (r *gormRepository) Create(ctx context.Context, proposal *Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*Proposal, error) {
	var proposal Proposal
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&proposal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// FindAssigned returns the proposal only when it is assigned to the given
// agency; an unassigned or differently assigned proposal behaves like a
// missing row.
func (r *gormRepository) FindAssigned(ctx context.Context, id uint, agencyID string) (*Proposal, error) {
	var proposal Proposal
	err := r.db.WithContext(ctx).
		Where("id = ? AND assigned_agency = ?", id, agencyID).
		First(&proposal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *gormRepository) Assign(ctx context.Context, id uint, agencyID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&Proposal{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"assigned_agency": agencyID,
			"assigned_date":   at,
			"status":          "Assigned",
		}).Error
}

func (r *gormRepository) Review(ctx context.Context, id uint, status, reviewerID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&Proposal{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": at,
		}).Error
}

func (r *gormRepository) Accept(ctx context.Context, id uint, reviewerID string, project *projects.Project, milestones []projects.Milestone) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Proposal{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":      "Accepted",
				"reviewed_by": reviewerID,
				"reviewed_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Create(project).Error; err != nil {
			return err
		}

		for i := range milestones {
			milestones[i].ProjectID = project.ID
		}
		return tx.Create(&milestones).Error
	})
}
