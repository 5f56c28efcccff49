package agencies

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository handles agency data access
type Repository interface {
	List(ctx context.Context) ([]Agency, error)
	FindByID(ctx context.Context, id string) (*Agency, error)
	PublicList(ctx context.Context) ([]Agency, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed agency repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// List returns all agencies with their assigned and completed project counts
func (r *gormRepository) List(ctx context.Context) ([]Agency, error) {
	var agencies []Agency
	if err := r.db.WithContext(ctx).Find(&agencies).Error; err != nil {
		return nil, err
	}

	for i := range agencies {
		var assigned, completed int64
		err := r.db.WithContext(ctx).Table("projects").
			Where("implementing_agency = ?", agencies[i].ID).
			Count(&assigned).Error
		if err != nil {
			return nil, err
		}
		err = r.db.WithContext(ctx).Table("projects").
			Where("implementing_agency = ? AND (status = ? OR progress_percentage >= 100)", agencies[i].ID, "Completed").
			Count(&completed).Error
		if err != nil {
			return nil, err
		}
		agencies[i].AssignedProjectsCount = assigned
		agencies[i].CompletedProjectsCount = completed
	}

	return agencies, nil
}

// PublicList returns the reduced unauthenticated field set
func (r *gormRepository) PublicList(ctx context.Context) ([]Agency, error) {
	var agencies []Agency
	err := r.db.WithContext(ctx).
		Select("id", "name", "type", "contact_person", "email").
		Find(&agencies).Error
	if err != nil {
		return nil, err
	}
	return agencies, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*Agency, error) {
	var agency Agency
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&agency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agency, nil
}
