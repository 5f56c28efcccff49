package dashboard

import (
	"context"

	"gorm.io/gorm"

	"pm-ajay/scheme-portal/portal-backend/internal/scope"
)

// Repository reads scoped project aggregates for dashboards
type Repository interface {
	Stats(ctx context.Context, sc scope.RoleScope) (*ProjectStats, error)
	PublicStats(ctx context.Context) (*ProjectStats, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a dashboard repository backed by gorm
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Stats(ctx context.Context, sc scope.RoleScope) (*ProjectStats, error) {
	return r.collect(ctx, func() *gorm.DB {
		return sc.Projects(r.db.WithContext(ctx).Table("projects"))
	})
}

func (r *gormRepository) PublicStats(ctx context.Context) (*ProjectStats, error) {
	return r.collect(ctx, func() *gorm.DB {
		return r.db.WithContext(ctx).Table("projects")
	})
}

// collect runs the aggregate queries against a fresh scoped base each time,
// since gorm chains mutate the underlying statement.
func (r *gormRepository) collect(ctx context.Context, base func() *gorm.DB) (*ProjectStats, error) {
	stats := &ProjectStats{}

	if err := base().Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}

	if err := base().
		Where("status = ? OR progress_percentage >= 100", "Completed").
		Count(&stats.CompletedProjects).Error; err != nil {
		return nil, err
	}

	type sums struct {
		Allocated int64
		Utilized  int64
		AvgProg   *float64
	}
	var s sums
	if err := base().
		Select("COALESCE(SUM(budget_allocated), 0) AS allocated, COALESCE(SUM(budget_utilized), 0) AS utilized, AVG(progress_percentage) AS avg_prog").
		Scan(&s).Error; err != nil {
		return nil, err
	}
	stats.BudgetAllocated = s.Allocated
	stats.BudgetUtilized = s.Utilized
	if s.AvgProg != nil {
		stats.AverageProgress = *s.AvgProg
	}

	if err := base().
		Where("implementing_agency IS NOT NULL AND implementing_agency != ''").
		Distinct("implementing_agency").
		Count(&stats.ActiveAgencies).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
