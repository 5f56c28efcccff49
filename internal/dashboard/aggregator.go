package dashboard

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/scope"
)

const publicSummaryKey = "public_summary"

// Aggregator computes role-shaped dashboard summaries. The public summary is
// cached since it is served unauthenticated.
type Aggregator struct {
	repo   Repository
	cache  *SummaryCache
	logger *zap.Logger
}

// NewAggregator creates a new aggregator
func NewAggregator(repo Repository, cacheTTL time.Duration, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		repo:   repo,
		cache:  NewSummaryCache(cacheTTL),
		logger: logger,
	}
}

// Summary returns the dashboard summary shaped for the caller's role.
func (a *Aggregator) Summary(ctx context.Context, claims *auth.Claims) (interface{}, error) {
	stats, err := a.repo.Stats(ctx, scope.ForClaims(claims))
	if err != nil {
		return nil, err
	}

	inProgress := stats.TotalProjects - stats.CompletedProjects
	avg := roundPercent(stats.AverageProgress)
	util := utilizationPercent(stats.BudgetUtilized, stats.BudgetAllocated)

	switch claims.Role {
	case auth.RoleCentralMinistry:
		return &MinistrySummary{
			TotalProjects:            stats.TotalProjects,
			CompletedProjects:        stats.CompletedProjects,
			InProgressProjects:       inProgress,
			TotalBudgetAllocated:     stats.BudgetAllocated,
			TotalBudgetUtilized:      stats.BudgetUtilized,
			BudgetUtilizationPercent: util,
			ActiveAgencies:           stats.ActiveAgencies,
			AverageProgress:          avg,
		}, nil
	case auth.RoleStateAdmin:
		return &StateSummary{
			StateProjects:            stats.TotalProjects,
			CompletedProjects:        stats.CompletedProjects,
			InProgressProjects:       inProgress,
			BudgetAllocated:          stats.BudgetAllocated,
			BudgetUtilized:           stats.BudgetUtilized,
			BudgetUtilizationPercent: util,
			AverageProgress:          avg,
		}, nil
	case auth.RoleVillageCommittee:
		return &VillageSummary{
			VillageProjects:    stats.TotalProjects,
			CompletedProjects:  stats.CompletedProjects,
			InProgressProjects: inProgress,
			BudgetAllocated:    stats.BudgetAllocated,
			AverageProgress:    avg,
		}, nil
	case auth.RoleImplementingAgency:
		return &AgencySummary{
			AssignedProjects:   stats.TotalProjects,
			CompletedProjects:  stats.CompletedProjects,
			InProgressProjects: inProgress,
			TotalBudget:        stats.BudgetAllocated,
			AverageProgress:    avg,
		}, nil
	default:
		return &PublicSummary{
			TotalProjects:            stats.TotalProjects,
			CompletedProjects:        stats.CompletedProjects,
			InProgressProjects:       inProgress,
			TotalBudgetAllocated:     stats.BudgetAllocated,
			TotalBudgetUtilized:      stats.BudgetUtilized,
			BudgetUtilizationPercent: util,
			ActiveAgencies:           stats.ActiveAgencies,
		}, nil
	}
}

// PublicSummary returns the cached unauthenticated summary, computing it on a
// cache miss.
func (a *Aggregator) PublicSummary(ctx context.Context) (*PublicSummary, error) {
	if cached, ok := a.cache.Get(publicSummaryKey); ok {
		if summary, ok := cached.(*PublicSummary); ok {
			return summary, nil
		}
	}

	summary, err := a.computePublicSummary(ctx)
	if err != nil {
		return nil, err
	}

	a.cache.Set(publicSummaryKey, summary)
	return summary, nil
}

// RefreshPublicSummary recomputes the public summary ahead of its expiry. It
// is called on a schedule so anonymous traffic rarely sees a cold cache.
func (a *Aggregator) RefreshPublicSummary(ctx context.Context) {
	summary, err := a.computePublicSummary(ctx)
	if err != nil {
		a.logger.Error("Failed to refresh public summary", zap.Error(err))
		return
	}
	a.cache.Set(publicSummaryKey, summary)
}

// Stop releases the cache's background resources
func (a *Aggregator) Stop() {
	a.cache.Stop()
}

func (a *Aggregator) computePublicSummary(ctx context.Context) (*PublicSummary, error) {
	stats, err := a.repo.PublicStats(ctx)
	if err != nil {
		return nil, err
	}

	return &PublicSummary{
		TotalProjects:            stats.TotalProjects,
		CompletedProjects:        stats.CompletedProjects,
		InProgressProjects:       stats.TotalProjects - stats.CompletedProjects,
		TotalBudgetAllocated:     stats.BudgetAllocated,
		TotalBudgetUtilized:      stats.BudgetUtilized,
		BudgetUtilizationPercent: utilizationPercent(stats.BudgetUtilized, stats.BudgetAllocated),
		ActiveAgencies:           stats.ActiveAgencies,
	}, nil
}

// utilizationPercent reports utilized as a whole percent of allocated. A zero
// allocation reports zero rather than dividing by it.
func utilizationPercent(utilized, allocated int64) int {
	if allocated == 0 {
		return 0
	}
	return int(math.Round(float64(utilized) / float64(allocated) * 100))
}

func roundPercent(v float64) int {
	return int(math.Round(v))
}
