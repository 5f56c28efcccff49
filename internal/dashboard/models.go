package dashboard

// ProjectStats is the raw scoped aggregate a summary is built from
type ProjectStats struct {
	TotalProjects     int64
	CompletedProjects int64
	BudgetAllocated   int64
	BudgetUtilized    int64
	AverageProgress   float64
	ActiveAgencies    int64
}

// MinistrySummary is the central-ministry dashboard shape
type MinistrySummary struct {
	TotalProjects            int64 `json:"totalProjects"`
	CompletedProjects        int64 `json:"completedProjects"`
	InProgressProjects       int64 `json:"inProgressProjects"`
	TotalBudgetAllocated     int64 `json:"totalBudgetAllocated"`
	TotalBudgetUtilized      int64 `json:"totalBudgetUtilized"`
	BudgetUtilizationPercent int   `json:"budgetUtilizationPercent"`
	ActiveAgencies           int64 `json:"activeAgencies"`
	AverageProgress          int   `json:"averageProgress"`
}

// StateSummary is the state-admin dashboard shape
type StateSummary struct {
	StateProjects            int64 `json:"stateProjects"`
	CompletedProjects        int64 `json:"completedProjects"`
	InProgressProjects       int64 `json:"inProgressProjects"`
	BudgetAllocated          int64 `json:"budgetAllocated"`
	BudgetUtilized           int64 `json:"budgetUtilized"`
	BudgetUtilizationPercent int   `json:"budgetUtilizationPercent"`
	AverageProgress          int   `json:"averageProgress"`
}

// VillageSummary is the village-committee dashboard shape
type VillageSummary struct {
	VillageProjects    int64 `json:"villageProjects"`
	CompletedProjects  int64 `json:"completedProjects"`
	InProgressProjects int64 `json:"inProgressProjects"`
	BudgetAllocated    int64 `json:"budgetAllocated"`
	AverageProgress    int   `json:"averageProgress"`
}

// AgencySummary is the implementing-agency dashboard shape
type AgencySummary struct {
	AssignedProjects   int64 `json:"assignedProjects"`
	CompletedProjects  int64 `json:"completedProjects"`
	InProgressProjects int64 `json:"inProgressProjects"`
	TotalBudget        int64 `json:"totalBudget"`
	AverageProgress    int   `json:"averageProgress"`
}

// PublicSummary is the unauthenticated reduced aggregate
type PublicSummary struct {
	TotalProjects            int64 `json:"totalProjects"`
	CompletedProjects        int64 `json:"completedProjects"`
	InProgressProjects       int64 `json:"inProgressProjects"`
	TotalBudgetAllocated     int64 `json:"totalBudgetAllocated"`
	TotalBudgetUtilized      int64 `json:"totalBudgetUtilized"`
	BudgetUtilizationPercent int   `json:"budgetUtilizationPercent"`
	ActiveAgencies           int64 `json:"activeAgencies"`
}
