package database

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pm-ajay/scheme-portal/portal-backend/internal/agencies"
	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/forum"
	"pm-ajay/scheme-portal/portal-backend/internal/projects"
	"pm-ajay/scheme-portal/portal-backend/internal/proposals"
)

// Seed loads the demo fixtures. It is idempotent: a database that already has
// users is left untouched.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&auth.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	password := string(hashed)

	return db.Transaction(func(tx *gorm.DB) error {
		users := seedUsers(password)
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		agencyRows := seedAgencies()
		if err := tx.Create(&agencyRows).Error; err != nil {
			return fmt.Errorf("failed to seed agencies: %w", err)
		}
		projectRows := seedProjects()
		if err := tx.Create(&projectRows).Error; err != nil {
			return fmt.Errorf("failed to seed projects: %w", err)
		}
		milestones := seedMilestones()
		if err := tx.Create(&milestones).Error; err != nil {
			return fmt.Errorf("failed to seed milestones: %w", err)
		}
		proposalRows := seedProposals()
		if err := tx.Create(&proposalRows).Error; err != nil {
			return fmt.Errorf("failed to seed proposals: %w", err)
		}
		messages := seedForumMessages()
		if err := tx.Create(&messages).Error; err != nil {
			return fmt.Errorf("failed to seed forum messages: %w", err)
		}
		return nil
	})
}

func seedUsers(password string) []auth.User {
	return []auth.User{
		{ID: "cm001", Username: "ministry_admin", Password: password, Name: "Central Ministry Administrator", Email: "admin@ministry.gov.in", Role: auth.RoleCentralMinistry},
		{ID: "sa001", Username: "maharashtra_admin", Password: password, Name: "Maharashtra State Administrator", Email: "admin@maharashtra.gov.in", Role: auth.RoleStateAdmin, State: str("Maharashtra"), District: str("Mumbai")},
		{ID: "sa002", Username: "haryana_admin", Password: password, Name: "Haryana State Administrator", Email: "admin@haryana.gov.in", Role: auth.RoleStateAdmin, State: str("Haryana"), District: str("Jhajjar")},
		{ID: "vc001", Username: "village_head1", Password: password, Name: "Village Committee Head - Thane Rural", Email: "head@thane.village.in", Role: auth.RoleVillageCommittee, State: str("Maharashtra"), District: str("Mumbai"), Village: str("Thane Rural")},
		{ID: "vc002", Username: "village_head2", Password: password, Name: "Village Committee Head - Ramgarh", Email: "head@ramgarh.village.in", Role: auth.RoleVillageCommittee, State: str("Haryana"), District: str("Jhajjar"), Village: str("Ramgarh")},
		{ID: "ia001", Username: "infra_agency1", Password: password, Name: "Bharat Infrastructure Pvt Ltd", Email: "contact@bharatinfra.com", Role: auth.RoleImplementingAgency},
		{ID: "ia002", Username: "skill_agency1", Password: password, Name: "Skill Development Institute", Email: "contact@skilldev.org", Role: auth.RoleImplementingAgency},
		{ID: "ia003", Username: "construction_agency1", Password: password, Name: "National Construction Corp", Email: "contact@ncc.in", Role: auth.RoleImplementingAgency},
		{ID: "public001", Username: "public_viewer", Password: password, Name: "Public Viewer", Email: "public@pmajay.gov.in", Role: auth.RolePublicViewer},
	}
}

func seedAgencies() []agencies.Agency {
	return []agencies.Agency{
		{ID: "ia001", Name: "Bharat Infrastructure Pvt Ltd", Type: "Infrastructure Development", ContactPerson: "Eng. Suresh Patel", Email: "suresh.patel@bharatinfra.com", Phone: "+91-9123456789", LicenseNo: "INFRA/2023/001"},
		{ID: "ia002", Name: "Skill Development Institute", Type: "Training & Skill Development", ContactPerson: "Dr. Meera Gupta", Email: "meera.gupta@skilldev.org", Phone: "+91-9123456788", LicenseNo: "TRAIN/2023/002"},
		{ID: "ia003", Name: "National Construction Corp", Type: "Construction & Infrastructure", ContactPerson: "Eng. Rajesh Kumar", Email: "rajesh.kumar@ncc.in", Phone: "+91-9123456787", LicenseNo: "CONST/2023/003"},
	}
}

func seedProjects() []projects.Project {
	return []projects.Project{
		{
			ID: "PROJ001", Name: "Rural Road Construction - Phase 1",
			Description:        "Construction of 50km rural roads connecting 15 villages to improve connectivity and boost rural economy",
			Type:               "Infrastructure",
			State:              "Maharashtra", District: "Mumbai", Village: "Thane Rural",
			BudgetAllocated:    25000000, BudgetUtilized: 18750000,
			ProgressPercentage: 75, Status: "In Progress",
			StartDate:          str("2024-01-15"), ExpectedCompletion: str("2024-12-31"),
			ImplementingAgency: str("ia001"), ApprovedBy: str("cm001"),
			ApprovalStatus:     "Approved", ApprovedAmount: i64(25000000),
		},
		{
			ID: "PROJ002", Name: "Smart Water Management System",
			Description:        "IoT-based smart water distribution system with automated monitoring and leak detection",
			Type:               "Infrastructure",
			State:              "Maharashtra", District: "Pune", Village: "Shirur",
			BudgetAllocated:    18000000, BudgetUtilized: 5400000,
			ProgressPercentage: 30, Status: "In Progress",
			StartDate:          str("2024-03-01"), ExpectedCompletion: str("2024-11-30"),
			ImplementingAgency: str("ia002"), ApprovedBy: str("cm001"),
			ApprovalStatus:     "Approved", ApprovedAmount: i64(18000000),
		},
		{
			ID: "PROJ003", Name: "Girls Hostel Construction",
			Description:        "Construction of modern hostel facility for 100 girl students with all amenities",
			Type:               "Hostel",
			State:              "Haryana", District: "Jhajjar", Village: "Ramgarh",
			BudgetAllocated:    15000000, BudgetUtilized: 9000000,
			ProgressPercentage: 60, Status: "In Progress",
			StartDate:          str("2024-01-01"), ExpectedCompletion: str("2024-10-31"),
			ImplementingAgency: str("ia003"), ApprovedBy: str("cm001"),
			ApprovalStatus:     "Approved", ApprovedAmount: i64(15000000),
		},
		{
			ID: "PROJ004", Name: "Digital Literacy Training Center",
			Description:        "Establishment of digital literacy training center for 300 rural youth and women",
			Type:               "Training",
			State:              "Haryana", District: "Jhajjar", Village: "Bahadurgarh",
			BudgetAllocated:    8000000, BudgetUtilized: 6400000,
			ProgressPercentage: 80, Status: "Near Completion",
			StartDate:          str("2024-02-01"), ExpectedCompletion: str("2024-08-31"),
			ImplementingAgency: str("ia002"), ApprovedBy: str("cm001"),
			ApprovalStatus:     "Approved", ApprovedAmount: i64(8000000),
		},
	}
}

func seedMilestones() []projects.Milestone {
	return []projects.Milestone{
		{ProjectID: "PROJ001", Phase: "Planning", Status: projects.MilestoneCompleted, PlannedDate: str("2024-01-30"), ActualDate: str("2024-01-30")},
		{ProjectID: "PROJ001", Phase: "Land Acquisition", Status: projects.MilestoneCompleted, PlannedDate: str("2024-03-15"), ActualDate: str("2024-03-15")},
		{ProjectID: "PROJ001", Phase: "Construction", Status: projects.MilestoneInProgress, PlannedDate: str("2024-04-01"), ActualDate: str("2024-04-01")},
		{ProjectID: "PROJ001", Phase: "Quality Check", Status: projects.MilestonePending, PlannedDate: str("2024-11-01")},

		{ProjectID: "PROJ002", Phase: "System Design", Status: projects.MilestoneCompleted, PlannedDate: str("2024-03-20"), ActualDate: str("2024-03-20")},
		{ProjectID: "PROJ002", Phase: "Hardware Procurement", Status: projects.MilestoneInProgress, PlannedDate: str("2024-04-15")},
		{ProjectID: "PROJ002", Phase: "Installation", Status: projects.MilestonePending, PlannedDate: str("2024-07-01")},
		{ProjectID: "PROJ002", Phase: "Testing", Status: projects.MilestonePending, PlannedDate: str("2024-10-15")},

		{ProjectID: "PROJ003", Phase: "Foundation", Status: projects.MilestoneCompleted, PlannedDate: str("2024-02-28"), ActualDate: str("2024-02-28")},
		{ProjectID: "PROJ003", Phase: "Structure", Status: projects.MilestoneInProgress, PlannedDate: str("2024-03-15")},
		{ProjectID: "PROJ003", Phase: "Interior", Status: projects.MilestonePending, PlannedDate: str("2024-08-01")},
		{ProjectID: "PROJ003", Phase: "Final Setup", Status: projects.MilestonePending, PlannedDate: str("2024-10-01")},
	}
}

func seedProposals() []proposals.Proposal {
	assigned := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return []proposals.Proposal{
		{
			Title:           "Rural Healthcare Center Expansion",
			Description:     "Expanding the existing primary healthcare center to include specialized OPD services, diagnostic lab, and 24/7 emergency services for rural population.",
			ProjectType:     "Healthcare",
			EstimatedBudget: 12000000, Timeline: "10 months",
			State: "Maharashtra", District: "Nashik", Village: str("Sinnar"),
			Status:      "Assigned",
			SubmittedBy: "sa001", AssignedAgency: str("ia001"), AssignedDate: &assigned,
		},
		{
			Title:           "Solar Power Installation for Schools",
			Description:     "Installation of 50kW solar power systems in 10 government schools to provide sustainable electricity and reduce carbon footprint.",
			ProjectType:     "Infrastructure",
			EstimatedBudget: 8500000, Timeline: "6 months",
			State: "Haryana", District: "Rohtak",
			Status:      "Assigned",
			SubmittedBy: "sa002", AssignedAgency: str("ia002"), AssignedDate: &assigned,
		},
		{
			Title:           "Skill Development Program for Women",
			Description:     "Comprehensive skill development program for 500 rural women covering tailoring, handicrafts, food processing, and digital literacy.",
			ProjectType:     "Training",
			EstimatedBudget: 6000000, Timeline: "8 months",
			State: "Maharashtra", District: "Aurangabad", Village: str("Gangapur"),
			Status:      "Submitted",
			SubmittedBy: "sa001",
		},
		{
			Title:           "Community Water Treatment Plant",
			Description:     "Establishment of a community-level water treatment plant to provide safe drinking water to 5000 residents across 3 villages.",
			ProjectType:     "Infrastructure",
			EstimatedBudget: 15000000, Timeline: "12 months",
			State: "Haryana", District: "Panipat", Village: str("Samalkha"),
			Status:      "Assigned",
			SubmittedBy: "sa002", AssignedAgency: str("ia003"), AssignedDate: &assigned,
		},
	}
}

func seedForumMessages() []forum.Message {
	return []forum.Message{
		{
			UserID: "ia001", UserName: "Bharat Infrastructure Pvt Ltd", ProjectID: str("PROJ001"),
			Message: "Rural Road Construction Phase 1 update: We have successfully completed 75% of the road construction work. Currently working on the final stretch connecting villages 12-15.",
			Type:    "update",
		},
		{
			UserID: "ia002", UserName: "Skill Development Institute", ProjectID: str("PROJ004"),
			Message: "Digital Literacy Training Program: We are pleased to report that 240 out of 300 rural youth have completed the basic digital literacy modules. The response has been excellent.",
			Type:    "update",
		},
	}
}

func str(s string) *string { return &s }
func i64(v int64) *int64   { return &v }
