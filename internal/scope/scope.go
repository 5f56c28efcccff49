// Package scope defines the role-scope filter applied to every resource
// query. Each role maps to one predicate set so visibility rules live in a
// single table instead of being repeated per handler.
package scope

import (
	"gorm.io/gorm"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
)

// RoleScope narrows resource queries to the rows a role may see. Each method
// is a GORM scope applied with db.Scopes(...).
type RoleScope interface {
	Projects(db *gorm.DB) *gorm.DB
	Proposals(db *gorm.DB) *gorm.DB
	Needs(db *gorm.DB) *gorm.DB
	Feedback(db *gorm.DB) *gorm.DB
}

// ForClaims resolves the scope for the authenticated identity. Unknown roles
// get the deny-all scope.
func ForClaims(c *auth.Claims) RoleScope {
	switch c.Role {
	case auth.RoleCentralMinistry:
		return ministryScope{}
	case auth.RoleStateAdmin:
		return stateScope{state: deref(c.State)}
	case auth.RoleVillageCommittee:
		return villageScope{state: deref(c.State), village: deref(c.Village)}
	case auth.RoleImplementingAgency:
		return agencyScope{agencyID: c.UserID}
	default:
		return denyScope{}
	}
}

// ministryScope sees everything
type ministryScope struct{}

func (ministryScope) Projects(db *gorm.DB) *gorm.DB  { return db }
func (ministryScope) Proposals(db *gorm.DB) *gorm.DB { return db }
func (ministryScope) Needs(db *gorm.DB) *gorm.DB     { return db }
func (ministryScope) Feedback(db *gorm.DB) *gorm.DB  { return db }

// stateScope sees rows in the admin's own state
type stateScope struct {
	state string
}

func (s stateScope) Projects(db *gorm.DB) *gorm.DB  { return db.Where("state = ?", s.state) }
func (s stateScope) Proposals(db *gorm.DB) *gorm.DB { return db.Where("state = ?", s.state) }
func (s stateScope) Needs(db *gorm.DB) *gorm.DB     { return db.Where("state = ?", s.state) }
func (s stateScope) Feedback(db *gorm.DB) *gorm.DB  { return db.Where("state = ?", s.state) }

// villageScope sees rows in the committee's own village. Proposals and
// feedback are not part of the committee's read surface.
type villageScope struct {
	state   string
	village string
}

func (s villageScope) Projects(db *gorm.DB) *gorm.DB { return db.Where("village = ?", s.village) }
func (s villageScope) Proposals(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}
func (s villageScope) Needs(db *gorm.DB) *gorm.DB { return db.Where("village = ?", s.village) }
func (s villageScope) Feedback(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// agencyScope sees its assigned projects; proposals include unassigned ones
// the agency may be asked to pick up.
type agencyScope struct {
	agencyID string
}

func (s agencyScope) Projects(db *gorm.DB) *gorm.DB {
	return db.Where("implementing_agency = ?", s.agencyID)
}

func (s agencyScope) Proposals(db *gorm.DB) *gorm.DB {
	return db.Where("assigned_agency = ? OR assigned_agency IS NULL", s.agencyID)
}

func (s agencyScope) Needs(db *gorm.DB) *gorm.DB    { return db.Where("1 = 0") }
func (s agencyScope) Feedback(db *gorm.DB) *gorm.DB { return db.Where("1 = 0") }

// denyScope matches nothing
type denyScope struct{}

func (denyScope) Projects(db *gorm.DB) *gorm.DB  { return db.Where("1 = 0") }
func (denyScope) Proposals(db *gorm.DB) *gorm.DB { return db.Where("1 = 0") }
func (denyScope) Needs(db *gorm.DB) *gorm.DB     { return db.Where("1 = 0") }
func (denyScope) Feedback(db *gorm.DB) *gorm.DB  { return db.Where("1 = 0") }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
