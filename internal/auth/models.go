package auth

import "time"

// Portal roles. Every authenticated request is resolved to one of these.
const (
	RoleCentralMinistry    = "central_ministry"
	RoleStateAdmin         = "state_admin"
	RoleVillageCommittee   = "village_committee"
	RoleImplementingAgency = "implementing_agency"
	RolePublicViewer       = "public_viewer"
)

// User is a portal account. Scope columns (state/district/village) are
// populated depending on the role and narrow what the account can see.
type User struct {
	ID        string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Email     string    `gorm:"type:varchar(200)" json:"email"`
	Role      string    `gorm:"type:varchar(50);not null" json:"role"`
	State     *string   `gorm:"type:varchar(100)" json:"state"`
	District  *string   `gorm:"type:varchar(100)" json:"district"`
	Village   *string   `gorm:"type:varchar(100)" json:"village"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the default pluralized name
func (User) TableName() string {
	return "users"
}
