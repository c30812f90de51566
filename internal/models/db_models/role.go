package db_models

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleStaff    = "staff"
	RoleWatchman = "watchman"
	RoleChef     = "chef"
	RoleUser     = "user"
)

// ManagedRoles is the fixed set of role names the system recognizes. Rows are
// created lazily on first use.
var ManagedRoles = []string{RoleAdmin, RoleManager, RoleStaff, RoleWatchman, RoleChef, RoleUser}

type Role struct {
	BaseModel
	Name string `gorm:"uniqueIndex;size:100" json:"name"`
}

func IsManagedRole(name string) bool {
	for _, r := range ManagedRoles {
		if r == name {
			return true
		}
	}
	return false
}
