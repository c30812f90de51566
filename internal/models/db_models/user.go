package db_models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	BaseModel
	Name             string     `gorm:"uniqueIndex;size:255" json:"name"`
	Email            string     `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash     string     `json:"-"`
	DepartmentID     *uuid.UUID `gorm:"type:uuid" json:"department_id"`
	Department       *Department `json:"department,omitempty"`
	IsSuspended      bool       `json:"is_suspended"`
	SuspendedUntil   *time.Time `json:"suspended_until"`
	SuspensionReason *string    `json:"suspension_reason"`
	Roles            []Role     `gorm:"many2many:role_users;constraint:OnDelete:CASCADE" json:"roles"`
}

func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (u *User) HasAnyRole(names ...string) bool {
	for _, name := range names {
		if u.HasRole(name) {
			return true
		}
	}
	return false
}

// IsCurrentlySuspended is the authoritative suspension predicate: the flag is
// set and either no expiry exists or the expiry is still in the future.
func (u *User) IsCurrentlySuspended() bool {
	if !u.IsSuspended {
		return false
	}
	if u.SuspendedUntil == nil {
		return true
	}
	return u.SuspendedUntil.After(time.Now())
}

// SuspensionExpired reports a record that still carries the suspended flag but
// whose expiry has passed. Such records are normalized on the next touch.
func (u *User) SuspensionExpired() bool {
	return u.IsSuspended && u.SuspendedUntil != nil && !u.SuspendedUntil.After(time.Now())
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
