// Package authz holds the pure decision functions behind every mutating or
// visibility-sensitive operation: task access, assignee resolution, the
// last-active-admin invariant, self-action protection, and the rules gating
// manager/subordinate edge mutations. Functions here never touch storage;
// callers load the involved rows (roles eagerly included) and pass them in.
package authz

import (
	"github.com/google/uuid"

	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/pkg/utils"
)

// CanAccessTask reports whether user may view or mutate task. Admins are
// unrestricted; everyone else needs to be the creator, the assignee, or the
// owner/creator of the task's project. task.Project must be preloaded.
func CanAccessTask(user *db_models.User, task *db_models.Task) bool {
	if user.HasRole(db_models.RoleAdmin) {
		return true
	}

	if task.CreatedBy == user.ID {
		return true
	}
	if task.AssignedTo != nil && *task.AssignedTo == user.ID {
		return true
	}
	if task.Project != nil && (task.Project.CreatedBy == user.ID || task.Project.UserID == user.ID) {
		return true
	}
	return false
}

func AuthorizeTaskAccess(user *db_models.User, task *db_models.Task) error {
	if !CanAccessTask(user, task) {
		return utils.NewForbiddenError("Forbidden")
	}
	return nil
}

// CanAccessProject gates placing tasks into an explicit project.
func CanAccessProject(user *db_models.User, project *db_models.Project) bool {
	return user.HasRole(db_models.RoleAdmin) ||
		project.CreatedBy == user.ID ||
		project.UserID == user.ID
}

// ResolveAssignee applies the assignee-resolution rules for task writes.
// requested is the id named in the payload (nil when absent); target is the
// loaded account for that id (nil when requested is nil); hasEdge reports an
// existing manager→subordinate edge from actor to target.
//
// Admins may name anyone active; an absent id stays unassigned. Managers
// default to themselves and may otherwise only name an edge-linked
// subordinate that holds neither admin nor manager. Everyone else may only
// hold their own tasks.
func ResolveAssignee(actor *db_models.User, requested *uuid.UUID, target *db_models.User, hasEdge bool) (*uuid.UUID, error) {
	if actor.HasRole(db_models.RoleAdmin) {
		if requested == nil {
			return nil, nil
		}
		if target == nil {
			return nil, utils.NewValidationError("assigned_to", "The selected assigned_to is invalid.")
		}
		if target.IsCurrentlySuspended() {
			return nil, utils.NewValidationError("assigned_to", "Cannot assign tasks to a suspended user.")
		}
		return requested, nil
	}

	if actor.HasRole(db_models.RoleManager) {
		targetID := actor.ID
		if requested != nil {
			targetID = *requested
		}

		if targetID == actor.ID {
			return &targetID, nil
		}

		if target == nil {
			return nil, utils.NewValidationError("assigned_to", "The selected assigned_to is invalid.")
		}
		if !hasEdge || target.HasAnyRole(db_models.RoleAdmin, db_models.RoleManager) {
			return nil, utils.NewForbiddenError("Managers can assign tasks only to staff users.")
		}
		if target.IsCurrentlySuspended() {
			return nil, utils.NewValidationError("assigned_to", "Cannot assign tasks to a suspended user.")
		}
		return &targetID, nil
	}

	if requested != nil && *requested != actor.ID {
		return nil, utils.NewForbiddenError("You can only assign tasks to yourself.")
	}
	id := actor.ID
	return &id, nil
}

// wouldRemoveLastActiveAdmin answers "would the remaining active-admin count
// be zero" for an operation that deactivates target. Suspended admins do not
// count toward the floor, and an already-suspended target cannot reduce it.
func wouldRemoveLastActiveAdmin(target *db_models.User, activeAdmins int64) bool {
	return target.HasRole(db_models.RoleAdmin) &&
		!target.IsCurrentlySuspended() &&
		activeAdmins <= 1
}

// CheckRoleUpdate guards the admin role-change operation. Stripping your own
// admin access is rejected outright, even when other admins exist.
func CheckRoleUpdate(actorID uuid.UUID, target *db_models.User, newRole string, activeAdmins int64) error {
	if actorID == target.ID && newRole != db_models.RoleAdmin {
		return utils.NewValidationError("role", "You cannot remove your own admin access.")
	}

	if newRole != db_models.RoleAdmin && wouldRemoveLastActiveAdmin(target, activeAdmins) {
		return utils.NewValidationError("role", "At least one active admin must remain in the system.")
	}
	return nil
}

// CheckSuspend guards the Active→Suspended transition. Self-suspension is
// always rejected regardless of admin count.
func CheckSuspend(actorID uuid.UUID, target *db_models.User, activeAdmins int64) error {
	if actorID == target.ID {
		return utils.NewValidationError("user", "You cannot suspend your own account.")
	}
	if wouldRemoveLastActiveAdmin(target, activeAdmins) {
		return utils.NewValidationError("user", "At least one active admin must remain in the system.")
	}
	return nil
}

// CheckDelete guards account deletion with the same pair of rules.
func CheckDelete(actorID uuid.UUID, target *db_models.User, activeAdmins int64) error {
	if actorID == target.ID {
		return utils.NewValidationError("user", "You cannot delete your own account.")
	}
	if wouldRemoveLastActiveAdmin(target, activeAdmins) {
		return utils.NewValidationError("user", "At least one active admin must remain in the system.")
	}
	return nil
}

// ResolveManagerForMutation decides which manager an edge mutation applies
// to. Admins must name an explicit manager id holding manager or admin;
// managers may only act as themselves; everyone else is refused.
func ResolveManagerForMutation(actor *db_models.User, requestedID *uuid.UUID, requested *db_models.User) (*db_models.User, error) {
	if actor.HasRole(db_models.RoleAdmin) {
		if requestedID == nil {
			return nil, utils.NewValidationError("manager_id", "manager_id is required for admin actions.")
		}
		if requested == nil {
			return nil, utils.NewValidationError("manager_id", "The selected manager_id is invalid.")
		}
		if !requested.HasAnyRole(db_models.RoleManager, db_models.RoleAdmin) {
			return nil, utils.NewValidationError("manager_id", "manager_id must belong to a manager or admin user.")
		}
		return requested, nil
	}

	if !actor.HasRole(db_models.RoleManager) {
		return nil, utils.NewForbiddenError("Forbidden")
	}

	if requestedID != nil && *requestedID != actor.ID {
		return nil, utils.NewForbiddenError("Managers can only manage their own subordinate mappings.")
	}
	return actor, nil
}

// CheckSubordinate validates subordinate eligibility at edge-creation time:
// no self-loops, and the subordinate must hold neither admin nor manager.
func CheckSubordinate(manager *db_models.User, subordinate *db_models.User) error {
	if manager.ID == subordinate.ID {
		return utils.NewValidationError("subordinate_id", "Manager cannot be their own subordinate.")
	}
	if subordinate.HasAnyRole(db_models.RoleAdmin, db_models.RoleManager) {
		return utils.NewValidationError("subordinate_id", "Only staff users can be assigned as subordinates.")
	}
	return nil
}
