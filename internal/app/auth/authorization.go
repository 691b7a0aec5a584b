package auth

import (
	"github.com/emredk/scholaris/internal/pkg/apperrors"
)

// Policy names an access rule applied to an operation.
type Policy int

const (
	// PolicyPublic allows any caller, authenticated or not.
	PolicyPublic Policy = iota
	// PolicyAuthenticated allows any caller with a valid identity.
	PolicyAuthenticated
	// PolicyAdminOnly allows only administrators.
	PolicyAdminOnly
	// PolicySelfOrAdmin allows administrators and the owner of the target.
	PolicySelfOrAdmin
	// PolicyAdminDeleteUser is admin-only with a terminal rule: a target
	// user that is itself an admin is never deletable, even by another
	// admin.
	PolicyAdminDeleteUser
)

// Actor is the authenticated identity performing an operation. A zero Actor
// (UserID == 0) means the request carried no valid token.
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// Authenticated reports whether the actor carries a valid identity
func (a Actor) Authenticated() bool {
	return a.UserID > 0
}

// Target describes the entity an operation acts on, as far as access
// decisions are concerned.
type Target struct {
	// OwnerUserID is the user id owning the target entity (the user itself
	// for user operations, the linked account for professor/student ones).
	OwnerUserID int64
	// IsAdmin marks a target user with administrative rights.
	IsAdmin bool
}

// Decide is the access decision function. It distinguishes "not
// authenticated" from "authenticated but not authorized" by returning
// categorical errors for each.
func Decide(policy Policy, actor Actor, target Target) error {
	if policy == PolicyPublic {
		return nil
	}

	if !actor.Authenticated() {
		return apperrors.ErrNotAuthenticated
	}

	switch policy {
	case PolicyAuthenticated:
		return nil

	case PolicyAdminOnly:
		if !actor.IsAdmin {
			return apperrors.ErrAccessDenied
		}
		return nil

	case PolicySelfOrAdmin:
		if actor.IsAdmin || actor.UserID == target.OwnerUserID {
			return nil
		}
		return apperrors.ErrAccessDenied

	case PolicyAdminDeleteUser:
		if !actor.IsAdmin {
			return apperrors.ErrAccessDenied
		}
		// Terminal rule: admin accounts are not deletable at all.
		if target.IsAdmin {
			return apperrors.ErrCannotDeleteAdmin
		}
		return nil
	}

	return apperrors.ErrAccessDenied
}
