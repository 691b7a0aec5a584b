package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
)

func TestDecide(t *testing.T) {
	anonymous := Actor{}
	user := Actor{UserID: 7}
	admin := Actor{UserID: 1, IsAdmin: true}

	tests := []struct {
		name    string
		policy  Policy
		actor   Actor
		target  Target
		wantErr error
	}{
		{"public allows anonymous", PolicyPublic, anonymous, Target{}, nil},
		{"public allows admin", PolicyPublic, admin, Target{}, nil},

		{"authenticated rejects anonymous", PolicyAuthenticated, anonymous, Target{}, apperrors.ErrNotAuthenticated},
		{"authenticated allows user", PolicyAuthenticated, user, Target{}, nil},

		{"admin only rejects anonymous", PolicyAdminOnly, anonymous, Target{}, apperrors.ErrNotAuthenticated},
		{"admin only rejects user", PolicyAdminOnly, user, Target{}, apperrors.ErrAccessDenied},
		{"admin only allows admin", PolicyAdminOnly, admin, Target{}, nil},

		{"self or admin allows owner", PolicySelfOrAdmin, user, Target{OwnerUserID: 7}, nil},
		{"self or admin allows admin on stranger", PolicySelfOrAdmin, admin, Target{OwnerUserID: 7}, nil},
		{"self or admin rejects stranger", PolicySelfOrAdmin, user, Target{OwnerUserID: 8}, apperrors.ErrAccessDenied},
		{"self or admin rejects anonymous", PolicySelfOrAdmin, anonymous, Target{OwnerUserID: 7}, apperrors.ErrNotAuthenticated},

		{"delete user rejects non-admin owner", PolicyAdminDeleteUser, user, Target{OwnerUserID: 7}, apperrors.ErrAccessDenied},
		{"delete user allows admin on regular target", PolicyAdminDeleteUser, admin, Target{OwnerUserID: 7}, nil},
		{"delete user denies admin target", PolicyAdminDeleteUser, admin, Target{OwnerUserID: 2, IsAdmin: true}, apperrors.ErrCannotDeleteAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decide(tt.policy, tt.actor, tt.target)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestActorAuthenticated(t *testing.T) {
	assert.False(t, Actor{}.Authenticated())
	assert.True(t, Actor{UserID: 3}.Authenticated())
}
