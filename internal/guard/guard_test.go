package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apotekhub/storefront/internal/models"
	"github.com/apotekhub/storefront/internal/session"
)

func userWith(roles ...models.RoleName) *models.User {
	u := &models.User{ID: 1, Name: "Siti", Email: "siti@example.com"}
	for i, r := range roles {
		u.Roles = append(u.Roles, models.Role{ID: int64(i + 1), Name: r})
	}
	return u
}

func TestCheck(t *testing.T) {
	buyer := session.Snapshot{
		State:      session.StateAuthenticated,
		Identity:   userWith(models.RoleBuyer),
		Credential: "tok",
	}
	owner := session.Snapshot{
		State:      session.StateAuthenticated,
		Identity:   userWith(models.RoleOwner),
		Credential: "tok",
	}
	both := session.Snapshot{
		State:      session.StateAuthenticated,
		Identity:   userWith(models.RoleBuyer, models.RoleOwner),
		Credential: "tok",
	}

	tests := []struct {
		name     string
		snapshot session.Snapshot
		required []models.RoleName
		want     Decision
	}{
		{"buyer allowed on buyer view", buyer, []models.RoleName{models.RoleBuyer}, Allow},
		{"owner allowed on owner view", owner, []models.RoleName{models.RoleOwner}, Allow},
		{"buyer denied on owner view", buyer, []models.RoleName{models.RoleOwner}, DenyRedirect},
		{"owner denied on buyer view", owner, []models.RoleName{models.RoleBuyer}, DenyRedirect},
		{"any required role suffices", both, []models.RoleName{models.RoleOwner}, Allow},
		{"either-role view admits buyer", buyer, []models.RoleName{models.RoleBuyer, models.RoleOwner}, Allow},
		{"anonymous denied", session.Snapshot{State: session.StateAnonymous}, []models.RoleName{models.RoleBuyer}, DenyRedirect},
		{"loading denied", session.Snapshot{State: session.StateLoading}, []models.RoleName{models.RoleBuyer}, DenyRedirect},
		{"authenticated without identity denied", session.Snapshot{State: session.StateAuthenticated, Credential: "tok"}, []models.RoleName{models.RoleBuyer}, DenyRedirect},
		{"empty required set allows anonymous", session.Snapshot{State: session.StateAnonymous}, nil, Allow},
		{"empty required set allows authenticated", buyer, nil, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.snapshot, tt.required...))
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "deny", DenyRedirect.String())
}
