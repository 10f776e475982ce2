package rbac

import (
	"testing"

	"github.com/roma-frontend/hr-tracker-sub000/internal/domain"
	"github.com/roma-frontend/hr-tracker-sub000/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee creates leave", "employee", "leave", "create", true},
		{"employee cannot approve", "employee", "leave", "approve", false},
		{"employee cannot list all", "employee", "leave", "read_all", false},
		{"supervisor approves", "supervisor", "leave", "approve", true},
		{"supervisor inherits create", "supervisor", "leave", "create", true},
		{"supervisor cannot create user", "supervisor", "user", "create", false},
		{"admin inherits approve", "admin", "leave", "approve", true},
		{"admin creates user", "admin", "user", "create", true},
		{"unknown role denied", "guest", "leave", "read", false},
		{"empty role denied", "", "leave", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Role:     tc.role,
				Resource: tc.resource,
				Action:   tc.action,
			})

			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestRBACService_PermissionsForRole(t *testing.T) {
	svc := newTestService(t)

	perms, err := svc.PermissionsForRole("supervisor")

	assert.NoError(t, err)
	assert.Contains(t, perms, domain.PermissionResponse{Resource: "leave", Action: "approve"})
	assert.Contains(t, perms, domain.PermissionResponse{Resource: "leave", Action: "create"})
	assert.NotContains(t, perms, domain.PermissionResponse{Resource: "user", Action: "create"})
}
