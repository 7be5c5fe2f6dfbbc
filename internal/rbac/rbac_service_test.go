package rbac_test

import (
	"sync"
	"testing"

	"go-payroll/internal/domain"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)
	svc, err := rbac.NewService(enforcer, rbac.DefaultRules())
	require.NoError(t, err)
	return svc
}

func TestService_Enforce_Matrix(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		role     domain.Role
		resource string
		action   string
		allowed  bool
	}{
		{domain.RoleAdmin, domain.ResourcePayroll, domain.ActionGenerate, true},
		{domain.RoleAdmin, domain.ResourcePayroll, domain.ActionPay, true},
		{domain.RoleAdmin, domain.ResourceTimesheet, domain.ActionApprove, true},
		{domain.RoleSubconAdmin, domain.ResourcePayroll, domain.ActionGenerate, true},
		{domain.RoleSubconAdmin, domain.ResourcePayroll, domain.ActionApprove, false},
		{domain.RoleSubconAdmin, domain.ResourceTimesheet, domain.ActionApprove, true},
		{domain.RoleSubconAdmin, domain.ResourceCompanySettings, domain.ActionUpdate, false},
		{domain.RoleAgent, domain.ResourceTimesheet, domain.ActionApprove, false},
		{domain.RoleAgent, domain.ResourceTimesheet, domain.ActionReject, false},
		{domain.RoleAgent, domain.ResourceTimesheet, domain.ActionCancel, true},
		{domain.RoleAgent, domain.ResourcePayroll, domain.ActionGenerate, true},
		{domain.RoleWorker, domain.ResourcePayroll, domain.ActionGenerate, false},
		{domain.RoleWorker, domain.ResourcePayroll, domain.ActionRead, true},
		{domain.RoleWorker, domain.ResourceTimesheet, domain.ActionSubmit, true},
		{domain.RoleWorker, domain.ResourceTimesheet, domain.ActionCancel, false},
		{domain.RoleWorker, domain.ResourceLeave, domain.ActionApprove, false},
		{domain.Role("guest"), domain.ResourcePayroll, domain.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.resource+":"+tt.action, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Actor:    domain.Actor{Role: tt.role},
				Resource: tt.resource,
				Action:   tt.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestService_Authorize(t *testing.T) {
	svc := newTestService(t)

	t.Run("admin crosses tenants", func(t *testing.T) {
		admin := domain.Actor{Role: domain.RoleAdmin, CompanyID: "c1"}
		err := svc.Authorize(admin, domain.ResourcePayroll, domain.ActionGenerate, domain.Target{CompanyID: "c2"})
		assert.NoError(t, err)
	})

	t.Run("subcon-admin limited to own company", func(t *testing.T) {
		actor := domain.Actor{Role: domain.RoleSubconAdmin, CompanyID: "c1"}
		assert.NoError(t, svc.Authorize(actor, domain.ResourcePayroll, domain.ActionGenerate, domain.Target{CompanyID: "c1"}))

		err := svc.Authorize(actor, domain.ResourcePayroll, domain.ActionGenerate, domain.Target{CompanyID: "c2"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("worker limited to own records", func(t *testing.T) {
		actor := domain.Actor{Role: domain.RoleWorker, CompanyID: "c1", WorkerID: "w1"}
		assert.NoError(t, svc.Authorize(actor, domain.ResourceTimesheet, domain.ActionSubmit,
			domain.Target{CompanyID: "c1", WorkerID: "w1"}))

		err := svc.Authorize(actor, domain.ResourceTimesheet, domain.ActionSubmit,
			domain.Target{CompanyID: "c1", WorkerID: "w2"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("role without permission", func(t *testing.T) {
		actor := domain.Actor{Role: domain.RoleAgent, CompanyID: "c1"}
		err := svc.Authorize(actor, domain.ResourceTimesheet, domain.ActionApprove, domain.Target{CompanyID: "c1"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestService_Permissions(t *testing.T) {
	svc := newTestService(t)

	perms, err := svc.Permissions(domain.RoleWorker)
	require.NoError(t, err)
	assert.Contains(t, perms, rbac.PermissionResponse{Resource: domain.ResourceTimesheet, Action: domain.ActionClock})
	assert.NotContains(t, perms, rbac.PermissionResponse{Resource: domain.ResourcePayroll, Action: domain.ActionGenerate})
}

func TestService_EnforceConcurrent(t *testing.T) {
	svc := newTestService(t)

	var wg sync.WaitGroup
	results := make([]bool, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			role := domain.RoleAdmin
			if i%2 == 1 {
				role = domain.RoleAgent
			}
			ok, err := svc.Enforce(domain.EnforceRequest{
				Actor:    domain.Actor{Role: role},
				Resource: domain.ResourcePayroll,
				Action:   domain.ActionPay,
			})
			assert.NoError(t, err)
			results[i] = ok
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		assert.Equal(t, i%2 == 0, ok, "request %d", i)
	}
}
