package rbac

import (
	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Authorize(actor domain.Actor, resource, action string, target domain.Target) error
	Permissions(role domain.Role) ([]PermissionResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	rules    []Rule
	logger   *zap.Logger
}

// NewService loads rules into the enforcer before the service is shared.
// Policies never change afterwards, so concurrent Enforce calls only read.
func NewService(enforcer *casbin.Enforcer, rules []Rule, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	policies := make([][]string, 0, len(rules))
	for _, r := range rules {
		policies = append(policies, []string{string(r.Role), r.Resource, r.Action})
	}
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, err
	}
	l.Info("rbac policy loaded", zap.Int("rules", len(policies)))

	return &service{enforcer: enforcer, rules: rules, logger: l}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if !req.Actor.Role.Valid() {
		return false, nil
	}

	allowed, err := s.enforcer.Enforce(string(req.Actor.Role), req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", string(req.Actor.Role)),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("user_id", req.Actor.UserID),
		zap.String("role", string(req.Actor.Role)),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Authorize combines the role matrix with the tenant rule and worker
// ownership: non-admins stay inside their company, workers inside their
// own records.
func (s *service) Authorize(actor domain.Actor, resource, action string, target domain.Target) error {
	allowed, err := s.Enforce(domain.EnforceRequest{Actor: actor, Resource: resource, Action: action})
	if err != nil {
		return err
	}
	if !allowed {
		return apperror.ErrForbidden
	}

	if actor.IsAdmin() {
		return nil
	}
	if target.CompanyID != "" && target.CompanyID != actor.CompanyID {
		return apperror.ErrForbidden
	}
	if actor.Role == domain.RoleWorker && target.WorkerID != "" && target.WorkerID != actor.WorkerID {
		return apperror.ErrForbidden
	}
	return nil
}

func (s *service) Permissions(role domain.Role) ([]PermissionResponse, error) {
	perms := make([]PermissionResponse, 0)
	for _, r := range s.rules {
		if r.Role == role {
			perms = append(perms, PermissionResponse{Resource: r.Resource, Action: r.Action})
		}
	}
	return perms, nil
}
