package domain

// Role is the fixed set of roles a bearer token can carry.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleAgent       Role = "agent"
	RoleSubconAdmin Role = "subcon-admin"
	RoleWorker      Role = "worker"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleSubconAdmin, RoleWorker:
		return true
	default:
		return false
	}
}

// Actor is the authenticated caller passed explicitly into every core operation.
// WorkerID is only set for the worker role.
type Actor struct {
	UserID    string
	Role      Role
	CompanyID string
	WorkerID  string
}

// EnforceRequest is one policy question: may this actor perform action on resource.
type EnforceRequest struct {
	Actor    Actor
	Resource string
	Action   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Target is the tenant and, where it applies, the worker an operation touches.
type Target struct {
	CompanyID string
	WorkerID  string
}

// Authorizer answers one policy question per operation and returns a
// Forbidden AppError when the answer is no.
type Authorizer interface {
	Authorize(actor Actor, resource, action string, target Target) error
}

// Resources and actions known to the policy.
const (
	ResourcePayroll         = "payroll"
	ResourceTimesheet       = "timesheet"
	ResourceWorker          = "worker"
	ResourceLeave           = "leave"
	ResourceHoliday         = "holiday"
	ResourceUnitRecord      = "unit_record"
	ResourceCompanySettings = "company_settings"

	ActionCreate     = "create"
	ActionRead       = "read"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionGenerate   = "generate"
	ActionApprove    = "approve"
	ActionReject     = "reject"
	ActionCancel     = "cancel"
	ActionSubmit     = "submit"
	ActionPay        = "pay"
	ActionDeactivate = "deactivate"
	ActionClock      = "clock"
	ActionRequest    = "request"
)

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(actor Actor, resource, action string, target Target) error

func (f AuthorizerFunc) Authorize(actor Actor, resource, action string, target Target) error {
	return f(actor, resource, action, target)
}
