package rbac

import "go-payroll/internal/domain"

type Rule struct {
	Role     domain.Role
	Resource string
	Action   string
}

func allow(role domain.Role, resource string, actions ...string) []Rule {
	rules := make([]Rule, 0, len(actions))
	for _, a := range actions {
		rules = append(rules, Rule{Role: role, Resource: resource, Action: a})
	}
	return rules
}

// DefaultRules is the role matrix. Worker rules are further narrowed to the
// worker's own records by the ownership check in Authorize.
func DefaultRules() []Rule {
	var rules []Rule
	add := func(r []Rule) { rules = append(rules, r...) }

	for _, res := range []string{
		domain.ResourcePayroll,
		domain.ResourceTimesheet,
		domain.ResourceWorker,
		domain.ResourceLeave,
		domain.ResourceHoliday,
		domain.ResourceUnitRecord,
		domain.ResourceCompanySettings,
	} {
		add(allow(domain.RoleAdmin, res, "*"))
	}

	add(allow(domain.RoleSubconAdmin, domain.ResourcePayroll, domain.ActionGenerate, domain.ActionRead))
	add(allow(domain.RoleSubconAdmin, domain.ResourceTimesheet,
		domain.ActionCreate, domain.ActionRead, domain.ActionUpdate, domain.ActionSubmit,
		domain.ActionApprove, domain.ActionReject, domain.ActionCancel, domain.ActionDelete, domain.ActionClock))
	add(allow(domain.RoleSubconAdmin, domain.ResourceWorker, domain.ActionCreate, domain.ActionRead, domain.ActionDeactivate))
	add(allow(domain.RoleSubconAdmin, domain.ResourceLeave,
		domain.ActionRequest, domain.ActionRead, domain.ActionApprove, domain.ActionReject, domain.ActionCancel))
	add(allow(domain.RoleSubconAdmin, domain.ResourceHoliday, domain.ActionRead))
	add(allow(domain.RoleSubconAdmin, domain.ResourceUnitRecord, domain.ActionCreate, domain.ActionRead, domain.ActionApprove))
	add(allow(domain.RoleSubconAdmin, domain.ResourceCompanySettings, domain.ActionRead))

	add(allow(domain.RoleAgent, domain.ResourcePayroll, domain.ActionGenerate, domain.ActionRead))
	add(allow(domain.RoleAgent, domain.ResourceTimesheet,
		domain.ActionCreate, domain.ActionRead, domain.ActionUpdate, domain.ActionSubmit,
		domain.ActionCancel, domain.ActionDelete, domain.ActionClock))
	add(allow(domain.RoleAgent, domain.ResourceWorker, domain.ActionCreate, domain.ActionRead))
	add(allow(domain.RoleAgent, domain.ResourceLeave, domain.ActionRequest, domain.ActionRead, domain.ActionCancel))
	add(allow(domain.RoleAgent, domain.ResourceHoliday, domain.ActionRead))
	add(allow(domain.RoleAgent, domain.ResourceUnitRecord, domain.ActionCreate, domain.ActionRead))
	add(allow(domain.RoleAgent, domain.ResourceCompanySettings, domain.ActionRead))

	add(allow(domain.RoleWorker, domain.ResourcePayroll, domain.ActionRead))
	add(allow(domain.RoleWorker, domain.ResourceTimesheet, domain.ActionRead, domain.ActionSubmit, domain.ActionClock))
	add(allow(domain.RoleWorker, domain.ResourceWorker, domain.ActionRead))
	add(allow(domain.RoleWorker, domain.ResourceLeave, domain.ActionRequest, domain.ActionRead, domain.ActionCancel))
	add(allow(domain.RoleWorker, domain.ResourceHoliday, domain.ActionRead))
	add(allow(domain.RoleWorker, domain.ResourceUnitRecord, domain.ActionRead))

	return rules
}
