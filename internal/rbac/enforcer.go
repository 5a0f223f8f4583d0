package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// NewEnforcer builds the casbin enforcer with the built-in role model.
// Policies are seeded in code: roles come from JWT claims, not from a
// user-editable policy store.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{"admin", "leave_rule", "read"},
		{"admin", "leave_rule", "manage"},
		{"admin", "sync", "retry"},
		{"admin", "sync", "inspect"},
		{"admin", "employee", "read"},
		{"manager", "leave_rule", "read"},
		{"manager", "employee", "read"},
		{"manager", "sync", "inspect"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	// role hierarchy: admins inherit everything managers can do
	if _, err := e.AddGroupingPolicy("admin", "manager"); err != nil {
		return nil, err
	}

	return e, nil
}
