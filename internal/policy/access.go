// Package policy holds the rules deciding who may touch a record and how
// a record's status moves.
package policy

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/nehemiah-317/ictlogbook/internal/apperrors"
	"github.com/nehemiah-317/ictlogbook/internal/models"
)

type Operation string

const (
	OpList   Operation = "list"
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Actor is the authenticated user performing an operation. ID 0 means anonymous.
type Actor struct {
	ID       uint
	Username string
	Role     models.UserRole
}

func (a Actor) Authenticated() bool { return a.ID != 0 }

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// Scope restricts a list query. A nil OwnerID means every record.
type Scope struct {
	OwnerID *uint
}

const (
	scopeAny   = "any"
	scopeOwn   = "own"
	scopeOther = "other"
)

const modelText = `
[request_definition]
r = sub, act, scope

[policy_definition]
p = sub, act, scope

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.act == p.act && (p.scope == "any" || p.scope == r.scope)
`

var defaultPolicies = [][]string{
	{string(models.RoleAdmin), string(OpList), scopeAny},
	{string(models.RoleAdmin), string(OpRead), scopeAny},
	{string(models.RoleAdmin), string(OpCreate), scopeAny},
	{string(models.RoleAdmin), string(OpUpdate), scopeAny},
	{string(models.RoleAdmin), string(OpDelete), scopeAny},

	{string(models.RoleStaff), string(OpCreate), scopeAny},
	{string(models.RoleStaff), string(OpList), scopeOwn},
	{string(models.RoleStaff), string(OpRead), scopeOwn},
	{string(models.RoleStaff), string(OpUpdate), scopeOwn},
}

const deleteDenied = "You do not have permission to delete records."

// AccessPolicy answers role and ownership questions for every record module.
type AccessPolicy struct {
	enforcer *casbin.Enforcer
}

func NewAccessPolicy() (*AccessPolicy, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse access model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	for _, p := range defaultPolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("failed to add policy %v: %w", p, err)
		}
	}

	return &AccessPolicy{enforcer: e}, nil
}

// MustAccessPolicy panics when the built-in model cannot load.
func MustAccessPolicy() *AccessPolicy {
	p, err := NewAccessPolicy()
	if err != nil {
		panic(err)
	}
	return p
}

func (p *AccessPolicy) allowed(actor Actor, op Operation, scope string) (bool, error) {
	ok, err := p.enforcer.Enforce(string(actor.Role), string(op), scope)
	if err != nil {
		return false, apperrors.NewInternalError("permission check failed", err.Error())
	}
	return ok, nil
}

// Check decides whether actor may perform op on a record owned by ownerID.
// For create, ownerID is ignored. Read and update denials come back as
// NotFound so a staff member cannot tell a foreign record from a missing one.
func (p *AccessPolicy) Check(actor Actor, op Operation, ownerID uint) error {
	if !actor.Authenticated() {
		return apperrors.NewUnauthenticatedError()
	}

	scope := scopeOther
	if op == OpCreate || ownerID == actor.ID {
		scope = scopeOwn
	}

	ok, err := p.allowed(actor, op, scope)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	switch op {
	case OpRead, OpUpdate:
		return apperrors.NewNotFoundError("Record not found")
	case OpDelete:
		return apperrors.NewForbiddenError(deleteDenied)
	default:
		return apperrors.NewForbiddenError("You do not have permission to perform this action.")
	}
}

// ListScope returns the filter a list query must apply for actor.
func (p *AccessPolicy) ListScope(actor Actor) (Scope, error) {
	if !actor.Authenticated() {
		return Scope{}, apperrors.NewUnauthenticatedError()
	}

	all, err := p.allowed(actor, OpList, scopeOther)
	if err != nil {
		return Scope{}, err
	}
	if all {
		return Scope{}, nil
	}

	own, err := p.allowed(actor, OpList, scopeOwn)
	if err != nil {
		return Scope{}, err
	}
	if !own {
		return Scope{}, apperrors.NewForbiddenError("You do not have permission to view records.")
	}

	id := actor.ID
	return Scope{OwnerID: &id}, nil
}
