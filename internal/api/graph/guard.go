package graph

import (
	"context"

	"github.com/storelane/customer-accounts/internal/api/middleware"
	"github.com/storelane/customer-accounts/internal/core/domain"
)

// Operation names as they appear in the schema.
const (
	opCustomers      = "customers"
	opCustomer       = "customer"
	opLogin          = "login"
	opRefresh        = "refresh"
	opSignup         = "signup"
	opActivate       = "activate"
	opDeleteCustomer = "deleteCustomer"
	opUpdateCustomer = "updateCustomer"
)

// requiredRoles is the static capability table: operation name to the set
// of roles allowed to call it. Operations without an entry are public.
var requiredRoles = map[string][]string{
	opCustomers:      {domain.RoleUser, domain.RoleAdmin},
	opCustomer:       {domain.RoleUser, domain.RoleAdmin},
	opDeleteCustomer: {domain.RoleAdmin},
	opUpdateCustomer: {domain.RoleAdmin},
}

// authorize enforces the two-step guard: the request must carry a verified
// principal, and the principal's role must be in the operation's allow
// list. Anything that cannot be positively verified rejects.
func authorize(ctx context.Context, operation string) error {
	roles, ok := requiredRoles[operation]
	if !ok || len(roles) == 0 {
		return nil
	}

	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		return errUnauthorized
	}

	for _, role := range roles {
		if role == principal.Role {
			return nil
		}
	}
	return errUnauthorized
}
