package graph

import (
	"context"
	"testing"

	"github.com/storelane/customer-accounts/internal/api/middleware"
	"github.com/storelane/customer-accounts/internal/core/domain"
)

func principalCtx(role string) context.Context {
	return middleware.WithPrincipal(context.Background(), domain.AccessPayload{
		ID:    "customer-1",
		Email: "alice@example.com",
		Role:  role,
	})
}

func TestAuthorize_PublicOperation(t *testing.T) {
	// No table entry means public, even without a principal.
	if err := authorize(context.Background(), opSignup); err != nil {
		t.Fatalf("signup should be public, got %v", err)
	}
	if err := authorize(context.Background(), opLogin); err != nil {
		t.Fatalf("login should be public, got %v", err)
	}
}

func TestAuthorize_MissingPrincipal(t *testing.T) {
	if err := authorize(context.Background(), opCustomers); err != errUnauthorized {
		t.Fatalf("expected errUnauthorized, got %v", err)
	}
}

func TestAuthorize_RoleAllowList(t *testing.T) {
	if err := authorize(principalCtx(domain.RoleUser), opCustomers); err != nil {
		t.Fatalf("USER should read customers, got %v", err)
	}
	if err := authorize(principalCtx(domain.RoleAdmin), opCustomers); err != nil {
		t.Fatalf("ADMIN should read customers, got %v", err)
	}

	// Authenticated but insufficient role.
	if err := authorize(principalCtx(domain.RoleUser), opDeleteCustomer); err != errUnauthorized {
		t.Fatalf("USER must not delete customers, got %v", err)
	}
	if err := authorize(principalCtx(domain.RoleAdmin), opDeleteCustomer); err != nil {
		t.Fatalf("ADMIN should delete customers, got %v", err)
	}

	// Unknown role.
	if err := authorize(principalCtx("SUPPORT"), opCustomer); err != errUnauthorized {
		t.Fatalf("unknown role must be rejected, got %v", err)
	}
}
