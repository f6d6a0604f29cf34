package ports

import (
	"context"

	"github.com/storelane/customer-accounts/internal/core/domain"
)

// CustomerService implements account business logic on top of the
// repository. Activate and Login return (nil, nil) for "not authorized"
// outcomes (unknown email, wrong password, wrong code, inactive account)
// so the API layer can map them to uninformative client errors; a non-nil
// error always means a store or crypto failure.
type CustomerService interface {
	Signup(ctx context.Context, email, password string) (*domain.Customer, error)
	Activate(ctx context.Context, email, password, activationCode string) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, error)

	FindAll(ctx context.Context, params ListParams) ([]domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	UpdateByID(ctx context.Context, id string, values UpdateValues) (*domain.Customer, error)
	DeleteByID(ctx context.Context, id string) (*domain.Customer, error)
}
