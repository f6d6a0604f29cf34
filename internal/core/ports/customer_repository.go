package ports

import (
	"context"
	"time"

	"github.com/storelane/customer-accounts/internal/core/domain"
)

// CustomerFilter narrows a listing to matching customers. Zero-valued
// fields are ignored.
type CustomerFilter struct {
	ID        string
	Email     string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// OrderBy selects the listing order. Direction is "asc" or "desc".
type OrderBy struct {
	CreatedAt string
}

// ListParams controls filtering and pagination for FindAll. Skip/Take
// implement offset pagination; Cursor anchors keyset pagination at a
// customer id. When OrderBy is nil the listing defaults to newest first.
type ListParams struct {
	Skip    int
	Take    int
	Cursor  string
	Where   *CustomerFilter
	OrderBy *OrderBy
}

// UpdateValues is a partial update; nil fields are left untouched.
type UpdateValues struct {
	Email    *string
	IsActive *bool
}

// CustomerRepository defines persistence operations for customer records.
// Find lookups return (nil, nil) when no record matches; mutations on a
// missing record fail with domain.ErrCustomerNotFound.
type CustomerRepository interface {
	FindAll(ctx context.Context, params ListParams) ([]domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	UpdateByID(ctx context.Context, id string, values UpdateValues) (*domain.Customer, error)
	DeleteByID(ctx context.Context, id string) (*domain.Customer, error)
}
