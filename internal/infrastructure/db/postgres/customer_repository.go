package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storelane/customer-accounts/internal/core/domain"
	"github.com/storelane/customer-accounts/internal/core/ports"
)

const customerColumns = "id, email, password_hash, activation_code, is_active, role, created_at, updated_at"

// CustomerRepository implements ports.CustomerRepository on PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.ActivationCode, &c.IsActive, &c.Role, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// buildFindAllQuery renders the listing query. Ordering defaults to
// created_at descending; a cursor anchors the window at the sort position
// of the given customer id (inclusive), with id as tiebreaker.
func buildFindAllQuery(params ports.ListParams) (string, []any) {
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var conds []string
	if w := params.Where; w != nil {
		if w.ID != "" {
			conds = append(conds, "id = "+arg(w.ID))
		}
		if w.Email != "" {
			conds = append(conds, "email = "+arg(w.Email))
		}
		if w.CreatedAt != nil {
			conds = append(conds, "created_at = "+arg(*w.CreatedAt))
		}
		if w.UpdatedAt != nil {
			conds = append(conds, "updated_at = "+arg(*w.UpdatedAt))
		}
	}

	direction, cmp := "DESC", "<="
	if params.OrderBy != nil && strings.EqualFold(params.OrderBy.CreatedAt, "asc") {
		direction, cmp = "ASC", ">="
	}

	if params.Cursor != "" {
		conds = append(conds, "(created_at, id) "+cmp+" (SELECT created_at, id FROM customers WHERE id = "+arg(params.Cursor)+")")
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + customerColumns + " FROM customers")
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY created_at " + direction + ", id " + direction)
	if params.Take > 0 {
		sb.WriteString(" LIMIT " + arg(params.Take))
	}
	if params.Skip > 0 {
		sb.WriteString(" OFFSET " + arg(params.Skip))
	}

	return sb.String(), args
}

func (r *CustomerRepository) FindAll(ctx context.Context, params ports.ListParams) ([]domain.Customer, error) {
	query, args := buildFindAllQuery(params)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = $1", id)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find customer by id: %w", err)
	}
	return customer, nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+customerColumns+" FROM customers WHERE email = $1", email)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find customer by email: %w", err)
	}
	return customer, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO customers (id, email, password_hash, activation_code, is_active, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+customerColumns,
		customer.ID, customer.Email, customer.PasswordHash, customer.ActivationCode, customer.IsActive, customer.Role,
	)

	created, err := scanCustomer(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return created, nil
}

func (r *CustomerRepository) UpdateByID(ctx context.Context, id string, values ports.UpdateValues) (*domain.Customer, error) {
	sets := []string{"updated_at = now()"}
	var args []any
	if values.Email != nil {
		args = append(args, *values.Email)
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if values.IsActive != nil {
		args = append(args, *values.IsActive)
		sets = append(sets, fmt.Sprintf("is_active = $%d", len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE customers SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), customerColumns)

	updated, err := scanCustomer(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return updated, nil
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, id string) (*domain.Customer, error) {
	row := r.pool.QueryRow(ctx, "DELETE FROM customers WHERE id = $1 RETURNING "+customerColumns, id)
	deleted, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("delete customer: %w", err)
	}
	return deleted, nil
}
