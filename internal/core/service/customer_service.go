package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storelane/customer-accounts/internal/core/domain"
	"github.com/storelane/customer-accounts/internal/core/ports"
)

// CustomerService implements signup, activation, login and the CRUD
// pass-throughs over the repository. Every store error is logged with the
// failing operation before it propagates.
type CustomerService struct {
	repo   ports.CustomerRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, hasher: hasher, logger: logger}
}

// Signup hashes the password and creates an inactive customer with a fresh
// activation code. Password complexity and confirmation equality are the
// caller's responsibility.
func (s *CustomerService) Signup(ctx context.Context, email, password string) (*domain.Customer, error) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("signup: failed to hash password")
		return nil, err
	}

	customer := &domain.Customer{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordHash:   hashed,
		ActivationCode: uuid.NewString(),
		IsActive:       false,
		Role:           domain.RoleUser,
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		s.logger.Error().Err(err).Msg("signup: failed to create customer")
		return nil, err
	}

	s.logger.Info().Str("customer_id", created.ID).Msg("customer signed up")
	return created, nil
}

// Activate flips the account to active when both the password and the
// activation code match. A nil result with nil error means the attempt was
// rejected: unknown email, wrong password or wrong code are all reported
// identically so callers cannot probe which check failed.
func (s *CustomerService) Activate(ctx context.Context, email, password, activationCode string) (*domain.Customer, error) {
	customer, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("activate: failed to load customer")
		return nil, err
	}
	if customer == nil {
		s.logger.Info().Msg("activate: customer not found")
		return nil, nil
	}

	if !s.hasher.Compare(password, customer.PasswordHash) || activationCode != customer.ActivationCode {
		return nil, nil
	}

	active := true
	updated, err := s.repo.UpdateByID(ctx, customer.ID, ports.UpdateValues{IsActive: &active})
	if err != nil {
		s.logger.Error().Err(err).Msg("activate: failed to persist activation")
		return nil, err
	}

	s.logger.Info().Str("customer_id", updated.ID).Msg("customer activated")
	return updated, nil
}

// Login returns the customer when the account exists, is active and the
// password matches; nil otherwise.
func (s *CustomerService) Login(ctx context.Context, email, password string) (*domain.Customer, error) {
	customer, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("login: failed to load customer")
		return nil, err
	}
	if customer == nil {
		s.logger.Info().Msg("login: customer not found")
		return nil, nil
	}
	if !customer.IsActive {
		return nil, nil
	}
	if !s.hasher.Compare(password, customer.PasswordHash) {
		return nil, nil
	}
	return customer, nil
}

func (s *CustomerService) FindAll(ctx context.Context, params ports.ListParams) ([]domain.Customer, error) {
	customers, err := s.repo.FindAll(ctx, params)
	if err != nil {
		s.logger.Error().Err(err).Msg("findAll: failed to fetch customers")
		return nil, err
	}
	return customers, nil
}

func (s *CustomerService) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Msg("findById: failed to find customer")
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	customer, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("findByEmail: failed to find customer")
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) UpdateByID(ctx context.Context, id string, values ports.UpdateValues) (*domain.Customer, error) {
	customer, err := s.repo.UpdateByID(ctx, id, values)
	if err != nil {
		s.logger.Error().Err(err).Msg("updateById: failed to update customer")
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) DeleteByID(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Msg("deleteById: failed to delete customer")
		return nil, err
	}
	s.logger.Info().Str("customer_id", id).Msg("customer deleted")
	return customer, nil
}
