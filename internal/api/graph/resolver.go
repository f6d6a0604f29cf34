package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/storelane/customer-accounts/internal/api/metrics"
	"github.com/storelane/customer-accounts/internal/core/domain"
	"github.com/storelane/customer-accounts/internal/core/ports"
)

// Resolver maps GraphQL operations onto the customer and token services.
// It is the single translation point between internal errors and the fixed
// public error set: service errors are logged here and never surfaced.
type Resolver struct {
	customers ports.CustomerService
	tokens    ports.TokenService
	logger    zerolog.Logger
}

func NewResolver(customers ports.CustomerService, tokens ports.TokenService, logger zerolog.Logger) *Resolver {
	return &Resolver{customers: customers, tokens: tokens, logger: logger}
}

func (r *Resolver) resolveCustomers(p graphql.ResolveParams) (interface{}, error) {
	if err := authorize(p.Context, opCustomers); err != nil {
		return nil, err
	}

	params := decodeListParams(argMap(p.Args, "data"))
	customers, err := r.customers.FindAll(p.Context, params)
	if err != nil {
		return nil, errBadRequest
	}
	return customers, nil
}

func (r *Resolver) resolveCustomer(p graphql.ResolveParams) (interface{}, error) {
	if err := authorize(p.Context, opCustomer); err != nil {
		return nil, err
	}

	data := argMap(p.Args, "data")
	id := stringArg(data, "id")
	email := stringArg(data, "email")

	switch {
	case id != "":
		customer, err := r.customers.FindByID(p.Context, id)
		if err != nil {
			return nil, errBadRequest
		}
		return customer, nil
	case email != "":
		customer, err := r.customers.FindByEmail(p.Context, email)
		if err != nil {
			return nil, errBadRequest
		}
		return customer, nil
	default:
		return nil, errMissingIDAndEmail
	}
}

func (r *Resolver) resolveDeleteCustomer(p graphql.ResolveParams) (interface{}, error) {
	if err := authorize(p.Context, opDeleteCustomer); err != nil {
		return nil, err
	}

	id, _ := p.Args["id"].(string)
	customer, err := r.customers.DeleteByID(p.Context, id)
	if err != nil {
		return nil, errBadRequest
	}
	return customer, nil
}

func (r *Resolver) resolveUpdateCustomer(p graphql.ResolveParams) (interface{}, error) {
	if err := authorize(p.Context, opUpdateCustomer); err != nil {
		return nil, err
	}

	data := argMap(p.Args, "data")
	id := stringArg(data, "id")
	if id == "" {
		return nil, errBadRequest
	}

	var values ports.UpdateValues
	if v := argMap(data, "values"); v != nil {
		if email := stringArg(v, "email"); email != "" {
			values.Email = &email
		}
	}

	customer, err := r.customers.UpdateByID(p.Context, id, values)
	if err != nil {
		return nil, errBadRequest
	}
	return customer, nil
}

func (r *Resolver) resolveSignup(p graphql.ResolveParams) (interface{}, error) {
	data := argMap(p.Args, "data")
	input := signupInput{
		Email:                stringArg(data, "email"),
		Password:             stringArg(data, "password"),
		PasswordConfirmation: stringArg(data, "passwordConfirmation"),
	}

	if !r.tokens.ValidatePasswordComplexity(input.Password) {
		metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		return nil, errPasswordNotComplex
	}
	if input.Password != input.PasswordConfirmation {
		metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		return nil, errPasswordMismatch
	}
	if err := validateInput(input); err != nil {
		metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		r.logger.Info().Err(err).Msg("signup rejected by input validation")
		return nil, errBadRequest
	}

	customer, err := r.customers.Signup(p.Context, input.Email, input.Password)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		r.logger.Error().Err(err).Msg("signup failed")
		return nil, errSignupFailed
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	return customer, nil
}

func (r *Resolver) resolveActivate(p graphql.ResolveParams) (interface{}, error) {
	data := argMap(p.Args, "data")
	input := activateInput{
		Email:          stringArg(data, "email"),
		Password:       stringArg(data, "password"),
		ActivationCode: stringArg(data, "activationCode"),
	}
	if err := validateInput(input); err != nil {
		metrics.ActivationsTotal.WithLabelValues("rejected").Inc()
		return nil, errActivationFailed
	}

	customer, err := r.customers.Activate(p.Context, input.Email, input.Password, input.ActivationCode)
	if err != nil {
		metrics.ActivationsTotal.WithLabelValues("error").Inc()
		r.logger.Error().Err(err).Msg("activation failed")
		return nil, errActivationFailed
	}
	if customer == nil {
		metrics.ActivationsTotal.WithLabelValues("rejected").Inc()
		return nil, errActivationFailed
	}

	metrics.ActivationsTotal.WithLabelValues("success").Inc()
	return true, nil
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	data := argMap(p.Args, "data")
	input := loginInput{
		Email:    stringArg(data, "email"),
		Password: stringArg(data, "password"),
	}
	if err := validateInput(input); err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, errLoginFailed
	}

	customer, err := r.customers.Login(p.Context, input.Email, input.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		r.logger.Error().Err(err).Msg("login failed")
		return nil, errUnauthorized
	}
	if customer == nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, errLoginFailed
	}

	tokens, err := r.issueTokens(customer)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, errUnauthorized
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return tokens, nil
}

// resolveRefresh exchanges a valid refresh token for a fresh pair. The
// customer is re-loaded from the store; claims alone are not trusted to
// still describe an existing account.
func (r *Resolver) resolveRefresh(p graphql.ResolveParams) (interface{}, error) {
	token, _ := p.Args["refreshToken"].(string)

	payload, err := r.tokens.VerifyRefreshToken(token)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, errUnauthorized
	}

	customer, err := r.customers.FindByID(p.Context, payload.ID)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		r.logger.Error().Err(err).Msg("refresh failed")
		return nil, errUnauthorized
	}
	if customer == nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, errUnauthorized
	}

	tokens, err := r.issueTokens(customer)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return nil, errUnauthorized
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return tokens, nil
}

func (r *Resolver) issueTokens(customer *domain.Customer) (*domain.Tokens, error) {
	accessToken, err := r.tokens.IssueAccessToken(customer)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to issue access token")
		return nil, err
	}
	refreshToken, err := r.tokens.IssueRefreshToken(customer)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to issue refresh token")
		return nil, err
	}
	return &domain.Tokens{
		Type:         domain.TokenTypeBearer,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
