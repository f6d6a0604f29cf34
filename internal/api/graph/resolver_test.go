package graph

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/storelane/customer-accounts/internal/core/domain"
	"github.com/storelane/customer-accounts/internal/core/ports"
	"github.com/storelane/customer-accounts/internal/core/service"
)

type stubRepo struct {
	customers map[string]*domain.Customer // keyed by id
}

func newStubRepo() *stubRepo {
	return &stubRepo{customers: make(map[string]*domain.Customer)}
}

func clone(c *domain.Customer) *domain.Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (r *stubRepo) FindAll(_ context.Context, _ ports.ListParams) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	return clone(r.customers[id]), nil
}

func (r *stubRepo) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	for _, c := range r.customers {
		if c.Email == email {
			return clone(c), nil
		}
	}
	return nil, nil
}

func (r *stubRepo) Create(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	for _, c := range r.customers {
		if c.Email == customer.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	now := time.Now().UTC()
	cp := clone(customer)
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.customers[cp.ID] = cp
	return clone(cp), nil
}

func (r *stubRepo) UpdateByID(_ context.Context, id string, values ports.UpdateValues) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	if values.Email != nil {
		c.Email = *values.Email
	}
	if values.IsActive != nil {
		c.IsActive = *values.IsActive
	}
	c.UpdatedAt = time.Now().UTC()
	return clone(c), nil
}

func (r *stubRepo) DeleteByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return c, nil
}

type testEnv struct {
	schema graphql.Schema
	repo   *stubRepo
	tokens *service.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := newStubRepo()
	tokens := service.NewTokenService("test-secret", zerolog.Nop())
	customers := service.NewCustomerService(repo, service.NewBcryptHasher(), zerolog.Nop())

	schema, err := NewSchema(NewResolver(customers, tokens, zerolog.Nop()))
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	return &testEnv{schema: schema, repo: repo, tokens: tokens}
}

func (env *testEnv) exec(ctx context.Context, query string) *graphql.Result {
	if ctx == nil {
		ctx = context.Background()
	}
	return graphql.Do(graphql.Params{
		Schema:        env.schema,
		RequestString: query,
		Context:       ctx,
	})
}

func firstError(result *graphql.Result) string {
	if len(result.Errors) == 0 {
		return ""
	}
	return result.Errors[0].Message
}

func dataField(t *testing.T, result *graphql.Result, field string) map[string]interface{} {
	t.Helper()
	data, ok := result.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("no data in result: %+v", result)
	}
	value, ok := data[field].(map[string]interface{})
	if !ok {
		t.Fatalf("field %q missing or not an object: %+v", field, data)
	}
	return value
}

const signupQuery = `mutation {
	signup(data: {email: "alice@example.com", password: "Password123!", passwordConfirmation: "Password123!"}) {
		id
		email
		isActive
		role
	}
}`

func (env *testEnv) signup(t *testing.T) *domain.Customer {
	t.Helper()
	result := env.exec(nil, signupQuery)
	if len(result.Errors) > 0 {
		t.Fatalf("signup failed: %v", result.Errors)
	}
	customer, err := env.repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil || customer == nil {
		t.Fatalf("signed-up customer not stored: %v", err)
	}
	return customer
}

func (env *testEnv) activate(t *testing.T, customer *domain.Customer) {
	t.Helper()
	query := fmt.Sprintf(`mutation {
		activate(data: {email: %q, password: "Password123!", activationCode: %q})
	}`, customer.Email, customer.ActivationCode)
	result := env.exec(nil, query)
	if len(result.Errors) > 0 {
		t.Fatalf("activate failed: %v", result.Errors)
	}
}

func TestSignupMutation(t *testing.T) {
	env := newTestEnv(t)

	result := env.exec(nil, signupQuery)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	signup := dataField(t, result, "signup")
	if signup["email"] != "alice@example.com" {
		t.Fatalf("unexpected email: %v", signup["email"])
	}
	if signup["isActive"] != false {
		t.Fatalf("new customer must be inactive")
	}
	if signup["role"] != domain.RoleUser {
		t.Fatalf("unexpected role: %v", signup["role"])
	}
}

func TestSignupMutation_PasswordPolicy(t *testing.T) {
	env := newTestEnv(t)

	weak := `mutation {
		signup(data: {email: "a@example.com", password: "short1!", passwordConfirmation: "short1!"}) { id }
	}`
	if msg := firstError(env.exec(nil, weak)); msg != errPasswordNotComplex.Error() {
		t.Fatalf("expected complexity error, got %q", msg)
	}

	mismatch := `mutation {
		signup(data: {email: "a@example.com", password: "Password123!", passwordConfirmation: "Password456!"}) { id }
	}`
	if msg := firstError(env.exec(nil, mismatch)); msg != errPasswordMismatch.Error() {
		t.Fatalf("expected confirmation error, got %q", msg)
	}

	badEmail := `mutation {
		signup(data: {email: "not-an-email", password: "Password123!", passwordConfirmation: "Password123!"}) { id }
	}`
	if msg := firstError(env.exec(nil, badEmail)); msg != errBadRequest.Error() {
		t.Fatalf("expected bad request, got %q", msg)
	}
}

func TestSignupMutation_DuplicateEmailIsOpaque(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	// Same public message as any other signup failure.
	if msg := firstError(env.exec(nil, signupQuery)); msg != errSignupFailed.Error() {
		t.Fatalf("expected generic signup error, got %q", msg)
	}
}

func TestActivateMutation(t *testing.T) {
	env := newTestEnv(t)
	customer := env.signup(t)

	wrongCode := fmt.Sprintf(`mutation {
		activate(data: {email: %q, password: "Password123!", activationCode: "bogus"})
	}`, customer.Email)
	if msg := firstError(env.exec(nil, wrongCode)); msg != errActivationFailed.Error() {
		t.Fatalf("expected activation error, got %q", msg)
	}

	env.activate(t, customer)

	stored, _ := env.repo.FindByID(context.Background(), customer.ID)
	if stored == nil || !stored.IsActive {
		t.Fatalf("activation not persisted: %+v", stored)
	}
}

func TestLoginQuery(t *testing.T) {
	env := newTestEnv(t)
	customer := env.signup(t)

	loginQuery := `{
		login(data: {email: "alice@example.com", password: "Password123!"}) {
			type
			accessToken
			refreshToken
		}
	}`

	// Before activation the account must not authenticate.
	if msg := firstError(env.exec(nil, loginQuery)); msg != errLoginFailed.Error() {
		t.Fatalf("expected login rejection for inactive account, got %q", msg)
	}

	env.activate(t, customer)

	wrongPassword := `{
		login(data: {email: "alice@example.com", password: "WrongPass1!"}) { type }
	}`
	if msg := firstError(env.exec(nil, wrongPassword)); msg != errLoginFailed.Error() {
		t.Fatalf("expected login rejection for wrong password, got %q", msg)
	}

	result := env.exec(nil, loginQuery)
	if len(result.Errors) > 0 {
		t.Fatalf("login failed: %v", result.Errors)
	}
	tokens := dataField(t, result, "login")
	if tokens["type"] != domain.TokenTypeBearer {
		t.Fatalf("unexpected token type: %v", tokens["type"])
	}
	refreshToken, _ := tokens["refreshToken"].(string)
	payload, err := env.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		t.Fatalf("issued refresh token does not verify: %v", err)
	}
	if payload.ID != customer.ID || payload.Email != customer.Email {
		t.Fatalf("unexpected refresh payload: %+v", payload)
	}
}

func TestRefreshQuery(t *testing.T) {
	env := newTestEnv(t)
	customer := env.signup(t)
	env.activate(t, customer)

	refreshToken, err := env.tokens.IssueRefreshToken(customer)
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}

	query := fmt.Sprintf(`{
		refresh(refreshToken: %q) {
			type
			accessToken
			refreshToken
		}
	}`, refreshToken)
	result := env.exec(nil, query)
	if len(result.Errors) > 0 {
		t.Fatalf("refresh failed: %v", result.Errors)
	}
	tokens := dataField(t, result, "refresh")
	if tokens["accessToken"] == "" || tokens["refreshToken"] == "" {
		t.Fatalf("expected a fresh token pair, got %+v", tokens)
	}

	// Garbage tokens are rejected as unauthenticated.
	bad := `{ refresh(refreshToken: "garbage") { type } }`
	if msg := firstError(env.exec(nil, bad)); msg != errUnauthorized.Error() {
		t.Fatalf("expected unauthorized, got %q", msg)
	}
}

func TestRefreshQuery_DeletedCustomer(t *testing.T) {
	env := newTestEnv(t)
	customer := env.signup(t)

	refreshToken, err := env.tokens.IssueRefreshToken(customer)
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}

	// Claims alone must not be trusted: the account is gone.
	if _, err := env.repo.DeleteByID(context.Background(), customer.ID); err != nil {
		t.Fatalf("delete customer: %v", err)
	}

	query := fmt.Sprintf(`{ refresh(refreshToken: %q) { type } }`, refreshToken)
	if msg := firstError(env.exec(nil, query)); msg != errUnauthorized.Error() {
		t.Fatalf("expected unauthorized for deleted customer, got %q", msg)
	}
}

func TestCustomersQuery_RoleGate(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	query := `{ customers { id email } }`

	// Anonymous.
	if msg := firstError(env.exec(nil, query)); msg != errUnauthorized.Error() {
		t.Fatalf("expected unauthorized for anonymous, got %q", msg)
	}

	// Authenticated as USER.
	result := env.exec(principalCtx(domain.RoleUser), query)
	if len(result.Errors) > 0 {
		t.Fatalf("customers query failed for USER: %v", result.Errors)
	}
	list, ok := result.Data.(map[string]interface{})["customers"].([]interface{})
	if !ok || len(list) != 1 {
		t.Fatalf("expected one customer, got %+v", result.Data)
	}
}

func TestCustomerQuery_SelectorRequired(t *testing.T) {
	env := newTestEnv(t)
	customer := env.signup(t)

	missing := `{ customer(data: {}) { id } }`
	if msg := firstError(env.exec(principalCtx(domain.RoleUser), missing)); msg != errMissingIDAndEmail.Error() {
		t.Fatalf("expected missing-selector error, got %q", msg)
	}

	byID := fmt.Sprintf(`{ customer(data: {id: %q}) { id email } }`, customer.ID)
	result := env.exec(principalCtx(domain.RoleUser), byID)
	if len(result.Errors) > 0 {
		t.Fatalf("customer by id failed: %v", result.Errors)
	}
	got := dataField(t, result, "customer")
	if got["email"] != customer.Email {
		t.Fatalf("unexpected customer: %+v", got)
	}

	byEmail := fmt.Sprintf(`{ customer(data: {email: %q}) { id } }`, customer.Email)
	result = env.exec(principalCtx(domain.RoleUser), byEmail)
	if len(result.Errors) > 0 {
		t.Fatalf("customer by email failed: %v", result.Errors)
	}
}

func TestDeleteCustomerMutation_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	customer := env.signup(t)

	query := fmt.Sprintf(`mutation { deleteCustomer(id: %q) { id } }`, customer.ID)

	// Authenticated but not an admin: rejected by the role check.
	if msg := firstError(env.exec(principalCtx(domain.RoleUser), query)); msg != errUnauthorized.Error() {
		t.Fatalf("expected unauthorized for USER, got %q", msg)
	}

	result := env.exec(principalCtx(domain.RoleAdmin), query)
	if len(result.Errors) > 0 {
		t.Fatalf("delete failed for ADMIN: %v", result.Errors)
	}
	if stored, _ := env.repo.FindByID(context.Background(), customer.ID); stored != nil {
		t.Fatalf("customer not deleted")
	}
}

func TestUpdateCustomerMutation(t *testing.T) {
	env := newTestEnv(t)
	customer := env.signup(t)

	query := fmt.Sprintf(`mutation {
		updateCustomer(data: {id: %q, values: {email: "renamed@example.com"}}) { id email }
	}`, customer.ID)

	if msg := firstError(env.exec(principalCtx(domain.RoleUser), query)); msg != errUnauthorized.Error() {
		t.Fatalf("expected unauthorized for USER, got %q", msg)
	}

	result := env.exec(principalCtx(domain.RoleAdmin), query)
	if len(result.Errors) > 0 {
		t.Fatalf("update failed for ADMIN: %v", result.Errors)
	}
	updated := dataField(t, result, "updateCustomer")
	if updated["email"] != "renamed@example.com" {
		t.Fatalf("email not updated: %+v", updated)
	}

	// Unknown id folds into the generic bad request.
	missing := `mutation { updateCustomer(data: {id: "nope", values: {email: "x@example.com"}}) { id } }`
	if msg := firstError(env.exec(principalCtx(domain.RoleAdmin), missing)); msg != errBadRequest.Error() {
		t.Fatalf("expected bad request, got %q", msg)
	}
}
