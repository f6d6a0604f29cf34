package graph

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/storelane/customer-accounts/internal/api/metrics"
	"github.com/storelane/customer-accounts/internal/core/domain"
)

// instrument wraps a resolver with the per-operation counter and latency
// histogram.
func instrument(operation string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		start := time.Now()
		result, err := fn(p)

		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.OperationsTotal.WithLabelValues(operation, outcome).Inc()
		metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

		return result, err
	}
}

func customerFromSource(source interface{}) *domain.Customer {
	switch c := source.(type) {
	case *domain.Customer:
		return c
	case domain.Customer:
		return &c
	}
	return nil
}

func resolveCustomerField(pick func(*domain.Customer) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		c := customerFromSource(p.Source)
		if c == nil {
			return nil, nil
		}
		return pick(c), nil
	}
}

// Timestamps are surfaced as Unix milliseconds.
func resolveUnixMilli(pick func(*domain.Customer) time.Time) graphql.FieldResolveFn {
	return resolveCustomerField(func(c *domain.Customer) interface{} {
		return float64(pick(c).UnixMilli())
	})
}

func resolveTokensField(pick func(*domain.Tokens) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		tokens, ok := p.Source.(*domain.Tokens)
		if !ok {
			return nil, nil
		}
		return pick(tokens), nil
	}
}

// NewSchema builds the executable schema around the resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	customerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolveCustomerField(func(c *domain.Customer) interface{} { return c.ID }),
			},
			"email": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolveCustomerField(func(c *domain.Customer) interface{} { return c.Email }),
			},
			"isActive": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Resolve: resolveCustomerField(func(c *domain.Customer) interface{} { return c.IsActive }),
			},
			"role": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolveCustomerField(func(c *domain.Customer) interface{} { return c.Role }),
			},
			"createdAt": &graphql.Field{
				Type:    graphql.Float,
				Resolve: resolveUnixMilli(func(c *domain.Customer) time.Time { return c.CreatedAt }),
			},
			"updatedAt": &graphql.Field{
				Type:    graphql.Float,
				Resolve: resolveUnixMilli(func(c *domain.Customer) time.Time { return c.UpdatedAt }),
			},
		},
	})

	tokensType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Tokens",
		Fields: graphql.Fields{
			"type": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolveTokensField(func(t *domain.Tokens) interface{} { return t.Type }),
			},
			"accessToken": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolveTokensField(func(t *domain.Tokens) interface{} { return t.AccessToken }),
			},
			"refreshToken": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolveTokensField(func(t *domain.Tokens) interface{} { return t.RefreshToken }),
			},
		},
	})

	whereCustomerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "WhereCustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"createdAt": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"updatedAt": &graphql.InputObjectFieldConfig{Type: graphql.Float},
		},
	})

	cursorInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CustomerCursorInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	orderByCustomerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderByCustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"createdAt": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	getCustomersInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "GetCustomersInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"skip":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"take":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"cursor":  &graphql.InputObjectFieldConfig{Type: cursorInput},
			"where":   &graphql.InputObjectFieldConfig{Type: whereCustomerInput},
			"orderBy": &graphql.InputObjectFieldConfig{Type: orderByCustomerInput},
		},
	})

	getCustomerByIDOrEmailInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "GetCustomerByIdOrEmailInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	updateCustomerValuesInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateCustomerValuesInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	updateCustomerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateCustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"values": &graphql.InputObjectFieldConfig{Type: updateCustomerValuesInput},
		},
	})

	signupCustomerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignupCustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":                &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password":             &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"passwordConfirmation": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	activationCustomerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ActivationCustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"activationCode": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	loginCustomerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginCustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			opCustomers: &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(customerType)),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: getCustomersInput},
				},
				Resolve: instrument(opCustomers, r.resolveCustomers),
			},
			opCustomer: &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(getCustomerByIDOrEmailInput)},
				},
				Resolve: instrument(opCustomer, r.resolveCustomer),
			},
			opLogin: &graphql.Field{
				Type: tokensType,
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginCustomerInput)},
				},
				Resolve: instrument(opLogin, r.resolveLogin),
			},
			opRefresh: &graphql.Field{
				Type: tokensType,
				Args: graphql.FieldConfigArgument{
					"refreshToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: instrument(opRefresh, r.resolveRefresh),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			opSignup: &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signupCustomerInput)},
				},
				Resolve: instrument(opSignup, r.resolveSignup),
			},
			opActivate: &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(activationCustomerInput)},
				},
				Resolve: instrument(opActivate, r.resolveActivate),
			},
			opDeleteCustomer: &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: instrument(opDeleteCustomer, r.resolveDeleteCustomer),
			},
			opUpdateCustomer: &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateCustomerInput)},
				},
				Resolve: instrument(opUpdateCustomer, r.resolveUpdateCustomer),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
