package goform

import (
	"context"
	"fmt"
)

// serviceKey is a unique key per type parameter T for context storage.
type serviceKey[T any] struct{}

// WithService stores a typed service instance in the context for use by
// validators and submit resolvers that need to reach a backend (a user
// directory, a rate limiter, a database handle).
func WithService[T any](ctx context.Context, svc T) context.Context {
	return context.WithValue(ctx, serviceKey[T]{}, any(svc))
}

// Service retrieves a typed service instance from context.
func Service[T any](ctx context.Context) (T, bool) {
	var zero T
	v := ctx.Value(serviceKey[T]{})
	if v == nil {
		return zero, false
	}
	if tv, ok := v.(T); ok {
		return tv, true
	}
	return zero, false
}

// RequireService returns the service or an error. Validators that return the
// error surface it as an infrastructure failure rather than a user-facing
// message.
func RequireService[T any](ctx context.Context) (T, error) {
	if v, ok := Service[T](ctx); ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("goform: service %T not provided", zero)
}
