// Package middleware provides the framework-agnostic pieces for validating
// HTTP request bodies with goform. The echo and gin submodules build their
// middlewares on top of these helpers.
package middleware

import (
	"context"
	"io"

	goform "github.com/reoring/goform"
)

// Builder constructs a fresh Form for one request. Forms carry per-submission
// state (values, verdicts, dirty flags), so a single shared instance would
// bleed state across requests; the middlewares call the builder once per
// body.
type Builder func() *goform.Form

// ctxKeyValues is the typed context key for storing validated Values.
type ctxKeyValues struct{}

// ContextWithValues attaches a validated snapshot to the context.
func ContextWithValues(ctx context.Context, v goform.Values) context.Context {
	return context.WithValue(ctx, ctxKeyValues{}, v)
}

// ValuesFromContext retrieves the validated snapshot stored by a middleware.
func ValuesFromContext(ctx context.Context) (goform.Values, bool) {
	v, ok := ctx.Value(ctxKeyValues{}).(goform.Values)
	return v, ok
}

// ValidateBody decodes a JSON body into a fresh form from build and runs the
// full submission pipeline: every field's chain plus the form's resolver. On
// success errs is empty and values holds the final snapshot (the resolver's
// values when it returned some). A non-nil error means the body never reached
// validation (read failure or malformed JSON).
func ValidateBody(ctx context.Context, build Builder, body io.Reader) (goform.Values, goform.Errors, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, nil, err
	}
	doc, err := goform.ValuesFromJSON(data)
	if err != nil {
		return nil, nil, err
	}

	form := build()
	form.SetValues(ctx, doc)

	var values goform.Values
	var errs goform.Errors
	form.HandleSubmit(
		func(_ context.Context, v goform.Values) { values = v },
		func(_ context.Context, e goform.Errors) { errs = e },
	)(ctx, nil)
	return values, errs, nil
}

// ErrorPayload shapes Errors for JSON responses.
func ErrorPayload(errs goform.Errors) map[string]any {
	return map[string]any{"errors": map[string]string(errs)}
}
