package goform_test

import (
	"context"
	"errors"
	"testing"

	goform "github.com/reoring/goform"
)

type stubSubmitEvent struct{ prevented bool }

func (e *stubSubmitEvent) PreventDefault() { e.prevented = true }

func minLen3(_ context.Context, v any, _ goform.Values) (string, error) {
	s, _ := v.(string)
	if len(s) < 3 {
		return "too short", nil
	}
	return "", nil
}

func TestHandleSubmit_ValidCallsOnValid(t *testing.T) {
	f := goform.New(goform.WithInitialValue(goform.Values{"username": ""}))
	ctx := context.Background()

	f.Register("username", goform.WithValidators(minLen3))
	f.SetValue(ctx, "username", "validname")

	var gotValues goform.Values
	var invalidCalled bool
	submit := f.HandleSubmit(
		func(_ context.Context, v goform.Values) { gotValues = v },
		func(context.Context, goform.Errors) { invalidCalled = true },
	)
	submit(ctx, nil)

	if invalidCalled {
		t.Fatalf("expected only the success callback")
	}
	if got, _ := gotValues.At("username"); got != "validname" {
		t.Fatalf("expected the final snapshot, got %v", gotValues)
	}
}

func TestHandleSubmit_InvalidCallsOnInvalid(t *testing.T) {
	f := goform.New(goform.WithInitialValue(goform.Values{"username": ""}))
	ctx := context.Background()

	fld := f.Register("username", goform.WithValidators(minLen3))
	f.SetValue(ctx, "username", "ab")

	var gotErrs goform.Errors
	var validCalled bool
	submit := f.HandleSubmit(
		func(context.Context, goform.Values) { validCalled = true },
		func(_ context.Context, e goform.Errors) { gotErrs = e },
	)
	submit(ctx, nil)

	if validCalled {
		t.Fatalf("expected only the error callback")
	}
	if gotErrs["username"] != "too short" {
		t.Fatalf("expected the field verdict in the bundle, got %v", gotErrs)
	}
	if fld.Error.Get() != "too short" {
		t.Fatalf("expected the verdict on the cell, got %q", fld.Error.Get())
	}
}

func TestHandleSubmit_PreventsDefault(t *testing.T) {
	f := goform.New()
	ev := &stubSubmitEvent{}

	f.HandleSubmit(nil, nil)(context.Background(), ev)

	if !ev.prevented {
		t.Fatalf("expected PreventDefault to be called on the event")
	}
}

func TestHandleSubmit_ValidatesEverythingRegardlessOfMode(t *testing.T) {
	f := goform.New(
		goform.WithInitialValue(goform.Values{"a": "", "b": ""}),
		goform.WithMode(goform.ModeOnSubmit),
	)
	ctx := context.Background()

	f.Register("a", goform.WithValidators(minLen3))
	f.Register("b", goform.WithValidators(minLen3))
	f.SetValue(ctx, "a", "long enough")
	// b never written, never validated before submission

	var gotErrs goform.Errors
	f.HandleSubmit(nil, func(_ context.Context, e goform.Errors) { gotErrs = e })(ctx, nil)

	if len(gotErrs) != 1 || gotErrs["b"] != "too short" {
		t.Fatalf("expected exactly the untouched field to fail, got %v", gotErrs)
	}
}

func TestHandleSubmit_ResolverErrorsTakePrecedence(t *testing.T) {
	resolver := func(_ context.Context, v goform.Values) (goform.Values, goform.Errors, error) {
		return nil, goform.Errors{"username": "taken"}, nil
	}
	f := goform.New(
		goform.WithInitialValue(goform.Values{"username": ""}),
		goform.WithResolver(resolver),
	)
	ctx := context.Background()

	fld := f.Register("username", goform.WithValidators(minLen3))
	f.SetValue(ctx, "username", "ab") // field chain says "too short"

	var gotErrs goform.Errors
	f.HandleSubmit(nil, func(_ context.Context, e goform.Errors) { gotErrs = e })(ctx, nil)

	if gotErrs["username"] != "taken" {
		t.Fatalf("expected the resolver verdict to win, got %v", gotErrs)
	}
	if fld.Error.Get() != "taken" {
		t.Fatalf("expected the resolver verdict on the cell, got %q", fld.Error.Get())
	}
}

func TestHandleSubmit_ResolverValuesReplaceSnapshot(t *testing.T) {
	resolver := func(_ context.Context, v goform.Values) (goform.Values, goform.Errors, error) {
		out := v.Clone()
		out["username"] = "normalized"
		return out, nil, nil
	}
	f := goform.New(
		goform.WithInitialValue(goform.Values{"username": ""}),
		goform.WithResolver(resolver),
	)
	ctx := context.Background()
	f.SetValue(ctx, "username", "  Normalized  ")

	var gotValues goform.Values
	f.HandleSubmit(func(_ context.Context, v goform.Values) { gotValues = v }, nil)(ctx, nil)

	if got, _ := gotValues.At("username"); got != "normalized" {
		t.Fatalf("expected the resolver's values, got %v", gotValues)
	}
}

func TestHandleSubmit_ResolverInfraFailure(t *testing.T) {
	resolver := func(context.Context, goform.Values) (goform.Values, goform.Errors, error) {
		return nil, nil, errors.New("backend down")
	}
	f := goform.New(goform.WithResolver(resolver))

	var gotErrs goform.Errors
	f.HandleSubmit(nil, func(_ context.Context, e goform.Errors) { gotErrs = e })(context.Background(), nil)

	if gotErrs[""] != goform.ValidationFailed {
		t.Fatalf("expected a root-path generic failure, got %v", gotErrs)
	}
}

func TestHandleSubmit_ResolverPanicIsContained(t *testing.T) {
	resolver := func(context.Context, goform.Values) (goform.Values, goform.Errors, error) {
		panic("resolver exploded")
	}
	f := goform.New(goform.WithResolver(resolver))

	var gotErrs goform.Errors
	var validCalled bool
	f.HandleSubmit(
		func(context.Context, goform.Values) { validCalled = true },
		func(_ context.Context, e goform.Errors) { gotErrs = e },
	)(context.Background(), nil)

	if validCalled {
		t.Fatalf("expected the error callback after a resolver panic")
	}
	if gotErrs[""] != goform.ValidationFailed {
		t.Fatalf("expected the generic failure, got %v", gotErrs)
	}
}

func TestHandleSubmit_ValidatorInfraFailure(t *testing.T) {
	f := goform.New(goform.WithInitialValue(goform.Values{"name": ""}))
	f.Register("name", goform.WithValidators(func(context.Context, any, goform.Values) (string, error) {
		return "", errors.New("lookup failed")
	}))

	var gotErrs goform.Errors
	f.HandleSubmit(nil, func(_ context.Context, e goform.Errors) { gotErrs = e })(context.Background(), nil)

	if gotErrs["name"] != goform.ValidationFailed {
		t.Fatalf("expected the generic failure for the field, got %v", gotErrs)
	}
}

func TestHandleSubmit_NilOnInvalidDropsBundle(t *testing.T) {
	f := goform.New(goform.WithInitialValue(goform.Values{"name": ""}))
	fld := f.Register("name", goform.WithValidators(minLen3))

	// must not panic; the verdict stays readable on the cell
	f.HandleSubmit(nil, nil)(context.Background(), nil)

	if fld.Error.Get() != "too short" {
		t.Fatalf("expected the verdict on the cell, got %q", fld.Error.Get())
	}
}
