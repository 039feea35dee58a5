package goform_test

import (
	"context"
	"testing"

	goform "github.com/reoring/goform"
)

type userDirectory interface {
	Taken(name string) bool
}

type fakeDirectory map[string]bool

func (d fakeDirectory) Taken(name string) bool { return d[name] }

func uniqueUsername(ctx context.Context, value any, _ goform.Values) (string, error) {
	dir, err := goform.RequireService[userDirectory](ctx)
	if err != nil {
		return "", err
	}
	if s, _ := value.(string); dir.Taken(s) {
		return "already taken", nil
	}
	return "", nil
}

func TestService_RoundTrip(t *testing.T) {
	ctx := goform.WithService[userDirectory](context.Background(), fakeDirectory{"root": true})

	dir, ok := goform.Service[userDirectory](ctx)
	if !ok || !dir.Taken("root") {
		t.Fatalf("expected the stored service back")
	}
	if _, ok := goform.Service[userDirectory](context.Background()); ok {
		t.Fatalf("expected a miss on a bare context")
	}
}

func TestService_ValidatorUsesDirectory(t *testing.T) {
	f := goform.New(goform.WithInitialValue(goform.Values{"username": "root"}))
	f.Register("username", goform.WithValidators(uniqueUsername))

	ctx := goform.WithService[userDirectory](context.Background(), fakeDirectory{"root": true})
	if errs := f.Validate(ctx); errs["username"] != "already taken" {
		t.Fatalf("expected the directory lookup to fail validation, got %v", errs)
	}

	f.SetValue(ctx, "username", "newcomer")
	if errs := f.Validate(ctx); len(errs) != 0 {
		t.Fatalf("expected a free username to pass, got %v", errs)
	}
}

func TestService_MissingSurfacesAsInfrastructureFailure(t *testing.T) {
	f := goform.New(goform.WithInitialValue(goform.Values{"username": "anyone"}))
	f.Register("username", goform.WithValidators(uniqueUsername))

	errs := f.Validate(context.Background())
	if errs["username"] != goform.ValidationFailed {
		t.Fatalf("expected %q for a missing service, got %v", goform.ValidationFailed, errs)
	}
}
