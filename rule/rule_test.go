package rule_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/rule"
)

func run(t *testing.T, v goform.Validator, value any) string {
	t.Helper()
	msg, err := v(context.Background(), value, nil)
	if err != nil {
		t.Fatalf("unexpected validator error: %v", err)
	}
	return msg
}

func TestRequired(t *testing.T) {
	v := rule.Required()
	for _, empty := range []any{nil, "", false, []any{}, map[string]any{}} {
		if msg := run(t, v, empty); msg == "" {
			t.Fatalf("expected %#v to fail required", empty)
		}
	}
	for _, filled := range []any{"x", true, 0, []any{nil}, map[string]any{"k": nil}} {
		if msg := run(t, v, filled); msg != "" {
			t.Fatalf("expected %#v to pass required, got %q", filled, msg)
		}
	}
}

func TestMinLength_CountsRunes(t *testing.T) {
	v := rule.MinLength(5)
	if msg := run(t, v, "héllo"); msg != "" {
		t.Fatalf("expected 5 runes to pass, got %q", msg)
	}
	if msg := run(t, v, "hi"); msg == "" {
		t.Fatalf("expected 2 runes to fail")
	}
	if msg := run(t, v, []any{1, 2}); msg == "" {
		t.Fatalf("expected a short sequence to fail")
	}
	// values without a length pass
	if msg := run(t, v, 42); msg != "" {
		t.Fatalf("expected a number to pass a length rule, got %q", msg)
	}
}

func TestMaxLength(t *testing.T) {
	v := rule.MaxLength(3)
	if msg := run(t, v, "abc"); msg != "" {
		t.Fatalf("expected the boundary to pass, got %q", msg)
	}
	if msg := run(t, v, "abcd"); msg == "" {
		t.Fatalf("expected overflow to fail")
	}
}

func TestMinMax_Numbers(t *testing.T) {
	min := rule.Min(18)
	max := rule.Max(130)

	if msg := run(t, min, 18); msg != "" {
		t.Fatalf("expected the boundary to pass, got %q", msg)
	}
	if msg := run(t, min, float64(17.5)); msg == "" {
		t.Fatalf("expected a float below the bound to fail")
	}
	if msg := run(t, max, int64(200)); msg == "" {
		t.Fatalf("expected an int64 above the bound to fail")
	}
	// non-numeric values pass
	if msg := run(t, min, "not a number"); msg != "" {
		t.Fatalf("expected a string to pass numeric rules, got %q", msg)
	}
}

func TestMatch(t *testing.T) {
	v := rule.Match(regexp.MustCompile(`^[a-z]+$`))
	if msg := run(t, v, "abc"); msg != "" {
		t.Fatalf("expected a match to pass, got %q", msg)
	}
	if msg := run(t, v, "ABC"); msg == "" {
		t.Fatalf("expected a mismatch to fail")
	}
	// non-string values pass
	if msg := run(t, v, 123); msg != "" {
		t.Fatalf("expected a number to pass pattern rules, got %q", msg)
	}
}

func TestOneOf(t *testing.T) {
	v := rule.OneOf("free", "pro", float64(3))
	if msg := run(t, v, "pro"); msg != "" {
		t.Fatalf("expected an allowed value to pass, got %q", msg)
	}
	if msg := run(t, v, float64(3)); msg != "" {
		t.Fatalf("expected an allowed number to pass, got %q", msg)
	}
	if msg := run(t, v, "enterprise"); msg == "" {
		t.Fatalf("expected a foreign value to fail")
	}
	// comparison is deep equality, so the numeric type matters
	if msg := run(t, v, 3); msg == "" {
		t.Fatalf("expected int 3 to differ from float64 3")
	}
}

func TestAll_ShortCircuits(t *testing.T) {
	var secondRan bool
	first := func(context.Context, any, goform.Values) (string, error) { return "first", nil }
	second := func(context.Context, any, goform.Values) (string, error) {
		secondRan = true
		return "second", nil
	}

	if msg := run(t, rule.All(first, second), "x"); msg != "first" {
		t.Fatalf("expected the first failure, got %q", msg)
	}
	if secondRan {
		t.Fatalf("expected All to stop at the first failure")
	}
	if msg := run(t, rule.All(), "x"); msg != "" {
		t.Fatalf("expected an empty All to pass, got %q", msg)
	}
}

func TestAny_PassesWhenOneBranchPasses(t *testing.T) {
	fail := func(context.Context, any, goform.Values) (string, error) { return "nope", nil }
	pass := func(context.Context, any, goform.Values) (string, error) { return "", nil }
	broken := func(context.Context, any, goform.Values) (string, error) {
		return "", errors.New("backend down")
	}

	if msg := run(t, rule.Any(fail, pass), "x"); msg != "" {
		t.Fatalf("expected Any to pass, got %q", msg)
	}
	// a broken branch is ignored when another branch passes
	if msg := run(t, rule.Any(broken, pass), "x"); msg != "" {
		t.Fatalf("expected Any to pass despite a broken branch, got %q", msg)
	}
	if msg := run(t, rule.Any(fail, fail), "x"); msg != "nope" {
		t.Fatalf("expected the first failing message, got %q", msg)
	}

	// only when nothing passes does the infrastructure error surface
	if _, err := rule.Any(broken, fail)(context.Background(), "x", nil); err == nil {
		t.Fatalf("expected the branch error to surface")
	}
}

func TestWhen_GatesTheChain(t *testing.T) {
	adult := func(_ any, values goform.Values) bool {
		age, _ := values.At("age")
		n, _ := age.(int)
		return n >= 18
	}
	v := rule.When(adult, rule.Required())

	msg, err := v(context.Background(), "", goform.Values{"age": 12})
	if err != nil || msg != "" {
		t.Fatalf("expected a false predicate to pass, got %q err=%v", msg, err)
	}
	msg, err = v(context.Background(), "", goform.Values{"age": 30})
	if err != nil || msg == "" {
		t.Fatalf("expected the gated chain to apply, got %q err=%v", msg, err)
	}
}

func TestRules_DriveFieldValidation(t *testing.T) {
	f := goform.New(goform.WithInitialValue(goform.Values{"username": ""}))
	ctx := context.Background()

	f.Register("username", goform.WithValidators(
		rule.Required(),
		rule.MinLength(3),
		rule.Match(regexp.MustCompile(`^[a-z]+$`)),
	))

	errs := f.Validate(ctx)
	if errs["username"] == "" {
		t.Fatalf("expected the empty value to fail the chain")
	}

	f.SetValue(ctx, "username", "ab")
	if errs := f.Validate(ctx); errs["username"] == "" {
		t.Fatalf("expected the short value to fail the chain")
	}

	f.SetValue(ctx, "username", "alice")
	if errs := f.Validate(ctx); len(errs) != 0 {
		t.Fatalf("expected a clean value to pass, got %v", errs)
	}
}
