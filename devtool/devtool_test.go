package devtool_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/devtool"
)

func TestRecorder_CapturesFormActivity(t *testing.T) {
	rec := devtool.NewRecorder()
	form := goform.New(
		goform.WithInitialValue(goform.Values{"username": "alice"}),
		goform.WithObserver(rec),
	)
	form.Register("username", goform.WithValidators(func(_ context.Context, v any, _ goform.Values) (string, error) {
		if v == "" {
			return "required", nil
		}
		return "", nil
	}))

	ctx := context.Background()
	form.SetValue(ctx, "username", "bob")
	form.Validate(ctx)

	writes := rec.Find(devtool.KindWrite)
	if len(writes) != 1 {
		t.Fatalf("expected 1 write event, got %d", len(writes))
	}
	if writes[0].Path != "username" || writes[0].Value != "bob" {
		t.Fatalf("unexpected write event: %+v", writes[0])
	}

	vals := rec.Find(devtool.KindValidate)
	if len(vals) != 1 {
		t.Fatalf("expected 1 validate event, got %d", len(vals))
	}
	if vals[0].Path != "username" || vals[0].Message != "" {
		t.Fatalf("unexpected validate event: %+v", vals[0])
	}
}

func TestLogger_WritesThroughHandler(t *testing.T) {
	var buf bytes.Buffer
	obs := devtool.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	obs.OnWrite("email", "x@example.com")
	obs.OnValidate("email", "invalid format")
	obs.OnSubmit(goform.Values{"email": "x@example.com"}, goform.Errors{"email": "invalid format"})
	obs.OnReset(goform.Values{})

	out := buf.String()
	for _, want := range []string{"field write", "field invalid", "submit rejected", "form reset"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogger_SilentHandlerDiscards(t *testing.T) {
	obs := devtool.NewLogger(devtool.NewSilentHandler())
	// must not panic, must not write anywhere
	obs.OnWrite("a", 1)
	obs.OnValidate("a", "boom")
	obs.OnSubmit(goform.Values{}, nil)
	obs.OnReset(nil)
}

func TestDump_IsDeterministic(t *testing.T) {
	v := goform.Values{"b": 2, "a": 1, "c": map[string]any{"z": true, "y": false}}

	var first, second bytes.Buffer
	devtool.Dump(&first, v)
	devtool.Dump(&second, v)

	if first.String() != second.String() {
		t.Fatalf("dump output not stable:\n%s\nvs\n%s", first.String(), second.String())
	}
	if !strings.Contains(first.String(), "\"a\"") {
		t.Fatalf("dump output missing key a:\n%s", first.String())
	}
}

func TestDiff_ProducesMergePatch(t *testing.T) {
	before := goform.Values{"name": "alice", "age": 30, "keep": "same"}
	after := goform.Values{"name": "bob", "age": 30, "keep": "same", "admin": true}

	patch, err := devtool.Diff(before, after)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(patch, &m); err != nil {
		t.Fatalf("patch is not valid JSON: %v", err)
	}
	if m["name"] != "bob" {
		t.Fatalf("expected name change in patch, got %v", m)
	}
	if m["admin"] != true {
		t.Fatalf("expected admin addition in patch, got %v", m)
	}
	if _, ok := m["keep"]; ok {
		t.Fatalf("unchanged key must not appear in merge patch: %v", m)
	}
	if _, ok := m["age"]; ok {
		t.Fatalf("unchanged key must not appear in merge patch: %v", m)
	}
}
