// Package devtool provides development-time instrumentation for goform:
// a slog-backed Observer, an in-memory event Recorder for tests, and
// helpers to dump and diff form state.
package devtool

import (
	"context"
	"io"
	"log/slog"
	"sync"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"

	goform "github.com/reoring/goform"
)

// Logger is an Observer that logs form activity through slog.
//
// Usage:
//
//	// Structured JSON logging (compact, machine-readable)
//	obs := devtool.NewLogger(slog.NewJSONHandler(os.Stderr, nil))
//	form := goform.New(goform.WithObserver(obs))
//
//	// Silent (for testing)
//	obs := devtool.NewLogger(devtool.NewSilentHandler())
//
// Writes and validation verdicts log at DEBUG; submissions and resets at
// INFO, with failed submissions elevated to WARN.
type Logger struct {
	goform.BaseObserver
	logger *slog.Logger
}

// NewLogger creates an Observer logging through the given slog.Handler.
func NewLogger(h slog.Handler) *Logger {
	return &Logger{logger: slog.New(h)}
}

func (l *Logger) OnWrite(path string, value any) {
	l.logger.Debug("field write", "path", path, "value", value)
}

func (l *Logger) OnValidate(path, message string) {
	if message == "" {
		l.logger.Debug("field valid", "path", path)
		return
	}
	l.logger.Debug("field invalid", "path", path, "message", message)
}

func (l *Logger) OnSubmit(values goform.Values, errs goform.Errors) {
	if len(errs) > 0 {
		l.logger.Warn("submit rejected", "errors", len(errs), "detail", errs.Error())
		return
	}
	l.logger.Info("submit accepted", "fields", len(values))
}

func (l *Logger) OnReset(values goform.Values) {
	l.logger.Info("form reset", "fields", len(values))
}

// SilentHandler is a slog.Handler that discards all log output.
// Useful for testing when you don't want log output.
type SilentHandler struct{}

// NewSilentHandler creates a new silent log handler.
func NewSilentHandler() *SilentHandler { return &SilentHandler{} }

func (h *SilentHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (h *SilentHandler) Handle(context.Context, slog.Record) error { return nil }
func (h *SilentHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h *SilentHandler) WithGroup(string) slog.Handler             { return h }

// EventKind discriminates recorded observer callbacks.
type EventKind string

const (
	KindWrite    EventKind = "write"
	KindValidate EventKind = "validate"
	KindSubmit   EventKind = "submit"
	KindReset    EventKind = "reset"
)

// Event is one recorded observer callback.
type Event struct {
	Kind    EventKind
	Path    string
	Value   any
	Message string
	Values  goform.Values
	Errs    goform.Errors
}

// Recorder is an Observer that keeps every callback in memory, for
// asserting on engine activity in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) record(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *Recorder) OnWrite(path string, value any) {
	r.record(Event{Kind: KindWrite, Path: path, Value: value})
}

func (r *Recorder) OnValidate(path, message string) {
	r.record(Event{Kind: KindValidate, Path: path, Message: message})
}

func (r *Recorder) OnSubmit(values goform.Values, errs goform.Errors) {
	r.record(Event{Kind: KindSubmit, Values: values, Errs: errs})
}

func (r *Recorder) OnReset(values goform.Values) {
	r.record(Event{Kind: KindReset, Values: values})
}

// Events returns a snapshot of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Find returns the recorded events of one kind, in order.
func (r *Recorder) Find(kind EventKind) []Event {
	var out []Event
	for _, ev := range r.Events() {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// dumper prints maps with sorted keys so output is stable across runs.
var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

// Dump writes a human-readable rendering of v (typically goform.Values)
// to w.
func Dump(w io.Writer, v any) {
	dumper.Fdump(w, v)
}

// Diff returns an RFC 7386 merge patch that turns the before state into
// the after state, as JSON. Handy for logging what a submit or reset
// changed.
func Diff(before, after goform.Values) ([]byte, error) {
	b, err := json.Marshal(before)
	if err != nil {
		return nil, err
	}
	a, err := json.Marshal(after)
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(b, a)
}
