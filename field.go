package goform

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/reoring/goform/cell"
	"github.com/reoring/goform/fieldpath"
)

// Field is the reactive state bundle for one registered path: the current
// value, the latest validation message ("" when clean), whether the field
// has been interacted with, and whether its value differs from the reset
// baseline. Hosts bind inputs to OnInput/OnChange and render from the cells.
type Field struct {
	form *Form
	name string
	path fieldpath.Path

	Value   *cell.Cell[any]
	Error   *cell.Cell[string]
	Touched *cell.Cell[bool]
	Dirty   *cell.Cell[bool]

	// seq orders validation runs for this record; only the newest issue may
	// publish its verdict. pubMu spans the staleness check and the Error
	// write so a superseded run can never land after its successor.
	seq   atomic.Uint64
	pubMu sync.Mutex

	validators []Validator // guarded by form.mu, replaced wholesale on re-register
}

// Name returns the raw path string the field was registered under.
func (f *Field) Name() string { return f.name }

// OnInput extracts the raw value from ev (target.checked when present, else
// target.value, else ev itself) and writes it through the form: the value
// cell, the shared snapshot, and the dirty/touched flags all update, and in
// ModeAll the field's validator chain runs.
func (f *Field) OnInput(ctx context.Context, ev any) {
	f.form.setValue(ctx, f, extractValue(ev))
}

// OnChange marks the field touched. It does not extract or write a value;
// bind it to blur/change-style host events.
func (f *Field) OnChange(_ ...any) {
	f.Touched.Set(true)
}

// publish writes msg to the Error cell unless a newer validation run was
// issued meanwhile. It reports whether the write happened.
func (f *Field) publish(seq uint64, msg string) bool {
	f.pubMu.Lock()
	defer f.pubMu.Unlock()
	if f.seq.Load() != seq {
		return false
	}
	f.Error.Set(msg)
	return true
}

// overrideError force-writes the Error cell and invalidates in-flight
// validation runs. Resolver verdicts and resets go through here so they are
// the final word.
func (f *Field) overrideError(msg string) {
	f.pubMu.Lock()
	defer f.pubMu.Unlock()
	f.seq.Add(1)
	f.Error.Set(msg)
}
