package goform

import (
	"github.com/reoring/goform/fieldpath"
	"github.com/reoring/goform/internal/graph"
)

// Reset restores the form to a target snapshot: a copy of the original
// initial value with the top-level keys present in values replaced (values
// overrides the original initial, never the current snapshot; nil restores
// the initial value exactly). Every registered record is rewritten from the
// target, and its dirty, touched and error state clears unless retained via
// KeepDirty, KeepTouched or KeepError. The dirty baseline becomes the
// target, so later writes compare against it and paths registered later
// seed from it.
func (f *Form) Reset(values Values, opts ...ResetOption) {
	var rc resetConfig
	for _, o := range opts {
		o(&rc)
	}

	type entry struct {
		fld *Field
		val any
	}

	f.mu.Lock()
	var target map[string]any
	if values == nil {
		target = graph.Clone(f.initial).(map[string]any)
	} else {
		target = graph.MergeTop(f.initial, map[string]any(values))
	}
	f.baseline = graph.Clone(target)
	f.snapshot = target
	entries := make([]entry, 0, len(f.fields))
	for _, fld := range f.fields {
		v, _ := fieldpath.Get(target, fld.path)
		entries = append(entries, entry{fld, v})
	}
	obsValues := f.valuesLocked()
	f.mu.Unlock()

	for _, e := range entries {
		e.fld.Value.Set(e.val)
		if !rc.keepDirty {
			e.fld.Dirty.Set(false)
		}
		if !rc.keepTouched {
			e.fld.Touched.Set(false)
		}
		if !rc.keepError {
			e.fld.overrideError("")
		}
	}
	f.obs.OnReset(obsValues)
}
