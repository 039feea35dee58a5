package goform

import (
	"context"
	"reflect"
	"sync"

	"github.com/reoring/goform/cell"
	"github.com/reoring/goform/fieldpath"
	"github.com/reoring/goform/internal/graph"
)

// Form owns one value graph and the registry of reactive field records over
// it. Construct with New; the zero value is not usable. All methods are safe
// for concurrent use.
type Form struct {
	mu       sync.Mutex
	snapshot any            // live value graph, root normally map[string]any
	initial  map[string]any // original initial graph, never mutated after New
	baseline any            // dirty-comparison baseline, replaced by Reset
	fields   map[string]*Field

	resolver Resolver
	mode     Mode
	obs      Observer
}

// New builds a Form. The initial value is cloned three ways: the immutable
// original (the Reset target base), the dirty baseline, and the live
// snapshot writes flow into.
func New(opts ...Option) *Form {
	cfg := config{mode: ModeOnSubmit, observer: BaseObserver{}}
	for _, o := range opts {
		o(&cfg)
	}
	init := graph.Clone(map[string]any(cfg.initial)).(map[string]any)
	return &Form{
		snapshot: graph.Clone(init),
		initial:  init,
		baseline: graph.Clone(init),
		fields:   make(map[string]*Field),
		resolver: cfg.resolver,
		mode:     cfg.mode,
		obs:      cfg.observer,
	}
}

// Mode returns the form's validation mode.
func (f *Form) Mode() Mode { return f.mode }

// Register returns the reactive record for path, creating it on first use
// with its value seeded from the current snapshot. Registration is
// idempotent: value, error, touched and dirty state survive re-registration.
// The validator chain does not accumulate; whatever the most recent call
// supplied (possibly nothing) is what is attached.
//
// Records are keyed by the exact path string. The same logical path spelled
// differently ("a[0]" vs "a.[0]") yields separate records.
func (f *Form) Register(path string, opts ...RegisterOption) *Field {
	return f.register(path, fieldpath.Parse(path), opts)
}

// RegisterPath registers a segment-form path, keyed by its canonical dotted
// rendering. The segments are used as given, so keys that do not survive a
// Parse round-trip still address the intended location.
func (f *Form) RegisterPath(p fieldpath.Path, opts ...RegisterOption) *Field {
	return f.register(p.String(), p, opts)
}

func (f *Form) register(key string, p fieldpath.Path, opts []RegisterOption) *Field {
	var rc registerConfig
	for _, o := range opts {
		o(&rc)
	}
	f.mu.Lock()
	fld := f.ensureLocked(key, p)
	fld.validators = rc.validators
	f.mu.Unlock()
	return fld
}

// ensureLocked returns the record for key, creating it seeded from the
// current snapshot. It never touches the validator chain; only Register
// does that. Caller holds f.mu.
func (f *Form) ensureLocked(key string, p fieldpath.Path) *Field {
	fld, ok := f.fields[key]
	if !ok {
		seed, _ := fieldpath.Get(f.snapshot, p)
		fld = &Field{
			form:    f,
			name:    key,
			path:    p,
			Value:   cell.New[any](seed),
			Error:   cell.New(""),
			Touched: cell.New(false),
			Dirty:   cell.New(false),
		}
		f.fields[key] = fld
	}
	return fld
}

// SetValue writes v at path, creating the record on first use (with no
// validators; attach those through Register). The dirty flag reflects whether
// v differs from the baseline value at that path (reflect.DeepEqual, so
// primitive leaves compare by value and container leaves deeply); touched is
// set. Writes never fail: missing intermediate containers are created as the
// path dictates. In ModeAll the field's validator chain runs asynchronously
// after the write.
func (f *Form) SetValue(ctx context.Context, path string, v any) {
	f.mu.Lock()
	fld := f.ensureLocked(path, fieldpath.Parse(path))
	f.mu.Unlock()
	f.setValue(ctx, fld, v)
}

func (f *Form) setValue(ctx context.Context, fld *Field, v any) {
	f.mu.Lock()
	f.snapshot = fieldpath.Set(f.snapshot, fld.path, v)
	base, _ := fieldpath.Get(f.baseline, fld.path)
	dirty := !reflect.DeepEqual(v, base)
	f.mu.Unlock()

	fld.Value.Set(v)
	fld.Dirty.Set(dirty)
	fld.Touched.Set(true)
	f.obs.OnWrite(fld.name, v)

	if f.mode == ModeAll {
		go f.validateField(ctx, fld)
	}
}

// SetValues writes every leaf of values into the form, creating records as
// needed, exactly as if each leaf had been written through SetValue. Empty
// containers count as leaves. Hosts use it to load a whole document, e.g. a
// decoded request body, into a form before submission.
func (f *Form) SetValues(ctx context.Context, values Values) {
	for _, p := range graph.Leaves(map[string]any(values)) {
		if p == "" {
			continue
		}
		if v, ok := values.At(p); ok {
			f.SetValue(ctx, p, v)
		}
	}
}

// Values returns a deep copy of the current value graph. In the degenerate
// case where a write replaced the root with a sequence (a path whose first
// segment is an index), the returned map is empty; read such roots through
// their registered fields.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valuesLocked()
}

func (f *Form) valuesLocked() Values {
	if m, ok := graph.Clone(f.snapshot).(map[string]any); ok {
		return Values(m)
	}
	return Values{}
}

// lookup returns the record for path, nil when unregistered.
func (f *Form) lookup(path string) *Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[path]
}

// allFields snapshots the registry.
func (f *Form) allFields() []*Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Field, 0, len(f.fields))
	for _, fld := range f.fields {
		out = append(out, fld)
	}
	return out
}
