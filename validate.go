package goform

import (
	"context"
	"fmt"
	"sync"
)

// Validator checks a single field value against a whole-form snapshot. The
// returned message is the verdict: "" passes, anything else becomes the
// field's error. A non-nil error marks an infrastructure failure (the check
// itself broke, e.g. a network-backed lookup); the pipeline reports those as
// the generic ValidationFailed message. Validators may block: every run gets
// its own goroutine, and a run that finishes after a newer one was issued
// for the same field is discarded.
type Validator func(ctx context.Context, value any, values Values) (string, error)

// Resolver performs whole-form validation during submission. Its errors take
// precedence over per-field results; a non-nil values return replaces the
// snapshot handed to the success callback. A non-nil error fails submission
// with a root-path ValidationFailed entry.
type Resolver func(ctx context.Context, values Values) (Values, Errors, error)

// Validate runs the validator chains for the named fields, or for every
// registered field when none are named, and waits for completion. It returns
// the non-empty verdicts keyed by path. Names that were never registered are
// ignored.
func (f *Form) Validate(ctx context.Context, paths ...string) Errors {
	var flds []*Field
	if len(paths) == 0 {
		flds = f.allFields()
	} else {
		for _, p := range paths {
			if fld := f.lookup(p); fld != nil {
				flds = append(flds, fld)
			}
		}
	}
	return f.validateFields(ctx, flds)
}

// validateFields fans the chains out, one goroutine per field, and collects
// the published non-empty verdicts. Superseded runs contribute nothing; the
// newer run that superseded them reports instead.
func (f *Form) validateFields(ctx context.Context, flds []*Field) Errors {
	errs := Errors{}
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, fld := range flds {
		fld := fld
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg, published := f.validateField(ctx, fld)
			if published && msg != "" {
				mu.Lock()
				errs[fld.name] = msg
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errs
}

// validateField runs fld's chain against the current snapshot and publishes
// the verdict unless a newer run was issued meanwhile. It reports the
// verdict and whether it was published.
func (f *Form) validateField(ctx context.Context, fld *Field) (string, bool) {
	seq := fld.seq.Add(1)

	f.mu.Lock()
	validators := fld.validators
	values := f.valuesLocked()
	f.mu.Unlock()

	msg := runChain(ctx, validators, fld.Value.Get(), values)
	if !fld.publish(seq, msg) {
		return msg, false
	}
	f.obs.OnValidate(fld.name, msg)
	return msg, true
}

// runChain evaluates validators in order, short-circuiting on the first
// non-empty message. An empty chain passes. Panics and non-nil errors become
// ValidationFailed.
func runChain(ctx context.Context, validators []Validator, value any, values Values) string {
	for _, v := range validators {
		if v == nil {
			continue
		}
		msg, err := runValidator(ctx, v, value, values)
		if err != nil {
			return ValidationFailed
		}
		if msg != "" {
			return msg
		}
	}
	return ""
}

func runValidator(ctx context.Context, v Validator, value any, values Values) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validator panicked: %v", r)
		}
	}()
	return v(ctx, value, values)
}

func runResolver(ctx context.Context, r Resolver, values Values) (vals Values, errs Errors, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("resolver panicked: %v", rec)
		}
	}()
	return r(ctx, values)
}
