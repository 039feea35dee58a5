package goform

import "context"

// SubmitEvent is the capability probed on the event handed to a submit
// handler. Host events exposing it get their default action suppressed
// before validation starts; anything else (including nil) is ignored.
type SubmitEvent interface {
	PreventDefault()
}

// HandleSubmit returns the submission entry point bound to the callbacks.
// Invoking it validates every registered field plus the resolver regardless
// of mode, bundles the non-empty verdicts and all resolver error entries
// into an Errors map, and calls exactly one callback: onValid with the final
// snapshot (the resolver's values, when it returns some) if the bundle is
// empty, otherwise onInvalid with the bundle. A nil onInvalid drops the
// bundle silently; the verdicts remain readable on each field's Error cell.
// Infrastructure failures surface as ValidationFailed entries, never as
// panics, so exactly one callback always fires.
func (f *Form) HandleSubmit(onValid func(context.Context, Values), onInvalid func(context.Context, Errors)) func(ctx context.Context, ev any) {
	return func(ctx context.Context, ev any) {
		if p, ok := ev.(SubmitEvent); ok {
			p.PreventDefault()
		}

		errs := f.validateFields(ctx, f.allFields())
		final := f.Values()

		if f.resolver != nil {
			rvals, rerrs, err := runResolver(ctx, f.resolver, final)
			if err != nil {
				errs[""] = ValidationFailed
			} else {
				if rvals != nil {
					final = rvals
				}
				// Resolver verdicts are the final word for their paths,
				// written after the field-level results.
				for path, msg := range rerrs {
					errs[path] = msg
					if fld := f.lookup(path); fld != nil {
						fld.overrideError(msg)
					}
				}
			}
		}

		f.obs.OnSubmit(final, errs)
		if len(errs) == 0 {
			if onValid != nil {
				onValid(ctx, final)
			}
			return
		}
		if onInvalid != nil {
			onInvalid(ctx, errs)
		}
	}
}
