package goform

// Package goform provides:
//
// - A headless reactive form-state engine: per-field value/error/touched/dirty
//   cells addressed by a dot/bracket path notation ("a.b", "addresses.[0].street")
// - Ordered per-field validators (sync or blocking) with stale-result
//   suppression, plus a whole-form resolver whose errors take precedence
// - Submit and reset orchestration with selective state retention
//
// Design policy:
// - Keep only public APIs in the root package; put shared graph helpers under internal/.
// - Place the path codec under fieldpath/, the reactive primitive under cell/,
//   validator constructors under rule/, value codecs under codec/, HTTP glue
//   under middleware/, and the CLI under cmd/goform.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	f := goform.New(
//		goform.WithInitialValue(goform.Values{"username": ""}),
//		goform.WithMode(goform.ModeAll),
//	)
//	username := f.Register("username", goform.WithValidators(rule.Required(), rule.MinLength(3)))
//	username.OnInput(ctx, "ab")        // writes the value, runs validators
//	msg := username.Error.Get()        // reactive cells drive rendering
//
//	submit := f.HandleSubmit(onValid, onInvalid)
//	submit(ctx, ev)
//
//	f.Reset(nil, goform.KeepTouched())
