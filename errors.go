package goform

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Message codes (exported consts for IDE completion and type safety by
// convention). The rule package attaches these; i18n resolves them to text.
const (
	CodeRequired    = "required"
	CodeTooShort    = "too_short"
	CodeTooLong     = "too_long"
	CodeTooSmall    = "too_small"
	CodeTooBig      = "too_big"
	CodePattern     = "pattern"
	CodeInvalidEnum = "invalid_enum"
	// Infrastructure failure inside a validator or resolver.
	CodeValidationFailed = "validation_failed"
)

// ValidationFailed is the message published for a field whose validator (or
// the form's resolver) panicked or returned a non-nil error instead of a
// validation verdict.
const ValidationFailed = "validation failed"

// Errors maps field paths (dotted notation) to validation messages. It is
// the payload handed to HandleSubmit's error callback and implements error.
// A resolver infrastructure failure is recorded under the root path "".
type Errors map[string]string

// Error summarizes the first few entries in path order.
func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	paths := make([]string, 0, len(e))
	for p := range e {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	const maxShown = 3
	lim := len(paths)
	if lim > maxShown {
		lim = maxShown
	}
	b := &strings.Builder{}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. too_short at items.[2].sku
		fmt.Fprintf(b, "%s at %s", e[paths[i]], paths[i])
	}
	if len(paths) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(paths))
	}
	return b.String()
}

// AsErrors extracts Errors from an error using errors.As internally.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var e Errors
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
