// Package rule provides ready-made validators and combinators for goform
// fields. Constructors resolve their messages through the i18n package at
// validation time, so language switches apply to later runs; the code of
// each message is stable (goform.Code*).
package rule

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"unicode/utf8"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/i18n"
)

// Required fails for nil, empty strings, false and empty containers. A false
// boolean fails so that required checkboxes must be checked.
func Required() goform.Validator {
	return func(_ context.Context, value any, _ goform.Values) (string, error) {
		if isEmpty(value) {
			return i18n.T(goform.CodeRequired, nil), nil
		}
		return "", nil
	}
}

// MinLength fails when the value's length is below n. Strings count runes;
// slices, arrays and maps count elements. Values without a length pass.
func MinLength(n int) goform.Validator {
	return func(_ context.Context, value any, _ goform.Values) (string, error) {
		if l, ok := lengthOf(value); ok && l < n {
			return i18n.T(goform.CodeTooShort, map[string]string{"min": strconv.Itoa(n)}), nil
		}
		return "", nil
	}
}

// MaxLength fails when the value's length exceeds n.
func MaxLength(n int) goform.Validator {
	return func(_ context.Context, value any, _ goform.Values) (string, error) {
		if l, ok := lengthOf(value); ok && l > n {
			return i18n.T(goform.CodeTooLong, map[string]string{"max": strconv.Itoa(n)}), nil
		}
		return "", nil
	}
}

// Min fails when a numeric value is below min. Non-numeric values pass.
func Min(min float64) goform.Validator {
	return func(_ context.Context, value any, _ goform.Values) (string, error) {
		if n, ok := numberOf(value); ok && n < min {
			return i18n.T(goform.CodeTooSmall, map[string]string{"min": formatNumber(min)}), nil
		}
		return "", nil
	}
}

// Max fails when a numeric value exceeds max. Non-numeric values pass.
func Max(max float64) goform.Validator {
	return func(_ context.Context, value any, _ goform.Values) (string, error) {
		if n, ok := numberOf(value); ok && n > max {
			return i18n.T(goform.CodeTooBig, map[string]string{"max": formatNumber(max)}), nil
		}
		return "", nil
	}
}

// Match fails when a string value does not match re. Non-string values pass.
func Match(re *regexp.Regexp) goform.Validator {
	return func(_ context.Context, value any, _ goform.Values) (string, error) {
		if s, ok := value.(string); ok && !re.MatchString(s) {
			return i18n.T(goform.CodePattern, map[string]string{"pattern": re.String()}), nil
		}
		return "", nil
	}
}

// OneOf fails when the value deep-equals none of the allowed values.
func OneOf(allowed ...any) goform.Validator {
	return func(_ context.Context, value any, _ goform.Values) (string, error) {
		for _, a := range allowed {
			if reflect.DeepEqual(value, a) {
				return "", nil
			}
		}
		return i18n.T(goform.CodeInvalidEnum, map[string]string{"got": fmt.Sprint(value)}), nil
	}
}

// All runs validators in order and reports the first non-empty message, the
// same short-circuit a registered chain performs. It exists for nesting
// under Any and When.
func All(vs ...goform.Validator) goform.Validator {
	return func(ctx context.Context, value any, values goform.Values) (string, error) {
		for _, v := range vs {
			if v == nil {
				continue
			}
			msg, err := v(ctx, value, values)
			if err != nil || msg != "" {
				return msg, err
			}
		}
		return "", nil
	}
}

// Any passes when at least one validator passes. When no branch passes, an
// infrastructure error from any branch takes precedence over the failure
// messages: the errored branch might have passed, so no verdict is safe.
func Any(vs ...goform.Validator) goform.Validator {
	return func(ctx context.Context, value any, values goform.Values) (string, error) {
		var firstMsg string
		var firstErr error
		for _, v := range vs {
			if v == nil {
				continue
			}
			msg, err := v(ctx, value, values)
			if err == nil && msg == "" {
				return "", nil
			}
			if firstMsg == "" && msg != "" {
				firstMsg = msg
			}
			if firstErr == nil && err != nil {
				firstErr = err
			}
		}
		if firstErr != nil {
			return "", firstErr
		}
		return firstMsg, nil
	}
}

// When gates validators behind a predicate over the value and the whole-form
// snapshot; when the predicate is false the field passes.
func When(pred func(value any, values goform.Values) bool, vs ...goform.Validator) goform.Validator {
	chain := All(vs...)
	return func(ctx context.Context, value any, values goform.Values) (string, error) {
		if pred == nil || !pred(value, values) {
			return "", nil
		}
		return chain(ctx, value, values)
	}
}

func isEmpty(value any) bool {
	switch t := value.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

func lengthOf(value any) (int, bool) {
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

func numberOf(value any) (float64, bool) {
	switch t := value.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
