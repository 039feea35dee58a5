// Package codec converts between the wire values hosts write into a form's
// value graph (the strings text inputs produce, JSON scalars) and typed
// domain values. Bind gives a typed view over a Field; Rule turns a codec
// into a validator so undecodable input fails the chain instead of leaking
// into domain code.
package codec

import (
	"context"
	"fmt"

	goform "github.com/reoring/goform"
)

// Codec converts between a wire value W, as stored in the value graph, and a
// domain value D. Decode may fail (user input is arbitrary); Encode may not.
type Codec[W, D any] interface {
	Decode(wire W) (D, error)
	Encode(domain D) W
}

// Binding is a typed view over a Field through a Codec: Get decodes the wire
// value the graph holds, Set encodes a domain value and writes it through
// the form exactly as a host input event would.
type Binding[W, D any] struct {
	fld   *goform.Field
	codec Codec[W, D]
}

// Bind ties a registered field to a codec.
func Bind[W, D any](fld *goform.Field, c Codec[W, D]) Binding[W, D] {
	return Binding[W, D]{fld: fld, codec: c}
}

// Field returns the underlying record.
func (b Binding[W, D]) Field() *goform.Field { return b.fld }

// Get decodes the field's current value. It fails when the graph holds a
// value of a different type than W or the codec rejects it.
func (b Binding[W, D]) Get() (D, error) {
	var zero D
	raw := b.fld.Value.Get()
	w, ok := raw.(W)
	if !ok {
		return zero, fmt.Errorf("codec: field %s holds %T, not the wire type", b.fld.Name(), raw)
	}
	return b.codec.Decode(w)
}

// Set encodes d and writes the wire value through the form: snapshot, cells
// and dirty/touched flags update, and in ModeAll the chain runs.
func (b Binding[W, D]) Set(ctx context.Context, d D) {
	b.fld.OnInput(ctx, b.codec.Encode(d))
}

// Rule wires a codec into a validator chain: the field fails with msg when
// its value does not decode. A nil value passes, leaving presence checks to
// Required.
func Rule[W, D any](c Codec[W, D], msg string) goform.Validator {
	return func(_ context.Context, value any, _ goform.Values) (string, error) {
		if value == nil {
			return "", nil
		}
		w, ok := value.(W)
		if !ok {
			return msg, nil
		}
		if _, err := c.Decode(w); err != nil {
			return msg, nil
		}
		return "", nil
	}
}
