package goform

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/goform/fieldpath"
	"github.com/reoring/goform/internal/graph"
)

// Values is a snapshot of a form's value graph: mapping nodes are
// map[string]any, sequence nodes []any, everything else a leaf. Snapshots
// handed out by the engine are structural copies whose containers are safe
// to mutate; leaf values are shared and should be treated as read-only.
type Values map[string]any

// ValuesFromJSON decodes a JSON object into Values. Numbers decode as
// float64, JSON's number type.
func ValuesFromJSON(data []byte) (Values, error) {
	var v Values
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ValuesOf converts a struct (or map) into Values through a JSON round-trip,
// honoring json tags. Numeric leaves come back as float64; seed forms and
// later writes consistently through ValuesOf so dirty comparison sees
// matching types.
func ValuesOf(v any) (Values, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return ValuesFromJSON(data)
}

// JSON renders the snapshot as a JSON object.
func (v Values) JSON() ([]byte, error) {
	return json.Marshal(map[string]any(v))
}

// At reads the value at a dotted path, reporting false when any intermediate
// is absent.
func (v Values) At(path string) (any, bool) {
	return fieldpath.Get(map[string]any(v), fieldpath.Parse(path))
}

// Clone returns a structural copy (containers copied, leaves shared).
func (v Values) Clone() Values {
	out, _ := graph.Clone(map[string]any(v)).(map[string]any)
	return Values(out)
}
