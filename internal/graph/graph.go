// Package graph holds the value-graph helpers shared by the form engine, the
// devtool observers and the CLI: structural copying, top-level merging and
// leaf enumeration over `map[string]any` / `[]any` trees.
package graph

import (
	"sort"

	"github.com/reoring/goform/fieldpath"
)

// Clone returns a structural copy of v: mapping and sequence containers are
// copied recursively, leaves are shared. A JSON round-trip would also clone,
// but it coerces scalar types (ints become float64), which would corrupt
// dirty comparison; Clone preserves leaves as-is.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Clone(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Clone(val)
		}
		return out
	default:
		return v
	}
}

// MergeTop returns a clone of base with the top-level keys present in
// override replaced by clones of override's values. Neither argument is
// modified. Replacement is per key: an override subtree replaces the base
// subtree wholesale.
func MergeTop(base, override map[string]any) map[string]any {
	out, _ := Clone(base).(map[string]any)
	if out == nil {
		out = make(map[string]any, len(override))
	}
	for k, v := range override {
		out[k] = Clone(v)
	}
	return out
}

// Leaves returns the dotted path of every leaf in v, sorted. Empty containers
// count as leaves of their own path; a non-container root yields one empty
// path.
func Leaves(v any) []string {
	var out []string
	walkLeaves(v, nil, &out)
	sort.Strings(out)
	return out
}

func walkLeaves(v any, p fieldpath.Path, out *[]string) {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 0 {
			*out = append(*out, p.String())
			return
		}
		for k, val := range t {
			walkLeaves(val, p.Field(k), out)
		}
	case []any:
		if len(t) == 0 {
			*out = append(*out, p.String())
			return
		}
		for i, val := range t {
			walkLeaves(val, p.At(i), out)
		}
	default:
		*out = append(*out, p.String())
	}
}
