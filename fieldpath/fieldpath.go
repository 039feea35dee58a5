// Package fieldpath implements the path notation used to address fields in a
// nested form value graph, and a get/set accessor over `map[string]any` /
// `[]any` graphs keyed by such paths.
//
// A path is an ordered list of segments; a segment is either a mapping key or
// a sequence index. The canonical string form joins segments with "." and
// renders index segments as "[N]", e.g. "addresses.[0].street". On decode the
// dot before a bracket is optional: "a[0]" and "a.[0]" parse identically.
package fieldpath

import (
	"regexp"
	"strconv"
	"strings"
)

// SegmentKind discriminates mapping-key segments from sequence-index segments.
type SegmentKind uint8

const (
	KindKey SegmentKind = iota
	KindIndex
)

// Segment addresses one hop into a value graph: a mapping key or a sequence
// index, depending on Kind.
type Segment struct {
	Kind  SegmentKind
	Key   string // mapping key when Kind == KindKey
	Index int    // sequence position when Kind == KindIndex
}

// Key builds a mapping-key segment.
func Key(name string) Segment { return Segment{Kind: KindKey, Key: name} }

// Index builds a sequence-index segment.
func Index(i int) Segment { return Segment{Kind: KindIndex, Index: i} }

// Path is an ordered sequence of segments addressing a location in a value
// graph. The zero value addresses the root.
type Path []Segment

// Field returns a new Path with a mapping-key segment appended. The receiver
// is not modified.
func (p Path) Field(name string) Path {
	return append(append(Path{}, p...), Key(name))
}

// At returns a new Path with a sequence-index segment appended. The receiver
// is not modified.
func (p Path) At(i int) Path {
	return append(append(Path{}, p...), Index(i))
}

// Equal reports whether p and q consist of the same segments in the same
// order.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// String renders the canonical dotted form: key segments joined with ".",
// index segments as ".[N]" ("[N]" when first). Keys containing "." or
// brackets do not survive a Parse round-trip.
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		if seg.Kind == KindIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
		} else {
			b.WriteString(seg.Key)
		}
	}
	return b.String()
}

// chunkToken matches either a bracketed integer or a run of non-bracket
// characters. Alternation order matters: at a '[' the index form is tried
// first, so "[3]" becomes an index segment while "[x]" falls through to
// plain-character matches.
var chunkToken = regexp.MustCompile(`\[(\d+)\]|([^[\]]+)`)

// Parse decodes a path string into segments. The input is split on ".";
// each chunk is scanned for bracketed-integer and plain-run tokens in order,
// so "a[0]" yields the segments "a", [0] even without the canonical dot.
// Empty chunks contribute nothing. Parse never fails; malformed input simply
// yields the segments its recognizable tokens produce.
func Parse(s string) Path {
	var p Path
	for _, chunk := range strings.Split(s, ".") {
		if chunk == "" {
			continue
		}
		for _, m := range chunkToken.FindAllStringSubmatch(chunk, -1) {
			if m[1] != "" {
				if n, err := strconv.Atoi(m[1]); err == nil {
					p = append(p, Index(n))
					continue
				}
			}
			if m[2] != "" {
				p = append(p, Key(m[2]))
			}
		}
	}
	return p
}
