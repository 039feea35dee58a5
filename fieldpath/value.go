package fieldpath

// Get walks root one segment at a time: key segments index mapping nodes,
// index segments index sequence nodes. It returns (nil, false) as soon as an
// intermediate is absent, of the wrong kind, or out of range; a present leaf
// that is nil yields (nil, true). Get never panics.
func Get(root any, p Path) (any, bool) {
	cur := root
	for _, seg := range p {
		switch seg.Kind {
		case KindKey:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			if cur, ok = m[seg.Key]; !ok {
				return nil, false
			}
		case KindIndex:
			s, ok := cur.([]any)
			if !ok || seg.Index < 0 || seg.Index >= len(s) {
				return nil, false
			}
			cur = s[seg.Index]
		}
	}
	return cur, true
}

// Set writes v at p and returns the resulting root, which callers must keep:
// extending a sequence or replacing a wrong-kinded node allocates a new
// container, and an empty path replaces the root with v outright. Containers
// are mutated in place where possible. Missing intermediates are created on
// demand, an index segment producing a `[]any` (padded with nils up to the
// needed position) and a key segment a `map[string]any`. The final segment
// assigns the leaf, overwriting whatever was there. Set never fails; the only
// unwritable address is a negative index, which leaves the graph untouched.
func Set(root any, p Path, v any) any {
	if len(p) == 0 {
		return v
	}
	return setSegment(root, p, v)
}

func setSegment(node any, p Path, v any) any {
	seg, rest := p[0], p[1:]
	switch seg.Kind {
	case KindKey:
		m, ok := node.(map[string]any)
		if !ok {
			m = make(map[string]any)
		}
		if len(rest) == 0 {
			m[seg.Key] = v
		} else {
			m[seg.Key] = setSegment(m[seg.Key], rest, v)
		}
		return m
	case KindIndex:
		if seg.Index < 0 {
			return node
		}
		s, _ := node.([]any)
		for len(s) <= seg.Index {
			s = append(s, nil)
		}
		if len(rest) == 0 {
			s[seg.Index] = v
		} else {
			s[seg.Index] = setSegment(s[seg.Index], rest, v)
		}
		return s
	}
	return node
}
