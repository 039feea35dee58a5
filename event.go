package goform

// Target carries the payload of a host input event. A non-nil Checked wins
// over Value, matching checkbox-style inputs.
type Target struct {
	Value   any
	Checked *bool
}

// Event is the host event shape OnInput understands natively. Hosts bridging
// foreign event objects can instead pass a map with the same layout
// (map[string]any{"target": map[string]any{"value": ...}}) or the raw value.
type Event struct {
	Target *Target
}

// InputEvent builds an Event carrying target.value = v.
func InputEvent(v any) *Event {
	return &Event{Target: &Target{Value: v}}
}

// CheckEvent builds an Event carrying target.checked = b.
func CheckEvent(b bool) *Event {
	return &Event{Target: &Target{Checked: &b}}
}

// extractValue resolves the input-payload fallbacks: target.checked when
// present, else target.value, else the argument itself.
func extractValue(ev any) any {
	switch t := ev.(type) {
	case *Event:
		if t == nil {
			return nil
		}
		if t.Target != nil {
			if t.Target.Checked != nil {
				return *t.Target.Checked
			}
			return t.Target.Value
		}
		return ev
	case Event:
		if t.Target != nil {
			if t.Target.Checked != nil {
				return *t.Target.Checked
			}
			return t.Target.Value
		}
		return ev
	case map[string]any:
		if tgt, ok := t["target"].(map[string]any); ok {
			if c, ok := tgt["checked"].(bool); ok {
				return c
			}
			if v, ok := tgt["value"]; ok {
				return v
			}
		}
		return ev
	default:
		return ev
	}
}
