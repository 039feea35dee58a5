package codec

import "time"

// TimeRFC3339 converts between RFC3339 strings and time.Time. Decode accepts
// RFC3339Nano first, then plain RFC3339; Encode normalizes to UTC and
// formats with RFC3339Nano (Go trims trailing zeros).
func TimeRFC3339() Codec[string, time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(w string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, w)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, w); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func (rfc3339Codec) Encode(d time.Time) string {
	return d.UTC().Format(time.RFC3339Nano)
}
