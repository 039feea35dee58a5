package codec

import "strconv"

// Int converts between the strings text inputs produce and int.
func Int() Codec[string, int] { return intCodec{} }

type intCodec struct{}

func (intCodec) Decode(w string) (int, error) { return strconv.Atoi(w) }
func (intCodec) Encode(d int) string          { return strconv.Itoa(d) }

// Float converts between strings and float64.
func Float() Codec[string, float64] { return floatCodec{} }

type floatCodec struct{}

func (floatCodec) Decode(w string) (float64, error) { return strconv.ParseFloat(w, 64) }
func (floatCodec) Encode(d float64) string          { return strconv.FormatFloat(d, 'f', -1, 64) }
