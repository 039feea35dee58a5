package codec

// Identity returns a Codec[T,T] that passes values through unchanged, for
// APIs taking a Codec over fields that need no conversion.
func Identity[T any]() Codec[T, T] { return identityCodec[T]{} }

type identityCodec[T any] struct{}

func (identityCodec[T]) Decode(w T) (T, error) { return w, nil }
func (identityCodec[T]) Encode(d T) T          { return d }
