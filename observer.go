package goform

// Observer receives engine activity: value writes, validation verdicts,
// submissions and resets. Callbacks run synchronously on the goroutine
// performing the operation; implementations should be fast or hand off.
type Observer interface {
	OnWrite(path string, value any)
	OnValidate(path, message string)
	OnSubmit(values Values, errs Errors)
	OnReset(values Values)
}

// BaseObserver is a no-op Observer for embedding, so implementations only
// override the callbacks they care about.
type BaseObserver struct{}

func (BaseObserver) OnWrite(string, any)       {}
func (BaseObserver) OnValidate(string, string) {}
func (BaseObserver) OnSubmit(Values, Errors)   {}
func (BaseObserver) OnReset(Values)            {}
