package goform

// Mode governs when per-field validation runs.
type Mode int

const (
	// ModeOnSubmit defers all validation until submission.
	ModeOnSubmit Mode = iota
	// ModeAll validates a field after every value change.
	ModeAll
)

func (m Mode) String() string {
	if m == ModeAll {
		return "all"
	}
	return "onSubmit"
}

type config struct {
	initial  Values
	resolver Resolver
	mode     Mode
	observer Observer
}

// Option configures a Form at construction.
type Option func(*config)

// WithInitialValue seeds the form's value graph. The map is cloned by New;
// mutating v afterwards does not affect the form.
func WithInitialValue(v Values) Option {
	return func(c *config) { c.initial = v }
}

// WithResolver installs whole-form validation run at submission. Resolver
// errors take precedence over per-field validator results.
func WithResolver(r Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithMode selects the validation mode. The default is ModeOnSubmit.
func WithMode(m Mode) Option {
	return func(c *config) { c.mode = m }
}

// WithObserver attaches an engine-activity observer. The devtool package
// provides ready-made implementations.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observer = o
		}
	}
}

type registerConfig struct {
	validators []Validator
}

// RegisterOption configures one Register call.
type RegisterOption func(*registerConfig)

// WithValidators attaches the ordered validator chain for the field. The
// chain runs in order and the first non-empty message wins. The most recent
// registration's chain is the one attached: registering again without
// WithValidators detaches any previous chain.
func WithValidators(vs ...Validator) RegisterOption {
	return func(c *registerConfig) { c.validators = vs }
}

type resetConfig struct {
	keepDirty   bool
	keepTouched bool
	keepError   bool
}

// ResetOption tunes which per-field state survives a Reset.
type ResetOption func(*resetConfig)

// KeepDirty leaves every field's dirty flag unchanged through the reset.
func KeepDirty() ResetOption {
	return func(c *resetConfig) { c.keepDirty = true }
}

// KeepTouched leaves every field's touched flag unchanged through the reset.
func KeepTouched() ResetOption {
	return func(c *resetConfig) { c.keepTouched = true }
}

// KeepError leaves every field's error cell unchanged through the reset.
func KeepError() ResetOption {
	return func(c *resetConfig) { c.keepError = true }
}
