package hostnamer

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Control-D-Inc/hostnamer/internal/resultcache"
)

// Validator owns a naming State and validates it on every change.
//
// A Validator is the sole mutator of its state. It is not safe for concurrent
// use: field changes must be delivered one at a time.
type Validator struct {
	specs  FieldSpecs
	state  State
	last   Result
	cache  resultcache.Cacher[State, Result]
	logger *zerolog.Logger
}

// Option configures a Validator.
type Option func(*Validator) error

// WithLogger sets the logger of the validator, ValidatorLogger is used otherwise.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Validator) error {
		v.logger = &l
		return nil
	}
}

// WithCache memoizes up to size validation results, keyed by state.
func WithCache(size int) Option {
	return func(v *Validator) error {
		c, err := resultcache.NewLRUCache[State, Result](size)
		if err != nil {
			return fmt.Errorf("could not create result cache: %w", err)
		}
		v.cache = c
		return nil
	}
}

// NewValidator returns a Validator with every field unset.
// A nil specs uses DefaultFieldSpecs.
func NewValidator(specs FieldSpecs, opts ...Option) (*Validator, error) {
	if specs == nil {
		specs = DefaultFieldSpecs()
	}
	v := &Validator{specs: make(FieldSpecs, len(specs))}
	for f, spec := range specs {
		v.specs[f] = spec
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	v.last = v.evaluate()
	return v, nil
}

// OnFieldChanged sets field to value and returns the full validation result
// of the new state. An unknown field leaves the state untouched and returns
// ErrUnknownField.
func (v *Validator) OnFieldChanged(field Field, value string) (Result, error) {
	if err := v.state.Set(field, value); err != nil {
		v.log().Debug().Str("field", string(field)).Msg("ignoring change of unknown field")
		return Result{}, err
	}
	v.last = v.evaluate()
	v.log().Debug().
		Str("field", string(field)).
		Str("hostname", v.last.Hostname).
		Int("findings", len(v.last.Findings)).
		Msg("naming state changed")
	return v.last.clone(), nil
}

// Result returns the validation result of the current state.
func (v *Validator) Result() Result {
	return v.last.clone()
}

// State returns a copy of the current state.
func (v *Validator) State() State {
	return v.state
}

// Specs returns the field specs the validator was created with.
func (v *Validator) Specs() FieldSpecs {
	out := make(FieldSpecs, len(v.specs))
	for f, spec := range v.specs {
		out[f] = spec
	}
	return out
}

func (v *Validator) evaluate() Result {
	if v.cache == nil {
		return Evaluate(v.state, v.specs)
	}
	if r, ok := v.cache.Get(v.state); ok {
		v.log().Debug().Msg("validation result served from cache")
		return r.clone()
	}
	r := Evaluate(v.state, v.specs)
	v.cache.Add(v.state, r.clone())
	return r
}

func (v *Validator) log() *zerolog.Logger {
	if v.logger != nil {
		return v.logger
	}
	return ValidatorLogger.Load()
}
