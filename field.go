package hostnamer

import (
	"errors"
	"fmt"
)

// Field is the name of a naming field.
type Field string

const (
	FieldOrganization Field = "organization"
	FieldTier         Field = "tier"
	FieldRole         Field = "role"
	FieldSequence     Field = "sequence"
	FieldProvider     Field = "provider"
	FieldRegion       Field = "region"
	FieldDomain       Field = "domain"
)

// ErrUnknownField is returned when a field name is not one of the recognized fields.
var ErrUnknownField = errors.New("unknown naming field")

var fields = [...]Field{
	FieldOrganization,
	FieldTier,
	FieldRole,
	FieldSequence,
	FieldProvider,
	FieldRegion,
	FieldDomain,
}

// Fields returns all recognized fields in canonical order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields[:])
	return out
}

// ParseField returns the Field named s.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

// Valid reports whether f is a recognized field.
func (f Field) Valid() bool {
	return f.index() >= 0
}

func (f Field) index() int {
	for i, known := range fields {
		if f == known {
			return i
		}
	}
	return -1
}

func (f Field) String() string {
	return string(f)
}

// State holds the value of every naming field. The empty string means unset.
type State struct {
	Organization string `mapstructure:"organization" toml:"organization" json:"organization"`
	Tier         string `mapstructure:"tier" toml:"tier" json:"tier"`
	Role         string `mapstructure:"role" toml:"role" json:"role"`
	Sequence     string `mapstructure:"sequence" toml:"sequence" json:"sequence"`
	Provider     string `mapstructure:"provider" toml:"provider" json:"provider"`
	Region       string `mapstructure:"region" toml:"region" json:"region"`
	Domain       string `mapstructure:"domain" toml:"domain,omitempty" json:"domain"`
}

// Get returns the value of field f, or "" if f is unknown.
func (s State) Get(f Field) string {
	if p := s.ptr(f); p != nil {
		return *p
	}
	return ""
}

// Set stores value for field f. Unknown fields are rejected and s is left untouched.
func (s *State) Set(f Field, value string) error {
	p := s.ptr(f)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	*p = value
	return nil
}

// Empty reports whether no field is set.
func (s State) Empty() bool {
	return s == State{}
}

// Map returns the state as a field name to value map with all seven keys present.
func (s State) Map() map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[string(f)] = s.Get(f)
	}
	return m
}

func (s *State) ptr(f Field) *string {
	switch f {
	case FieldOrganization:
		return &s.Organization
	case FieldTier:
		return &s.Tier
	case FieldRole:
		return &s.Role
	case FieldSequence:
		return &s.Sequence
	case FieldProvider:
		return &s.Provider
	case FieldRegion:
		return &s.Region
	case FieldDomain:
		return &s.Domain
	}
	return nil
}
