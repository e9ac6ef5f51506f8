package hostnamer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Control-D-Inc/hostnamer/internal/dnsformat"
)

// DefaultHostname is the hostname composed from a state with no field set.
const DefaultHostname = "localhost"

const (
	labelSeparator    = "-"
	hostnameSeparator = "."
)

// FieldSpec describes the format rules of a single field.
type FieldSpec struct {
	Field Field
	// Matcher is the required pattern of a populated value, nil means any value.
	Matcher Matcher
	// Mandatory fields must not be blank.
	Mandatory bool
}

// FieldSpecs maps a field to its spec. Fields without a spec have no pattern
// and are optional.
type FieldSpecs map[Field]FieldSpec

// DefaultFieldSpecs returns the builtin specs: every field but domain is
// mandatory, and each field carries a lower case DNS friendly pattern.
func DefaultFieldSpecs() FieldSpecs {
	specs := make(FieldSpecs, len(fields))
	for _, f := range fields {
		specs[f] = FieldSpec{
			Field:     f,
			Matcher:   MustPatternMatcher(DefaultPatterns[f]),
			Mandatory: f != FieldDomain,
		}
	}
	return specs
}

// DefaultPatterns are the patterns used by DefaultFieldSpecs and the default config.
var DefaultPatterns = map[Field]string{
	FieldOrganization: `[a-z][a-z0-9]*`,
	FieldTier:         `[a-z][a-z0-9]*`,
	FieldRole:         `[a-z][a-z0-9]*`,
	FieldSequence:     `[0-9]+`,
	FieldProvider:     `[a-z][a-z0-9]*`,
	FieldRegion:       `[a-z]([a-z0-9-]*[a-z0-9])?`,
	FieldDomain:       `[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)*`,
}

// Event is a single field change notification.
type Event struct {
	Field Field
	Value string
}

// Labels returns the resource, location and domain labels of state.
// Empty field values are skipped so no stray separator is produced.
func Labels(state State) [3]string {
	return [3]string{
		joinNonEmpty(labelSeparator, state.Organization, state.Tier, state.Role, state.Sequence),
		joinNonEmpty(labelSeparator, state.Provider, state.Region),
		state.Domain,
	}
}

// Hostname composes the hostname of state, DefaultHostname if no label is set.
func Hostname(state State) string {
	labels := Labels(state)
	return composeHostname(labels[:])
}

func composeHostname(labels []string) string {
	if h := joinNonEmpty(hostnameSeparator, labels...); h != "" {
		return h
	}
	return DefaultHostname
}

// Evaluate runs a full validation pass over state and composes its hostname.
// It is a pure function: equal inputs always give equal results.
//
// Checks run in a fixed order and never short-circuit, so every violation
// is reported at once. Label and hostname lengths are counted in characters.
func Evaluate(state State, specs FieldSpecs) Result {
	var r Result

	for _, f := range fields {
		if specs[f].Mandatory && state.Get(f) == "" {
			r.Findings = append(r.Findings, Finding{Kind: IncompleteFields})
			break
		}
	}

	for _, f := range fields {
		value := state.Get(f)
		m := specs[f].Matcher
		if value == "" || m == nil {
			continue
		}
		if !m.Match(value) {
			r.Findings = append(r.Findings, Finding{Kind: PatternMismatch, Field: f, Pattern: m.String()})
		}
	}

	if sequenceIsZero(state.Sequence) {
		r.Findings = append(r.Findings, Finding{Kind: ZeroSequence})
	}

	labels := Labels(state)
	for _, l := range labels {
		if utf8.RuneCountInString(l) > dnsformat.MaxLabelLength {
			r.Findings = append(r.Findings, Finding{Kind: LabelTooLong})
			break
		}
	}

	r.Hostname = composeHostname(labels[:])
	if utf8.RuneCountInString(r.Hostname) > dnsformat.MaxNameLength {
		r.Findings = append(r.Findings, Finding{Kind: HostnameTooLong})
	}
	return r
}

// Apply stores ev in a copy of state and evaluates the new state.
// An event for an unknown field returns the state unchanged and ErrUnknownField.
func Apply(state State, ev Event, specs FieldSpecs) (State, Result, error) {
	if err := state.Set(ev.Field, ev.Value); err != nil {
		return state, Result{}, err
	}
	return state, Evaluate(state, specs), nil
}

func joinNonEmpty(sep string, values ...string) string {
	var b strings.Builder
	for _, v := range values {
		if v == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(v)
	}
	return b.String()
}

// sequenceIsZero reads the leading integer of s, after optional white space and
// sign, and reports whether it equals 0. A "0x" prefix selects hexadecimal digits.
// Values without leading digits are not numbers and never count as zero.
func sequenceIsZero(s string) bool {
	s = strings.TrimLeftFunc(s, isLeadingSpace)
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	isDigit := func(c byte) bool { return '0' <= c && c <= '9' }
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
		isDigit = func(c byte) bool {
			return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
		}
	}
	n := 0
	for n < len(s) && isDigit(s[n]) {
		if s[n] != '0' {
			return false
		}
		n++
	}
	return n > 0
}

// isLeadingSpace reports the white space skipped before a sequence number:
// Unicode white space and the byte order mark, but not NEL.
func isLeadingSpace(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}
