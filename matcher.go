package hostnamer

import (
	"fmt"
	"regexp"

	"github.com/Control-D-Inc/hostnamer/internal/dnsformat"
)

// Matcher decides whether a populated field value has the required format.
type Matcher interface {
	// Match reports whether value satisfies the matcher.
	Match(value string) bool
	// String returns the pattern shown in mismatch messages.
	String() string
}

var (
	_ Matcher = (*PatternMatcher)(nil)
	_ Matcher = MatcherFunc{}
	_ Matcher = allMatcher{}
)

// PatternMatcher matches the whole value against a regular expression,
// the same way an HTML input pattern attribute does.
type PatternMatcher struct {
	pattern string
	re      *regexp.Regexp
}

// NewPatternMatcher compiles pattern into a PatternMatcher.
// The pattern is implicitly anchored at both ends.
func NewPatternMatcher(pattern string) (*PatternMatcher, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return &PatternMatcher{pattern: pattern, re: re}, nil
}

// MustPatternMatcher is like NewPatternMatcher but panics if the pattern cannot be compiled.
// It is intended for package level defaults.
func MustPatternMatcher(pattern string) *PatternMatcher {
	m, err := NewPatternMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *PatternMatcher) Match(value string) bool {
	return m.re.MatchString(value)
}

func (m *PatternMatcher) String() string {
	return m.pattern
}

// MatcherFunc adapts a predicate into a Matcher. Name is used as the pattern in messages.
type MatcherFunc struct {
	Name string
	Fn   func(string) bool
}

func (m MatcherFunc) Match(value string) bool {
	return m.Fn(value)
}

func (m MatcherFunc) String() string {
	return m.Name
}

// FormatMatcher returns the Matcher of a builtin format, see dnsformat.Names.
func FormatMatcher(format string) (Matcher, error) {
	fn := dnsformat.Lookup(format)
	if fn == nil {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return MatcherFunc{Name: format, Fn: fn}, nil
}

// allMatcher matches when every matcher does.
type allMatcher []Matcher

func (a allMatcher) Match(value string) bool {
	for _, m := range a {
		if !m.Match(value) {
			return false
		}
	}
	return true
}

func (a allMatcher) String() string {
	if len(a) == 0 {
		return ""
	}
	s := a[0].String()
	for _, m := range a[1:] {
		s += fmt.Sprintf(" (%s)", m)
	}
	return s
}

// AllOf returns a Matcher satisfied only when all non-nil matchers are.
// It returns nil when no matcher is given.
func AllOf(matchers ...Matcher) Matcher {
	var all allMatcher
	for _, m := range matchers {
		if m != nil {
			all = append(all, m)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}
