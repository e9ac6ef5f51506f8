package hostnamer

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/Control-D-Inc/hostnamer/internal/dnsformat"
)

// FindingKind classifies a validation finding.
type FindingKind int

const (
	// IncompleteFields reports that one or more mandatory fields are unset.
	IncompleteFields FindingKind = iota + 1
	// PatternMismatch reports a populated field failing its pattern.
	PatternMismatch
	// ZeroSequence reports a sequence field evaluating to zero.
	ZeroSequence
	// LabelTooLong reports a composed label longer than 63 characters.
	LabelTooLong
	// HostnameTooLong reports a composed hostname longer than 253 characters.
	HostnameTooLong
)

var findingKindNames = map[FindingKind]string{
	IncompleteFields: "IncompleteFields",
	PatternMismatch:  "PatternMismatch",
	ZeroSequence:     "ZeroSequence",
	LabelTooLong:     "LabelTooLong",
	HostnameTooLong:  "HostnameTooLong",
}

func (k FindingKind) String() string {
	if s, ok := findingKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("FindingKind(%d)", int(k))
}

// Finding is a single validation finding. It is not a fault: it only describes
// why the current state does not compose a final hostname.
type Finding struct {
	Kind FindingKind
	// Field and Pattern are set for PatternMismatch only.
	Field   Field
	Pattern string
}

// Error returns the human readable message of the finding.
func (f Finding) Error() string {
	switch f.Kind {
	case IncompleteFields:
		return "some required fields are blank"
	case PatternMismatch:
		return fmt.Sprintf("%s does not match pattern %s", f.Field, f.Pattern)
	case ZeroSequence:
		return "sequence values cannot be 0"
	case LabelTooLong:
		return fmt.Sprintf("label exceeds %d characters", dnsformat.MaxLabelLength)
	case HostnameTooLong:
		return fmt.Sprintf("hostname exceeds %d characters", dnsformat.MaxNameLength)
	}
	return f.Kind.String()
}

// Result is the outcome of a validation pass.
type Result struct {
	// Findings in emission order.
	Findings []Finding
	// Hostname is the composed hostname, "localhost" when no field is set.
	Hostname string
}

// Errors returns the error list: one message per finding, in emission order.
func (r Result) Errors() []string {
	msgs := make([]string, len(r.Findings))
	for i, f := range r.Findings {
		msgs[i] = f.Error()
	}
	return msgs
}

// Valid reports whether the error list is empty.
func (r Result) Valid() bool {
	return len(r.Findings) == 0
}

// Final returns the hostname and true when it may be offered as final.
// While findings remain the hostname is only provisional.
func (r Result) Final() (string, bool) {
	if !r.Valid() {
		return "", false
	}
	return r.Hostname, true
}

// Has reports whether the result contains a finding of kind k.
func (r Result) Has(k FindingKind) bool {
	for _, f := range r.Findings {
		if f.Kind == k {
			return true
		}
	}
	return false
}

// Err aggregates all findings into a single error, nil when the result is valid.
func (r Result) Err() error {
	var merr *multierror.Error
	for _, f := range r.Findings {
		merr = multierror.Append(merr, f)
	}
	return merr.ErrorOrNil()
}

func (r Result) clone() Result {
	out := Result{Hostname: r.Hostname}
	if r.Findings != nil {
		out.Findings = make([]Finding, len(r.Findings))
		copy(out.Findings, r.Findings)
	}
	return out
}
