package dnsformat

import (
	"strings"

	"github.com/miekg/dns"
	"k8s.io/apimachinery/pkg/util/validation"
)

const (
	// MaxLabelLength is the maximum number of octets in a single DNS label (RFC 1035 2.3.4).
	MaxLabelLength = 63
	// MaxNameLength is the maximum number of octets in a hostname, without the trailing dot.
	MaxNameLength = 253
)

// Builtin format names.
const (
	DNSLabel     = "dns-label"
	DNS1035Label = "dns1035-label"
	DomainName   = "domain-name"
)

// https://datatracker.ietf.org/doc/html/rfc1123#section-2
// https://datatracker.ietf.org/doc/html/rfc1035#section-2.3.1
var formats = map[string]func(string) bool{
	DNSLabel: func(s string) bool {
		return len(validation.IsDNS1123Label(s)) == 0
	},
	DNS1035Label: func(s string) bool {
		return len(validation.IsDNS1035Label(s)) == 0
	},
	DomainName: isDomainName,
}

// Lookup returns the predicate of the given format name.
// The name is treated as case-insensitive. If the name is not a builtin format,
// nil is returned.
func Lookup(name string) func(string) bool {
	return formats[strings.ToLower(name)]
}

// Names returns all builtin format names.
func Names() []string {
	return []string{DNSLabel, DNS1035Label, DomainName}
}

// isDomainName reports whether s is a relative or fully qualified domain name
// whose labels fit in MaxLabelLength octets and the whole name in MaxNameLength.
func isDomainName(s string) bool {
	if s == "" || s == "." {
		return false
	}
	if _, ok := dns.IsDomainName(s); !ok {
		return false
	}
	name := strings.TrimSuffix(s, ".")
	if len(name) > MaxNameLength {
		return false
	}
	for _, label := range dns.SplitDomainName(dns.Fqdn(name)) {
		if len(label) > MaxLabelLength {
			return false
		}
	}
	return true
}
