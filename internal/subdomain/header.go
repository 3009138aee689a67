package subdomain

import (
	"net"
	"strings"

	"golang.org/x/net/idna"
)

type HeaderOutcome string

const (
	HeaderAbsent   HeaderOutcome = "absent"
	HeaderRoot     HeaderOutcome = "root"
	HeaderResolved HeaderOutcome = "resolved"
	HeaderRejected HeaderOutcome = "rejected"
	HeaderDisabled HeaderOutcome = "disabled"
)

type HeaderResult struct {
	Outcome   HeaderOutcome
	Subdomain string
}

// ResolveHeader derives the subdomain from a forwarded host value such as
// "mail.example.org". Values that are not a proper subdomain of rootHost
// are rejected instead of being read as one.
func ResolveHeader(value, rootHost string) HeaderResult {
	host := normalizeHost(firstValue(value))
	if host == "" {
		return HeaderResult{Outcome: HeaderAbsent}
	}

	root := normalizeHost(rootHost)
	if root == "" {
		return HeaderResult{Outcome: HeaderRejected}
	}
	if host == root {
		return HeaderResult{Outcome: HeaderRoot}
	}

	sub, ok := strings.CutSuffix(host, "."+root)
	if !ok || !validLabels(sub) || sub == root {
		return HeaderResult{Outcome: HeaderRejected}
	}
	return HeaderResult{Outcome: HeaderResolved, Subdomain: sub}
}

// firstValue keeps the client-most entry of a comma-separated header.
func firstValue(value string) string {
	if i := strings.IndexByte(value, ','); i >= 0 {
		value = value[:i]
	}
	return value
}

// normalizeHost strips a port and a single trailing dot, then maps the
// name to its lower-case ASCII (punycode) form. Names IDNA rejects are
// only lower-cased.
func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(host, ".")
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil || ascii == "" {
		ascii = host
	}
	return strings.ToLower(ascii)
}

func validLabels(sub string) bool {
	if sub == "" {
		return false
	}
	for _, label := range strings.Split(sub, ".") {
		if label == "" {
			return false
		}
	}
	return true
}
