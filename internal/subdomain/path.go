package subdomain

import (
	"net/url"
	"strings"
)

type PathOutcome string

const (
	PathNone        PathOutcome = "none"
	PathRewritten   PathOutcome = "rewritten"
	PathServiceList PathOutcome = "service_list"
	PathMalformed   PathOutcome = "malformed"
	PathDisabled    PathOutcome = "disabled"
)

type PathResult struct {
	Outcome PathOutcome
	// Subdomain is the consumed segment exactly as it appeared in the
	// escaped path, so prepending it again restores the original path.
	Subdomain string
	// Path is the escaped path to hand downstream. It equals the input
	// unless Outcome is PathRewritten.
	Path string
}

// Segments splits an escaped path on "/" and drops empty segments, so
// repeated, leading and trailing slashes never produce a segment.
func Segments(escapedPath string) []string {
	parts := strings.Split(escapedPath, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// ParsePath recognizes the /<marker>/<subdomain>/<rest...> convention and
// returns the path with the subdomain segment consumed:
//
//	/i/mail/inbox -> /i/inbox (subdomain "mail")
//	/i/mail       -> /i       (subdomain "mail")
//	/i, /i/       -> service list, untouched
//	/other        -> untouched
func ParsePath(escapedPath, marker string) PathResult {
	res := PathResult{Outcome: PathNone, Path: escapedPath}

	segments := Segments(escapedPath)
	if len(segments) == 0 || segments[0] != marker {
		return res
	}
	if len(segments) == 1 {
		res.Outcome = PathServiceList
		return res
	}

	sub := segments[1]
	if decoded, err := url.PathUnescape(sub); err != nil || decoded == "" || strings.Contains(decoded, "/") {
		res.Outcome = PathMalformed
		return res
	}

	rewritten := "/" + marker
	if rest := segments[2:]; len(rest) > 0 {
		rewritten += "/" + strings.Join(rest, "/")
	}

	res.Outcome = PathRewritten
	res.Subdomain = sub
	res.Path = rewritten
	return res
}

// DecodeSubdomain returns the percent-decoded form of a subdomain segment,
// or the segment itself when it is not validly escaped.
func DecodeSubdomain(segment string) string {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return decoded
}
