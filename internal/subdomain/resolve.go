package subdomain

import (
	"net/http"
	"net/url"
)

type Request struct {
	// Target is the raw request-target, path plus optional query.
	Target string
	Header http.Header
}

type Result struct {
	Path     string
	RawQuery string

	PathOutcome   PathOutcome
	HeaderOutcome HeaderOutcome

	// Subdomain is set only by the path convention, SubdomainFromHeader
	// only by the forwarding header. Empty means absent.
	Subdomain           string
	SubdomainFromHeader string
}

func (r Result) Rewritten() bool {
	return r.PathOutcome == PathRewritten
}

// DecodedSubdomain is Subdomain with its percent-encoding removed.
func (r Result) DecodedSubdomain() string {
	return DecodeSubdomain(r.Subdomain)
}

func (r Result) ServiceList() bool {
	return r.PathOutcome == PathServiceList
}

// URI returns the request-target downstream handlers should see.
func (r Result) URI() string {
	if r.RawQuery == "" {
		return r.Path
	}
	return r.Path + "?" + r.RawQuery
}

// Resolve runs the path parser and the header resolver independently and
// combines their results. It never fails: a target that cannot be parsed
// is passed through with no path subdomain.
func Resolve(req Request, cfg Config) Result {
	res := Result{
		Path:          req.Target,
		PathOutcome:   PathDisabled,
		HeaderOutcome: HeaderDisabled,
	}

	u, err := url.ParseRequestURI(req.Target)
	if err == nil {
		res.Path = u.EscapedPath()
		res.RawQuery = u.RawQuery
	}

	if cfg.PathEnabled {
		res.PathOutcome = PathMalformed
		if err == nil {
			pr := ParsePath(res.Path, cfg.PathMarker)
			res.Path = pr.Path
			res.PathOutcome = pr.Outcome
			res.Subdomain = pr.Subdomain
		}
	}

	if cfg.HeaderEnabled {
		res.HeaderOutcome = HeaderAbsent
		if req.Header != nil {
			hr := ResolveHeader(req.Header.Get(cfg.HeaderName), cfg.RootHost)
			res.HeaderOutcome = hr.Outcome
			res.SubdomainFromHeader = hr.Subdomain
		}
	}

	return res
}
