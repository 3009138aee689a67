package subdomain

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/canfly/subdomain-router/internal/metrics"
)

type options struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*options)

// WithLogger sets the logger used for diagnostic records. A nil logger
// disables them.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// Middleware resolves the subdomain of every request before it reaches
// next. A request whose path follows the /<marker>/<subdomain>/... convention
// is handed to next with the subdomain segment removed; the Result is
// attached to the request context either way. next is always called
// exactly once.
func Middleware(cfg Config, opts ...Option) func(http.Handler) http.Handler {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, o.process(cfg, r))
		})
	}
}

func (o *options) process(cfg Config, r *http.Request) (out *http.Request) {
	out = r
	defer func() {
		if rec := recover(); rec != nil {
			// r.URL may be the cause, so only RequestURI is logged.
			o.metrics.ObserveRecovered()
			o.log(r.Context(), slog.LevelWarn, "Subdomain resolution failed, passing request through",
				"panic", rec,
				"request_uri", r.RequestURI)
			out = r
		}
	}()

	res := Resolve(Request{Target: r.URL.RequestURI(), Header: r.Header}, cfg)

	var rewritten *url.URL
	if res.Rewritten() {
		u, err := rewriteURL(r.URL, res.Path)
		if err != nil {
			res = passThrough(res, r.URL)
		} else {
			rewritten = u
		}
	}

	o.metrics.ObservePath(string(res.PathOutcome))
	o.metrics.ObserveHeader(string(res.HeaderOutcome))

	out = r.WithContext(NewContext(r.Context(), res))
	if rewritten != nil {
		out.URL = rewritten
		out.RequestURI = res.URI()
	}

	o.diagnose(out.Context(), res)
	return out
}

// rewriteURL returns a copy of u with its path replaced by escapedPath.
// u itself is left untouched.
func rewriteURL(u *url.URL, escapedPath string) (*url.URL, error) {
	decoded, err := url.PathUnescape(escapedPath)
	if err != nil {
		return nil, err
	}
	nu := *u
	nu.Path = decoded
	nu.RawPath = ""
	if nu.EscapedPath() != escapedPath {
		nu.RawPath = escapedPath
	}
	return &nu, nil
}

func passThrough(res Result, u *url.URL) Result {
	res.PathOutcome = PathMalformed
	res.Subdomain = ""
	res.Path = u.EscapedPath()
	return res
}

func (o *options) diagnose(ctx context.Context, res Result) {
	switch res.PathOutcome {
	case PathRewritten:
		o.log(ctx, slog.LevelInfo, "Request from subdomain", "subdomain", res.Subdomain, "path", res.URI())
	case PathServiceList:
		o.log(ctx, slog.LevelInfo, "Service list requested")
	case PathMalformed:
		o.log(ctx, slog.LevelDebug, "Malformed request target, path left untouched")
	}

	switch res.HeaderOutcome {
	case HeaderResolved:
		o.log(ctx, slog.LevelDebug, "Subdomain from forwarding header", "subdomain", res.SubdomainFromHeader)
	case HeaderRejected:
		o.log(ctx, slog.LevelDebug, "Forwarding header ignored, not a subdomain of the root host")
	}
}

// log is best effort: a failing handler never reaches the request.
func (o *options) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if o.logger == nil {
		return
	}
	defer func() { _ = recover() }()
	o.logger.Log(ctx, level, msg, args...)
}
