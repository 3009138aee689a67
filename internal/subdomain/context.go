package subdomain

import "context"

type resultKey struct{}

func NewContext(ctx context.Context, res Result) context.Context {
	return context.WithValue(ctx, resultKey{}, res)
}

// FromContext returns the Result attached by Middleware.
func FromContext(ctx context.Context) (Result, bool) {
	res, ok := ctx.Value(resultKey{}).(Result)
	return res, ok
}

// PathSubdomain returns the subdomain taken from the path convention, or "".
func PathSubdomain(ctx context.Context) string {
	res, _ := FromContext(ctx)
	return res.Subdomain
}

// HeaderSubdomain returns the subdomain taken from the forwarding header, or "".
func HeaderSubdomain(ctx context.Context) string {
	res, _ := FromContext(ctx)
	return res.SubdomainFromHeader
}
