package middleware

import (
	"github.com/canfly/subdomain-router/internal/subdomain"
	"github.com/gin-gonic/gin"
)

const (
	SubdomainKey           = "subdomain"
	SubdomainFromHeaderKey = "subdomain_from_header"
	ServiceListKey         = "service_list"
)

// SubdomainExtractor exposes the result of subdomain.Middleware as gin
// context keys. Keys are only set for signals that were actually resolved.
// The path-derived subdomain is exposed decoded.
func SubdomainExtractor() gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := subdomain.FromContext(c.Request.Context())
		if ok {
			if res.Subdomain != "" {
				c.Set(SubdomainKey, res.DecodedSubdomain())
			}
			if res.SubdomainFromHeader != "" {
				c.Set(SubdomainFromHeaderKey, res.SubdomainFromHeader)
			}
			if res.ServiceList() {
				c.Set(ServiceListKey, true)
			}
		}

		c.Next()
	}
}

// RootHostOnly lets a route through only for requests addressed to the root
// host. Requests that resolved to a subdomain are handed to fallback instead.
func RootHostOnly(fallback gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, fromPath := c.Get(SubdomainKey)
		_, fromHeader := c.Get(SubdomainFromHeaderKey)
		if fromPath || fromHeader {
			fallback(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
