package subdomain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments(t *testing.T) {
	assert.Empty(t, Segments(""))
	assert.Empty(t, Segments("/"))
	assert.Empty(t, Segments("///"))
	assert.Equal(t, []string{"i"}, Segments("/i/"))
	assert.Equal(t, []string{"i", "mail", "inbox"}, Segments("//i//mail/inbox/"))
}

func TestParsePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		outcome   PathOutcome
		subdomain string
		expected  string
	}{
		{name: "rewrite with rest", path: "/i/mail/inbox", outcome: PathRewritten, subdomain: "mail", expected: "/i/inbox"},
		{name: "rewrite deep rest", path: "/i/mail/inbox/42/read", outcome: PathRewritten, subdomain: "mail", expected: "/i/inbox/42/read"},
		{name: "rewrite without rest", path: "/i/mail", outcome: PathRewritten, subdomain: "mail", expected: "/i"},
		{name: "rewrite trailing slash", path: "/i/mail/", outcome: PathRewritten, subdomain: "mail", expected: "/i"},
		{name: "rewrite collapses slashes", path: "//i//mail//inbox//", outcome: PathRewritten, subdomain: "mail", expected: "/i/inbox"},
		{name: "nested subdomain segment", path: "/i/eu.mail/inbox", outcome: PathRewritten, subdomain: "eu.mail", expected: "/i/inbox"},
		{name: "escaped subdomain kept escaped", path: "/i/m%61il/inbox", outcome: PathRewritten, subdomain: "m%61il", expected: "/i/inbox"},
		{name: "escaped rest kept escaped", path: "/i/mail/a%2Fb", outcome: PathRewritten, subdomain: "mail", expected: "/i/a%2Fb"},
		{name: "marker repeated in rest", path: "/i/mail/i/x", outcome: PathRewritten, subdomain: "mail", expected: "/i/i/x"},
		{name: "service list", path: "/i", outcome: PathServiceList, expected: "/i"},
		{name: "service list trailing slash", path: "/i/", outcome: PathServiceList, expected: "/i/"},
		{name: "service list doubled slashes", path: "//i//", outcome: PathServiceList, expected: "//i//"},
		{name: "root", path: "/", outcome: PathNone, expected: "/"},
		{name: "empty", path: "", outcome: PathNone, expected: ""},
		{name: "other prefix", path: "/api/mail", outcome: PathNone, expected: "/api/mail"},
		{name: "marker as prefix of segment", path: "/images/logo.png", outcome: PathNone, expected: "/images/logo.png"},
		{name: "marker not first", path: "/x/i/mail", outcome: PathNone, expected: "/x/i/mail"},
		{name: "marker is case sensitive", path: "/I/mail", outcome: PathNone, expected: "/I/mail"},
		{name: "invalid escape in subdomain", path: "/i/ma%zzil/inbox", outcome: PathMalformed, expected: "/i/ma%zzil/inbox"},
		{name: "escaped slash in subdomain", path: "/i/a%2Fb/inbox", outcome: PathMalformed, expected: "/i/a%2Fb/inbox"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := ParsePath(tt.path, "i")
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.subdomain, res.Subdomain)
			assert.Equal(t, tt.expected, res.Path)
		})
	}
}

func TestParsePathCustomMarker(t *testing.T) {
	res := ParsePath("/svc/mail/inbox", "svc")
	assert.Equal(t, PathRewritten, res.Outcome)
	assert.Equal(t, "mail", res.Subdomain)
	assert.Equal(t, "/svc/inbox", res.Path)

	res = ParsePath("/i/mail/inbox", "svc")
	assert.Equal(t, PathNone, res.Outcome)
}

func TestParsePathSubdomainNeverLeftInPath(t *testing.T) {
	for _, path := range []string{"/i/mail", "/i/mail/inbox", "/i/mail/a/b/c", "/i/mail/"} {
		res := ParsePath(path, "i")
		segments := Segments(res.Path)
		if len(segments) > 1 {
			assert.NotEqual(t, res.Subdomain, segments[1], "path %q", path)
		}
	}
}

func TestParsePathRoundTrip(t *testing.T) {
	paths := []string{
		"/i/mail",
		"/i/mail/inbox",
		"/i/mail/inbox/42",
		"/i/docs/a/b/c/d/e",
		"/i/mail/mail",
		"/i/mail/i",
		"/i/m%61il/inbox",
		"/i/caf%C3%A9/a%2Fb",
	}

	for _, path := range paths {
		res := ParsePath(path, "i")
		assert.Equal(t, PathRewritten, res.Outcome, "path %q", path)

		segments := Segments(res.Path)
		restored := append([]string{segments[0], res.Subdomain}, segments[1:]...)
		assert.Equal(t, path, "/"+strings.Join(restored, "/"))
	}
}

func TestDecodeSubdomain(t *testing.T) {
	assert.Equal(t, "mail", DecodeSubdomain("m%61il"))
	assert.Equal(t, "café", DecodeSubdomain("caf%C3%A9"))
	assert.Equal(t, "mail", DecodeSubdomain("mail"))
	assert.Equal(t, "ma%zz", DecodeSubdomain("ma%zz"))
}
