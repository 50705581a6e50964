package links

import (
	"net/url"
	"strings"

	"github.com/partselect/partchat/internal/models"
)

// Policy decides which hrefs are in-app routes
type Policy struct {
	// SiteHost is the storefront host. Absolute links to it are treated like
	// relative paths.
	SiteHost string
}

// DefaultPolicy uses the default storefront host
func DefaultPolicy() Policy {
	return Policy{SiteHost: models.DefaultSiteHost}
}

// ShouldIntercept reports whether path is a product or installation guide link
// under the default policy
func ShouldIntercept(path string) bool {
	return DefaultPolicy().ShouldIntercept(path)
}

// ShouldIntercept reports whether href should be routed in-app
func (p Policy) ShouldIntercept(href string) bool {
	_, ok := p.Route(href)
	return ok
}

// Route returns the in-app route for href
func (p Policy) Route(href string) (Route, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return Route{}, false
	}

	switch {
	case u.Scheme == "" && u.Host == "":
		// relative path
	case (u.Scheme == "http" || u.Scheme == "https") && p.sameSite(u.Host):
	default:
		return Route{}, false
	}

	return parseSegments(u.EscapedPath())
}

// Resolve turns a relative href into an absolute URL on the storefront, the way
// a browser would for a full page load. Absolute hrefs are returned unchanged.
func (p Policy) Resolve(href string) string {
	href = strings.TrimSpace(href)
	u, err := url.Parse(href)
	if err != nil || u.IsAbs() || p.SiteHost == "" {
		return href
	}
	base := &url.URL{Scheme: "https", Host: p.SiteHost, Path: "/"}
	return base.ResolveReference(u).String()
}

func (p Policy) sameSite(host string) bool {
	if p.SiteHost == "" {
		return false
	}
	host = strings.ToLower(host)
	site := strings.ToLower(p.SiteHost)
	return host == site || "www."+host == site || host == "www."+site
}
