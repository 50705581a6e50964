// Package links decides which links in assistant replies are routed inside the
// application and which fall through to the system browser.
package links

import (
	"net/url"
	"strings"
)

// Kind identifies an in-app route
type Kind int

const (
	KindNone Kind = iota
	KindHome
	KindProduct
	KindInstallationGuide
	KindFAQ
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindProduct:
		return "product"
	case KindInstallationGuide:
		return "installation-guide"
	case KindFAQ:
		return "faq"
	default:
		return "none"
	}
}

// Route is a parsed in-app location
type Route struct {
	Kind       Kind
	PartNumber string
}

// Home is the chat landing route
var Home = Route{Kind: KindHome}

// FAQ is the static FAQ route
var FAQ = Route{Kind: KindFAQ}

// ProductRoute returns the product detail route for a part number
func ProductRoute(partNumber string) Route {
	return Route{Kind: KindProduct, PartNumber: partNumber}
}

// GuideRoute returns the installation guide route for a part number
func GuideRoute(partNumber string) Route {
	return Route{Kind: KindInstallationGuide, PartNumber: partNumber}
}

// Path returns the canonical path of the route
func (r Route) Path() string {
	switch r.Kind {
	case KindHome:
		return "/"
	case KindFAQ:
		return "/faq"
	case KindProduct:
		return "/products/" + url.PathEscape(r.PartNumber)
	case KindInstallationGuide:
		return "/products/" + url.PathEscape(r.PartNumber) + "/installation-guide"
	default:
		return ""
	}
}

// PageContext returns the path sent to the backend while the route is shown.
// Only product and guide pages carry a page context.
func (r Route) PageContext() string {
	switch r.Kind {
	case KindProduct, KindInstallationGuide:
		return r.Path()
	default:
		return ""
	}
}

// Title returns a short human label for the route
func (r Route) Title() string {
	switch r.Kind {
	case KindHome:
		return "Chat"
	case KindFAQ:
		return "FAQ"
	case KindProduct:
		return "Part " + r.PartNumber
	case KindInstallationGuide:
		return "Install " + r.PartNumber
	default:
		return ""
	}
}

// Parse parses an in-app path. Query strings, fragments, and a trailing slash
// are ignored.
func Parse(path string) (Route, bool) {
	u, err := url.Parse(strings.TrimSpace(path))
	if err != nil || u.Scheme != "" || u.Host != "" {
		return Route{}, false
	}
	return parseSegments(u.EscapedPath())
}

func parseSegments(escaped string) (Route, bool) {
	if !strings.HasPrefix(escaped, "/") {
		return Route{}, false
	}

	trimmed := strings.Trim(escaped, "/")
	if trimmed == "" {
		return Home, true
	}

	parts := strings.Split(trimmed, "/")
	for i, p := range parts {
		unescaped, err := url.PathUnescape(p)
		if err != nil || unescaped == "" {
			return Route{}, false
		}
		parts[i] = unescaped
	}

	switch {
	case len(parts) == 1 && parts[0] == "faq":
		return FAQ, true
	case len(parts) == 2 && parts[0] == "products":
		return ProductRoute(parts[1]), true
	case len(parts) == 3 && parts[0] == "products" && parts[2] == "installation-guide":
		return GuideRoute(parts[1]), true
	}
	return Route{}, false
}
