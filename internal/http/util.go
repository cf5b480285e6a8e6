package httpx

import (
	"net/url"
	"strings"
)

// safeRedirectPath restricts a post-login destination to a relative path on
// this site. Absolute URLs, protocol-relative URLs, and anything that does
// not start with "/" collapse to the root so we never redirect off-site.
func safeRedirectPath(raw string) string {
	if raw == "" {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	out := u.Path
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	return out
}
