package route

// Package route derives routing facts from inbound request URLs and evaluates
// the declarative authorization policy against them. It is pure domain logic:
// no HTTP types beyond net/url, no side effects.

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Facts is the structured routing data derived from a request's host header
// and URL. Extraction always succeeds; malformed inputs degrade to empty or
// literal values rather than errors.
type Facts struct {
	// Domain is the host header without any port.
	Domain string
	// Site is the registrable domain (eTLD+1) of Domain, empty when the host
	// is an IP, localhost, or otherwise has no public suffix.
	Site string
	// Path is the decoded request path. Policy rules match against it, so
	// encoded spellings of a path cannot dodge a rule.
	Path string
	// FullPath is Path plus "?"+QueryString when a query is present.
	FullPath string
	// Key is the first path segment, percent-decoded.
	Key string
	// FullKey is the full path minus the leading separator, percent-decoded.
	// It supports multi-segment identifiers.
	FullKey string
	// QueryParams holds the first value of each query parameter.
	QueryParams map[string]string
	// QueryString is the raw query string, empty when absent.
	QueryString string
}

// Extract parses host and URL into Facts. The path "/" yields empty Key and
// FullKey. Malformed percent-encoding is preserved literally rather than
// rejected.
func Extract(host string, u *url.URL) Facts {
	f := Facts{
		Domain:      stripPort(host),
		QueryParams: map[string]string{},
	}
	if u == nil {
		return f
	}

	f.Path = u.Path
	f.QueryString = u.RawQuery
	f.FullPath = f.Path
	if f.QueryString != "" {
		f.FullPath += "?" + f.QueryString
	}

	// Keys decode segment by segment from the escaped path so an encoded
	// separator inside a segment does not split it.
	trimmed := strings.TrimPrefix(u.EscapedPath(), "/")
	f.FullKey = decodeSegments(trimmed)
	if first, _, ok := strings.Cut(trimmed, "/"); ok {
		f.Key = decodeSegment(first)
	} else {
		f.Key = decodeSegment(trimmed)
	}

	for name, values := range u.Query() {
		if len(values) > 0 {
			f.QueryParams[name] = values[0]
		}
	}

	if site, err := publicsuffix.EffectiveTLDPlusOne(f.Domain); err == nil {
		f.Site = site
	}

	return f
}

// decodeSegments percent-decodes each segment of a path, keeping separators.
func decodeSegments(p string) string {
	if p == "" {
		return ""
	}
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = decodeSegment(s)
	}
	return strings.Join(segments, "/")
}

// decodeSegment percent-decodes a single segment, falling back to the literal
// text when the encoding is malformed.
func decodeSegment(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func stripPort(host string) string {
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
