package search

import (
	"net/url"
	"strings"
)

// sourcePrefix restricts a token query to one reference source, e.g.
// "source:http" or "source:path".
const sourcePrefix = "source:"

// TokenProvider splits the query on whitespace; every token must match at
// least one field. A "source:" token filters by URL scheme, with "path" for
// plain filesystem paths.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{opts: applyOptions(opts)}
}

// Match returns true if ref satisfies every token.
func (p *TokenProvider) Match(ref, query string) bool {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return true
	}
	values := p.opts.fieldValues(ref)
	for _, token := range tokens {
		if source, ok := strings.CutPrefix(strings.ToLower(token), sourcePrefix); ok {
			if source != "" && source != Source(ref) {
				return false
			}
			continue
		}
		if !p.anyContains(values, token) {
			return false
		}
	}
	return true
}

func (p *TokenProvider) anyContains(values []string, token string) bool {
	if p.opts.CaseInsensitive {
		token = strings.ToLower(token)
	}
	for _, value := range values {
		if p.opts.CaseInsensitive {
			value = strings.ToLower(value)
		}
		if strings.Contains(value, token) {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return string(ModeToken)
}

// Source names where a reference is served from: its lower-cased URL scheme,
// or "path" for filesystem paths.
func Source(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || len(u.Scheme) <= 1 {
		return "path"
	}
	return strings.ToLower(u.Scheme)
}
