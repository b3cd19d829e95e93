package twitter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/felores/agent-twitter-client/internal/core/domain"
)

// csrfCookieName is the cookie whose value must be echoed back in the
// x-csrf-token header on every authenticated request.
const csrfCookieName = "ct0"

// ParseCookie parses a single Set-Cookie style credential string of the
// form "name=value; Domain=x.com; Path=/". Only shape is validated; token
// content is opaque to the client.
func ParseCookie(raw string) (*http.Cookie, error) {
	parts := strings.Split(raw, ";")
	name, value, found := strings.Cut(strings.TrimSpace(parts[0]), "=")
	if !found || name == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrMalformedCookie, raw)
	}

	cookie := &http.Cookie{Name: name, Value: value}
	for _, attr := range parts[1:] {
		k, v, _ := strings.Cut(strings.TrimSpace(attr), "=")
		switch strings.ToLower(k) {
		case "domain":
			cookie.Domain = v
		case "path":
			cookie.Path = v
		case "secure":
			cookie.Secure = true
		case "httponly":
			cookie.HttpOnly = true
		}
	}
	return cookie, nil
}

// parseCookies parses the full credential set. The set must be non-empty
// and every entry must parse; a single malformed entry fails the whole
// configuration so a half-authenticated client is never constructed.
func parseCookies(raw []string) ([]*http.Cookie, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no cookies provided", domain.ErrMalformedCookie)
	}

	cookies := make([]*http.Cookie, 0, len(raw))
	for _, r := range raw {
		c, err := ParseCookie(r)
		if err != nil {
			return nil, err
		}
		cookies = append(cookies, c)
	}
	return cookies, nil
}

// csrfToken returns the value of the ct0 cookie, or "" when absent.
func csrfToken(cookies []*http.Cookie) string {
	for _, c := range cookies {
		if c.Name == csrfCookieName {
			return c.Value
		}
	}
	return ""
}
