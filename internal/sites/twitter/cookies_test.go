package twitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felores/agent-twitter-client/internal/core/domain"
)

func TestParseCookie(t *testing.T) {
	c, err := ParseCookie("auth_token=61fb0d11f41b; Domain=twitter.com; Path=/")
	require.NoError(t, err)
	assert.Equal(t, "auth_token", c.Name)
	assert.Equal(t, "61fb0d11f41b", c.Value)
	assert.Equal(t, "twitter.com", c.Domain)
	assert.Equal(t, "/", c.Path)
}

func TestParseCookieAttributesAreCaseInsensitive(t *testing.T) {
	c, err := ParseCookie("ct0=abc; domain=x.com; PATH=/; Secure; HttpOnly")
	require.NoError(t, err)
	assert.Equal(t, "x.com", c.Domain)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
}

func TestParseCookieMalformed(t *testing.T) {
	for _, raw := range []string{"", "no-equals-sign", "=value-without-name"} {
		_, err := ParseCookie(raw)
		assert.ErrorIs(t, err, domain.ErrMalformedCookie, "input %q", raw)
	}
}

func TestParseCookiesRejectsEmptySet(t *testing.T) {
	_, err := parseCookies(nil)
	assert.ErrorIs(t, err, domain.ErrMalformedCookie)
}

func TestParseCookiesOneMalformedFailsAll(t *testing.T) {
	_, err := parseCookies([]string{
		"auth_token=ok; Domain=x.com; Path=/",
		"broken",
	})
	assert.ErrorIs(t, err, domain.ErrMalformedCookie)
}

func TestCSRFTokenExtraction(t *testing.T) {
	cookies, err := parseCookies([]string{
		"auth_token=aaa; Domain=x.com; Path=/",
		"ct0=csrf-value; Domain=x.com; Path=/",
	})
	require.NoError(t, err)
	assert.Equal(t, "csrf-value", csrfToken(cookies))
}
