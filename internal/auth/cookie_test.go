package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRenewalCookie(t *testing.T) {
	c := NewRenewalCookie("tok", true)

	assert.Equal(t, RenewalCookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, 7*24*60*60, c.MaxAge)
}

func TestClearRenewalCookie(t *testing.T) {
	c := ClearRenewalCookie(false)

	assert.Equal(t, RenewalCookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
	assert.False(t, c.Secure)
}
