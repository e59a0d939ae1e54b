package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenAuth_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	a := NewTokenAuth("test-secret")

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/whoami", a.Middleware(), func(c *gin.Context) {
			p, ok := PrincipalFromContext(c)
			require.True(t, ok)
			c.JSON(http.StatusOK, gin.H{"wallet": p.Wallet, "role": p.Role})
		})
		return r
	}

	t.Run("valid token passes the principal through", func(t *testing.T) {
		token, err := a.IssueToken(Principal{Wallet: "0xabc", Role: "admin"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"wallet":"0xabc","role":"admin"}`, w.Body.String())
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-bearer header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := NewTokenAuth("other-secret")
		token, err := other.IssueToken(Principal{Wallet: "0xabc", Role: "user"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPrincipal_IsAdmin(t *testing.T) {
	assert.True(t, Principal{Role: "admin"}.IsAdmin())
	assert.False(t, Principal{Role: "user"}.IsAdmin())
	assert.False(t, Principal{}.IsAdmin())
}
