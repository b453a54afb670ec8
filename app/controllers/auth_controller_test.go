package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthController_Register(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("form renders", func(t *testing.T) {
		w := serve(env.auth.ShowRegister, "/register", "GET", "/register", nil, 0)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `action="/register"`)
	})

	t.Run("creates user", func(t *testing.T) {
		w := serve(env.auth.Register, "/register", "POST", "/register",
			url.Values{"username": {"alice"}, "password": {"secret"}}, 0)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("duplicate username", func(t *testing.T) {
		w := serve(env.auth.Register, "/register", "POST", "/register",
			url.Values{"username": {"alice"}, "password": {"other"}}, 0)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Username already taken.")
	})

	t.Run("missing field", func(t *testing.T) {
		w := serve(env.auth.Register, "/register", "POST", "/register",
			url.Values{"username": {"bob"}}, 0)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthController_Login(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice")

	t.Run("wrong password stays on login page", func(t *testing.T) {
		w := serve(env.auth.Login, "/login", "POST", "/login",
			url.Values{"username": {"alice"}, "password": {"wrong"}}, 0)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid username or password.")
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("valid credentials start a session", func(t *testing.T) {
		w := serve(env.auth.Login, "/login", "POST", "/login",
			url.Values{"username": {"alice"}, "password": {"secret"}}, 0)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		sess, err := env.store.Get(cookies[0].Value)
		require.NoError(t, err)
		assert.Equal(t, user.ID, sess.UserID)
	})

	t.Run("logout destroys the session", func(t *testing.T) {
		login := serve(env.auth.Login, "/login", "POST", "/login",
			url.Values{"username": {"alice"}, "password": {"secret"}}, 0)
		cookie := login.Result().Cookies()[0]

		w := serve(env.auth.Logout, "/logout", "GET", "/logout", nil, 0, cookie)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))

		_, err := env.store.Get(cookie.Value)
		assert.Error(t, err)
	})
}
