// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narkhlab/narkh/internal/platform/constants"
	"github.com/narkhlab/narkh/internal/platform/middleware"
	"github.com/narkhlab/narkh/internal/platform/sec"
	"github.com/narkhlab/narkh/internal/users/auth"
)

// newTestRouter mounts the auth routes behind the real authenticator so the
// cookie flow is exercised end to end.
func newTestRouter(env *testEnv) http.Handler {
	handler := auth.NewHandler(env.service, false)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(env.tokens, env.repo))
	router.Mount("/api/auth", handler.Routes())
	return router
}

func postJSON(t *testing.T, router http.Handler, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	request := httptest.NewRequest(http.MethodPost, path, &buf)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// # Session Establishment

/*
TestHandler_Login_SetsSessionCookies checks both cookies and their lifetimes.
*/
func TestHandler_Login_SetsSessionCookies(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "cookie@narkh.app", "secret-pass")
	router := newTestRouter(env)

	recorder := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "cookie@narkh.app",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	cookies := recorder.Result().Cookies()

	access := findCookie(cookies, constants.AccessTokenCookieName)
	require.NotNil(t, access)
	assert.Equal(t, 900, access.MaxAge)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)

	refresh := findCookie(cookies, constants.RefreshTokenCookieName)
	require.NotNil(t, refresh)
	assert.Equal(t, 604800, refresh.MaxAge)
	assert.True(t, refresh.HttpOnly)

	// The cookie payloads are purpose-scoped signed tokens.
	_, err := env.tokens.Verify(access.Value, sec.PurposeAccess)
	assert.NoError(t, err)
	_, err = env.tokens.Verify(refresh.Value, sec.PurposeRefresh)
	assert.NoError(t, err)

	body := decodeBody(t, recorder)
	require.Contains(t, body, "user")
}

/*
TestHandler_Register_OpensSession returns 201 with both cookies set.
*/
func TestHandler_Register_OpensSession(t *testing.T) {
	env := newTestEnv(t)
	router := newTestRouter(env)

	recorder := postJSON(t, router, "/api/auth/register", map[string]string{
		"email":     "fresh@narkh.app",
		"full_name": "Fresh Account",
		"password":  "secret-pass",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	cookies := recorder.Result().Cookies()
	assert.NotNil(t, findCookie(cookies, constants.AccessTokenCookieName))
	assert.NotNil(t, findCookie(cookies, constants.RefreshTokenCookieName))

	body := decodeBody(t, recorder)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password_hash")
}

/*
TestHandler_Register_WeakPassword rejects passwords under six characters.
*/
func TestHandler_Register_WeakPassword(t *testing.T) {
	env := newTestEnv(t)
	router := newTestRouter(env)

	recorder := postJSON(t, router, "/api/auth/register", map[string]string{
		"email":     "weak@narkh.app",
		"full_name": "Weak Password",
		"password":  "12345",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, recorder.Result().Cookies())
}

// # Refresh Matrix

/*
TestHandler_Refresh covers the three refresh outcomes.
*/
func TestHandler_Refresh(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "refresh-http@narkh.app", "secret-pass")
	router := newTestRouter(env)

	login := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "refresh-http@narkh.app",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, login.Code)
	refreshCookie := findCookie(login.Result().Cookies(), constants.RefreshTokenCookieName)
	require.NotNil(t, refreshCookie)

	t.Run("missing_cookie", func(t *testing.T) {
		recorder := postJSON(t, router, "/api/auth/refresh", nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "No refresh token", decodeBody(t, recorder)["error"])
	})

	t.Run("invalid_cookie", func(t *testing.T) {
		recorder := postJSON(t, router, "/api/auth/refresh", nil, &http.Cookie{
			Name:  constants.RefreshTokenCookieName,
			Value: "forged-token",
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "Invalid refresh token", decodeBody(t, recorder)["error"])
	})

	t.Run("access_cookie_rejected", func(t *testing.T) {
		// An access token in the refresh cookie must not mint a session.
		accessCookie := findCookie(login.Result().Cookies(), constants.AccessTokenCookieName)
		require.NotNil(t, accessCookie)

		recorder := postJSON(t, router, "/api/auth/refresh", nil, &http.Cookie{
			Name:  constants.RefreshTokenCookieName,
			Value: accessCookie.Value,
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "Invalid refresh token", decodeBody(t, recorder)["error"])
	})

	t.Run("valid_cookie", func(t *testing.T) {
		recorder := postJSON(t, router, "/api/auth/refresh", nil, refreshCookie)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, true, decodeBody(t, recorder)["success"])

		access := findCookie(recorder.Result().Cookies(), constants.AccessTokenCookieName)
		require.NotNil(t, access)
		assert.Equal(t, 900, access.MaxAge)

		claims, err := env.tokens.Verify(access.Value, sec.PurposeAccess)
		require.NoError(t, err)
		assert.Equal(t, "refresh-http@narkh.app", claims.Email)

		// The refresh cookie itself is not reissued.
		assert.Nil(t, findCookie(recorder.Result().Cookies(), constants.RefreshTokenCookieName))
	})
}

// # Logout

/*
TestHandler_Logout always succeeds and expires both cookies.
*/
func TestHandler_Logout(t *testing.T) {
	env := newTestEnv(t)
	router := newTestRouter(env)

	t.Run("anonymous", func(t *testing.T) {
		recorder := postJSON(t, router, "/api/auth/logout", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, true, decodeBody(t, recorder)["success"])

		cookies := recorder.Result().Cookies()
		access := findCookie(cookies, constants.AccessTokenCookieName)
		require.NotNil(t, access)
		assert.Empty(t, access.Value)
		assert.Less(t, access.MaxAge, 0)

		refresh := findCookie(cookies, constants.RefreshTokenCookieName)
		require.NotNil(t, refresh)
		assert.Empty(t, refresh.Value)
		assert.Less(t, refresh.MaxAge, 0)
	})

	t.Run("with_session", func(t *testing.T) {
		env.seedUser(t, "bye@narkh.app", "secret-pass")
		login := postJSON(t, router, "/api/auth/login", map[string]string{
			"email":    "bye@narkh.app",
			"password": "secret-pass",
		})
		require.Equal(t, http.StatusOK, login.Code)

		recorder := postJSON(t, router, "/api/auth/logout", nil, login.Result().Cookies()...)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

// # Authenticated Surface

/*
TestHandler_Me resolves the live record from the access cookie.
*/
func TestHandler_Me(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "me@narkh.app", "secret-pass")
	router := newTestRouter(env)

	login := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "me@narkh.app",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, login.Code)
	accessCookie := findCookie(login.Result().Cookies(), constants.AccessTokenCookieName)
	require.NotNil(t, accessCookie)

	get := func(cookies ...*http.Cookie) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		for _, cookie := range cookies {
			request.AddCookie(cookie)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	t.Run("anonymous", func(t *testing.T) {
		recorder := get()
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("forged_cookie", func(t *testing.T) {
		recorder := get(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "forged"})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("authenticated", func(t *testing.T) {
		recorder := get(accessCookie)
		require.Equal(t, http.StatusOK, recorder.Code)

		body := decodeBody(t, recorder)
		payload, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, user.ID, payload["id"])
		assert.Equal(t, "me@narkh.app", payload["email"])
	})

	t.Run("deactivated_account", func(t *testing.T) {
		stored, err := env.repo.FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		stored.IsActive = false
		require.NoError(t, env.repo.Update(context.Background(), stored))

		// A valid token for a deactivated account resolves to anonymous.
		recorder := get(accessCookie)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

// # Password Recovery Surface

/*
TestHandler_ResetPassword covers validation and the generic token error.
*/
func TestHandler_ResetPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "recover@narkh.app", "old-password")
	router := newTestRouter(env)

	token, err := env.service.RequestPasswordReset(context.Background(), "recover@narkh.app")
	require.NoError(t, err)

	t.Run("short_password", func(t *testing.T) {
		recorder := postJSON(t, router, "/api/auth/reset-password", map[string]string{
			"token":    token,
			"password": "12345",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		// The token must survive a failed validation attempt.
		_, err := env.service.Login(context.Background(), auth.LoginInput{
			Email:    "recover@narkh.app",
			Password: "old-password",
		})
		assert.NoError(t, err)
	})

	t.Run("invalid_token", func(t *testing.T) {
		recorder := postJSON(t, router, "/api/auth/reset-password", map[string]string{
			"token":    "forged-token",
			"password": "new-password",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "Invalid token or server error", decodeBody(t, recorder)["error"])
	})

	t.Run("success", func(t *testing.T) {
		recorder := postJSON(t, router, "/api/auth/reset-password", map[string]string{
			"token":    token,
			"password": "new-password",
		})
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, true, decodeBody(t, recorder)["success"])
	})

	t.Run("replay", func(t *testing.T) {
		recorder := postJSON(t, router, "/api/auth/reset-password", map[string]string{
			"token":    token,
			"password": "another-password",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "Invalid token or server error", decodeBody(t, recorder)["error"])
	})
}

/*
TestHandler_ForgotPassword answers identically for known and unknown emails.
*/
func TestHandler_ForgotPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "known@narkh.app", "secret-pass")
	router := newTestRouter(env)

	known := postJSON(t, router, "/api/auth/forgot-password", map[string]string{"email": "known@narkh.app"})
	unknown := postJSON(t, router, "/api/auth/forgot-password", map[string]string{"email": "unknown@narkh.app"})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.JSONEq(t, known.Body.String(), unknown.Body.String())
}
