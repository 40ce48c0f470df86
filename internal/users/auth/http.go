// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

/*
Package auth provides the HTTP delivery layer for user identity management.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Both session tokens travel as HTTP-only cookies; this layer owns
    setting and clearing them.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes,
headers, cookies, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/narkhlab/narkh/internal/platform/apperr"
	"github.com/narkhlab/narkh/internal/platform/constants"
	"github.com/narkhlab/narkh/internal/platform/middleware"
	requestutil "github.com/narkhlab/narkh/internal/platform/request"
	"github.com/narkhlab/narkh/internal/platform/respond"
	"github.com/narkhlab/narkh/internal/platform/sec"
	"github.com/narkhlab/narkh/internal/platform/validate"
	"github.com/narkhlab/narkh/pkg/convert"
	"github.com/narkhlab/narkh/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the session lifecycle entry points (registration,
// login, refresh, logout, password recovery) plus the self-service profile
// and the administrative account surface.
type Handler struct {
	authService *Service

	// secureCookies marks session cookies Secure. True in production, false
	// in development so plain-HTTP local setups still receive cookies.
	secureCookies bool
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{
		authService:   service,
		secureCookies: secureCookies,
	}
}

// Routes returns a [chi.Router] configured with the session lifecycle routes.
//
// # Endpoints
//   - POST /register        : Creates a new account and opens a session.
//   - POST /login           : Authenticates and sets both session cookies.
//   - POST /refresh         : Mints a new access token from the refresh cookie.
//   - POST /logout          : Clears both session cookies.
//   - POST /forgot-password : Starts the password recovery flow.
//   - POST /reset-password  : Completes the password recovery flow.
//   - GET  /me              : Returns the authenticated account.
//   - PATCH /profile        : Updates the caller's own profile.
//   - POST /change-password : Rotates the caller's password.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
		r.Patch("/profile", handler.updateProfile)
		r.Post("/change-password", handler.changePassword)
	})

	return router
}

// UserRoutes returns the administrative account management routes.
//
// Mounted separately (under /api/users) behind the user.manage permission.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequirePermission(sec.ActionUserManage))

	router.Get("/", handler.listUsers)
	router.Get("/{id}", handler.getUser)
	router.Patch("/{id}", handler.updateUser)

	return router
}

// # Cookie Management

// setSessionCookie writes one session cookie scoped to the whole site.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     constants.SessionCookiePath,
		MaxAge:   maxAge,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// setSession writes both cookies for a freshly issued token pair.
func (handler *Handler) setSession(writer http.ResponseWriter, session *Session) {
	handler.setSessionCookie(writer, constants.AccessTokenCookieName, session.AccessToken, int(AccessTokenTTL.Seconds()))
	handler.setSessionCookie(writer, constants.RefreshTokenCookieName, session.RefreshToken, int(RefreshTokenTTL.Seconds()))
}

// clearSession expires both cookies client-side. MaxAge -1 serializes as
// Max-Age=0, which browsers treat as an immediate delete.
func (handler *Handler) clearSession(writer http.ResponseWriter) {
	handler.setSessionCookie(writer, constants.AccessTokenCookieName, "", -1)
	handler.setSessionCookie(writer, constants.RefreshTokenCookieName, "", -1)
}

// # Request Payloads

type registerRequest struct {
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Password   string  `json:"password"`
	ProvinceID *string `json:"province_id"`
	MarketID   *string `json:"market_id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

type adminUpdateUserRequest struct {
	Role       *string `json:"role"`
	ProvinceID *string `json:"province_id"`
	MarketID   *string `json:"market_id"`
	IsActive   *bool   `json:"is_active"`
}

// # Session Lifecycle Handlers

/*
Register handles the creation of a new user account.

POST /api/auth/register

Description: Validates input, persists the account, and immediately opens a
session by setting both cookies.

Request:
  - Body: registerRequest (Email, FullName, Password, optional region)

Response:
  - 201: {user:{...}} plus both session cookies
  - 400: Validation failure
  - 409: Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldFullName, input.FullName).
		MaxLen(FieldFullName, input.FullName, 120).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:      input.Email,
		FullName:   input.FullName,
		Password:   input.Password,
		ProvinceID: input.ProvinceID,
		MarketID:   input.MarketID,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSession(writer, session)
	respond.Created(writer, map[string]any{FieldUser: session.User})
}

/*
Login authenticates a user and establishes a session.

POST /api/auth/login

Description: Verifies credentials and sets both session cookies. The access
cookie lives 900 seconds, the refresh cookie 604800.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: {user:{...}} plus both session cookies
  - 401: Invalid credentials or deactivated account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSession(writer, session)
	respond.OK(writer, map[string]any{FieldUser: session.User})
}

/*
Refresh issues a new access token using the refresh cookie.

POST /api/auth/refresh

Description: Reads the refresh cookie, verifies it, and sets a fresh access
cookie minted from the refresh token's own claims. The refresh cookie itself
is left untouched; sessions end when it expires.

Response:
  - 200: {success:true} plus a new accessToken cookie
  - 401: {error:"No refresh token"} when the cookie is absent
  - 401: {error:"Invalid refresh token"} when verification fails
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("No refresh token"))
		return
	}

	accessToken, err := handler.authService.Refresh(request.Context(), cookie.Value)
	if err != nil {
		respond.Error(writer, request, apperr.Unauthorized("Invalid refresh token"))
		return
	}

	handler.setSessionCookie(writer, constants.AccessTokenCookieName, accessToken, int(AccessTokenTTL.Seconds()))
	respond.Success(writer)
}

/*
Logout ends the session client-side.

POST /api/auth/logout

Description: Clears both cookies. No auth required and nothing is verified:
tokens are stateless, so there is no server-side session to revoke, and
logging out an anonymous client is a harmless no-op.

Response:
  - 200: {success:true} with both cookies expired
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.clearSession(writer)
	respond.Success(writer)
}

/*
Me returns the authenticated account.

GET /api/auth/me

Response:
  - 200: {user:{...}} with the live record, not the token snapshot
  - 401: Anonymous request
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldUser: principal})
}

// # Password Recovery Handlers

/*
ForgotPassword initiates the password recovery flow.

POST /api/auth/forgot-password

Description: Signs a reset token for the account. The response is identical
whether or not the email exists.

Request:
  - Body: forgotPasswordRequest (Email)

Response:
  - 200: Generic acknowledgement
  - 400: Invalid email format
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	_, err := handler.authService.RequestPasswordReset(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "If this email is registered, a reset link has been sent.",
	})
}

/*
ResetPassword completes the password recovery flow.

POST /api/auth/reset-password

Description: Validates the reset token and updates the user's password.

Request:
  - Body: resetPasswordRequest (Token, Password min 6 chars)

Response:
  - 200: {success:true}
  - 400: Validation issues or "Invalid token or server error"
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldToken, input.Token).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Success(writer)
}

/*
ChangePassword updates the authenticated user's password.

POST /api/auth/change-password

Request:
  - Body: changePasswordRequest (CurrentPassword, NewPassword)

Response:
  - 200: Confirmation message
  - 400: Weak password or validation failure
  - 401: Anonymous request or wrong current password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, MinPasswordLength)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.authService.ChangePassword(
		request.Context(),
		principal.ID,
		input.CurrentPassword,
		input.NewPassword,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password changed successfully",
	})
}

// # Profile Handlers

/*
UpdateProfile modifies the caller's own profile fields.

PATCH /api/auth/profile

Request:
  - Body: updateProfileRequest (FullName, AvatarURL; both optional)

Response:
  - 200: {user:{...}} with the updated record
  - 401: Anonymous request
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.FullName != nil {
		v.Required(FieldFullName, *input.FullName).MaxLen(FieldFullName, *input.FullName, 120)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateProfile(request.Context(), principal.ID, UpdateProfileInput{
		FullName:  input.FullName,
		AvatarURL: input.AvatarURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldUser: user})
}

// # Administrative Handlers

/*
ListUsers returns a page of accounts for administrative review.

GET /api/users?page=&limit=&role=&province_id=&active=

Response:
  - 200: Paginated account list
  - 401/403: Missing user.manage permission
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	filter := Filter{
		Role:       request.URL.Query().Get(FieldRole),
		ProvinceID: request.URL.Query().Get(FieldProvinceID),
		ActiveOnly: convert.ToBool(request.URL.Query().Get("active")),
	}

	users, total, err := handler.authService.ListUsers(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetUser returns a single account by ID.

GET /api/users/{id}
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.authService.GetUser(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldUser: user})
}

/*
UpdateUser applies administrative changes to an account.

PATCH /api/users/{id}

Request:
  - Body: adminUpdateUserRequest (Role, ProvinceID, MarketID, IsActive)

Response:
  - 200: {user:{...}} with the updated record
  - 400: Unknown role
  - 404: Account does not exist
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	var input adminUpdateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.authService.UpdateUser(request.Context(), requestutil.Param(request, "id"), AdminUpdateInput{
		Role:       input.Role,
		ProvinceID: input.ProvinceID,
		MarketID:   input.MarketID,
		IsActive:   input.IsActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldUser: user})
}
