// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/narkhlab/narkh/internal/platform/apperr"
	"github.com/narkhlab/narkh/internal/platform/sec"
	"github.com/narkhlab/narkh/pkg/uuidv7"
)

// # Contracts & Types

// TokenSigner defines the contract for issuing and verifying signed tokens.
type TokenSigner interface {
	// Sign produces a signed token for the identity, scoped to one purpose.
	Sign(identity sec.Identity, purpose sec.TokenPurpose, timeToLive time.Duration) (string, error)

	// Verify checks signature, issuer, expiry, and purpose. Every failure
	// collapses into [sec.ErrInvalidToken].
	Verify(tokenString string, expected sec.TokenPurpose) (*sec.Claims, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, token
// issuance, or the reset flow must be reviewed before merging.
type Service struct {
	userRepository UserRepository
	resetGuard     ResetGuard
	tokens         TokenSigner
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, resetGuard ResetGuard, tokens TokenSigner) *Service {
	return &Service{
		userRepository: userRepo,
		resetGuard:     resetGuard,
		tokens:         tokens,
	}
}

// Session carries the freshly minted token pair alongside the account.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Email      string
	FullName   string
	Password   string
	ProvinceID *string
	MarketID   *string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: New accounts always start with the base role; promotion to
collector or moderator goes through administrative management.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Token pair plus the created entity
  - error: Conflict (if the email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
		ProvinceID:   input.ProvinceID,
		MarketID:     input.MarketID,
		IsActive:     true,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return service.issueSession(user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues the session token pair.

Description: Verifies identity with a constant-time password comparison and
mints both the access and refresh tokens. Deactivated accounts fail exactly
like wrong credentials.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready token pair
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)

	// Generic message regardless of cause to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.issueSession(user)
}

// issueSession mints the access/refresh token pair for a live account.
func (service *Service) issueSession(user *User) (*Session, error) {
	identity := user.Identity()

	accessToken, err := service.tokens.Sign(identity, sec.PurposeAccess, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokens.Sign(identity, sec.PurposeRefresh, RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// # Session Management

/*
Refresh mints a new access token from a valid refresh token.

Description: The new access token carries the subject/email/role/region
claims read from the refresh token's payload, without a store read. A role
change therefore only takes effect once the refresh token itself is reissued
at the next login.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - string: Newly signed access token
  - error: sec.ErrInvalidToken for any verification failure
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (string, error) {
	claims, err := service.tokens.Verify(refreshToken, sec.PurposeRefresh)
	if err != nil {
		return "", sec.ErrInvalidToken
	}

	accessToken, err := service.tokens.Sign(claims.Identity(), sec.PurposeAccess, AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	return accessToken, nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Signs a short-lived reset-purpose token for the account.
NOTE: an unknown email returns an empty token and no error to prevent user
enumeration; callers respond identically either way.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Signed reset token, or "" when the email is unknown
  - error: Signing errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil || !user.IsActive {
		return "", nil
	}

	token, err := service.tokens.Sign(user.Identity(), sec.PurposeReset, ResetTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_reset_token_failed: %w", err)
	}

	// TODO: deliver the token over email once the notification worker lands.
	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the reset-purpose token, burns it through the
single-use guard, and replaces the stored password hash. Existing sessions
stay valid; tokens are stateless and cannot be revoked.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: Validation (invalid/expired/replayed token) or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	claims, err := service.tokens.Verify(token, sec.PurposeReset)
	if err != nil {
		// One generic message for forged, expired, and malformed tokens alike.
		return apperr.Validation("Invalid token or server error")
	}

	used, err := service.resetGuard.Consume(context, sec.HashToken(token), ResetTokenTTL)
	if err != nil {
		return fmt.Errorf("auth_service_reset_guard_failed: %w", err)
	}
	if used {
		return apperr.Validation("Invalid token or server error")
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return apperr.Validation("Invalid token or server error")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	return nil
}

/*
ChangePassword allows an authenticated user to update their credentials.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: Unauthorized (wrong current password) or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	return nil
}

// # Profile Management

// UpdateProfileInput holds the self-service mutable fields.
type UpdateProfileInput struct {
	FullName  *string
	AvatarURL *string
}

/*
UpdateProfile modifies the caller's own profile fields.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *User: Updated entity
  - error: NotFound or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Administrative Management

// AdminUpdateInput holds the fields an administrator may change on any account.
type AdminUpdateInput struct {
	Role       *string
	ProvinceID *string
	MarketID   *string
	IsActive   *bool
}

/*
ListUsers returns a page of accounts for administrative review.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*User: Page of accounts
  - int: Unpaged total
  - error: Storage failures
*/
func (service *Service) ListUsers(context context.Context, filter Filter, limit, offset int) ([]*User, int, error) {
	if filter.Role != "" && !sec.ValidRole(filter.Role) {
		return nil, 0, apperr.Validation("Unknown role", apperr.FieldError{
			Field: FieldRole, Message: "Must be one of: user, collector, moderator, admin",
		})
	}
	return service.userRepository.List(context, filter, limit, offset)
}

/*
UpdateUser applies administrative changes to an account: role promotion,
region assignment, activation and deactivation.

Parameters:
  - context: context.Context
  - userID: string
  - input: AdminUpdateInput

Returns:
  - *User: Updated entity
  - error: Validation, NotFound, or storage failures
*/
func (service *Service) UpdateUser(context context.Context, userID string, input AdminUpdateInput) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		if !sec.ValidRole(*input.Role) {
			return nil, apperr.Validation("Unknown role", apperr.FieldError{
				Field: FieldRole, Message: "Must be one of: user, collector, moderator, admin",
			})
		}
		user.Role = sec.Role(*input.Role)
	}
	if input.ProvinceID != nil {
		user.ProvinceID = nilIfEmpty(*input.ProvinceID)
	}
	if input.MarketID != nil {
		user.MarketID = nilIfEmpty(*input.MarketID)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser returns a single account by ID.
func (service *Service) GetUser(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

func nilIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// compile-time contract checks
var (
	_ UserRepository = (*PostgresUserRepository)(nil)
	_ ResetGuard     = (*RedisResetGuard)(nil)
	_ TokenSigner    = (*sec.TokenService)(nil)
)
