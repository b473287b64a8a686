package finpulse

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims is the read surface of the identity claims embedded in a
// session token.
type AuthClaims interface {
	Subject() string
	UserID() string
	UserName() string
	UserEmail() string
	IsOnboarded() bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete claims payload. It is the only claims shape the
// core signs or reads; fields are never injected after issuance, the single
// exception being the monotonic onboarded flip performed by RefreshOnboarded.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID       string `json:"uid,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Onboarded bool   `json:"onboarded"`
}

var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID, falling back to the subject
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// UserName returns the display name
func (c *JWTClaims) UserName() string {
	return c.Name
}

// UserEmail returns the email claim
func (c *JWTClaims) UserEmail() string {
	return c.Email
}

// IsOnboarded reports whether the token says onboarding was completed.
// The value may lag the store while false; it is never stale once true.
func (c *JWTClaims) IsOnboarded() bool {
	return c.Onboarded
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
