package finpulse

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found")

// ErrUnableToFindSession is the error when our request has no cookie
var ErrUnableToFindSession = errors.New("unable to find session")

// ErrUnableToDecodeSession unable to decode JWT from session cookie
var ErrUnableToDecodeSession = errors.New("unable to decode session")

// ErrUnableToParseData parse error
var ErrUnableToParseData = errors.New("unable to parse data")

// ErrNoEmptyString guards against hashing empty passwords
var ErrNoEmptyString = errors.New("password should not be empty")

// ErrMismatchedHashAndPassword is the internal bcrypt mismatch signal
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password")

// ErrInvalidCredentials is the single outward login failure. Unknown email,
// wrong password, and a failed store lookup all collapse to this value so
// callers cannot enumerate accounts.
var ErrInvalidCredentials = goerrors.New("invalid email or password", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrTokenExpired marks a session token past its expiry; callers treat it
// as an anonymous request.
var ErrTokenExpired = goerrors.New("session token expired", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed marks a token that failed signature or shape checks;
// callers treat it as an anonymous request.
var ErrTokenMalformed = goerrors.New("session token malformed", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrStorageUnavailable wraps user store failures. Login fails closed on it;
// the onboarded refresh fails open on the already embedded flag.
var ErrStorageUnavailable = goerrors.New("user store unavailable", goerrors.CategoryInternal).
	WithTextCode("STORAGE_UNAVAILABLE")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == ErrTokenMalformed.TextCode {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
