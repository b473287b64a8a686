package finpulse

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RouteAuthenticator glues the Authenticator and the Gate to fiber: it
// mints and clears the session cookie, and runs the per-request decision
// procedure as middleware.
type RouteAuthenticator struct {
	auth                   Authenticator
	cfg                    Config
	gate                   *Gate
	cookieDuration         time.Duration
	extendedCookieDuration time.Duration
	Logger                 Logger
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config, gate *Gate) (*RouteAuthenticator, error) {
	cookieDuration := 24 * time.Hour
	if cfg.GetTokenExpiration() > 0 {
		cookieDuration = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	extendedCookieDuration := cookieDuration
	if cfg.GetExtendedTokenDuration() > 0 {
		extendedCookieDuration = time.Duration(cfg.GetExtendedTokenDuration()) * time.Hour
	}

	return &RouteAuthenticator{
		cfg:                    cfg,
		auth:                   auther,
		gate:                   gate,
		Logger:                 defLogger{},
		cookieDuration:         cookieDuration,
		extendedCookieDuration: extendedCookieDuration,
	}, nil
}

func (a *RouteAuthenticator) WithLogger(logger Logger) *RouteAuthenticator {
	a.Logger = logger
	return a
}

func (a RouteAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

func (a RouteAuthenticator) GetExtendedCookieDuration() time.Duration {
	return a.extendedCookieDuration
}

// Login authenticates the payload and, on success, sets the session cookie
func (a *RouteAuthenticator) Login(c *fiber.Ctx, payload LoginPayload) error {
	token, err := a.auth.Login(c.UserContext(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("Login error", "error", err)
		return err
	}

	duration := a.cookieDuration
	if payload.GetExtendedSession() {
		duration = a.extendedCookieDuration
	}

	a.setCookieToken(c, token, duration)
	return nil
}

func (a *RouteAuthenticator) Logout(c *fiber.Ctx) {
	a.cookieDel(c, a.cfg.GetContextKey())
}

// SessionGate is the per-request authorization middleware. It resolves the
// session from the request token (an invalid token is the same as no
// token), opportunistically refreshes the onboarded flag, evaluates the
// gate, and either redirects or stores the session for handlers.
func (a *RouteAuthenticator) SessionGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Assign through the interface only for a live session; a typed
		// nil pointer would make the gate see a non-nil session.
		var session Session
		if resolved := a.resolveSession(c); resolved != nil {
			session = resolved
		}

		decision := a.gate.Evaluate(c.Path(), session)
		if !decision.Allowed() {
			if session == nil && decision.Target == a.gate.Routes().Login {
				a.SetRedirect(c)
			}
			return a.redirect(c, decision.Target)
		}

		if session != nil {
			c.Locals(a.cfg.GetContextKey(), session)
			c.SetUserContext(WithSessionContext(c.UserContext(), session))
		}

		return c.Next()
	}
}

// resolveSession turns the request token into a session, or nil for
// anonymous. Expired and malformed tokens are cleared and treated as
// anonymous, never surfaced as errors.
func (a *RouteAuthenticator) resolveSession(c *fiber.Ctx) *SessionObject {
	raw := a.extractToken(c)
	if raw == "" {
		return nil
	}

	claims, err := a.auth.TokenService().Validate(raw)
	if err != nil {
		switch {
		case IsTokenExpiredError(err):
			a.Logger.Info("session token expired", "path", c.Path())
		case IsMalformedError(err):
			a.Logger.Info("session token malformed", "path", c.Path())
		default:
			a.Logger.Info("session token rejected", "error", err, "path", c.Path())
		}
		a.cookieDel(c, a.cfg.GetContextKey())
		return nil
	}

	jwtClaims, ok := claims.(*JWTClaims)
	if !ok {
		return nil
	}

	if !jwtClaims.Onboarded {
		jwtClaims = a.refreshOnboarded(c, jwtClaims)
	}

	session, err := sessionFromAuthClaims(jwtClaims)
	if err != nil {
		return nil
	}

	return session
}

// refreshOnboarded performs the one extra read for tokens still marked as
// not onboarded and re-signs the cookie when the store says the user
// finished onboarding. A failed lookup leaves the embedded value alone.
func (a *RouteAuthenticator) refreshOnboarded(c *fiber.Ctx, claims *JWTClaims) *JWTClaims {
	refreshed, changed := a.auth.RefreshOnboarded(c.UserContext(), claims)
	if !changed {
		return claims
	}

	signed, err := a.auth.TokenService().SignClaims(refreshed)
	if err != nil {
		a.Logger.Warn("could not re-sign refreshed token", "error", err)
		return refreshed
	}

	// Keep the original expiry: the refreshed cookie outlives this request
	// only as long as the token itself does.
	a.setCookieToken(c, signed, time.Until(refreshed.Expires()))

	return refreshed
}

func (a *RouteAuthenticator) redirect(c *fiber.Ctx, target string) error {
	statusCode := fiber.StatusSeeOther
	if c.Method() == fiber.MethodGet {
		statusCode = fiber.StatusFound
	}
	return c.Redirect(target, statusCode)
}

// extractToken honors the configured token lookup, trying each source in
// order: "cookie:<name>,header:<name>".
func (a *RouteAuthenticator) extractToken(c *fiber.Ctx) string {
	lookup := a.cfg.GetTokenLookup()
	if lookup == "" {
		lookup = "cookie:" + a.cfg.GetContextKey()
	}

	for _, source := range strings.Split(lookup, ",") {
		parts := strings.SplitN(strings.TrimSpace(source), ":", 2)
		if len(parts) != 2 {
			continue
		}

		var raw string
		switch parts[0] {
		case "cookie":
			raw = c.Cookies(parts[1])
		case "header":
			raw = c.Get(parts[1])
			scheme := a.cfg.GetAuthScheme()
			if scheme != "" && strings.HasPrefix(raw, scheme+" ") {
				raw = strings.TrimPrefix(raw, scheme+" ")
			}
		}

		if raw != "" {
			return raw
		}
	}

	return ""
}

// GetRedirect returns the path the user originally asked for, falling back
// to the given default, and clears the marker cookie.
func (a *RouteAuthenticator) GetRedirect(c *fiber.Ctx, def ...string) string {
	rejectedRoute := a.cfg.GetRejectedRouteKey()
	r := c.Cookies(rejectedRoute)
	if r == "" {
		if len(def) > 0 {
			return def[0]
		}
		return a.cfg.GetRejectedRouteDefault()
	}
	a.cookieDel(c, rejectedRoute)
	return r
}

// SetRedirect remembers the rejected path so a later login can resume there
func (a *RouteAuthenticator) SetRedirect(c *fiber.Ctx) {
	rejectedRoute := a.cfg.GetRejectedRouteKey()

	c.Cookie(&fiber.Cookie{
		Name:     rejectedRoute,
		Value:    c.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) setCookieToken(c *fiber.Ctx, val string, duration time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cfg.GetContextKey(),
		Value:    val,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) cookieDel(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

// SessionFromLocals retrieves the session the gate stored for this request
func SessionFromLocals(c *fiber.Ctx, key string) (*SessionObject, error) {
	v := c.Locals(key)
	if v == nil {
		return nil, ErrUnableToFindSession
	}

	session, ok := v.(*SessionObject)
	if !ok {
		return nil, ErrUnableToDecodeSession
	}

	return session, nil
}
