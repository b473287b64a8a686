package finpulse_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finpulse/finpulse"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type gateFixture struct {
	app      *fiber.App
	auther   *finpulse.Auther
	provider *MockIdentityProvider
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	provider := new(MockIdentityProvider)
	cfg := newMockConfig()
	auther := finpulse.NewAuthenticator(provider, cfg)
	gate := finpulse.NewGate(finpulse.DefaultRoutes())

	httpAuth, err := finpulse.NewHTTPAuthenticator(auther, cfg, gate)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(httpAuth.SessionGate())

	page := func(name string) fiber.Handler {
		return func(c *fiber.Ctx) error {
			return c.SendString(name)
		}
	}

	app.Get("/", page("landing"))
	app.Get("/login", page("login"))
	app.Get("/logout", page("logout"))
	app.Get("/onboarding", page("onboarding"))
	app.Get("/dashboard", page("dashboard"))
	app.Get("/settings", func(c *fiber.Ctx) error {
		session, err := finpulse.SessionFromLocals(c, "finpulse_session")
		if err != nil {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString("settings:" + session.GetUserID())
	})

	return &gateFixture{app: app, auther: auther, provider: provider}
}

func (f *gateFixture) get(t *testing.T, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "finpulse_session", Value: token})
	}

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (f *gateFixture) mintToken(t *testing.T, id string, onboarded bool) string {
	t.Helper()

	token, err := f.auther.TokenService().Generate(TestIdentity{
		id:        id,
		name:      "Gate User",
		email:     "gate@example.com",
		onboarded: onboarded,
	})
	require.NoError(t, err)
	return token
}

func TestSessionGate(t *testing.T) {
	t.Run("anonymous on public path is allowed", func(t *testing.T) {
		f := newGateFixture(t)
		resp := f.get(t, "/login", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("anonymous on protected path redirects to login", func(t *testing.T) {
		f := newGateFixture(t)
		resp := f.get(t, "/dashboard", "")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("invalid token is treated as anonymous", func(t *testing.T) {
		f := newGateFixture(t)
		resp := f.get(t, "/dashboard", "garbage-token")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("anonymous redirect to login remembers the rejected path", func(t *testing.T) {
		f := newGateFixture(t)
		resp := f.get(t, "/reports", "")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))

		marker := responseCookie(resp, "finpulse_redirect")
		require.NotNil(t, marker)
		assert.Equal(t, "/reports", marker.Value)
	})

	t.Run("anonymous on public path leaves no redirect marker", func(t *testing.T) {
		f := newGateFixture(t)
		resp := f.get(t, "/login", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Nil(t, responseCookie(resp, "finpulse_redirect"))
	})

	t.Run("pending user can reach logout", func(t *testing.T) {
		f := newGateFixture(t)
		token := f.mintToken(t, uuid.New().String(), false)
		resp := f.get(t, "/logout", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("authenticated on public path redirects to dashboard", func(t *testing.T) {
		f := newGateFixture(t)
		token := f.mintToken(t, uuid.New().String(), true)
		resp := f.get(t, "/login", token)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})

	t.Run("onboarded user reaches protected pages and handlers see the session", func(t *testing.T) {
		f := newGateFixture(t)
		id := uuid.New().String()
		token := f.mintToken(t, id, true)

		resp := f.get(t, "/settings", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := make([]byte, 256)
		n, _ := resp.Body.Read(body)
		assert.Equal(t, "settings:"+id, string(body[:n]))
	})

	t.Run("pending user on protected path redirects to onboarding", func(t *testing.T) {
		f := newGateFixture(t)
		id := uuid.New().String()
		token := f.mintToken(t, id, false)

		// The refresh consults the store once per request while pending.
		f.provider.On("FindIdentityByIdentifier", mockContext, id).
			Return(TestIdentity{id: id, onboarded: false}, nil).Once()

		resp := f.get(t, "/dashboard", token)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/onboarding", resp.Header.Get("Location"))
	})

	t.Run("pending user reaches the onboarding flow", func(t *testing.T) {
		f := newGateFixture(t)
		id := uuid.New().String()
		token := f.mintToken(t, id, false)

		f.provider.On("FindIdentityByIdentifier", mockContext, id).
			Return(TestIdentity{id: id, onboarded: false}, nil).Once()

		resp := f.get(t, "/onboarding", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("finished onboarding is picked up without a new login", func(t *testing.T) {
		f := newGateFixture(t)
		id := uuid.New().String()
		token := f.mintToken(t, id, false)

		// The store now says onboarded: the gate lets the request through
		// and re-issues the cookie with the refreshed token.
		f.provider.On("FindIdentityByIdentifier", mockContext, id).
			Return(TestIdentity{id: id, onboarded: true}, nil).Once()

		resp := f.get(t, "/dashboard", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		refreshed := sessionCookie(resp)
		require.NotNil(t, refreshed)
		assert.NotEqual(t, token, refreshed.Value)

		claims, err := f.auther.TokenService().Validate(refreshed.Value)
		require.NoError(t, err)
		assert.True(t, claims.IsOnboarded())
	})

	t.Run("refresh failure keeps the embedded flag and still redirects safely", func(t *testing.T) {
		f := newGateFixture(t)
		id := uuid.New().String()
		token := f.mintToken(t, id, false)

		f.provider.On("FindIdentityByIdentifier", mockContext, id).
			Return(nil, assertAnError).Once()

		resp := f.get(t, "/dashboard", token)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/onboarding", resp.Header.Get("Location"))
	})

	t.Run("bearer header works as a token source", func(t *testing.T) {
		f := newGateFixture(t)
		token := f.mintToken(t, uuid.New().String(), true)

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func responseCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name && c.Value != "" {
			return c
		}
	}
	return nil
}

func sessionCookie(resp *http.Response) *http.Cookie {
	return responseCookie(resp, "finpulse_session")
}

var assertAnError = assert.AnError

// mockContext matches any context handed to the provider; fiber builds a
// fresh user context per request so exact matching is not possible.
var mockContext = mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil })
