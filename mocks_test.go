package finpulse_test

import (
	"context"

	"github.com/finpulse/finpulse"
	"github.com/stretchr/testify/mock"
)

// TestIdentity is a simple implementation of Identity for tests
type TestIdentity struct {
	id        string
	name      string
	email     string
	onboarded bool
}

func (t TestIdentity) ID() string      { return t.id }
func (t TestIdentity) Name() string    { return t.name }
func (t TestIdentity) Email() string   { return t.email }
func (t TestIdentity) Onboarded() bool { return t.onboarded }

// MockIdentityProvider implements finpulse.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (finpulse.Identity, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(finpulse.Identity), args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (finpulse.Identity, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(finpulse.Identity), args.Error(1)
}

// MockUserStore implements finpulse.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*finpulse.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finpulse.User), args.Error(1)
}

func (m *MockUserStore) GetByUserID(ctx context.Context, id string) (*finpulse.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finpulse.User), args.Error(1)
}

// MockActivitySink records events for assertions
type MockActivitySink struct {
	Events []finpulse.ActivityEvent
}

func (m *MockActivitySink) Record(_ context.Context, event finpulse.ActivityEvent) error {
	m.Events = append(m.Events, event)
	return nil
}

// MockConfig implements finpulse.Config
type MockConfig struct {
	mock.Mock
}

func (m *MockConfig) GetSigningKey() string           { return m.Called().String(0) }
func (m *MockConfig) GetSigningMethod() string        { return m.Called().String(0) }
func (m *MockConfig) GetContextKey() string           { return m.Called().String(0) }
func (m *MockConfig) GetTokenExpiration() int         { return m.Called().Int(0) }
func (m *MockConfig) GetExtendedTokenDuration() int   { return m.Called().Int(0) }
func (m *MockConfig) GetTokenLookup() string          { return m.Called().String(0) }
func (m *MockConfig) GetAuthScheme() string           { return m.Called().String(0) }
func (m *MockConfig) GetIssuer() string               { return m.Called().String(0) }
func (m *MockConfig) GetAudience() []string           { return m.Called().Get(0).([]string) }
func (m *MockConfig) GetRejectedRouteKey() string     { return m.Called().String(0) }
func (m *MockConfig) GetRejectedRouteDefault() string { return m.Called().String(0) }

func newMockConfig() *MockConfig {
	mockConfig := new(MockConfig)
	mockConfig.On("GetSigningKey").Return("test-signing-key")
	mockConfig.On("GetSigningMethod").Return("HS256")
	mockConfig.On("GetContextKey").Return("finpulse_session")
	mockConfig.On("GetTokenExpiration").Return(24)
	mockConfig.On("GetExtendedTokenDuration").Return(72)
	mockConfig.On("GetTokenLookup").Return("cookie:finpulse_session,header:Authorization")
	mockConfig.On("GetAuthScheme").Return("Bearer")
	mockConfig.On("GetIssuer").Return("test-issuer")
	mockConfig.On("GetAudience").Return([]string{"test:audience"})
	mockConfig.On("GetRejectedRouteKey").Return("finpulse_redirect")
	mockConfig.On("GetRejectedRouteDefault").Return("/dashboard")
	return mockConfig
}
