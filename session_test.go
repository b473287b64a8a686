package finpulse_test

import (
	"testing"
	"time"

	"github.com/finpulse/finpulse"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionObject(t *testing.T) {
	id := uuid.New()
	issuedAt := time.Now().Add(-time.Minute)

	session := &finpulse.SessionObject{
		UserID:    id.String(),
		Name:      "Session User",
		Email:     "session@example.com",
		Onboarded: true,
		Audience:  []string{"test:audience"},
		Issuer:    "test-issuer",
		IssuedAt:  &issuedAt,
	}

	assert.Equal(t, id.String(), session.GetUserID())
	assert.Equal(t, "Session User", session.GetUserName())
	assert.Equal(t, "session@example.com", session.GetEmail())
	assert.True(t, session.GetOnboarded())
	assert.Equal(t, []string{"test:audience"}, session.GetAudience())
	assert.Equal(t, "test-issuer", session.GetIssuer())
	assert.Equal(t, &issuedAt, session.GetIssuedAt())

	parsed, err := session.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestSessionObjectUUIDParseError(t *testing.T) {
	session := &finpulse.SessionObject{UserID: "not-a-uuid"}

	_, err := session.GetUserUUID()
	assert.Error(t, err)
}

func TestSessionFromValidatedToken(t *testing.T) {
	provider := new(MockIdentityProvider)
	auther := finpulse.NewAuthenticator(provider, newMockConfig())

	identity := TestIdentity{
		id:        uuid.New().String(),
		name:      "Token User",
		email:     "token@example.com",
		onboarded: false,
	}

	token, err := auther.TokenService().Generate(identity)
	require.NoError(t, err)

	session, err := auther.SessionFromToken(token)
	require.NoError(t, err)

	assert.Equal(t, identity.ID(), session.GetUserID())
	assert.Equal(t, "Token User", session.GetUserName())
	assert.Equal(t, "token@example.com", session.GetEmail())
	assert.False(t, session.GetOnboarded())
	assert.Equal(t, "test-issuer", session.GetIssuer())
	assert.Equal(t, []string{"test:audience"}, session.GetAudience())
	require.NotNil(t, session.GetIssuedAt())
	assert.WithinDuration(t, time.Now(), *session.GetIssuedAt(), time.Minute)
}
