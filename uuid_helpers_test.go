package finpulse_test

import (
	"testing"

	"github.com/finpulse/finpulse"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHasUserUUID(t *testing.T) {
	t.Run("uuid subject", func(t *testing.T) {
		session := &finpulse.SessionObject{
			UserID: uuid.NewString(),
		}

		assert.True(t, finpulse.HasUserUUID(session))
	})

	t.Run("opaque subject", func(t *testing.T) {
		session := &finpulse.SessionObject{
			UserID: "demo|1234567890",
		}

		assert.False(t, finpulse.HasUserUUID(session))
	})

	t.Run("nil session", func(t *testing.T) {
		assert.False(t, finpulse.HasUserUUID(nil))
	})
}
