package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked until ttl elapses", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		now := time.Now()
		bl.now = func() time.Time { return now }

		require.NoError(t, bl.Revoke(ctx, "jti-1", time.Minute))

		revoked, err := bl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		bl.now = func() time.Time { return now.Add(2 * time.Minute) }
		revoked, err = bl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
		assert.Empty(t, bl.entries)
	})

	t.Run("unknown jti", func(t *testing.T) {
		revoked, err := NewInMemoryTokenBlacklist().IsRevoked(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("non-positive ttl is ignored", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		require.NoError(t, bl.Revoke(ctx, "jti-2", 0))
		revoked, _ := bl.IsRevoked(ctx, "jti-2")
		assert.False(t, revoked)
	})
}
