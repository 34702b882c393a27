package locker

import (
	"context"
	"testing"
	"time"

	redisRepo "clinicbook-service/internal/app/services/shared/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLockService(t *testing.T) (*miniredis.Miniredis, *lockService) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, &lockService{
		redisRepo: redisRepo.NewRedisRepository(client),
		Log:       zap.NewNop(),
	}
}

func TestLockService_TryLock(t *testing.T) {
	_, svc := newTestLockService(t)
	ctx := context.Background()

	t.Run("First Caller Wins", func(t *testing.T) {
		acquired, lockValue, err := svc.TryLock(ctx, "lock:slot-1", time.Minute)

		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, lockValue)
	})

	t.Run("Second Caller Loses", func(t *testing.T) {
		acquired, lockValue, err := svc.TryLock(ctx, "lock:slot-1", time.Minute)

		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, lockValue)
	})
}

func TestLockService_Unlock(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Can Unlock", func(t *testing.T) {
		_, svc := newTestLockService(t)
		_, lockValue, err := svc.TryLock(ctx, "lock:slot-1", time.Minute)
		require.NoError(t, err)

		require.NoError(t, svc.Unlock(ctx, "lock:slot-1", lockValue))

		acquired, _, err := svc.TryLock(ctx, "lock:slot-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired, "the key should be free after unlock")
	})

	t.Run("Non Owner Cannot Unlock", func(t *testing.T) {
		_, svc := newTestLockService(t)
		_, _, err := svc.TryLock(ctx, "lock:slot-1", time.Minute)
		require.NoError(t, err)

		err = svc.Unlock(ctx, "lock:slot-1", "some-other-value")
		assert.Error(t, err)

		acquired, _, err := svc.TryLock(ctx, "lock:slot-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, acquired, "the lock must survive a foreign unlock attempt")
	})

	t.Run("Unlock Of Expired Lock Is A Noop", func(t *testing.T) {
		mr, svc := newTestLockService(t)
		_, lockValue, err := svc.TryLock(ctx, "lock:slot-1", time.Minute)
		require.NoError(t, err)

		mr.FastForward(2 * time.Minute)

		assert.NoError(t, svc.Unlock(ctx, "lock:slot-1", lockValue))
	})
}
