package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"spotguide/internal/storage"
	redisstorage "spotguide/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hashKey = "photo:reserve:hash:abc123"
	pathKey = "photo:reserve:path:sunset.jpg"
	ttl     = 30 * time.Second
)

func TestReservationLocker_Acquire(t *testing.T) {
	ctx := context.Background()

	t.Run("locks all keys and releases them", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		locker := redisstorage.NewReservationLocker(db, ttl)

		mock.Regexp().ExpectSetNX(hashKey, `.+`, ttl).SetVal(true)
		mock.Regexp().ExpectSetNX(pathKey, `.+`, ttl).SetVal(true)
		mock.Regexp().ExpectEvalSha(`[0-9a-f]+`, []string{hashKey}, `.+`).SetVal(int64(1))
		mock.Regexp().ExpectEvalSha(`[0-9a-f]+`, []string{pathKey}, `.+`).SetVal(int64(1))

		release, err := locker.Acquire(ctx, "hash:abc123", "path:sunset.jpg")
		require.NoError(t, err)

		release(ctx)
		release(ctx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("taken key releases what was already held", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		locker := redisstorage.NewReservationLocker(db, ttl)

		mock.Regexp().ExpectSetNX(hashKey, `.+`, ttl).SetVal(true)
		mock.Regexp().ExpectSetNX(pathKey, `.+`, ttl).SetVal(false)
		mock.Regexp().ExpectEvalSha(`[0-9a-f]+`, []string{hashKey}, `.+`).SetVal(int64(1))

		release, err := locker.Acquire(ctx, "hash:abc123", "path:sunset.jpg")
		assert.ErrorIs(t, err, storage.ErrLockNotHeld)
		assert.Nil(t, release)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		locker := redisstorage.NewReservationLocker(db, ttl)

		mock.Regexp().ExpectSetNX(hashKey, `.+`, ttl).SetErr(errors.New("connection refused"))

		_, err := locker.Acquire(ctx, "hash:abc123")
		assert.ErrorContains(t, err, "connection refused")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
