package availability

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/brianstm/fithub-orbital25-sub001/internal/schedule"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnalysis() *schedule.PeakAnalysis {
	a := schedule.AnalyzePeakHours(nil, 1)
	a.SampleSize = 42
	return &a
}

func TestCacheGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Hit", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := NewCache(client, 5*time.Minute)

		payload, err := json.Marshal(sampleAnalysis())
		require.NoError(t, err)
		mock.ExpectGet("peakhours:1").SetVal(string(payload))

		got, ok := cache.Get(ctx, 1)

		require.True(t, ok)
		assert.Equal(t, 42, got.SampleSize)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := NewCache(client, 5*time.Minute)

		mock.ExpectGet("peakhours:1").RedisNil()

		_, ok := cache.Get(ctx, 1)
		assert.False(t, ok)
	})

	t.Run("Corrupt payload reads as miss", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := NewCache(client, 5*time.Minute)

		mock.ExpectGet("peakhours:1").SetVal("{not json")

		_, ok := cache.Get(ctx, 1)
		assert.False(t, ok)
	})

	t.Run("Nil cache fails open", func(t *testing.T) {
		var cache *Cache

		_, ok := cache.Get(ctx, 1)
		assert.False(t, ok)
		cache.Set(ctx, 1, sampleAnalysis())
		cache.Invalidate(ctx, 1)
	})
}

func TestCacheSet(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute)

	analysis := sampleAnalysis()
	payload, err := json.Marshal(analysis)
	require.NoError(t, err)

	mock.ExpectSet("peakhours:7", payload, 5*time.Minute).SetVal("OK")

	cache.Set(ctx, 7, analysis)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute)

	mock.ExpectDel("peakhours:7").SetVal(1)

	cache.Invalidate(ctx, 7)

	assert.NoError(t, mock.ExpectationsWereMet())
}
