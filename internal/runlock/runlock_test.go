package runlock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	held   map[string]interface{}
	ttls   map[string]time.Duration
	err    error
	closed bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{held: map[string]interface{}{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.held[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.held[key] = value
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestAcquire(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()
	l := newLocker(fc)

	ok, err := l.Acquire(ctx, "usage-reset:2025-03-01", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Hour, fc.ttls["usage-reset:2025-03-01"])
	assert.Equal(t, l.owner, fc.held["usage-reset:2025-03-01"])

	ok, err = l.Acquire(ctx, "usage-reset:2025-03-01", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Acquire(ctx, "usage-reset:2025-03-02", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	l.Close()
	assert.True(t, fc.closed)
}

func TestAcquireError(t *testing.T) {
	fc := newFakeClient()
	fc.err = errors.New("connection refused")
	l := newLocker(fc)

	ok, err := l.Acquire(context.Background(), "usage-reset:2025-03-01", time.Hour)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewInvalidURL(t *testing.T) {
	_, err := New(context.Background(), Config{URL: "not a url"})
	assert.Error(t, err)
}
