package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionStore struct {
	values map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{values: map[string]string{}}
}

func (f *fakeSessionStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeSessionStore) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", redislib.Nil
}

func (f *fakeSessionStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

type fakeKeyer struct{}

func (fakeKeyer) AccessSessionKey(accessID string) string {
	return "bf:session:access:" + accessID
}

func newTestManager() (*Manager, *fakeSessionStore) {
	store := newFakeSessionStore()
	return &Manager{store: store, keyer: fakeKeyer{}, ttl: time.Hour}, store
}

func TestGenerateAndHasSession(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	token, err := m.Generate(ctx, "access-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	ok, err := m.HasSession(ctx, "access-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.HasSession(ctx, "access-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRotateInvalidatesOldSession(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	token, err := m.Generate(ctx, "access-1")
	require.NoError(t, err)

	newAccessID, newToken, err := m.Rotate(ctx, "access-1", token)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccessID)
	assert.NotEqual(t, token, newToken)

	ok, err := m.HasSession(ctx, "access-1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.HasSession(ctx, newAccessID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRotateRejectsWrongToken(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	_, err := m.Generate(ctx, "access-1")
	require.NoError(t, err)

	_, _, err = m.Rotate(ctx, "access-1", "not-the-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, _, err = m.Rotate(ctx, "missing", "whatever")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevoke(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	_, err := m.Generate(ctx, "access-1")
	require.NoError(t, err)
	require.NoError(t, m.Revoke(ctx, "access-1"))

	ok, err := m.HasSession(ctx, "access-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
