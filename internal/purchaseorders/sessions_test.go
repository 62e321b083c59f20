package purchaseorders

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
)

func TestRegistryCreateAndGet(t *testing.T) {
	reg := NewSessionRegistry(time.Hour)
	owner := uuid.New()

	draft := reg.Create(owner)
	got, err := reg.Get(draft.ID, owner)
	require.NoError(t, err)
	require.Same(t, draft, got)
}

func TestRegistryHidesForeignDrafts(t *testing.T) {
	reg := NewSessionRegistry(time.Hour)
	draft := reg.Create(uuid.New())

	_, err := reg.Get(draft.ID, uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRegistryExpiresDrafts(t *testing.T) {
	reg := NewSessionRegistry(time.Minute)
	now := time.Now()
	reg.now = func() time.Time { return now }

	owner := uuid.New()
	draft := reg.Create(owner)

	now = now.Add(2 * time.Minute)
	_, err := reg.Get(draft.ID, owner)
	require.Error(t, err)

	require.Equal(t, 1, reg.Sweep())
	require.Equal(t, 0, reg.Sweep())
}

func TestRegistryGetExtendsExpiry(t *testing.T) {
	reg := NewSessionRegistry(time.Minute)
	now := time.Now()
	reg.now = func() time.Time { return now }

	owner := uuid.New()
	draft := reg.Create(owner)

	now = now.Add(45 * time.Second)
	_, err := reg.Get(draft.ID, owner)
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	_, err = reg.Get(draft.ID, owner)
	require.NoError(t, err, "activity keeps the session alive")
}

func TestRegistryConcurrentGetsRenewSafely(t *testing.T) {
	reg := NewSessionRegistry(time.Minute)
	owner := uuid.New()
	draft := reg.Create(owner)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := reg.Get(draft.ID, owner)
				require.NoError(t, err)
				require.Same(t, draft, got)
				reg.Sweep()
			}
		}()
	}
	wg.Wait()

	_, err := reg.Get(draft.ID, owner)
	require.NoError(t, err)
}

func TestRegistryDiscardIsIdempotent(t *testing.T) {
	reg := NewSessionRegistry(time.Hour)
	owner := uuid.New()
	draft := reg.Create(owner)

	reg.Discard(draft.ID)
	reg.Discard(draft.ID)

	_, err := reg.Get(draft.ID, owner)
	require.Error(t, err)
}

func TestDraftsAreIsolatedPerSession(t *testing.T) {
	reg := NewSessionRegistry(time.Hour)
	owner := uuid.New()

	first := reg.Create(owner)
	second := reg.Create(owner)

	item := uuid.New()
	require.NoError(t, first.With(func(store *DraftStore, _ *Editor) error {
		return store.UpsertLine(item, 1, price("1.00"))
	}))

	require.NoError(t, second.With(func(store *DraftStore, _ *Editor) error {
		require.Equal(t, 0, store.Len())
		return nil
	}))
}
