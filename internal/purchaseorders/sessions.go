package purchaseorders

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/logger"
)

// Draft is one editing session: a store, its editor, and the order-level
// fields staged for submission. A draft belongs to the operator who opened
// it and is discarded on submit or expiry.
type Draft struct {
	ID      uuid.UUID
	OwnerID uuid.UUID

	// OrderID is set when the draft was opened to edit a persisted order.
	OrderID *uuid.UUID

	mu     sync.Mutex
	store  *DraftStore
	editor *Editor

	// expiresAt is guarded by the owning registry's mutex, not draft.mu.
	expiresAt time.Time
}

// With runs fn while holding the draft's lock. All store and editor access
// goes through here.
func (d *Draft) With(fn func(store *DraftStore, editor *Editor) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(d.store, d.editor)
}

// SessionRegistry owns the live draft sessions, keyed by draft ID. Drafts
// are never shared across editing sessions.
type SessionRegistry struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*Draft
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionRegistry builds a registry whose drafts expire after ttl.
func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionRegistry{
		drafts: make(map[uuid.UUID]*Draft),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create opens a fresh empty draft owned by the operator.
func (r *SessionRegistry) Create(ownerID uuid.UUID) *Draft {
	store := NewDraftStore()
	draft := &Draft{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		store:     store,
		editor:    NewEditor(store),
		expiresAt: r.now().Add(r.ttl),
	}

	r.mu.Lock()
	r.drafts[draft.ID] = draft
	r.mu.Unlock()
	return draft
}

// Get returns the operator's draft and renews its expiry. Expired or
// foreign drafts read as not found.
func (r *SessionRegistry) Get(draftID, ownerID uuid.UUID) (*Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft, ok := r.drafts[draftID]
	if !ok || r.now().After(draft.expiresAt) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "draft not found")
	}
	if draft.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "draft not found")
	}

	draft.expiresAt = r.now().Add(r.ttl)
	return draft, nil
}

// Discard drops the draft. Discarding an unknown draft is a no-op.
func (r *SessionRegistry) Discard(draftID uuid.UUID) {
	r.mu.Lock()
	delete(r.drafts, draftID)
	r.mu.Unlock()
}

// Sweep removes expired drafts and reports how many were dropped.
func (r *SessionRegistry) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, draft := range r.drafts {
		if now.After(draft.expiresAt) {
			delete(r.drafts, id)
			dropped++
		}
	}
	return dropped
}

// StartSweeper runs Sweep on the interval until the context is done.
func (r *SessionRegistry) StartSweeper(ctx context.Context, interval time.Duration, logg *logger.Logger) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if dropped := r.Sweep(); dropped > 0 && logg != nil {
					swept := logg.WithFields(ctx, map[string]any{"dropped": dropped})
					logg.Info(swept, "draft.sessions.swept")
				}
			}
		}
	}()
}
