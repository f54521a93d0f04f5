package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type sessionKey struct {
	owner      OwnerKey
	workflowID WorkflowID
}

// MemoryStore is the in-process SessionStore. Handlers run on dispatcher
// goroutines, so every access goes through the mutex.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[sessionKey]*SessionState
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[sessionKey]*SessionState),
	}
}

// Save stores the session. Last writer wins: a second Start of the same
// workflow for the same owner silently discards the earlier draft.
func (m *MemoryStore) Save(_ context.Context, state *SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state.UpdatedAt = time.Now()
	m.sessions[sessionKey{owner: state.Owner, workflowID: state.WorkflowID}] = state
	return nil
}

// Get retrieves the session for an exact (owner, workflow) key, or nil.
func (m *MemoryStore) Get(_ context.Context, owner OwnerKey, workflowID WorkflowID) (*SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sessions[sessionKey{owner: owner, workflowID: workflowID}], nil
}

// FindByUser returns the active session owned by userID, or nil. When the
// user holds both an entity-scoped and a plain session, the entity-scoped
// one wins: it is the more specific dialog.
func (m *MemoryStore) FindByUser(_ context.Context, userID int64) (*SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var plain *SessionState
	for key, state := range m.sessions {
		if key.owner.UserID != userID {
			continue
		}
		if key.owner.EntityID != "" {
			return state, nil
		}
		plain = state
	}
	return plain, nil
}

// Delete removes a session. Removing an absent session is a no-op.
func (m *MemoryStore) Delete(_ context.Context, owner OwnerKey, workflowID WorkflowID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionKey{owner: owner, workflowID: workflowID})
	return nil
}

// Sweep removes sessions idle longer than ttl and returns how many were
// dropped. Abandoned wizards would otherwise live forever.
func (m *MemoryStore) Sweep(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, state := range m.sessions {
		if state.IdleSince(now) > ttl {
			delete(m.sessions, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// RunJanitor sweeps the store every interval until ctx is done.
func (m *MemoryStore) RunJanitor(ctx context.Context, ttl, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := m.Sweep(ttl); removed > 0 {
				log.Debug("swept stale sessions", slog.Int("removed", removed))
			}
		}
	}
}
