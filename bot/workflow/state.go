package workflow

import (
	"time"

	"BazaarBot/bot/i18n"
)

// SessionState is the in-progress draft of one wizard run. It is the
// single source of truth for "what are we waiting for from this user":
// there are no transient per-message listeners anywhere else.
type SessionState struct {
	Owner       OwnerKey
	ChatID      int64
	WorkflowID  WorkflowID
	CurrentStep StepID
	Lang        i18n.Lang
	Data        map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSessionState creates a fresh session positioned at the initial step.
// The locale is frozen here and never changes mid-session.
func NewSessionState(owner OwnerKey, chatID int64, workflowID WorkflowID, initialStep StepID, lang i18n.Lang) *SessionState {
	now := time.Now()
	return &SessionState{
		Owner:       owner,
		ChatID:      chatID,
		WorkflowID:  workflowID,
		CurrentStep: initialStep,
		Lang:        lang,
		Data:        make(map[string]any),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// GetString retrieves a string value from the draft.
func (s *SessionState) GetString(key string) string {
	if v, ok := s.Data[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// GetInt64 retrieves an integer value from the draft.
func (s *SessionState) GetInt64(key string) int64 {
	if v, ok := s.Data[key]; ok {
		switch val := v.(type) {
		case int:
			return int64(val)
		case int64:
			return val
		case float64:
			return int64(val)
		}
	}
	return 0
}

// GetInt retrieves an integer value from the draft.
func (s *SessionState) GetInt(key string) int {
	return int(s.GetInt64(key))
}

// GetBytes retrieves a binary blob (e.g. a downloaded photo) from the draft.
func (s *SessionState) GetBytes(key string) []byte {
	if v, ok := s.Data[key]; ok {
		if b, ok := v.([]byte); ok {
			return b
		}
	}
	return nil
}

// Set stores one field of the draft. Fields are only ever appended or
// overwritten; cross-field validation happens at the terminal step.
func (s *SessionState) Set(key string, value any) {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// MergeData merges additional fields into the draft.
func (s *SessionState) MergeData(data map[string]any) {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	for k, v := range data {
		s.Data[k] = v
	}
}

// IdleSince reports how long ago the session was last touched.
func (s *SessionState) IdleSince(now time.Time) time.Duration {
	return now.Sub(s.UpdatedAt)
}
