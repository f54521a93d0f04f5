package workflow

import (
	"sync"
	"time"

	"BazaarBot/bot/i18n"
)

// PendingReceipt records that an order is waiting for a payment-proof
// photo from its buyer. Receipt arrival is decoupled in time from any
// chat turn, so these live outside the step sequencer.
type PendingReceipt struct {
	OrderID   string
	UserID    int64
	ChatID    int64
	Lang      i18n.Lang
	CreatedAt time.Time
}

// ReceiptRegistry tracks pending receipts, at most one resolution each.
type ReceiptRegistry struct {
	mu      sync.Mutex
	pending map[string]*PendingReceipt
}

// NewReceiptRegistry creates an empty registry.
func NewReceiptRegistry() *ReceiptRegistry {
	return &ReceiptRegistry{
		pending: make(map[string]*PendingReceipt),
	}
}

// Register records that orderID awaits a receipt from userID. A repeated
// registration for the same order overwrites the earlier entry.
func (r *ReceiptRegistry) Register(orderID string, userID, chatID int64, lang i18n.Lang) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending[orderID] = &PendingReceipt{
		OrderID:   orderID,
		UserID:    userID,
		ChatID:    chatID,
		Lang:      lang,
		CreatedAt: time.Now(),
	}
}

// FindByUser scans for a pending receipt owned by userID. The linear scan
// is fine at this cardinality: one open payment per active buyer.
func (r *ReceiptRegistry) FindByUser(userID int64) *PendingReceipt {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.pending {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// Resolve removes the entry for orderID and reports whether it was still
// pending. A second photo racing the first loses here and is treated as
// an ordinary unmatched message by the caller.
func (r *ReceiptRegistry) Resolve(orderID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pending[orderID]; !ok {
		return false
	}
	delete(r.pending, orderID)
	return true
}

// Sweep removes entries older than ttl and returns how many were dropped.
func (r *ReceiptRegistry) Sweep(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	removed := 0
	for orderID, p := range r.pending {
		if now.Sub(p.CreatedAt) > ttl {
			delete(r.pending, orderID)
			removed++
		}
	}
	return removed
}

// Len reports the number of unresolved entries.
func (r *ReceiptRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pending)
}
