package audit

import (
	"sync"

	"github.com/darmiel/gatecheck/internal/core"
)

var _ core.Auditor = (*InMemoryAuditor)(nil)

// InMemoryAuditor is an auditor that keeps entries in memory.
type InMemoryAuditor struct {
	mu      sync.Mutex
	entries []core.AuditEntry
}

func NewInMemoryAuditor() *InMemoryAuditor {
	return &InMemoryAuditor{
		entries: make([]core.AuditEntry, 0),
	}
}

func (i *InMemoryAuditor) Log(entry core.AuditEntry) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.entries = append(i.entries, entry)
	return nil
}

// Entries returns a copy of everything logged so far, oldest first.
func (i *InMemoryAuditor) Entries() []core.AuditEntry {
	i.mu.Lock()
	defer i.mu.Unlock()

	entries := make([]core.AuditEntry, len(i.entries))
	copy(entries, i.entries)
	return entries
}

func (i *InMemoryAuditor) Close() error {
	return nil // nothing to close :)
}
