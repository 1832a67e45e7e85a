package runs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// AuditLogger records run lifecycle entries.
type AuditLogger interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditEntry captures one lifecycle transition for the audit trail.
type AuditEntry struct {
	RunID      string    `json:"run_id"`
	Status     Status    `json:"status"`
	Actor      string    `json:"actor,omitempty"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SlogAudit writes audit entries through a structured logger. A nil logger
// uses slog.Default.
type SlogAudit struct {
	Logger *slog.Logger
}

// Record implements AuditLogger.
func (a SlogAudit) Record(ctx context.Context, entry AuditEntry) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []slog.Attr{
		slog.String("run_id", entry.RunID),
		slog.String("status", string(entry.Status)),
	}
	if entry.Actor != "" {
		attrs = append(attrs, slog.String("actor", entry.Actor))
	}
	if entry.Note != "" {
		attrs = append(attrs, slog.String("note", entry.Note))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "run", attrs...)
}

// MemoryAudit collects audit entries in memory for assertions.
type MemoryAudit struct {
	mu      sync.Mutex
	entries []AuditEntry
}

// Record stores an audit entry.
func (l *MemoryAudit) Record(_ context.Context, entry AuditEntry) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Entries returns a copy of recorded entries in arrival order.
func (l *MemoryAudit) Entries() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AuditEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
