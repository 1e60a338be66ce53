package changetrack

import (
	"time"

	"heritageportal/internal/model"

	"github.com/google/uuid"
)

// Record builds one audit entry from the given changes and prepends it to
// history (newest-first invariant). Pure: neither input is mutated, and
// an empty change set returns the history untouched so callers can skip
// persistence entirely.
func Record(history model.AuditHistory, changes []model.Change, actor model.Actor, now time.Time) model.AuditHistory {
	if len(changes) == 0 {
		return history
	}

	entry := model.AuditEntry{
		ID:       uuid.New(),
		EditedAt: now,
		EditedBy: actor.Name,
		UserID:   actor.ID,
		Changes:  changes,
	}

	out := make(model.AuditHistory, 0, len(history)+1)
	out = append(out, entry)
	out = append(out, history...)
	return out
}
