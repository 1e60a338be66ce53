package model

import (
	"time"

	"github.com/google/uuid"
)

// Change records one observed field-level difference. Field is a dotted
// path for nested values (e.g. "timeline.start"). For record collections
// (documents, photos, inspections) old/new hold item counts, not items.
type Change struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

// AuditEntry is one immutable, actor-attributed record of a diff applied
// to an entity. Histories store entries newest-first; the ordering is
// load-bearing for history display and "latest change" derivations.
type AuditEntry struct {
	ID       uuid.UUID `json:"id"`
	EditedAt time.Time `json:"editedAt"`
	EditedBy string    `json:"editedBy"` // Display name at edit time
	UserID   uuid.UUID `json:"userId"`
	Changes  []Change  `json:"changes"`
}

// AuditHistory is an entity's edit history, newest entry at index 0.
// Stored as a jsonb column on the owning row.
type AuditHistory []AuditEntry
