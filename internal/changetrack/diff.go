// Package changetrack computes structural diffs between entity snapshots
// and maintains the newest-first audit history built from them.
//
// Comparison is schema driven: every tracked entity has an explicit field
// schema here (scalar, nested leaf, or record collection) instead of a
// generic traversal. Identity and bookkeeping fields (id, created_at,
// updated_at, edit history) are never compared.
package changetrack

import (
	"encoding/json"
	"fmt"
	"time"

	"heritageportal/internal/model"

	"github.com/google/uuid"
)

// collector gathers changes for one diff run, honoring excluded fields.
type collector struct {
	excluded map[string]bool
	changes  []model.Change
}

func newCollector(exclude []string) *collector {
	c := &collector{excluded: make(map[string]bool, len(exclude))}
	for _, f := range exclude {
		c.excluded[f] = true
	}
	return c
}

// scalar compares two leaf values under string normalization: nil
// pointers, zero times and nil uuids all normalize to the empty string,
// so unset-to-unset never reports a change.
func (c *collector) scalar(field string, oldV, newV any) {
	if c.excluded[field] {
		return
	}
	if normalize(oldV) == normalize(newV) {
		return
	}
	c.changes = append(c.changes, model.Change{Field: field, OldValue: oldV, NewValue: newV})
}

// records compares a structured collection by serialized equality. When
// the serialized forms differ a single change is emitted carrying the
// old and new item counts; item-level diffing of these collections is
// intentionally not attempted.
func (c *collector) records(field string, oldV, newV any, oldCount, newCount int) {
	if c.excluded[field] {
		return
	}
	oldJSON, errOld := json.Marshal(oldV)
	newJSON, errNew := json.Marshal(newV)
	if errOld != nil || errNew != nil {
		// Degrade to "no change" rather than failing the diff
		return
	}
	if string(oldJSON) == string(newJSON) {
		return
	}
	c.changes = append(c.changes, model.Change{Field: field, OldValue: oldCount, NewValue: newCount})
}

func normalize(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.UTC().Format(time.RFC3339Nano)
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format(time.RFC3339Nano)
	case uuid.UUID:
		if t == uuid.Nil {
			return ""
		}
		return t.String()
	case *uuid.UUID:
		if t == nil || *t == uuid.Nil {
			return ""
		}
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ProjectDiff returns the ordered field-level changes between two project
// snapshots. Extra fields to skip (e.g. derived display fields) may be
// passed by dotted path.
func ProjectDiff(oldP, newP model.Project, exclude ...string) []model.Change {
	c := newCollector(exclude)
	c.scalar("name", oldP.Name, newP.Name)
	c.scalar("description", oldP.Description, newP.Description)
	c.scalar("budget", oldP.Budget, newP.Budget)
	c.scalar("priority", oldP.Priority, newP.Priority)
	c.scalar("status", oldP.Status, newP.Status)
	c.scalar("progress", oldP.Progress, newP.Progress)
	c.scalar("monumentId", oldP.MonumentID, newP.MonumentID)
	c.scalar("contractorId", oldP.ContractorID, newP.ContractorID)
	c.scalar("timeline.start", oldP.Timeline.Start, newP.Timeline.Start)
	c.scalar("timeline.end", oldP.Timeline.End, newP.Timeline.End)
	c.scalar("timeline.expectedDurationMonths", oldP.Timeline.ExpectedDurationMonths, newP.Timeline.ExpectedDurationMonths)
	c.scalar("actualStartDate", oldP.ActualStartDate, newP.ActualStartDate)
	c.scalar("pausedAt", oldP.PausedAt, newP.PausedAt)
	c.scalar("completedAt", oldP.CompletedAt, newP.CompletedAt)
	c.records("workers", oldP.Workers, newP.Workers, len(oldP.Workers), len(newP.Workers))
	return c.changes
}

// MilestoneDiff returns the ordered field-level changes between two
// milestone snapshots.
func MilestoneDiff(oldM, newM model.Milestone, exclude ...string) []model.Change {
	c := newCollector(exclude)
	c.scalar("name", oldM.Name, newM.Name)
	c.scalar("description", oldM.Description, newM.Description)
	c.scalar("budget", oldM.Budget, newM.Budget)
	c.scalar("status", oldM.Status, newM.Status)
	c.scalar("adminReview", oldM.AdminReview, newM.AdminReview)
	c.scalar("timeline.start", oldM.Timeline.Start, newM.Timeline.Start)
	c.scalar("timeline.end", oldM.Timeline.End, newM.Timeline.End)
	c.records("clearanceChecklist", oldM.ClearanceChecklist, newM.ClearanceChecklist,
		len(oldM.ClearanceChecklist), len(newM.ClearanceChecklist))
	c.records("proofOfWork.photos.before", oldM.ProofOfWork.Photos.Before, newM.ProofOfWork.Photos.Before,
		len(oldM.ProofOfWork.Photos.Before), len(newM.ProofOfWork.Photos.Before))
	c.records("proofOfWork.photos.during", oldM.ProofOfWork.Photos.During, newM.ProofOfWork.Photos.During,
		len(oldM.ProofOfWork.Photos.During), len(newM.ProofOfWork.Photos.During))
	c.records("proofOfWork.photos.after", oldM.ProofOfWork.Photos.After, newM.ProofOfWork.Photos.After,
		len(oldM.ProofOfWork.Photos.After), len(newM.ProofOfWork.Photos.After))
	c.records("proofOfWork.documents", oldM.ProofOfWork.Documents, newM.ProofOfWork.Documents,
		len(oldM.ProofOfWork.Documents), len(newM.ProofOfWork.Documents))
	c.records("documents", oldM.Documents, newM.Documents, len(oldM.Documents), len(newM.Documents))
	c.records("qualityManagerReview", oldM.QualityReview, newM.QualityReview,
		len(oldM.QualityReview), len(newM.QualityReview))
	c.records("financialRecord", oldM.FinancialRecord, newM.FinancialRecord,
		recordCount(oldM.FinancialRecord), recordCount(newM.FinancialRecord))
	return c.changes
}

func recordCount(r *model.FinancialRecord) int {
	if r == nil {
		return 0
	}
	return 1
}
