// Package workflow holds the project/milestone state machines and the
// milestone approval sub-protocol. Every function here is synchronous
// and operates on a value snapshot: it returns either the updated entity
// (with an audit entry already prepended) or a typed error, and never
// touches storage. Callers must serialize concurrent attempts on the
// same entity — preconditions are validated against the snapshot.
package workflow

import (
	"time"

	"heritageportal/internal/changetrack"
	"heritageportal/internal/model"
)

// Event names a requested project status transition.
type Event string

const (
	EventStart    Event = "start"
	EventPause    Event = "pause"
	EventResume   Event = "resume"
	EventComplete Event = "complete"
)

type projectRule struct {
	from  string
	to    string
	op    Operation
	apply func(p *model.Project, now time.Time)
}

// projectRules is the complete project transition table. Anything not in
// this table is an invalid transition; completed is terminal.
var projectRules = map[Event]projectRule{
	EventStart: {
		from: model.ProjectScheduled, to: model.ProjectActive, op: OpProjectStart,
		apply: func(p *model.Project, now time.Time) { p.ActualStartDate = &now },
	},
	EventPause: {
		from: model.ProjectActive, to: model.ProjectPaused, op: OpProjectPause,
		apply: func(p *model.Project, now time.Time) { p.PausedAt = &now },
	},
	EventResume: {
		from: model.ProjectPaused, to: model.ProjectActive, op: OpProjectResume,
		apply: func(p *model.Project, now time.Time) { p.PausedAt = nil },
	},
	EventComplete: {
		from: model.ProjectActive, to: model.ProjectCompleted, op: OpProjectComplete,
		apply: func(p *model.Project, now time.Time) {
			p.CompletedAt = &now
			p.Progress = 100
		},
	},
}

// ApplyProjectEvent validates and applies one status transition, stamping
// the side-effect timestamps and recording the diff in the edit history.
// The input snapshot is returned unchanged on rejection.
func ApplyProjectEvent(p model.Project, ev Event, actor model.Actor, now time.Time) (model.Project, error) {
	rule, ok := projectRules[ev]
	if !ok || p.Status != rule.from {
		return p, &TransitionError{From: p.Status, Event: ev}
	}
	if !Allowed(rule.op, actor.Role) {
		return p, ErrForbidden
	}

	snapshot := p
	p.Status = rule.to
	rule.apply(&p, now)
	p.EditHistory = changetrack.Record(p.EditHistory, changetrack.ProjectDiff(snapshot, p), actor, now)
	return p, nil
}

// SetProgress updates the reported completion percentage. Progress is
// only meaningful while the project is active.
func SetProgress(p model.Project, value int, actor model.Actor, now time.Time) (model.Project, error) {
	if !Allowed(OpProjectSetProgress, actor.Role) {
		return p, ErrForbidden
	}
	if p.Status != model.ProjectActive {
		return p, ErrInvalidState
	}
	if value < 0 || value > 100 {
		return p, ErrOutOfRange
	}

	snapshot := p
	p.Progress = value
	p.EditHistory = changetrack.Record(p.EditHistory, changetrack.ProjectDiff(snapshot, p), actor, now)
	return p, nil
}

// StartMilestone moves a pending milestone to active, opening it for
// proof-of-work submission and quality inspection.
func StartMilestone(m model.Milestone, actor model.Actor, now time.Time) (model.Milestone, error) {
	if m.Status != model.MilestonePending {
		return m, &TransitionError{From: m.Status, Event: EventStart}
	}
	if !Allowed(OpMilestoneStart, actor.Role) {
		return m, ErrForbidden
	}

	snapshot := m
	m.Status = model.MilestoneActive
	m.EditHistory = changetrack.Record(m.EditHistory, changetrack.MilestoneDiff(snapshot, m), actor, now)
	return m, nil
}

// CanComplete reports whether the milestone has passed the admin review
// gate required to reach completed.
func CanComplete(m model.Milestone) bool {
	return m.AdminReview == model.ReviewApproved
}

// CompleteMilestone moves an active milestone to completed. The admin
// review gate must already be approved.
func CompleteMilestone(m model.Milestone, actor model.Actor, now time.Time) (model.Milestone, error) {
	if m.Status != model.MilestoneActive {
		return m, &TransitionError{From: m.Status, Event: EventComplete}
	}
	if !Allowed(OpMilestoneComplete, actor.Role) {
		return m, ErrForbidden
	}
	if !CanComplete(m) {
		return m, ErrInvalidState
	}

	snapshot := m
	m.Status = model.MilestoneCompleted
	m.EditHistory = changetrack.Record(m.EditHistory, changetrack.MilestoneDiff(snapshot, m), actor, now)
	return m, nil
}
