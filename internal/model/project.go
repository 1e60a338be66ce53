package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus constants — the primary project state
const (
	ProjectScheduled = "scheduled"
	ProjectActive    = "active"
	ProjectPaused    = "paused"
	ProjectCompleted = "completed"
)

// Priority constants
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidPriority reports whether the given string names a known priority
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Timeline bounds a project's planned execution window
type Timeline struct {
	Start                  time.Time `json:"start"`
	End                    time.Time `json:"end"`
	ExpectedDurationMonths int       `json:"expectedDurationMonths"`
}

// WorkerRef is a denormalized reference to an assigned worker
type WorkerRef struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Mobile string    `json:"mobile"`
}

// WorkerRefs is stored as a jsonb column on the project row
type WorkerRefs []WorkerRef

// Project represents a restoration project attached to a monument.
// A project exclusively owns its milestones; progress is only meaningful
// while the project is active (forced to 100 on completion).
type Project struct {
	ID              uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MonumentID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"monument_id"`
	Monument        *Monument    `gorm:"foreignKey:MonumentID" json:"monument,omitempty"`
	ContractorID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"contractor_id"`
	Contractor      *User        `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
	Name            string       `gorm:"type:varchar(255);not null" json:"name"`
	Description     string       `gorm:"type:text" json:"description"`
	Budget          int64        `gorm:"type:bigint;not null" json:"budget"` // Smallest currency unit
	Priority        string       `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Timeline        Timeline     `gorm:"embedded;embeddedPrefix:timeline_" json:"timeline"`
	ActualStartDate *time.Time   `json:"actual_start_date"`
	PausedAt        *time.Time   `json:"paused_at"`
	CompletedAt     *time.Time   `json:"completed_at"`
	Status          string       `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Progress        int          `gorm:"type:int;not null;default:0" json:"progress"` // 0–100, active only
	Workers         WorkerRefs   `gorm:"type:jsonb;serializer:json" json:"workers"`
	Milestones      []Milestone  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"milestones"`
	EditHistory     AuditHistory `gorm:"type:jsonb;serializer:json" json:"edit_history"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
