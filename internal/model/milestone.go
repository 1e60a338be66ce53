package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MilestoneStatus constants — linear, no regression
const (
	MilestonePending   = "pending"
	MilestoneActive    = "active"
	MilestoneCompleted = "completed"
)

// AdminReview constants — the second-stage approval gate.
// The field is monotonic: unset → submitted → approved.
const (
	ReviewUnset     = ""
	ReviewSubmitted = "submitted"
	ReviewApproved  = "approved"
)

// MilestoneTimeline bounds a milestone's planned window
type MilestoneTimeline struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ChecklistItem is one clearance requirement on a milestone
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ProofPhoto is an already-validated photo reference with a caption.
// Upload and geofence validation happen before the record reaches us.
type ProofPhoto struct {
	File  string `json:"file"`
	About string `json:"about"`
}

// ProofDocument is an already-validated document reference
type ProofDocument struct {
	File string `json:"file"`
	Name string `json:"name"`
}

// PhotoSet stages proof photos before/during/after the work
type PhotoSet struct {
	Before []ProofPhoto `json:"before"`
	During []ProofPhoto `json:"during"`
	After  []ProofPhoto `json:"after"`
}

// ProofOfWork holds worker/contractor submitted evidence for a milestone
type ProofOfWork struct {
	Photos    PhotoSet        `json:"photos"`
	Documents []ProofDocument `json:"documents"`
}

// InspectionRecord is one quality-manager site inspection. The collection
// is append-only (oldest first) and freezes once the milestone is
// forwarded to admin review.
type InspectionRecord struct {
	ID          uuid.UUID       `json:"id"`
	SubmittedBy uuid.UUID       `json:"submittedBy"`
	SubmittedAt time.Time       `json:"submittedAt"`
	Feedback    []string        `json:"feedback"`
	Documents   []ProofDocument `json:"documents"`
}

// InspectionRecords is stored as a jsonb column on the milestone row
type InspectionRecords []InspectionRecord

// BillDetails carries the monetary part of a financial record
type BillDetails struct {
	BillNumber string          `json:"billNumber"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes"`
}

// FinancialRecord is the one-shot billing record a financial officer
// creates once the milestone is completed. Immutable after creation.
type FinancialRecord struct {
	SubmittedBy uuid.UUID       `json:"submittedBy"`
	SubmittedAt time.Time       `json:"submittedAt"`
	BillDetails BillDetails     `json:"billDetails"`
	Documents   []ProofDocument `json:"documents"`
}

// Milestone is a project sub-deliverable with its own budget, timeline
// and approval sub-workflow. Owned by exactly one project.
type Milestone struct {
	ID                 uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"project_id"`
	Name               string            `gorm:"type:varchar(255);not null" json:"name"`
	Description        string            `gorm:"type:text" json:"description"`
	Budget             int64             `gorm:"type:bigint;not null" json:"budget"`
	Timeline           MilestoneTimeline `gorm:"embedded;embeddedPrefix:timeline_" json:"timeline"`
	Status             string            `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ClearanceChecklist []ChecklistItem   `gorm:"type:jsonb;serializer:json" json:"clearance_checklist"`
	ProofOfWork        ProofOfWork       `gorm:"type:jsonb;serializer:json" json:"proof_of_work"`
	Documents          []ProofDocument   `gorm:"type:jsonb;serializer:json" json:"documents"`
	QualityReview      InspectionRecords `gorm:"type:jsonb;serializer:json" json:"quality_manager_review"`
	AdminReview        string            `gorm:"type:varchar(20);not null;default:''" json:"admin_review"`
	FinancialRecord    *FinancialRecord  `gorm:"type:jsonb;serializer:json" json:"financial_record"`
	EditHistory        AuditHistory      `gorm:"type:jsonb;serializer:json" json:"edit_history"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// LatestInspection returns the most recent inspection record, relying on
// the append-only oldest-first ordering of the collection.
func (m *Milestone) LatestInspection() *InspectionRecord {
	if len(m.QualityReview) == 0 {
		return nil
	}
	return &m.QualityReview[len(m.QualityReview)-1]
}
