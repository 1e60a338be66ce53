package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants — every user carries exactly one role
const (
	RoleSuperAdmin       = "super_admin"
	RoleAdmin            = "admin"
	RoleContractor       = "contractor"
	RoleQualityManager   = "quality_manager"
	RoleFinancialOfficer = "financial_officer"
	RoleWorker           = "worker"
)

// ValidRole reports whether the given string names a known role
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleContractor, RoleQualityManager, RoleFinancialOfficer, RoleWorker:
		return true
	}
	return false
}

// User represents the central user entity for logic and database structure
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Mobile    string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"mobile"`
	Email     string         `gorm:"type:varchar(255)" json:"email"`
	Password  string         `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	Role      string         `gorm:"type:varchar(50);not null;index" json:"role"`
	CreatedBy *uuid.UUID     `gorm:"type:uuid;index" json:"created_by"` // Contractor that registered this worker
	Creator   *User          `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}

// Actor identifies the user performing an operation, as resolved by the
// identity layer. Audit entries record both the id and the display name.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role string
}
