package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Monument represents a heritage site under restoration
type Monument struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"type:varchar(255)" json:"location"`
	State       string         `gorm:"type:varchar(100)" json:"state"`
	Era         string         `gorm:"type:varchar(100)" json:"era"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
