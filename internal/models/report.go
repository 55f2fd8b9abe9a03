package models

import (
	"time"
)

// TaskType is a catalog entry defining a category of work and its point value.
type TaskType struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Category  string    `gorm:"size:100" json:"category"`
	Points    int       `gorm:"not null;default:0" json:"points"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for TaskType model.
func (TaskType) TableName() string {
	return "task_types"
}

// Report is a user-submitted claim of completed work, worth points, subject
// to admin approval. Points is snapshotted from the TaskType at creation and
// stays fixed even if the type's reward later changes or the type is deleted;
// the only re-snapshot happens on an explicit type change during edit.
type Report struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"not null;index;size:36" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TypeID    string    `gorm:"not null;index;size:36" json:"type_id"`
	Type      *TaskType `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	ProofURL  string    `gorm:"type:text" json:"proof_url"`
	Date      time.Time `gorm:"not null;index" json:"date"` // event date, distinct from CreatedAt
	Points    int       `gorm:"not null" json:"points"`
	Status    string    `gorm:"size:20;index;default:PENDING" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Report model.
func (Report) TableName() string {
	return "reports"
}

// Report status constants.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ValidStatus reports whether s is a known report status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}
