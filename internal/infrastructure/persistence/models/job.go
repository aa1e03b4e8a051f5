package models

import (
	"time"

	"github.com/google/uuid"
)

// JobRecordModel records one run of a scheduled background job: which job
// ran, how it ended, how many attempts it took and how long it lasted.
// Re-running a job only ever appends a new record.
type JobRecordModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	JobKind     string    `gorm:"type:varchar(50);not null;index"`
	Status      string    `gorm:"type:varchar(20);not null"`
	Error       string    `gorm:"type:text"`
	Attempts    int       `gorm:"not null;default:1"`
	StartedAt   time.Time `gorm:"not null"`
	CompletedAt time.Time `gorm:"not null"`
	DurationMs  int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JobRecordModel) TableName() string {
	return "job_records"
}
