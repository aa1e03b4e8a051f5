package persistence

import (
	"context"
	"time"

	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobRecord is one persisted run of a scheduled background job.
type JobRecord struct {
	ID          uuid.UUID
	JobKind     string
	Status      string
	Error       string
	Attempts    int
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
}

// GormJobRecordRepository persists scheduled job run records.
type GormJobRecordRepository struct {
	db *gorm.DB
}

// NewGormJobRecordRepository creates a new GormJobRecordRepository
func NewGormJobRecordRepository(db *gorm.DB) *GormJobRecordRepository {
	return &GormJobRecordRepository{db: db}
}

// Record appends one job run record. Runs are append-only; re-running a
// job never rewrites history.
func (r *GormJobRecordRepository) Record(ctx context.Context, record JobRecord) error {
	model := models.JobRecordModel{
		ID:          record.ID,
		JobKind:     record.JobKind,
		Status:      record.Status,
		Error:       record.Error,
		Attempts:    record.Attempts,
		StartedAt:   record.StartedAt,
		CompletedAt: record.CompletedAt,
		DurationMs:  record.Duration.Milliseconds(),
		CreatedAt:   time.Now(),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// RecentByKind returns the latest run records for one job kind, newest first.
func (r *GormJobRecordRepository) RecentByKind(ctx context.Context, kind string, limit int) ([]JobRecord, error) {
	var recordModels []models.JobRecordModel
	if err := r.db.WithContext(ctx).
		Where("job_kind = ?", kind).
		Order("completed_at DESC").
		Limit(limit).
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]JobRecord, len(recordModels))
	for i, m := range recordModels {
		records[i] = JobRecord{
			ID:          m.ID,
			JobKind:     m.JobKind,
			Status:      m.Status,
			Error:       m.Error,
			Attempts:    m.Attempts,
			StartedAt:   m.StartedAt,
			CompletedAt: m.CompletedAt,
			Duration:    time.Duration(m.DurationMs) * time.Millisecond,
		}
	}
	return records, nil
}
