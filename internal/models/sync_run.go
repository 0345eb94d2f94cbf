package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SyncRun struct {
	ID            string        `json:"id" gorm:"primary_key"`
	Mode          string        `json:"mode" gorm:"not null"`
	Status        SyncRunStatus `json:"status" gorm:"default:RUNNING"`
	OrdersSynced  int           `json:"orders_synced" gorm:"default:0"`
	EventsEmitted int           `json:"events_emitted" gorm:"default:0"`
	Error         *string       `json:"error"`
	StartedAt     time.Time     `json:"started_at"`
	CompletedAt   *time.Time    `json:"completed_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type SyncRunStatus string

const (
	SyncRunStatusRunning   SyncRunStatus = "RUNNING"
	SyncRunStatusCompleted SyncRunStatus = "COMPLETED"
	SyncRunStatusFailed    SyncRunStatus = "FAILED"
)

const (
	SyncModeHistorical = "historical"
	SyncModePeriodic   = "periodic"
)

func (r *SyncRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
