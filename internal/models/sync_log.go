package models

import "time"

type SyncType string

const (
	SyncTypeCreate SyncType = "create"
	SyncTypeUpdate SyncType = "update"
	SyncTypeDelete SyncType = "delete"
)

type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusFailed  SyncStatus = "failed"
	SyncStatusRetry   SyncStatus = "retry"
)

// SyncLog records one attempt to push a document to the national JDIHN
// aggregator. The sync engine itself runs outside this service; the API
// only exposes the log for inspection.
type SyncLog struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	DocumentID   uint       `gorm:"not null;index:idx_sync_logs_document_status" json:"document_id"`
	SyncType     SyncType   `gorm:"size:20;not null" json:"sync_type"`
	Status       SyncStatus `gorm:"size:20;not null;index:idx_sync_logs_document_status;index:idx_sync_logs_status_retry" json:"status"`
	RequestData  *string    `gorm:"type:text" json:"request_data,omitempty"`
	ResponseData *string    `gorm:"type:text" json:"response_data,omitempty"`
	ErrorMessage *string    `gorm:"type:text" json:"error_message,omitempty"`
	JdihnID      *string    `gorm:"size:255" json:"jdihn_id,omitempty"`
	RetryCount   int        `gorm:"default:0" json:"retry_count"`
	SyncedAt     *time.Time `json:"synced_at"`
	NextRetryAt  *time.Time `gorm:"index:idx_sync_logs_status_retry" json:"next_retry_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Document Document `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
}

func (SyncLog) TableName() string {
	return "jdihn_sync_logs"
}
