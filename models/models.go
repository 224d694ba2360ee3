package models

import (
	"time"

	"gorm.io/gorm"
)

// AuditEvent is the persisted channel of the notification sink.
// Recording is fire-and-forget; a failed insert never fails the
// operation that produced the event.
type AuditEvent struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	Type       string    `json:"type" gorm:"index"`
	ActorID    int       `json:"actor_id"`
	DocumentID string    `json:"document_id" gorm:"index"`
	Payload    string    `json:"payload" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

// FileLog guards the PO feed importer against processing a file twice.
type FileLog struct {
	gorm.Model
	ID           uint   `gorm:"primaryKey"`
	Filename     string `gorm:"unique;not null"`
	DateModified time.Time
}
