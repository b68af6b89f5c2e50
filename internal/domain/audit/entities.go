package audit

import (
	"time"

	"gorm.io/gorm"
)

// SystemPerformerID identifies entries written by the scheduler rather than
// a logged-in actor.
const (
	SystemPerformerID   = "system"
	SystemPerformerName = "System"
)

// Entry is one append-only audit record. Entries are never mutated; the
// administrative full reset is the only thing that removes them.
type Entry struct {
	ID            uint64         `gorm:"primaryKey;column:id" json:"-"`
	LogID         string         `gorm:"size:32;uniqueIndex:ux_audit_logs_log_id_active" json:"log_id"`
	PerformerID   string         `gorm:"size:32;index" json:"performer_id"`
	PerformerName string         `gorm:"size:255" json:"performer_name"`
	Action        string         `gorm:"type:text;not null" json:"action"`
	IP            string         `gorm:"size:45;column:ip" json:"ip,omitempty"`
	DeviceID      string         `gorm:"size:255;column:device_id" json:"device_id,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Entry) TableName() string { return "audit_logs" }
