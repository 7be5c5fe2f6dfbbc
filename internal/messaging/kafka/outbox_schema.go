package kafka

import (
	"time"

	"gorm.io/gorm"
)

// outboxEventRow mirrors the outbox_events table for gorm AutoMigrate.
// Reads and writes go through the SQL in outbox_repo.go.
type outboxEventRow struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	RequestID     *string
	AggregateType string `gorm:"not null"`
	AggregateID   string `gorm:"type:uuid;not null"`
	EventType     string `gorm:"not null"`
	Topic         string `gorm:"not null"`
	Payload       []byte `gorm:"type:jsonb;not null"`
	Status        string `gorm:"not null;index:idx_outbox_status_created,priority:1"`
	RetryCount    int    `gorm:"not null;default:0"`
	NextRetryAt   *time.Time
	ErrorMessage  *string
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"index:idx_outbox_status_created,priority:2"`
	UpdatedAt     time.Time
}

func (outboxEventRow) TableName() string {
	return "outbox_events"
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&outboxEventRow{})
}
