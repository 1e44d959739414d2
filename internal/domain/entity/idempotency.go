package entity

import "time"

// IdempotencyKey records the response to a print request so a retried
// request is answered without printing again.
type IdempotencyKey struct {
	ID              uint              `gorm:"primaryKey"`
	Key             string            `gorm:"uniqueIndex:idx_idempotency_subject_key;size:255;not null"`
	Subject         string            `gorm:"uniqueIndex:idx_idempotency_subject_key;size:255;not null"` // token subject or client IP
	Endpoint        string            `gorm:"size:255;not null"`
	ResponseCode    int               `gorm:"not null"`
	ContentType     string            `gorm:"size:255"`
	ResponseHeaders map[string]string `gorm:"serializer:json;type:jsonb"`
	ResponseBody    []byte            `gorm:"type:bytea"` // previews and exports are binary
	CreatedAt       time.Time         `gorm:"autoCreateTime"`
	ExpiresAt       time.Time         `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
