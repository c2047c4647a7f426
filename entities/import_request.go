package entities

import (
	"github.com/google/uuid"
)

const (
	ImportStatusPending    = "pending"
	ImportStatusProcessing = "processing"
	ImportStatusSuccess    = "success"
	ImportStatusError      = "error"
)

// ImportRequest tracks one pipeline run so the external caller can observe
// its outcome. Retry and backoff policy belong to that caller, not here.
type ImportRequest struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	Status       string     `gorm:"size:20;default:pending" json:"status"`
	SourceType   string     `gorm:"size:20;default:imported" json:"source_type"`
	Payload      string     `gorm:"type:jsonb" json:"-"`
	ErrorMessage string     `gorm:"type:text" json:"error_message,omitempty"`
	RecipeID     *uuid.UUID `json:"recipe_id,omitempty"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}
