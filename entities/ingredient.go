package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingDimension is the fixed length of every stored embedding vector.
const EmbeddingDimension = 384

type IngredientCategory struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `gorm:"size:100;uniqueIndex" json:"name"`

	Timestamp
}

// Ingredient is the single canonical record for one real-world ingredient.
// Name is unique case-insensitively (enforced by a functional index, see
// cmd/database/migrate). Rows are created lazily by the resolver and never
// deleted by the pipeline; Embedding may be backfilled once but is never
// rewritten.
type Ingredient struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name       string           `gorm:"size:200;not null" json:"name"`
	CategoryID *uuid.UUID       `json:"category_id,omitempty"`
	Embedding  *pgvector.Vector `gorm:"type:vector(384)" json:"-"`
	CreatedAt  time.Time        `gorm:"type:timestamp" json:"created_at"`

	Category *IngredientCategory `gorm:"foreignKey:CategoryID"`
}
