package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportanceLevel is a global weight shared by every day. Rows are never
// soft-deleted; hard deletion is blocked while any live target references
// the level.
type ImportanceLevel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Label     string    `gorm:"column:label;size:200;not null;uniqueIndex:uidx_importance_label" json:"label"`
	Score     int       `gorm:"column:score;not null" json:"score"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ImportanceLevel) TableName() string {
	return "importance_level"
}

func (l *ImportanceLevel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
