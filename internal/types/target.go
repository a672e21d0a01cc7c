package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Target is a single goal inside a category. Its weight comes from the
// referenced importance level, never from a copied score.
type Target struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"category_id"`
	Category     *Category        `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	ImportanceID uuid.UUID        `gorm:"type:uuid;not null;index" json:"importance_id"`
	Importance   *ImportanceLevel `gorm:"foreignKey:ImportanceID;references:ID;constraint:OnDelete:CASCADE" json:"importance,omitempty"`
	Name         string           `gorm:"column:name;size:200;not null" json:"name"`
	IsAchieved   bool             `gorm:"column:is_achieved;not null;default:false" json:"is_achieved"`
	CreatedAt    time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

func (Target) TableName() string {
	return "target"
}

func (t *Target) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
