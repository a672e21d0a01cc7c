package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups targets inside a single day. Names are unique per day at
// the storage level regardless of the delete flag; case-insensitive
// uniqueness among live rows is enforced by the service layer.
type Category struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DayID       uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:uidx_category_day_name" json:"day_id"`
	Day         *Day           `gorm:"foreignKey:DayID;references:ID;constraint:OnDelete:CASCADE" json:"day,omitempty"`
	Name        string         `gorm:"column:name;size:200;not null;uniqueIndex:uidx_category_day_name" json:"name"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Score       *int           `gorm:"column:score" json:"score"`
	MaxScore    *int           `gorm:"column:max_score" json:"max_score"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Category) TableName() string {
	return "category"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
