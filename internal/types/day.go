package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Day is the per-date container for categories and targets. The raw date
// column is unique so a soft-deleted row still occupies its calendar slot.
type Day struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Date      datatypes.Date `gorm:"column:date;not null;uniqueIndex:uidx_day_date" json:"date"`
	Score     *int           `gorm:"column:score" json:"score"`
	MaxScore  *int           `gorm:"column:max_score" json:"max_score"`
	WakeTime  *time.Time     `gorm:"column:wake_time" json:"wake_time,omitempty"`
	SleepTime *time.Time     `gorm:"column:sleep_time" json:"sleep_time,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Day) TableName() string {
	return "day"
}

func (d *Day) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
