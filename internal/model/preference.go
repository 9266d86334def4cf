package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreferenceRecord is the only persisted table: a key/value store for UI
// preferences that must survive a restart (currently the theme).
type PreferenceRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Key       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"` // JSON encoded
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

// TableName specifies the table name for GORM
func (PreferenceRecord) TableName() string {
	return "preferences"
}

// Hook Before Create untuk generate UUID otomatis
func (p *PreferenceRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
