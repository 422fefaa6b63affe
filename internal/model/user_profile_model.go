package model

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	ConversationId    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(255)"`
	Title             string    `gorm:"type:varchar(255)"`
	Contact           string    `gorm:"type:text"`
	PreferredTemplate string    `gorm:"type:varchar(50)"`
	TargetRole        string    `gorm:"type:varchar(255)"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
