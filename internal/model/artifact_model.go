package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Artifact struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	ConversationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type           string         `gorm:"type:varchar(50);not null;index"`
	Title          string         `gorm:"type:text;not null"`
	Code           string         `gorm:"type:text"`
	Metadata       datatypes.JSON `gorm:"type:jsonb"`
	Version        int            `gorm:"not null;default:1"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (Artifact) TableName() string {
	return "artifacts"
}
