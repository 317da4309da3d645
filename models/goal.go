package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal is a recurring daily task owned by one participant. Points are set by the owner's peers.
type Goal struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ChallengeID   string    `gorm:"type:varchar(36);index;not null" json:"challenge_id"`
	ParticipantID string    `gorm:"type:varchar(36);index;not null" json:"participant_id"`
	Description   string    `gorm:"size:512;not null" json:"description"`
	Points        int       `gorm:"not null;default:1" json:"points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName keeps the table name used by existing deployments.
func (Goal) TableName() string {
	return "daily_goals"
}

// BeforeCreate assigns a random UUID when the caller did not set one.
func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
