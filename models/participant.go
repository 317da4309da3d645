package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participant is an entrant of one challenge. Only a digest of the bearer key is persisted;
// Key carries the plaintext value on the join response and is empty everywhere else.
type Participant struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ChallengeID string    `gorm:"type:varchar(36);index;not null" json:"challenge_id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	KeyHash     string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	Key         string    `gorm:"-" json:"participant_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate assigns a random UUID when the caller did not set one.
func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
