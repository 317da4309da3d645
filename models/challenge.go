package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Challenge is a named competition that participants join through its invite code.
type Challenge struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	InviteCode string    `gorm:"size:16;not null;uniqueIndex" json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate assigns a random UUID when the caller did not set one.
func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
