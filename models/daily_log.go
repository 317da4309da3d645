package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyLog records whether a goal was achieved on a calendar day and the points it earned then.
// (goal_id, date) is unique so toggling a day always rewrites the same row.
type DailyLog struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ChallengeID   string    `gorm:"type:varchar(36);index;not null" json:"challenge_id"`
	ParticipantID string    `gorm:"type:varchar(36);index;not null" json:"participant_id"`
	GoalID        string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_daily_logs_goal_date" json:"goal_id"`
	Date          string    `gorm:"size:10;not null;uniqueIndex:idx_daily_logs_goal_date" json:"date"`
	Achieved      bool      `gorm:"not null;default:false" json:"achieved"`
	PointsEarned  int       `gorm:"not null;default:0" json:"points_earned"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName keeps the table name used by existing deployments.
func (DailyLog) TableName() string {
	return "daily_logs"
}

// BeforeCreate assigns a random UUID when the caller did not set one.
func (l *DailyLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
