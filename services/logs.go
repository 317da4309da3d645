package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/betterthanyou/models"
)

// DateLayout is the canonical calendar-day key of a daily log.
const DateLayout = "2006-01-02"

// ValidDate reports whether date is a canonical YYYY-MM-DD calendar day.
func ValidDate(date string) bool {
	t, err := time.Parse(DateLayout, date)
	return err == nil && t.Format(DateLayout) == date
}

// ToggleAchievement records whether actor achieved their goal on date. The row for
// (goal, date) is inserted or rewritten in place; points earned are taken from the goal's
// current value. created is true when no row existed before the call.
func (s *Service) ToggleAchievement(ctx context.Context, actor models.Participant, goalID, date string, achieved bool) (log models.DailyLog, created bool, err error) {
	date = strings.TrimSpace(date)
	if !ValidDate(date) {
		return models.DailyLog{}, false, ErrInvalidDate
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goal, err := s.goalInChallenge(tx, actor.ChallengeID, goalID)
		if err != nil {
			return err
		}
		if goal.ParticipantID != actor.ID {
			return ErrNotGoalOwner
		}

		var existing models.DailyLog
		err = tx.Where("goal_id = ? AND date = ?", goal.ID, date).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
		case err != nil:
			return fmt.Errorf("load daily log: %w", err)
		}

		earned := 0
		if achieved {
			earned = goal.Points
		}

		row := models.DailyLog{
			ChallengeID:   goal.ChallengeID,
			ParticipantID: goal.ParticipantID,
			GoalID:        goal.ID,
			Date:          date,
			Achieved:      achieved,
			PointsEarned:  earned,
		}
		// A concurrent toggle of the same day lands on the unique (goal_id, date) index; last write wins.
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "goal_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"challenge_id":   goal.ChallengeID,
				"participant_id": goal.ParticipantID,
				"achieved":       achieved,
				"points_earned":  earned,
				"updated_at":     time.Now(),
			}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert daily log: %w", err)
		}

		if err := tx.Where("goal_id = ? AND date = ?", goal.ID, date).First(&log).Error; err != nil {
			return fmt.Errorf("reload daily log: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.DailyLog{}, false, err
	}
	return log, created, nil
}
