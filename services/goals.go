package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/cppla/betterthanyou/models"
)

// CreateGoal adds a goal owned by owner. A nil points value defaults to one point.
func (s *Service) CreateGoal(ctx context.Context, owner models.Participant, description string, points *int) (models.Goal, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return models.Goal{}, ErrDescriptionRequired
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return models.Goal{}, fmt.Errorf("%w: description too long", ErrInvalidInput)
	}
	value := defaultGoalPoints
	if points != nil {
		value = *points
	}
	if !s.validPoints(value) {
		return models.Goal{}, ErrInvalidPoints
	}

	goal := models.Goal{
		ChallengeID:   owner.ChallengeID,
		ParticipantID: owner.ID,
		Description:   description,
		Points:        value,
	}
	if err := s.db.WithContext(ctx).Create(&goal).Error; err != nil {
		return models.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

// AdjustPoints sets a peer's goal to points. Owners cannot price their own goals.
// Logs already recorded keep the points they earned at the time.
func (s *Service) AdjustPoints(ctx context.Context, actor models.Participant, goalID string, points int) (models.Goal, error) {
	if !s.validPoints(points) {
		return models.Goal{}, ErrInvalidPoints
	}

	goal, err := s.goalInChallenge(s.db.WithContext(ctx), actor.ChallengeID, goalID)
	if err != nil {
		return models.Goal{}, err
	}
	if goal.ParticipantID == actor.ID {
		return models.Goal{}, ErrOwnGoalPoints
	}

	if err := s.db.WithContext(ctx).Model(&goal).Update("points", points).Error; err != nil {
		return models.Goal{}, fmt.Errorf("update goal points: %w", err)
	}
	goal.Points = points
	return goal, nil
}

func (s *Service) goalInChallenge(db *gorm.DB, challengeID, goalID string) (models.Goal, error) {
	goalID = strings.TrimSpace(goalID)
	if goalID == "" {
		return models.Goal{}, ErrGoalNotFound
	}
	var goal models.Goal
	err := db.Where("id = ? AND challenge_id = ?", goalID, challengeID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Goal{}, ErrGoalNotFound
	}
	if err != nil {
		return models.Goal{}, fmt.Errorf("load goal: %w", err)
	}
	return goal, nil
}
