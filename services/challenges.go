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

// Snapshot is everything a client needs to render a challenge.
type Snapshot struct {
	Challenge    models.Challenge     `json:"challenge"`
	Participants []models.Participant `json:"participants"`
	Goals        []models.Goal        `json:"goals"`
	Logs         []models.DailyLog    `json:"logs"`
}

// CreateChallenge stores a new challenge with a freshly generated invite code.
func (s *Service) CreateChallenge(ctx context.Context, title string) (models.Challenge, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Challenge{}, ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return models.Challenge{}, fmt.Errorf("%w: title too long", ErrInvalidInput)
	}

	code, err := NewInviteCode(s.inviteCodeLength)
	if err != nil {
		return models.Challenge{}, err
	}

	challenge := models.Challenge{Title: title, InviteCode: code}
	if err := s.db.WithContext(ctx).Create(&challenge).Error; err != nil {
		return models.Challenge{}, fmt.Errorf("create challenge: %w", err)
	}
	return challenge, nil
}

// ChallengeByInviteCode resolves an invite code to its challenge.
func (s *Service) ChallengeByInviteCode(ctx context.Context, inviteCode string) (models.Challenge, error) {
	inviteCode = NormalizeInviteCode(inviteCode)
	if inviteCode == "" {
		return models.Challenge{}, ErrChallengeNotFound
	}
	var challenge models.Challenge
	err := s.db.WithContext(ctx).Where("invite_code = ?", inviteCode).First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Challenge{}, ErrChallengeNotFound
	}
	if err != nil {
		return models.Challenge{}, fmt.Errorf("load challenge: %w", err)
	}
	return challenge, nil
}

// ChallengeByID loads a challenge by primary key.
func (s *Service) ChallengeByID(ctx context.Context, id string) (models.Challenge, error) {
	var challenge models.Challenge
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Challenge{}, ErrChallengeNotFound
	}
	if err != nil {
		return models.Challenge{}, fmt.Errorf("load challenge: %w", err)
	}
	return challenge, nil
}

// Snapshot loads a challenge with all of its participants, goals and logs.
func (s *Service) Snapshot(ctx context.Context, inviteCode string) (Snapshot, error) {
	challenge, err := s.ChallengeByInviteCode(ctx, inviteCode)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Challenge:    challenge,
		Participants: []models.Participant{},
		Goals:        []models.Goal{},
		Logs:         []models.DailyLog{},
	}
	db := s.db.WithContext(ctx)
	if err := db.Where("challenge_id = ?", challenge.ID).Order("created_at ASC").Find(&snap.Participants).Error; err != nil {
		return Snapshot{}, fmt.Errorf("load participants: %w", err)
	}
	if err := db.Where("challenge_id = ?", challenge.ID).Order("created_at ASC").Find(&snap.Goals).Error; err != nil {
		return Snapshot{}, fmt.Errorf("load goals: %w", err)
	}
	if err := db.Where("challenge_id = ?", challenge.ID).Order("date ASC").Find(&snap.Logs).Error; err != nil {
		return Snapshot{}, fmt.Errorf("load logs: %w", err)
	}
	return snap, nil
}

// ChallengesForKeys returns the distinct challenges joined by any of the given participant keys.
// Keys that do not resolve are skipped; ErrParticipantNotFound is returned when none resolve.
func (s *Service) ChallengesForKeys(ctx context.Context, keys []string) ([]models.Challenge, error) {
	hashes := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			hashes = append(hashes, HashKey(k))
		}
	}
	if len(hashes) == 0 {
		return nil, ErrParticipantNotFound
	}

	db := s.db.WithContext(ctx)
	var challengeIDs []string
	if err := db.Model(&models.Participant{}).
		Where("key_hash IN ?", hashes).
		Distinct().
		Pluck("challenge_id", &challengeIDs).Error; err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}
	if len(challengeIDs) == 0 {
		return nil, ErrParticipantNotFound
	}

	challenges := []models.Challenge{}
	if err := db.Where("id IN ?", challengeIDs).Order("created_at ASC").Find(&challenges).Error; err != nil {
		return nil, fmt.Errorf("load challenges: %w", err)
	}
	return challenges, nil
}
