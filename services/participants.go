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

// Join creates a participant in the challenge owning inviteCode. The returned participant
// carries the plaintext key; it is not recoverable from the store afterwards.
func (s *Service) Join(ctx context.Context, inviteCode, name string) (models.Participant, error) {
	name = strings.TrimSpace(name)
	if NormalizeInviteCode(inviteCode) == "" || name == "" {
		return models.Participant{}, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return models.Participant{}, fmt.Errorf("%w: name too long", ErrInvalidInput)
	}

	challenge, err := s.ChallengeByInviteCode(ctx, inviteCode)
	if err != nil {
		return models.Participant{}, err
	}

	key, err := NewParticipantKey()
	if err != nil {
		return models.Participant{}, err
	}

	participant := models.Participant{
		ChallengeID: challenge.ID,
		Name:        name,
		KeyHash:     HashKey(key),
	}
	if err := s.db.WithContext(ctx).Create(&participant).Error; err != nil {
		return models.Participant{}, fmt.Errorf("create participant: %w", err)
	}
	participant.Key = key
	return participant, nil
}

// Authenticate resolves a bearer participant key.
func (s *Service) Authenticate(ctx context.Context, key string) (models.Participant, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return models.Participant{}, ErrParticipantNotFound
	}
	var participant models.Participant
	err := s.db.WithContext(ctx).Where("key_hash = ?", HashKey(key)).First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Participant{}, ErrParticipantNotFound
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("load participant: %w", err)
	}
	return participant, nil
}

// ParticipantByID loads a participant by id, as carried by a session token.
func (s *Service) ParticipantByID(ctx context.Context, id string) (models.Participant, error) {
	if id == "" {
		return models.Participant{}, ErrParticipantNotFound
	}
	var participant models.Participant
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Participant{}, ErrParticipantNotFound
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("load participant: %w", err)
	}
	return participant, nil
}
