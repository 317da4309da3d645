package services

import (
	"errors"

	"gorm.io/gorm"
)

const (
	defaultInviteCodeLength = 6
	defaultMaxGoalPoints    = 1000
	defaultGoalPoints       = 1
	maxTitleLength          = 255
	maxNameLength           = 128
	maxDescriptionLength    = 512
)

// Service implements challenge, participant, goal and daily-log operations over a gorm database.
// It holds no mutable state of its own and is safe for concurrent use.
type Service struct {
	db               *gorm.DB
	inviteCodeLength int
	maxGoalPoints    int
}

// Option configures the Service.
type Option func(*Service) error

// WithInviteCodeLength sets the number of characters in generated invite codes.
func WithInviteCodeLength(n int) Option {
	return func(s *Service) error {
		if n < 4 || n > 16 {
			return ErrInvalidInput
		}
		s.inviteCodeLength = n
		return nil
	}
}

// WithMaxGoalPoints sets the upper bound accepted for a goal's point value.
func WithMaxGoalPoints(n int) Option {
	return func(s *Service) error {
		if n < 1 {
			return ErrInvalidInput
		}
		s.maxGoalPoints = n
		return nil
	}
}

// New constructs a Service with safe defaults.
func New(db *gorm.DB, opts ...Option) (*Service, error) {
	if db == nil {
		return nil, errors.New("services: nil database")
	}
	s := &Service{
		db:               db,
		inviteCodeLength: defaultInviteCodeLength,
		maxGoalPoints:    defaultMaxGoalPoints,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MaxGoalPoints returns the configured upper bound for goal points.
func (s *Service) MaxGoalPoints() int {
	return s.maxGoalPoints
}

func (s *Service) validPoints(points int) bool {
	return points >= 1 && points <= s.maxGoalPoints
}
