package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/cppla/betterthanyou/models"
	"github.com/cppla/betterthanyou/testutil"
)

// newTestService opens a fresh in-memory database with the full schema.
func newTestService(t *testing.T, opts ...Option) (*Service, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	svc, err := New(db, opts...)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	return svc, db
}

func mustChallenge(t *testing.T, svc *Service, title string) models.Challenge {
	t.Helper()
	c, err := svc.CreateChallenge(context.Background(), title)
	if err != nil {
		t.Fatalf("CreateChallenge(%q): %v", title, err)
	}
	return c
}

func mustJoin(t *testing.T, svc *Service, inviteCode, name string) models.Participant {
	t.Helper()
	p, err := svc.Join(context.Background(), inviteCode, name)
	if err != nil {
		t.Fatalf("Join(%q): %v", name, err)
	}
	return p
}

func mustGoal(t *testing.T, svc *Service, owner models.Participant, description string, points int) models.Goal {
	t.Helper()
	g, err := svc.CreateGoal(context.Background(), owner, description, &points)
	if err != nil {
		t.Fatalf("CreateGoal(%q): %v", description, err)
	}
	return g
}

func countLogs(t *testing.T, db *gorm.DB, goalID string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.DailyLog{}).Where("goal_id = ?", goalID).Count(&n).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	return n
}
