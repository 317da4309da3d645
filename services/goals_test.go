package services

import (
	"context"
	"errors"
	"testing"

	"github.com/cppla/betterthanyou/models"
)

func TestCreateGoal(t *testing.T) {
	svc, _ := newTestService(t, WithMaxGoalPoints(10))
	ctx := context.Background()
	c := mustChallenge(t, svc, "Fitness")
	alice := mustJoin(t, svc, c.InviteCode, "Alice")

	g, err := svc.CreateGoal(ctx, alice, "Run 5k", nil)
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if g.Points != 1 || g.ParticipantID != alice.ID || g.ChallengeID != c.ID {
		t.Errorf("unexpected goal %+v", g)
	}

	for _, pts := range []int{0, -3, 11} {
		pts := pts
		if _, err := svc.CreateGoal(ctx, alice, "Bad", &pts); !errors.Is(err, ErrInvalidPoints) {
			t.Errorf("points %d err = %v, want ErrInvalidPoints", pts, err)
		}
	}
	if _, err := svc.CreateGoal(ctx, alice, "  ", nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty description err = %v", err)
	}
}

func TestAdjustPoints(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := mustChallenge(t, svc, "Fitness")
	alice := mustJoin(t, svc, c.InviteCode, "Alice")
	bob := mustJoin(t, svc, c.InviteCode, "Bob")
	goal := mustGoal(t, svc, alice, "Run 5k", 1)

	t.Run("owner is forbidden", func(t *testing.T) {
		if _, err := svc.AdjustPoints(ctx, alice, goal.ID, 9); !errors.Is(err, ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
		var stored models.Goal
		db.First(&stored, "id = ?", goal.ID)
		if stored.Points != 1 {
			t.Errorf("points changed to %d by owner", stored.Points)
		}
	})

	t.Run("peer adjusts", func(t *testing.T) {
		g, err := svc.AdjustPoints(ctx, bob, goal.ID, 5)
		if err != nil {
			t.Fatalf("AdjustPoints: %v", err)
		}
		if g.Points != 5 {
			t.Errorf("Points = %d, want 5", g.Points)
		}
		var stored models.Goal
		db.First(&stored, "id = ?", goal.ID)
		if stored.Points != 5 {
			t.Errorf("stored points = %d, want 5", stored.Points)
		}
	})

	t.Run("unknown goal", func(t *testing.T) {
		if _, err := svc.AdjustPoints(ctx, bob, "missing", 5); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("goal in another challenge", func(t *testing.T) {
		other := mustChallenge(t, svc, "Other")
		mallory := mustJoin(t, svc, other.InviteCode, "Mallory")
		if _, err := svc.AdjustPoints(ctx, mallory, goal.ID, 100); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		if _, err := svc.AdjustPoints(ctx, bob, goal.ID, 0); !errors.Is(err, ErrInvalidPoints) {
			t.Fatalf("err = %v, want ErrInvalidPoints", err)
		}
	})
}
