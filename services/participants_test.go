package services

import (
	"context"
	"errors"
	"testing"

	"github.com/cppla/betterthanyou/models"
)

func TestJoin(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := mustChallenge(t, svc, "Fitness")

	p, err := svc.Join(ctx, c.InviteCode, " Alice ")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if p.Key == "" || p.ChallengeID != c.ID || p.Name != "Alice" {
		t.Fatalf("unexpected participant %+v", p)
	}

	var stored models.Participant
	if err := db.First(&stored, "id = ?", p.ID).Error; err != nil {
		t.Fatalf("load participant: %v", err)
	}
	if stored.KeyHash != HashKey(p.Key) {
		t.Error("stored digest does not match the issued key")
	}
	if stored.KeyHash == p.Key {
		t.Error("plaintext key was persisted")
	}
}

func TestJoinInvalid(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := mustChallenge(t, svc, "Fitness")

	tests := []struct {
		name       string
		inviteCode string
		who        string
		wantErr    error
	}{
		{name: "unknown invite code", inviteCode: "ZZZZZZ", who: "Alice", wantErr: ErrNotFound},
		{name: "missing name", inviteCode: c.InviteCode, who: " ", wantErr: ErrInvalidInput},
		{name: "missing code", inviteCode: "", who: "Alice", wantErr: ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Join(ctx, tt.inviteCode, tt.who); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	var n int64
	db.Model(&models.Participant{}).Count(&n)
	if n != 0 {
		t.Errorf("%d participants created by failed joins", n)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	c := mustChallenge(t, svc, "Fitness")
	alice := mustJoin(t, svc, c.InviteCode, "Alice")

	got, err := svc.Authenticate(ctx, alice.Key)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != alice.ID || got.Key != "" {
		t.Errorf("Authenticate = %+v", got)
	}

	for _, key := range []string{"", "nope", alice.KeyHash} {
		if _, err := svc.Authenticate(ctx, key); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Authenticate(%q) err = %v, want ErrUnauthorized", key, err)
		}
	}

	byID, err := svc.ParticipantByID(ctx, alice.ID)
	if err != nil || byID.ID != alice.ID {
		t.Errorf("ParticipantByID = %+v, %v", byID, err)
	}
	if _, err := svc.ParticipantByID(ctx, "missing"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("ParticipantByID(missing) err = %v", err)
	}
}
