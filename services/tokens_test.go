package services

import (
	"strings"
	"testing"
)

func TestNewInviteCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := NewInviteCode(6)
		if err != nil {
			t.Fatalf("NewInviteCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("len(%q) = %d, want 6", code, len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(inviteAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 45 {
		t.Errorf("only %d distinct codes out of 50", len(seen))
	}

	if _, err := NewInviteCode(0); err == nil {
		t.Error("NewInviteCode(0) returned nil error")
	}
}

func TestNewParticipantKey(t *testing.T) {
	a, err := NewParticipantKey()
	if err != nil {
		t.Fatalf("NewParticipantKey: %v", err)
	}
	b, _ := NewParticipantKey()
	if a == b {
		t.Fatal("two keys are equal")
	}
	// 24 bytes in unpadded base64 is 32 characters.
	if len(a) != 32 {
		t.Errorf("len(key) = %d, want 32", len(a))
	}
	if strings.ContainsAny(a, "+/=") {
		t.Errorf("key %q is not URL safe", a)
	}
}

func TestHashKey(t *testing.T) {
	if HashKey("k") != HashKey("k") {
		t.Fatal("HashKey is not deterministic")
	}
	if HashKey("k") == HashKey("K") {
		t.Fatal("HashKey collides on case")
	}
	if len(HashKey("k")) != 64 {
		t.Errorf("len(HashKey) = %d, want 64", len(HashKey("k")))
	}
}

func TestNormalizeInviteCode(t *testing.T) {
	if got := NormalizeInviteCode("  ab12cd "); got != "AB12CD" {
		t.Errorf("NormalizeInviteCode = %q, want AB12CD", got)
	}
}
