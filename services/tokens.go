package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

const (
	inviteAlphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	participantKeySize = 24 // 192 bits of entropy
)

// NewInviteCode returns an n-character upper-case alphanumeric code drawn from crypto/rand.
func NewInviteCode(n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidInput
	}
	limit := big.NewInt(int64(len(inviteAlphabet)))
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate invite code: %w", err)
		}
		sb.WriteByte(inviteAlphabet[idx.Int64()])
	}
	return sb.String(), nil
}

// NewParticipantKey returns a URL-safe random bearer key.
func NewParticipantKey() (string, error) {
	b := make([]byte, participantKeySize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate participant key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashKey returns the SHA-256 hex digest stored in place of a participant key.
func HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// NormalizeInviteCode trims and upper-cases a user supplied invite code.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
