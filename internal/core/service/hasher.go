package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/k0lab/analysis-gate/internal/core/ports"
)

const (
	HashSchemeSHA256 = "sha256"
	HashSchemeBcrypt = "bcrypt"
)

// SHA256Hasher is the digest scheme the legacy registry was built with: a
// bare single-round hex-encoded SHA-256, no salt. Deterministic and stable
// across calls, which the registry format relies on.
//
// It is kept for behavioral fidelity with existing account data. It is not a
// production-grade password hash; new deployments should prefer
// BcryptHasher and re-digest their registry.
type SHA256Hasher struct{}

func (SHA256Hasher) Digest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func (h SHA256Hasher) Verify(digest, plaintext string) bool {
	computed := h.Digest(plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// BcryptHasher is the salted, adaptive alternative. Digests are not
// deterministic across calls; only Verify is meaningful for comparisons.
type BcryptHasher struct{}

func (BcryptHasher) Digest(plaintext string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on cost bounds or oversized input; with
		// DefaultCost the sole trigger is a >72-byte password.
		return ""
	}
	return string(hash)
}

func (BcryptHasher) Verify(digest, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// NewHasher selects a hasher by configured scheme name.
func NewHasher(scheme string) (ports.PasswordHasher, error) {
	switch scheme {
	case HashSchemeSHA256, "":
		return SHA256Hasher{}, nil
	case HashSchemeBcrypt:
		return BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown hash scheme %q", scheme)
	}
}
