// Package store provides the in-process backing stores: the static account
// registry loaded from a JSON file and a memory-resident session store for
// single-instance deployments.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/k0lab/analysis-gate/internal/core/domain"
	"github.com/k0lab/analysis-gate/internal/core/ports"
)

// accountFileEntry is the registry file format. Digests are stored in the
// hex form the configured hasher produces.
type accountFileEntry struct {
	Username       string `json:"username"`
	PasswordDigest string `json:"password_digest"`
	DisplayName    string `json:"display_name"`
	Role           string `json:"role"`
	Email          string `json:"email,omitempty"`
}

// FileCredentialStore is the static account registry: loaded once at startup
// and never mutated, so concurrent reads need no synchronization.
type FileCredentialStore struct {
	accounts map[string]domain.AccountRecord
	order    []string
}

// NewFileCredentialStore loads the registry from path. A malformed file or
// an out-of-enum role fails loading outright; this is startup configuration,
// not a runtime condition.
func NewFileCredentialStore(path string) (*FileCredentialStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("accounts file: %w", err)
	}

	var entries []accountFileEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("accounts file %s: %w", path, err)
	}

	s := &FileCredentialStore{accounts: make(map[string]domain.AccountRecord, len(entries))}
	for _, e := range entries {
		if e.Username == "" || e.PasswordDigest == "" {
			return nil, fmt.Errorf("accounts file %s: entry missing username or digest", path)
		}
		role, err := domain.ParseRole(e.Role)
		if err != nil {
			return nil, fmt.Errorf("accounts file %s: account %q: %w", path, e.Username, err)
		}
		if _, dup := s.accounts[e.Username]; dup {
			return nil, fmt.Errorf("accounts file %s: duplicate username %q", path, e.Username)
		}
		s.accounts[e.Username] = domain.AccountRecord{
			Username:       e.Username,
			PasswordDigest: e.PasswordDigest,
			DisplayName:    e.DisplayName,
			Role:           role,
			Email:          e.Email,
		}
		s.order = append(s.order, e.Username)
	}

	return s, nil
}

func (s *FileCredentialStore) Lookup(_ context.Context, username string) (*domain.AccountRecord, error) {
	acct, ok := s.accounts[username]
	if !ok {
		return nil, ports.ErrAccountNotFound
	}
	return &acct, nil
}

// List returns the registry in file order.
func (s *FileCredentialStore) List(_ context.Context) ([]domain.AccountRecord, error) {
	out := make([]domain.AccountRecord, 0, len(s.order))
	for _, username := range s.order {
		out = append(out, s.accounts[username])
	}
	return out, nil
}
