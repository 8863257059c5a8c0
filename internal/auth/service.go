package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Departamentos is the roster of departments known to the service. Seeding
// creates one account per entry.
var Departamentos = []string{"DTISC", "DIAC", "DGA", "ECHALBA", "PRE", "DIE", "DCCIP"}

// DefaultPassword is the bootstrap password shared by seeded accounts. Staff
// are expected to rotate it out of band.
const DefaultPassword = "fundacite"

// Service provides credential verification and bootstrap seeding on top of a
// UserStore.
type Service struct {
	store UserStore
	now   func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs a Service.
func NewService(store UserStore, opts ...ServiceOption) *Service {
	svc := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Verify checks a username/password pair and returns the matching user.
// Unknown usernames and wrong passwords both map to ErrInvalidCredentials so
// the two cases are indistinguishable to callers.
func (s *Service) Verify(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// EnsureDepartmentUsers seeds one account per known department, username being
// the lowercased department name. Existing usernames are skipped, so the call
// is idempotent. Returns the usernames created on this run.
func (s *Service) EnsureDepartmentUsers(ctx context.Context) ([]string, error) {
	var created []string
	for _, dep := range Departamentos {
		username := strings.ToLower(dep)
		_, err := s.store.FindByUsername(ctx, username)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return created, err
		}
		hash, err := HashPassword(DefaultPassword)
		if err != nil {
			return created, err
		}
		u := &User{Username: username, PasswordHash: hash, Departamento: dep}
		if err := s.store.Create(ctx, u); err != nil {
			return created, fmt.Errorf("seed user %s: %w", username, err)
		}
		created = append(created, username)
	}
	return created, nil
}
