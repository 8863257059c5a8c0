package auth

import (
	"context"
	"errors"
	"testing"
)

type memUserStore struct {
	users   map[string]*User
	nextID  int64
	creates int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*User), nextID: 1}
}

func (m *memUserStore) Create(_ context.Context, u *User) error {
	if _, ok := m.users[u.Username]; ok {
		return ErrAlreadyExists
	}
	u.ID = m.nextID
	m.nextID++
	m.creates++
	copied := *u
	m.users[u.Username] = &copied
	return nil
}

func (m *memUserStore) FindByUsername(_ context.Context, username string) (*User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUserStore) List(_ context.Context) ([]*User, error) {
	var out []*User
	for _, u := range m.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func TestEnsureDepartmentUsersIsIdempotent(t *testing.T) {
	store := newMemUserStore()
	svc := NewService(store)

	created, err := svc.EnsureDepartmentUsers(context.Background())
	if err != nil {
		t.Fatalf("EnsureDepartmentUsers: %v", err)
	}
	if len(created) != len(Departamentos) {
		t.Fatalf("expected %d created, got %d", len(Departamentos), len(created))
	}
	if _, err := store.FindByUsername(context.Background(), "dtisc"); err != nil {
		t.Fatalf("seeded user missing: %v", err)
	}

	created, err = svc.EnsureDepartmentUsers(context.Background())
	if err != nil {
		t.Fatalf("second EnsureDepartmentUsers: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("expected no users created on second run, got %v", created)
	}
	if store.creates != len(Departamentos) {
		t.Fatalf("expected %d total creates, got %d", len(Departamentos), store.creates)
	}
}

func TestVerify(t *testing.T) {
	store := newMemUserStore()
	svc := NewService(store)
	if _, err := svc.EnsureDepartmentUsers(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	user, err := svc.Verify(context.Background(), "dtisc", DefaultPassword)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if user.Departamento != "DTISC" {
		t.Fatalf("unexpected departamento: %s", user.Departamento)
	}

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "dtisc", "nope"},
		{"unknown user", "ghost", DefaultPassword},
		{"empty username", "", DefaultPassword},
		{"empty password", "dtisc", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Verify(context.Background(), tc.username, tc.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
