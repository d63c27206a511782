package snapshot

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
	"github.com/riskibarqy/teamhub/internal/domain/user"
)

func userSchema() schema[user.User] {
	return schema[user.User]{
		id:    func(u user.User) int64 { return u.ID },
		setID: func(u *user.User, id int64) { u.ID = id },
	}
}

func userConflict(candidate, existing user.User) error {
	if existing.Username == candidate.Username {
		return storeerr.Conflict("username", "username already exists")
	}
	if existing.Email == candidate.Email {
		return storeerr.Conflict("email", "email already exists")
	}
	return nil
}

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	u.Normalize()
	now := s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	if err := u.Validate(); err != nil {
		return user.User{}, err
	}
	return s.users.insert(u, userConflict)
}

func (s *Store) GetUser(_ context.Context, id int64) (user.User, bool, error) {
	u, ok := s.users.get(id)
	return u, ok, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (user.User, bool, error) {
	username = strings.TrimSpace(username)
	u, ok := s.users.find(func(u user.User) bool { return u.Username == username })
	return u, ok, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, bool, error) {
	email = user.NormalizeEmail(email)
	u, ok := s.users.find(func(u user.User) bool { return u.Email == email })
	return u, ok, nil
}

func (s *Store) ListUsers(_ context.Context, filter user.Filter) ([]user.User, error) {
	return s.users.list(nil, filter.Limit), nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, patch user.Patch) (user.User, bool, error) {
	return s.users.update(id, func(u *user.User) error {
		patch.Apply(u)
		u.UpdatedAt = s.now()
		return u.Validate()
	}, userConflict)
}

func (s *Store) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyUser, id)
}
