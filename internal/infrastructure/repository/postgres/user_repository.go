package postgres

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/user"
	qb "github.com/riskibarqy/teamhub/internal/platform/querybuilder"
)

type UserRepository struct {
	c *conn
}

func (r *UserRepository) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	u.Normalize()
	now := r.c.now()
	u.CreatedAt, u.UpdatedAt = now, now
	if err := u.Validate(); err != nil {
		return user.User{}, err
	}
	return create(ctx, r.c, userMapping, "create user", u)
}

func (r *UserRepository) GetUser(ctx context.Context, id int64) (user.User, bool, error) {
	return get(ctx, r.c, userMapping, "get user", qb.Eq("id", id))
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (user.User, bool, error) {
	return get(ctx, r.c, userMapping, "get user by username", qb.Eq("username", strings.TrimSpace(username)))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return get(ctx, r.c, userMapping, "get user by email", qb.Eq("email", user.NormalizeEmail(email)))
}

func (r *UserRepository) ListUsers(ctx context.Context, filter user.Filter) ([]user.User, error) {
	return list(ctx, r.c, userMapping, "list users", filter.Limit)
}

func (r *UserRepository) UpdateUser(ctx context.Context, id int64, patch user.Patch) (user.User, bool, error) {
	return update(ctx, r.c, userMapping, "update user", id, func(u *user.User) error {
		patch.Apply(u)
		u.UpdatedAt = r.c.now()
		return u.Validate()
	})
}

// DeleteUser relies on the schema: memberships and attendance go with the
// user, authored rows keep existing with the reference cleared.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, userMapping.table, "delete user", qb.Eq("id", id))
}
