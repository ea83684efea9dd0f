package testutil

import (
	"context"
	"testing"

	"github.com/dalemusser/classhub/internal/app/store/kv"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	kv kv.Store
	t  *testing.T
}

// NewFixtures creates a Fixtures instance writing to the given backend.
func NewFixtures(t *testing.T, store kv.Store) *Fixtures {
	t.Helper()
	return &Fixtures{kv: store, t: t}
}

// KV returns the underlying backend for direct access in tests.
func (f *Fixtures) KV() kv.Store {
	return f.kv
}

// User builds a user with a fresh unique ID. Nothing is persisted; users
// only exist as session identities.
func (f *Fixtures) User(name string, role models.Role) models.User {
	f.t.Helper()
	id := primitive.NewObjectID().Hex()
	return models.User{
		ID:        id,
		Name:      name,
		Email:     id + "@test.com",
		Role:      role,
		AvatarRef: "avatar-" + id,
	}
}

// Student builds a Student user.
func (f *Fixtures) Student(name string) models.User {
	f.t.Helper()
	return f.User(name, models.RoleStudent)
}

// Faculty builds a Faculty user.
func (f *Fixtures) Faculty(name string) models.User {
	f.t.Helper()
	return f.User(name, models.RoleFaculty)
}

// CR builds a class representative user.
func (f *Fixtures) CR(name string) models.User {
	f.t.Helper()
	return f.User(name, models.RoleCR)
}

// SeedRaw writes value verbatim under key, for tests that need legacy or
// corrupt persisted data.
func (f *Fixtures) SeedRaw(ctx context.Context, key, value string) {
	f.t.Helper()
	if err := f.kv.Set(ctx, key, value); err != nil {
		f.t.Fatalf("failed to seed %q: %v", key, err)
	}
}

// Raw reads key back verbatim, failing the test if the backend errors.
func (f *Fixtures) Raw(ctx context.Context, key string) (string, bool) {
	f.t.Helper()
	v, ok, err := f.kv.Get(ctx, key)
	if err != nil {
		f.t.Fatalf("failed to read %q: %v", key, err)
	}
	return v, ok
}
