package groupstore_test

import (
	"errors"
	"testing"
	"time"

	groupstore "github.com/dalemusser/classhub/internal/app/store/groups"
	"github.com/dalemusser/classhub/internal/app/store/kv"
	"github.com/dalemusser/classhub/internal/testutil"
	"go.uber.org/zap"
)

const legacyBlob = `[{"id":"g1","name":"Legacy","code":"OLD-1","privacy":"Open","members":1,"posts":0,"membersList":[]}]`

func TestMigrateLegacy_CopiesAndRemoves(t *testing.T) {
	mem, f, ctx := setup(t)
	u := f.Student("Ana")
	f.SeedRaw(ctx, groupstore.LegacyKey, legacyBlob)

	moved, err := groupstore.MigrateLegacy(ctx, mem, u.ID, zap.NewNop())
	if err != nil {
		t.Fatalf("MigrateLegacy failed: %v", err)
	}
	if !moved {
		t.Error("expected migration to happen")
	}

	if got, ok := f.Raw(ctx, groupstore.Key(u.ID)); !ok || got != legacyBlob {
		t.Errorf("scoped key: got (%q, %v), want legacy blob", got, ok)
	}
	if _, ok := f.Raw(ctx, groupstore.LegacyKey); ok {
		t.Error("legacy key should be removed")
	}

	groups := groupstore.Load(ctx, mem, u.ID, nil).Groups()
	if len(groups) != 1 || groups[0].Code != "OLD-1" {
		t.Errorf("migrated groups: got %+v", groups)
	}
}

func TestMigrateLegacy_ScopedKeyWins(t *testing.T) {
	mem, f, ctx := setup(t)
	u := f.Student("Ana")
	f.SeedRaw(ctx, groupstore.LegacyKey, legacyBlob)
	f.SeedRaw(ctx, groupstore.Key(u.ID), "[]")

	moved, err := groupstore.MigrateLegacy(ctx, mem, u.ID, nil)
	if err != nil {
		t.Fatalf("MigrateLegacy failed: %v", err)
	}
	if moved {
		t.Error("should not migrate over existing scoped data")
	}
	if got, _ := f.Raw(ctx, groupstore.Key(u.ID)); got != "[]" {
		t.Errorf("scoped key overwritten: %q", got)
	}
	if _, ok := f.Raw(ctx, groupstore.LegacyKey); !ok {
		t.Error("legacy key should be left alone")
	}
}

func TestMigrateLegacy_NothingToMigrate(t *testing.T) {
	mem, f, ctx := setup(t)
	u := f.Student("Ana")

	moved, err := groupstore.MigrateLegacy(ctx, mem, u.ID, nil)
	if err != nil || moved {
		t.Errorf("got (%v, %v), want (false, nil)", moved, err)
	}
	if _, ok := f.Raw(ctx, groupstore.Key(u.ID)); ok {
		t.Error("scoped key should not be created")
	}
}

func TestMigrateLegacy_BackendDown(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := groupstore.MigrateLegacy(ctx, failingKV{}, "u1", nil)
	if !errors.Is(err, groupstore.ErrStorageUnavailable) {
		t.Errorf("got err %v, want ErrStorageUnavailable", err)
	}
	if !errors.Is(err, errBackendDown) {
		t.Errorf("got err %v, want it to wrap the backend error", err)
	}
}

func TestRegistry_OneStorePerUser(t *testing.T) {
	mem, f, ctx := setup(t)
	a := f.Student("Ana")
	b := f.Student("Ben")
	reg := groupstore.NewRegistry(mem, false, nil)

	sa := reg.For(ctx, a.ID)
	if reg.For(ctx, a.ID) != sa {
		t.Error("expected the same Store for repeated lookups")
	}
	sb := reg.For(ctx, b.ID)
	if sb == sa {
		t.Error("expected distinct Stores for distinct users")
	}
	if sb.UserID() != b.ID {
		t.Errorf("UserID: got %q, want %q", sb.UserID(), b.ID)
	}
	if reg.Len() != 2 {
		t.Errorf("Len: got %d, want 2", reg.Len())
	}

	sa.CreateGroup(ctx, a, groupstore.CreateInput{Name: "A", Code: "A-1"})
	if n := len(sb.Groups()); n != 0 {
		t.Errorf("stores leaked across users: %d groups", n)
	}
}

func TestRegistry_EvictIdle(t *testing.T) {
	mem, f, ctx := setup(t)
	a := f.Student("Ana")
	reg := groupstore.NewRegistry(mem, false, nil)

	sa := reg.For(ctx, a.ID)
	sa.CreateGroup(ctx, a, groupstore.CreateInput{Name: "A", Code: "A-1"})

	if n := reg.EvictIdle(time.Hour); n != 0 {
		t.Errorf("fresh store evicted: %d", n)
	}
	// negative ttl puts the cutoff in the future
	if n := reg.EvictIdle(-time.Hour); n != 1 {
		t.Errorf("EvictIdle: got %d, want 1", n)
	}
	if reg.Len() != 0 {
		t.Errorf("Len after evict: got %d, want 0", reg.Len())
	}

	reloaded := reg.For(ctx, a.ID)
	if reloaded == sa {
		t.Error("expected a new Store after eviction")
	}
	if n := len(reloaded.Groups()); n != 1 {
		t.Errorf("reloaded store: got %d groups, want 1", n)
	}
}

func TestRegistry_MigratesLegacyOnFirstLoad(t *testing.T) {
	mem := kv.NewMemory()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := mem.Set(ctx, groupstore.LegacyKey, legacyBlob); err != nil {
		t.Fatalf("seed: %v", err)
	}

	reg := groupstore.NewRegistry(mem, true, zap.NewNop())
	s := reg.For(ctx, "u1")
	if n := len(s.Groups()); n != 1 {
		t.Errorf("expected migrated group, got %d", n)
	}

	off := groupstore.NewRegistry(kv.NewMemory(), false, nil)
	if n := len(off.For(ctx, "u1").Groups()); n != 0 {
		t.Errorf("migration disabled: got %d groups", n)
	}
}
