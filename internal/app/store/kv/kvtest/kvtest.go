// Package kvtest holds the behavior every kv.Store backend must share.
// Backend test files call Run with a constructor for a fresh, empty store.
package kvtest

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/classhub/internal/app/store/kv"
)

// Run exercises newStore against the kv.Store contract.
func Run(t *testing.T, newStore func(t *testing.T) kv.Store) {
	t.Helper()

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := testContext()
		defer cancel()

		v, ok, err := s.Get(ctx, "missing")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Errorf("expected ok=false for missing key, got value %q", v)
		}
	})

	t.Run("SetThenGet", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := testContext()
		defer cancel()

		if err := s.Set(ctx, "groups_v1_u1", `[{"id":"g1"}]`); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		v, ok, err := s.Get(ctx, "groups_v1_u1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok {
			t.Fatal("expected key to exist after Set")
		}
		if v != `[{"id":"g1"}]` {
			t.Errorf("value: got %q, want %q", v, `[{"id":"g1"}]`)
		}
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := testContext()
		defer cancel()

		if err := s.Set(ctx, "k", "first"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := s.Set(ctx, "k", "second"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		v, _, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if v != "second" {
			t.Errorf("value: got %q, want %q", v, "second")
		}
	})

	t.Run("EmptyValueIsPresent", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := testContext()
		defer cancel()

		if err := s.Set(ctx, "k", ""); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		_, ok, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok {
			t.Error("expected empty value to be reported as present")
		}
	})

	t.Run("Remove", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := testContext()
		defer cancel()

		if err := s.Set(ctx, "k", "v"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := s.Remove(ctx, "k"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		_, ok, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Error("expected key to be gone after Remove")
		}
	})

	t.Run("RemoveMissing", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := testContext()
		defer cancel()

		if err := s.Remove(ctx, "never-set"); err != nil {
			t.Errorf("Remove of a missing key should succeed, got %v", err)
		}
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := testContext()
		defer cancel()

		if err := s.Set(ctx, "groups_v1_a", "A"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := s.Set(ctx, "groups_v1_b", "B"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := s.Remove(ctx, "groups_v1_a"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		v, ok, err := s.Get(ctx, "groups_v1_b")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok || v != "B" {
			t.Errorf("groups_v1_b: got (%q, %v), want (%q, true)", v, ok, "B")
		}
	})

	t.Run("Ping", func(t *testing.T) {
		s := newStore(t)
		p, ok := s.(kv.Pinger)
		if !ok {
			t.Skip("backend does not implement kv.Pinger")
		}
		ctx, cancel := testContext()
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})
}

func testContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
