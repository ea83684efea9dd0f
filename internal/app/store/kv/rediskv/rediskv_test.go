package rediskv_test

import (
	"testing"

	"github.com/dalemusser/classhub/internal/app/store/kv"
	"github.com/dalemusser/classhub/internal/app/store/kv/kvtest"
	"github.com/dalemusser/classhub/internal/app/store/kv/rediskv"
	"github.com/dalemusser/classhub/internal/testutil"
)

func TestStore(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kv.Store {
		client, prefix := testutil.SetupTestRedis(t)
		return rediskv.New(client, prefix)
	})
}

func TestStore_PrefixesKeys(t *testing.T) {
	client, prefix := testutil.SetupTestRedis(t)
	store := rediskv.New(client, prefix)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Set(ctx, "groups_v1_u1", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := client.Get(ctx, prefix+"groups_v1_u1").Result()
	if err != nil {
		t.Fatalf("expected the prefixed key to exist: %v", err)
	}
	if got != "[]" {
		t.Errorf("value: got %q, want %q", got, "[]")
	}
}
