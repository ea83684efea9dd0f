package mongokv_test

import (
	"testing"

	"github.com/dalemusser/classhub/internal/app/store/kv"
	"github.com/dalemusser/classhub/internal/app/store/kv/kvtest"
	"github.com/dalemusser/classhub/internal/app/store/kv/mongokv"
	"github.com/dalemusser/classhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kv.Store {
		return mongokv.New(testutil.SetupTestDB(t), "")
	})
}

func TestStore_DocumentShape(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mongokv.New(db, "entries")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Set(ctx, "groups_v1_u1", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var doc bson.M
	if err := db.Collection("entries").FindOne(ctx, bson.M{"_id": "groups_v1_u1"}).Decode(&doc); err != nil {
		t.Fatalf("expected a document keyed by _id: %v", err)
	}
	if doc["value"] != "[]" {
		t.Errorf("value: got %v, want %q", doc["value"], "[]")
	}
	if _, ok := doc["updated_at"]; !ok {
		t.Error("expected updated_at to be set")
	}
}

func TestNew_DefaultCollection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mongokv.New(db, "")
	if got := store.Collection().Name(); got != mongokv.DefaultCollection {
		t.Errorf("collection: got %q, want %q", got, mongokv.DefaultCollection)
	}
}
