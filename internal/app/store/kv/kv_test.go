package kv_test

import (
	"context"
	"testing"

	"github.com/dalemusser/classhub/internal/app/store/kv"
	"github.com/dalemusser/classhub/internal/app/store/kv/kvtest"
)

func TestMemory(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kv.Store {
		return kv.NewMemory()
	})
}

func TestMemory_CanceledContext(t *testing.T) {
	s := kv.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Set(ctx, "k", "v"); err == nil {
		t.Error("expected Set to fail on a canceled context")
	}
	if _, _, err := s.Get(ctx, "k"); err == nil {
		t.Error("expected Get to fail on a canceled context")
	}
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
}
