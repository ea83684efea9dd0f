// internal/app/store/kv/kv.go

// Package kv defines the scoped durable key-value capability that the group
// store persists through, plus an in-memory backend.
//
// Durable backends live in subpackages (mongokv, rediskv, boltkv). All of
// them store opaque strings; the caller owns the encoding.
package kv

import (
	"context"
	"sync"
)

// Store is a durable string-by-key surface.
//
// Get reports absence with ok=false and a nil error. A non-nil error means
// the backend itself failed and the caller cannot tell whether the key exists.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Memory is a Store held in process memory. It is safe for concurrent use
// and is what tests substitute for a real backend.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory returns an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *Memory) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// Ping always succeeds.
func (s *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len returns the number of stored keys.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
