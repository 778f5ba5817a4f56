//
// Tencent is pleased to support the open source community by making trpc-scorer-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-scorer-go is licensed under the Apache License Version 2.0.
//
//

package scorer

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the registration and retrieval of scorers by name.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	scorers map[string]Scorer
}

// NewRegistry creates an empty scorer registry.
func NewRegistry() *Registry {
	return &Registry{
		scorers: make(map[string]Scorer),
	}
}

// Register adds a scorer under its own name.
// It fails if the name is empty or already taken.
func (r *Registry) Register(s Scorer) error {
	if s == nil {
		return fmt.Errorf("scorer is nil")
	}
	name := s.Name()
	if name == "" {
		return fmt.Errorf("scorer name is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scorers[name]; ok {
		return fmt.Errorf("scorer %q already registered", name)
	}
	r.scorers[name] = s
	return nil
}

// Get retrieves a scorer by name.
func (r *Registry) Get(name string) (Scorer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scorers[name]
	if !ok {
		return nil, fmt.Errorf("scorer %q not registered", name)
	}
	return s, nil
}

// List returns all registered scorer names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.scorers))
	for name := range r.scorers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unregister removes a scorer from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scorers[name]; !ok {
		return fmt.Errorf("scorer %q not registered", name)
	}
	delete(r.scorers, name)
	return nil
}
