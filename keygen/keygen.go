/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package keygen produces values for auto keys.
//
// Integer keys draw from a counter per (entity type, value type, key name)
// triple that starts at 1 and only grows. UUID keys are random and stateless.
// A Generator is not safe for concurrent use; the registry serializes access.
package keygen

import (
	"fmt"

	"github.com/google/uuid"

	kerrors "github.com/suparena/keyregistry/errors"
	"github.com/suparena/keyregistry/keys"
)

// Triple identifies one counter.
type Triple struct {
	EntityType string
	Type       keys.ValueType
	Name       string
}

func (t Triple) String() string {
	return fmt.Sprintf("%s/%s/%s", t.EntityType, t.Type, t.Name)
}

// Generator holds the counter store.
type Generator struct {
	counters map[Triple]int64
	newUUID  func() uuid.UUID
}

// Option configures a Generator
type Option func(*Generator)

// WithUUIDSource replaces the random UUID source
func WithUUIDSource(f func() uuid.UUID) Option {
	return func(g *Generator) {
		g.newUUID = f
	}
}

// New creates an empty Generator
func New(opts ...Option) *Generator {
	g := &Generator{
		counters: make(map[Triple]int64),
		newUUID:  uuid.New,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns the next value for the triple in its canonical representation.
func (g *Generator) Next(entityType string, vt keys.ValueType, name string) (any, error) {
	switch {
	case vt == keys.UUID:
		return g.newUUID(), nil
	case vt.IsInteger():
		triple := Triple{EntityType: entityType, Type: vt, Name: name}
		last := g.counters[triple]
		if last >= vt.MaxInt() {
			return nil, kerrors.NewKeyValueError(entityType, name, last, kerrors.ErrKeyGenerationExhausted)
		}
		v, err := vt.FromInt64(last + 1)
		if err != nil {
			return nil, kerrors.NewKeyError(entityType, name, err)
		}
		g.counters[triple] = last + 1
		return v, nil
	default:
		return nil, kerrors.NewKeyError(entityType, name,
			fmt.Errorf("%w: %s", kerrors.ErrUnsupportedAutoKeyType, vt))
	}
}

// Last returns the most recently generated value of a counter, or 0.
func (g *Generator) Last(t Triple) int64 {
	return g.counters[t]
}

// Len returns the number of live counters
func (g *Generator) Len() int {
	return len(g.counters)
}

// Reset drops every counter
func (g *Generator) Reset() {
	g.counters = make(map[Triple]int64)
}
