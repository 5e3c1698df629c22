/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyregistry

import (
	"log/slog"
	"reflect"
	"sync"

	kerrors "github.com/suparena/keyregistry/errors"
	"github.com/suparena/keyregistry/index"
	"github.com/suparena/keyregistry/keygen"
	"github.com/suparena/keyregistry/keys"
)

// Registry indexes entities by their declared keys.
type Registry struct {
	mu      sync.RWMutex
	index   *index.Index
	gen     *keygen.Generator
	records map[keys.Keyable]*record
	closed  bool

	logger  *slog.Logger
	metrics *metrics

	viewsMu sync.Mutex
	views   map[reflect.Type]any
}

// record holds the coordinates an entity was indexed under at registration time.
type record struct {
	entityType string
	keys       []keys.IndexKey
}

// New creates an empty Registry
func New(opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	gen := o.generator
	if gen == nil {
		gen = keygen.New()
	}
	return &Registry{
		index:   index.New(),
		gen:     gen,
		records: make(map[keys.Keyable]*record),
		views:   make(map[reflect.Type]any),
		logger:  o.logger,
		metrics: newMetrics(o.registerer),
	}
}

// Declare makes an entity type known before any instance is registered, so
// that queries against it resolve key names instead of failing with
// ErrUnknownKeyName.
func (r *Registry) Declare(t *keys.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return kerrors.ErrShutdown
	}
	return r.index.Declare(t)
}

// Table returns the declared table of an entity type
func (r *Registry) Table(entityType string) (*keys.Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.Table(entityType)
}

// Clear drops every entity, declaration and auto key counter.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
	r.logger.Debug("registry cleared")
}

func (r *Registry) clearLocked() {
	r.index.Reset()
	r.gen.Reset()
	r.records = make(map[keys.Keyable]*record)
	r.metrics.entities.Reset()
}

// Shutdown clears the registry. Later registrations fail with ErrShutdown.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
	r.closed = true
	r.logger.Debug("registry shut down")
}

// IsRegistered reports whether e is currently registered
func (r *Registry) IsRegistered(e keys.Keyable) bool {
	if checkEntity(e) != nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.records[e]
	return ok
}

// Snapshot lists every populated index coordinate
func (r *Registry) Snapshot() []index.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.Snapshot()
}

// checkEntity rejects values that cannot be tracked by identity.
func checkEntity(e keys.Keyable) error {
	if e == nil {
		return kerrors.ErrInvalidEntity
	}
	rv := reflect.ValueOf(e)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return kerrors.ErrInvalidEntity
	}
	return nil
}

func entityTypeOf(e keys.Keyable) string {
	if t := e.KeyTable(); t != nil {
		return t.EntityType()
	}
	return reflect.TypeOf(e).String()
}
