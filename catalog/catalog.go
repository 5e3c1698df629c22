/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	kerrors "github.com/suparena/keyregistry/errors"
	"github.com/suparena/keyregistry/keys"
)

// Factory creates an empty entity of one entity type.
type Factory func() keys.Keyable

// Entry is a registered entity type
type Entry struct {
	Table   *keys.Table
	Factory Factory
}

// Declarer is implemented by registries that accept key tables.
type Declarer interface {
	Declare(t *keys.Table) error
}

// Catalog holds the mapping from entity type names to tables and factories.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
	goTypes map[reflect.Type]string
}

// New creates an empty Catalog
func New() *Catalog {
	return &Catalog{
		entries: make(map[string]Entry),
		goTypes: make(map[reflect.Type]string),
	}
}

// Register adds an entity type. It panics when the table is invalid or the
// entity type name is already registered, to prevent accidental overrides.
func (c *Catalog) Register(t *keys.Table, factory Factory) {
	if err := t.Validate(); err != nil {
		panic(fmt.Sprintf("catalog: invalid table: %v", err))
	}
	if factory == nil {
		panic(fmt.Sprintf("catalog: nil factory for %q", t.EntityType()))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	name := t.EntityType()
	if _, exists := c.entries[name]; exists {
		panic(fmt.Sprintf("catalog: entity type %q already registered", name))
	}
	c.entries[name] = Entry{Table: t, Factory: factory}
}

// RegisterType registers the Go type T under the entity type its key table
// declares. T must be a pointer type.
func RegisterType[T keys.Keyable](c *Catalog) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Pointer {
		panic(fmt.Sprintf("catalog: %s is not a pointer type", rt))
	}
	factory := func() keys.Keyable {
		return reflect.New(rt.Elem()).Interface().(T)
	}
	t := factory().KeyTable()
	if t == nil {
		panic(fmt.Sprintf("catalog: %s has no key table", rt))
	}
	c.Register(t, factory)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.goTypes[rt] = t.EntityType()
}

// TypeName returns the entity type name T was registered under.
func TypeName[T keys.Keyable](c *Catalog) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.goTypes[reflect.TypeFor[T]()]
	return name, ok
}

// Lookup returns the entry of an entity type
func (c *Catalog) Lookup(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	return e, ok
}

// New creates an empty entity of the named type.
func (c *Catalog) New(name string) (keys.Keyable, error) {
	e, ok := c.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("catalog: entity type %q: %w", name, kerrors.ErrNotFound)
	}
	return e.Factory(), nil
}

// Names returns the registered entity type names, sorted
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeclareAll declares every registered table on d, in name order.
func (c *Catalog) DeclareAll(d Declarer) error {
	for _, name := range c.Names() {
		e, _ := c.Lookup(name)
		if err := d.Declare(e.Table); err != nil {
			return fmt.Errorf("declare %s: %w", name, err)
		}
	}
	return nil
}
