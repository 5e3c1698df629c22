/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/suparena/keyregistry/catalog"
	kerrors "github.com/suparena/keyregistry/errors"
	"github.com/suparena/keyregistry/keys"
)

// Document is a parsed fixture file
type Document struct {
	Types   []TypeSpec   `yaml:"types"`
	Records []RecordSpec `yaml:"records"`
}

// TypeSpec declares an entity type
type TypeSpec struct {
	Name string    `yaml:"name"`
	Keys []KeySpec `yaml:"keys"`
}

// KeySpec declares one key. A key that is neither primary nor alternate is
// treated as alternate.
type KeySpec struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Primary   bool   `yaml:"primary,omitempty"`
	Alternate bool   `yaml:"alternate,omitempty"`
	Unique    bool   `yaml:"unique,omitempty"`
	Mandatory bool   `yaml:"mandatory,omitempty"`
	Auto      bool   `yaml:"auto,omitempty"`
}

// RecordSpec is one entity to register
type RecordSpec struct {
	Type   string         `yaml:"type"`
	Values map[string]any `yaml:"values"`
}

// Registrar is the part of a registry Apply needs.
type Registrar interface {
	catalog.Declarer
	Register(e keys.Keyable) error
}

// RecordError reports the record Apply stopped at
type RecordError struct {
	Index int
	Type  string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %v", e.Index, e.Type, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Load parses a YAML fixture. Unknown fields are rejected.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &doc, nil
}

// LoadFile parses the YAML fixture at path
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Descriptor converts k to a key descriptor
func (k KeySpec) Descriptor() (keys.KeyDescriptor, error) {
	vt, err := keys.ParseValueType(k.Type)
	if err != nil {
		return keys.KeyDescriptor{}, fmt.Errorf("key %q: %w", k.Name, err)
	}
	var flags keys.Flags
	if k.Primary {
		flags |= keys.FlagPrimary | keys.FlagMandatory | keys.FlagUnique
	}
	if k.Alternate || !k.Primary {
		flags |= keys.FlagAlternate
	}
	if k.Unique {
		flags |= keys.FlagUnique
	}
	if k.Mandatory {
		flags |= keys.FlagMandatory
	}
	if k.Auto {
		flags |= keys.FlagAuto
	}
	return keys.KeyDescriptor{Name: k.Name, Type: vt, Flags: flags}, nil
}

// Table builds and validates the key table t declares
func (t TypeSpec) Table() (*keys.Table, error) {
	descs := make([]keys.KeyDescriptor, 0, len(t.Keys))
	for _, k := range t.Keys {
		d, err := k.Descriptor()
		if err != nil {
			return nil, kerrors.NewKeyError(t.Name, k.Name, err)
		}
		descs = append(descs, d)
	}
	return keys.NewTable(t.Name, descs...)
}

// Catalog returns a catalog of the document types, backed by Record.
func (d *Document) Catalog() (*catalog.Catalog, error) {
	cat := catalog.New()
	for _, spec := range d.Types {
		if _, exists := cat.Lookup(spec.Name); exists {
			return nil, kerrors.NewKeyError(spec.Name, "", kerrors.ErrTableConflict)
		}
		t, err := spec.Table()
		if err != nil {
			return nil, err
		}
		cat.Register(t, func() keys.Keyable { return NewRecord(t) })
	}
	return cat, nil
}

// ApplyOption configures Apply
type ApplyOption func(*applyOptions)

type applyOptions struct {
	catalog *catalog.Catalog
}

// WithCatalog resolves record types the document does not declare
func WithCatalog(c *catalog.Catalog) ApplyOption {
	return func(o *applyOptions) {
		o.catalog = c
	}
}

// Apply declares the document types on reg and registers every record. It
// returns the registered entities in record order. On failure the entities
// registered so far stay registered and the error is a *RecordError.
func (d *Document) Apply(reg Registrar, opts ...ApplyOption) ([]keys.Keyable, error) {
	var o applyOptions
	for _, opt := range opts {
		opt(&o)
	}

	cat, err := d.Catalog()
	if err != nil {
		return nil, err
	}
	if err := cat.DeclareAll(reg); err != nil {
		return nil, err
	}

	out := make([]keys.Keyable, 0, len(d.Records))
	for i, rec := range d.Records {
		e, err := d.build(cat, o.catalog, rec)
		if err == nil {
			err = reg.Register(e)
		}
		if err != nil {
			return out, &RecordError{Index: i, Type: rec.Type, Err: err}
		}
		out = append(out, e)
	}
	return out, nil
}

func (d *Document) build(own, extra *catalog.Catalog, rec RecordSpec) (keys.Keyable, error) {
	entry, ok := own.Lookup(rec.Type)
	if !ok && extra != nil {
		entry, ok = extra.Lookup(rec.Type)
	}
	if !ok {
		return nil, fmt.Errorf("entity type %q: %w", rec.Type, kerrors.ErrNotFound)
	}

	e := entry.Factory()
	names := make([]string, 0, len(rec.Values))
	for name := range rec.Values {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := e.SetKeyValue(name, rec.Values[name]); err != nil {
			return nil, err
		}
	}
	return e, nil
}
