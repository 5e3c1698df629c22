/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyregistry

import (
	"fmt"

	kerrors "github.com/suparena/keyregistry/errors"
	"github.com/suparena/keyregistry/keys"
)

// Stage is a step of the registration state machine.
type Stage string

const (
	StageValidating Stage = "validating"
	StageResolving  Stage = "resolving"
	StageCommitting Stage = "committing"
	StageRegistered Stage = "registered"
	StageRejected   Stage = "rejected"
)

// registration carries the state of one Register call.
type registration struct {
	r      *Registry
	e      keys.Keyable
	table  *keys.Table
	stage  Stage
	values map[string]any
	// auto keys written back into the entity
	generated []keys.KeyDescriptor
	// coordinates inserted so far
	inserted []keys.IndexKey
}

// Register validates e, fills its auto keys and indexes it under every key.
// On failure nothing is indexed and e is left as it was passed in.
func (r *Registry) Register(e keys.Keyable) error {
	if err := checkEntity(e); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return kerrors.ErrShutdown
	}

	reg := &registration{
		r:      r,
		e:      e,
		table:  e.KeyTable(),
		stage:  StageValidating,
		values: make(map[string]any),
	}
	entityType := entityTypeOf(e)

	if err := reg.run(); err != nil {
		failed := reg.stage
		reg.rollback()
		r.metrics.registrations.WithLabelValues(entityType, resultRejected).Inc()
		r.logger.Warn("registration rejected",
			"entity_type", entityType,
			"stage", string(failed),
			"error", err,
		)
		return kerrors.NewRegistrationError(entityType, string(failed), err)
	}

	r.records[e] = &record{entityType: entityType, keys: reg.inserted}
	r.metrics.registrations.WithLabelValues(entityType, resultRegistered).Inc()
	r.metrics.setEntities(entityType, r.index.Count(entityType))
	r.logger.Debug("entity registered",
		"entity_type", entityType,
		"keys", len(reg.inserted),
	)
	return nil
}

func (reg *registration) run() error {
	if err := reg.validate(); err != nil {
		return err
	}
	reg.stage = StageResolving
	if err := reg.resolve(); err != nil {
		return err
	}
	reg.stage = StageCommitting
	if err := reg.commit(); err != nil {
		return err
	}
	reg.stage = StageRegistered
	return nil
}

// validate checks the declaration and the live values of every key.
func (reg *registration) validate() error {
	t := reg.table
	if err := t.Validate(); err != nil {
		return err
	}
	entityType := t.EntityType()

	if _, exists := reg.r.records[reg.e]; exists {
		return kerrors.NewKeyError(entityType, "", kerrors.ErrAlreadyRegistered)
	}
	if err := reg.r.index.Declare(t); err != nil {
		return err
	}

	for _, d := range t.Descriptors() {
		raw, ok := reg.e.KeyValue(d.Name)
		if !ok {
			return kerrors.NewKeyError(entityType, d.Name, kerrors.ErrUnresolvableKeyField)
		}
		v, err := d.Type.Coerce(raw)
		if err != nil {
			return kerrors.NewKeyError(entityType, d.Name, err)
		}
		zero := d.Type.IsZero(v)
		switch {
		case d.IsAuto() && !zero:
			return kerrors.NewKeyValueError(entityType, d.Name, v, kerrors.ErrAutoValueConflict)
		case d.IsMandatory() && !d.IsAuto() && zero:
			return kerrors.NewKeyError(entityType, d.Name, kerrors.ErrMissingMandatoryValue)
		}
		reg.values[d.Name] = v
	}
	return nil
}

// resolve generates the auto key values and writes them into the entity.
func (reg *registration) resolve() error {
	entityType := reg.table.EntityType()
	for _, d := range reg.table.Descriptors() {
		if !d.IsAuto() {
			continue
		}
		v, err := reg.r.gen.Next(entityType, d.Type, d.Name)
		if err != nil {
			return err
		}
		if err := reg.e.SetKeyValue(d.Name, v); err != nil {
			return kerrors.NewKeyError(entityType, d.Name, fmt.Errorf("store generated value: %w", err))
		}
		reg.generated = append(reg.generated, d)
		reg.values[d.Name] = v
		reg.r.metrics.generated.WithLabelValues(entityType, d.Name).Inc()
	}
	return nil
}

// commit checks every unique key before the first write, then inserts the
// keys primary first.
func (reg *registration) commit() error {
	entityType := reg.table.EntityType()
	order := reg.table.CommitOrder()

	ks := make([]keys.IndexKey, len(order))
	for i, d := range order {
		ks[i] = keys.IndexKey{EntityType: entityType, Type: d.Type, Name: d.Name, Value: reg.values[d.Name]}
		if err := reg.r.index.CanInsert(ks[i], reg.e, d.IsUnique()); err != nil {
			return err
		}
	}

	for i, d := range order {
		ok, err := reg.r.index.Insert(ks[i], reg.e, d.IsUnique(), d.IsMandatory())
		if err != nil {
			return err
		}
		if ok {
			reg.inserted = append(reg.inserted, ks[i])
		}
	}
	return nil
}

// rollback undoes the inserts and generated values of a failed registration.
func (reg *registration) rollback() {
	for _, k := range reg.inserted {
		reg.r.index.Remove(k, reg.e)
	}
	reg.inserted = nil
	for _, d := range reg.generated {
		// best effort, the entity accepted the value a moment ago
		_ = reg.e.SetKeyValue(d.Name, d.Type.Zero())
	}
	reg.generated = nil
	reg.stage = StageRejected
}

// Unregister removes e from every coordinate it was registered under.
// Unregistering an entity that is not registered fails with ErrNotRegistered.
func (r *Registry) Unregister(e keys.Keyable) error {
	if err := checkEntity(e); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[e]
	if !ok {
		return kerrors.NewKeyError(entityTypeOf(e), "", kerrors.ErrNotRegistered)
	}

	if err := r.readBack(e, rec); err != nil {
		return err
	}
	if err := r.index.RemoveAllForEntity(rec.entityType, rec.keys, e); err != nil {
		return err
	}
	r.forget(e, rec.entityType)
	r.logger.Debug("entity unregistered", "entity_type", rec.entityType)
	return nil
}

// readBack re-reads every key field of e. Removal uses the recorded values, so
// a field changed after registration is only reported.
func (r *Registry) readBack(e keys.Keyable, rec *record) error {
	t, ok := r.index.Table(rec.entityType)
	if !ok {
		return kerrors.NewKeyError(rec.entityType, "", kerrors.ErrUnresolvableKeyField)
	}
	recorded := make(map[string]any, len(rec.keys))
	for _, k := range rec.keys {
		recorded[k.Name] = k.Value
	}
	for _, d := range t.Descriptors() {
		raw, ok := e.KeyValue(d.Name)
		if !ok {
			return kerrors.NewKeyError(rec.entityType, d.Name, kerrors.ErrUnresolvableKeyField)
		}
		if was, indexed := recorded[d.Name]; indexed {
			if v, err := d.Type.Coerce(raw); err != nil || v != was {
				r.logger.Debug("key value changed since registration",
					"entity_type", rec.entityType,
					"key", d.Name,
					"registered", was,
				)
			}
		}
	}
	return nil
}

func (r *Registry) forget(e keys.Keyable, entityType string) {
	delete(r.records, e)
	r.metrics.unregistrations.WithLabelValues(entityType).Inc()
	r.metrics.setEntities(entityType, r.index.Count(entityType))
}

// UnregisterByEntityType removes every entity of a type and returns how many
// were removed. The type stays declared.
func (r *Registry) UnregisterByEntityType(entityType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	touched := r.index.RemoveByEntityType(entityType)
	for _, e := range touched {
		r.forget(e, entityType)
	}
	r.logger.Debug("entity type unregistered", "entity_type", entityType, "entities", len(touched))
	return len(touched)
}

// UnregisterByKeyType prunes every key of value type vt. When the primary key
// has that type the affected entities are unregistered entirely; otherwise
// they stay registered but can no longer be found through the pruned keys.
// It returns the number of entities unregistered.
func (r *Registry) UnregisterByKeyType(entityType string, vt keys.ValueType) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.index.Table(entityType)
	if !ok {
		return 0
	}
	primary, _ := t.Primary()
	touched := r.index.RemoveByKeyType(entityType, vt)
	return r.prune(entityType, touched, primary.Type == vt, func(k keys.IndexKey) bool {
		return k.Type == vt
	})
}

// UnregisterByKeyName prunes one key. Pruning the primary key unregisters the
// affected entities entirely. It returns the number of entities unregistered.
func (r *Registry) UnregisterByKeyName(entityType, name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.index.Table(entityType)
	if !ok {
		return 0
	}
	primary, _ := t.Primary()
	touched := r.index.RemoveByKeyName(entityType, name)
	return r.prune(entityType, touched, primary.Name == name, func(k keys.IndexKey) bool {
		return k.Name == name
	})
}

func (r *Registry) prune(entityType string, touched []keys.Keyable, cascade bool, pruned func(keys.IndexKey) bool) int {
	removed := 0
	for _, e := range touched {
		rec, ok := r.records[e]
		if !ok {
			continue
		}
		if cascade {
			for _, k := range rec.keys {
				r.index.Remove(k, e)
			}
			r.forget(e, entityType)
			removed++
			continue
		}
		kept := rec.keys[:0]
		for _, k := range rec.keys {
			if !pruned(k) {
				kept = append(kept, k)
			}
		}
		rec.keys = kept
	}
	r.logger.Debug("keys pruned",
		"entity_type", entityType,
		"touched", len(touched),
		"unregistered", removed,
	)
	return removed
}
