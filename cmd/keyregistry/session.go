/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/suparena/keyregistry"
	"github.com/suparena/keyregistry/fixture"
	"github.com/suparena/keyregistry/keys"
)

// session is a registry populated from one fixture file.
type session struct {
	reg      *keyregistry.Registry
	doc      *fixture.Document
	entities []keys.Keyable
	metrics  *prometheus.Registry
}

func openSession(path string, logger *slog.Logger) (*session, error) {
	doc, err := fixture.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}

	metrics := prometheus.NewRegistry()
	reg := keyregistry.New(
		keyregistry.WithLogger(logger),
		keyregistry.WithMetricsRegisterer(metrics),
	)
	entities, err := doc.Apply(reg)
	if err != nil {
		return nil, fmt.Errorf("applying fixture: %w", err)
	}
	logger.Info("fixture loaded", "path", path, "types", len(doc.Types), "entities", len(entities))
	return &session{reg: reg, doc: doc, entities: entities, metrics: metrics}, nil
}

// keyValues returns the key values of e by key name
func keyValues(e keys.Keyable) map[string]any {
	out := make(map[string]any)
	for _, d := range e.KeyTable().Descriptors() {
		if v, ok := e.KeyValue(d.Name); ok {
			out[d.Name] = v
		}
	}
	return out
}
