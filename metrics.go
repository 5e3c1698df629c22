/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyregistry

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "keyregistry"

const (
	resultRegistered = "registered"
	resultRejected   = "rejected"
)

type metrics struct {
	registrations   *prometheus.CounterVec
	unregistrations *prometheus.CounterVec
	generated       *prometheus.CounterVec
	entities        *prometheus.GaugeVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "registrations_total",
			Help:      "Registration attempts by entity type and result.",
		}, []string{"entity_type", "result"}),
		unregistrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "unregistrations_total",
			Help:      "Entities removed from the registry by entity type.",
		}, []string{"entity_type"}),
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "auto_keys_generated_total",
			Help:      "Auto key values generated by entity type and key.",
		}, []string{"entity_type", "key"}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "entities",
			Help:      "Entities currently indexed by entity type.",
		}, []string{"entity_type"}),
	}
	if reg == nil {
		return m
	}
	m.registrations = register(reg, m.registrations)
	m.unregistrations = register(reg, m.unregistrations)
	m.generated = register(reg, m.generated)
	m.entities = register(reg, m.entities)
	return m
}

// register adds c to reg, reusing the collector another registry already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *metrics) setEntities(entityType string, n int) {
	m.entities.WithLabelValues(entityType).Set(float64(n))
}
