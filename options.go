/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyregistry

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/suparena/keyregistry/keygen"
)

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	generator  *keygen.Generator
}

// Option is a functional option for configuring a Registry
type Option func(*options)

func defaultOptions() options {
	return options{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger. Registrations are logged at debug level and
// rejections at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsRegisterer publishes the registry counters on reg
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithGenerator replaces the auto key generator, for example to make UUIDs deterministic
func WithGenerator(g *keygen.Generator) Option {
	return func(o *options) {
		o.generator = g
	}
}
