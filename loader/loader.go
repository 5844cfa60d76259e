package loader

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"time"

	"github.com/c360/factorykit/errors"
	"github.com/c360/factorykit/factory"
	"github.com/c360/factorykit/metric"
	"github.com/c360/factorykit/pkg/cache"
	"github.com/c360/factorykit/typeregistry"
)

// factoryMap maps a factory type name to the ordered implementation type
// names registered for it across all sources of one context.
type factoryMap map[string][]string

// Loader discovers and instantiates registered factories. It owns two
// caches: the factory map per context (populated by at most one source scan
// per context) and the selected constructor per implementation type. Both
// persist until Reset; the key spaces are bounded by the contexts and types a
// process uses.
type Loader struct {
	logger        *slog.Logger
	metrics       *metric.Metrics
	factoryMaps   *cache.Cache[*Context, factoryMap]
	instantiators *cache.Cache[reflect.Type, *factory.Instantiator]
}

// Option configures a Loader.
type Option func(*loaderOptions)

type loaderOptions struct {
	logger     *slog.Logger
	metricsReg *metric.MetricsRegistry
}

// WithLogger attaches a structured logger for discovery diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *loaderOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithMetrics attaches a metrics registry; the loader records load,
// instantiation and cache metrics through it.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(opts *loaderOptions) {
		opts.metricsReg = registry
	}
}

// NewLoader creates a Loader with empty caches.
func NewLoader(options ...Option) (*Loader, error) {
	opts := &loaderOptions{logger: slog.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	var cacheOpts []cache.Option
	var instOpts []cache.Option
	var metrics *metric.Metrics
	if opts.metricsReg != nil {
		metrics = opts.metricsReg.CoreMetrics()
		cacheOpts = append(cacheOpts, cache.WithMetrics(opts.metricsReg, "factory_maps"))
		instOpts = append(instOpts, cache.WithMetrics(opts.metricsReg, "instantiators"))
	}

	factoryMaps, err := cache.New[*Context, factoryMap](cacheOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "Loader", "NewLoader", "factory map cache setup")
	}
	instantiators, err := cache.New[reflect.Type, *factory.Instantiator](instOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "Loader", "NewLoader", "instantiator cache setup")
	}

	return &Loader{
		logger:        opts.logger,
		metrics:       metrics,
		factoryMaps:   factoryMaps,
		instantiators: instantiators,
	}, nil
}

// LoadFactoryNames returns the ordered implementation type names registered
// for factoryType in ctx. The result is never nil on success; a factory type
// with no registrations yields an empty slice. The first call per context
// scans and merges all sources; subsequent calls are cache hits.
func (l *Loader) LoadFactoryNames(factoryType string, ctx *Context) ([]string, error) {
	fm, err := l.factoryMap(ctx)
	if err != nil {
		return nil, err
	}

	names := fm[factoryType]
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

// FactoryMap returns a copy of the full merged factory map for ctx: every
// factory type name with its ordered implementation names. Diagnostic
// surface; LoadFactoryNames is the steady-state lookup.
func (l *Loader) FactoryMap(ctx *Context) (map[string][]string, error) {
	fm, err := l.factoryMap(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]string, len(fm))
	for key, names := range fm {
		out[key] = append([]string(nil), names...)
	}
	return out, nil
}

// Reset clears the factory map and instantiator caches. Test and operational
// isolation only; not part of the steady-state contract.
func (l *Loader) Reset() {
	l.factoryMaps.Clear()
	l.instantiators.Clear()
}

// FactoryMapStats returns cache statistics for the factory map cache.
func (l *Loader) FactoryMapStats() *cache.Statistics {
	return l.factoryMaps.Stats()
}

// factoryMap returns the merged factory map for ctx, computing it at most
// once per context.
func (l *Loader) factoryMap(ctx *Context) (factoryMap, error) {
	if ctx == nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: nil loader context", errors.ErrInvalidData),
			"Loader", "LoadFactoryNames", "context validation")
	}
	return l.factoryMaps.GetOrCompute(ctx, func() (factoryMap, error) {
		return l.scan(ctx)
	})
}

// scan enumerates every source of ctx in discovery order and merges the
// entries into a single factory map: values append in encounter order, exact
// string duplicates collapse to their first occurrence.
func (l *Loader) scan(ctx *Context) (factoryMap, error) {
	start := time.Now()

	fm := make(factoryMap)
	for _, src := range ctx.EnumerateSources() {
		entries, err := src.Entries()
		if err != nil {
			l.recordError("Loader", err)
			return nil, err
		}
		for _, entry := range entries {
			for _, impl := range entry.Implementations {
				if !slices.Contains(fm[entry.Key], impl) {
					fm[entry.Key] = append(fm[entry.Key], impl)
				}
			}
		}
	}

	if l.metrics != nil {
		l.metrics.RecordLoadDuration("source_scan", time.Since(start))
		for key, impls := range fm {
			l.metrics.RecordRegistrations(key, len(impls))
		}
	}
	l.logger.Debug("factory map built",
		"context", ctx.Name(),
		"factory_types", len(fm),
		"elapsed", time.Since(start))

	return fm, nil
}

// instantiatorFor returns the cached instantiator for an implementation
// type, selecting its constructor at most once per type. The cache is keyed
// by the Go type alone: a Go type is assumed to carry the same constructor
// set in every registry it is registered in (registration is colocated with
// the type's definition), so the first selection holds for all contexts.
func (l *Loader) instantiatorFor(t typeregistry.Type) (*factory.Instantiator, error) {
	return l.instantiators.GetOrCompute(t.GoType, func() (*factory.Instantiator, error) {
		return factory.ForType(t)
	})
}

func (l *Loader) recordError(component string, err error) {
	if l.metrics != nil {
		l.metrics.RecordError(component, errors.Classify(err).String())
	}
}
