// Package metric provides Prometheus instrumentation for the loading
// pipeline: core counters and histograms for loads, instantiations and
// errors, a registry wrapper that namespaces component metrics and guards
// against duplicate registration, and an HTTP exposition handler/server.
//
// Metrics are opt-in throughout factorykit: loaders and caches run without a
// registry and only record when one is attached.
package metric
