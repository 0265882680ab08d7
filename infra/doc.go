// Package infra holds the adapters behind the core interfaces: the zerolog
// logger, Prometheus and InfluxDB sinks, the Paho plan publisher and the
// Sentry monitor. Nothing under core imports these packages.
package infra
