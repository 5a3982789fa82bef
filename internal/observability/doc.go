// Package observability builds the service's zap logger and its Prometheus
// HTTP and connection pool metrics.
package observability
