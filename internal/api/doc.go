// Package api contains the HTTP handlers for the service: liveness and
// status probes, the mock user endpoints, and the admin surface for the
// vector collection registry.
package api
