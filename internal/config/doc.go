// Package config assembles application settings from layered sources
// (compiled-in defaults, dotenv override files, process environment
// variables) into a validated, immutable Config. It provides type-safe
// access to application settings needed by different components while
// keeping configuration details separate from business logic.
//
// Resolution is explicit: the schema of declared settings and the ordered
// list of override sources are both inputs, so precedence is controlled by
// the caller and the resolver stays testable with injected fake sources.
package config
