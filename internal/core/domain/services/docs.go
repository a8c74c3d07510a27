// Package services provides domain services that implement business rules
// spanning multiple aggregates in the freight system.
//
// The package includes:
//   - AuthorityResolver: the single source of truth for which acting role may
//     advance which entity state, replacing per-screen permission checks
//
// Domain services are pure: they inspect entities and actors and return
// decisions without performing I/O, following Domain-Driven Design
// principles.
package services
