// Package perm implements the permission model for VolunteerHub.
//
// The package is built around three pieces:
//
//   - Catalog: the single source of truth for every resource, its actions
//     and the canonical RESOURCE_ACTION permission keys derived from them.
//     The catalog is immutable after construction.
//
//   - Migrator: translates older, inconsistent permission spellings
//     (e.g. "access_hosts", "manage_collections") onto the canonical key
//     space. Migration is pure, tolerant of unknown input and idempotent.
//
//   - Resolver: computes the effective permission set a user holds from
//     their role defaults and an optional explicit override set, and
//     projects per-resource tri-state (none/partial/all) for the
//     administrative permission grid.
//
// All types in this package are pure, in-memory computations over static
// tables. They hold no mutable state after construction and are safe for
// concurrent use without synchronization.
package perm
