// Package store provides storage abstractions for the hearth server.
//
// This package defines interfaces for database operations, allowing the
// services and endpoints to be decoupled from the specific database
// implementation. This enables easier testing with mocks and potential
// support for different storage backends.
//
// # Available Stores
//
//   - UsersStore: Account and credential operations
//   - RolesStore: Role definitions
//   - PermissionsStore: Permission definitions
//   - GrantsStore: user↔role and role↔permission join operations
//   - HealthStore: Connectivity checks
package store
