// Package model defines the database models for hearth.
//
// This package contains GORM models that map to the hearth PostgreSQL schema.
//
// # Core Models
//
//   - User: Registered accounts with hashed password credentials
//   - Role: Named permission groups
//   - Permission: Named capabilities, optionally scoped to a resource/action pair
//   - UserRole: user↔role membership join rows
//   - RolePermission: role↔permission grant join rows
//   - Migration: Bookkeeping rows for applied schema evolution steps
//
// # Database Schema
//
//   - users: Account identities and credentials
//   - roles: Role definitions
//   - permissions: Permission definitions
//   - user_roles: User role memberships
//   - role_permissions: Role permission grants
//   - migrations: Applied schema steps
package model
