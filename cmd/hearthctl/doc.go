// Package main provides hearthctl, the CLI for the hearth API server.
//
// hearth is a small backend for household applications. It provides account
// registration, password login with signed auth tokens, and role based
// access control backed by PostgreSQL.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: storage interfaces and GORM implementations
//   - pkg/authn: password hashing and token issuance
//   - pkg/authz: role and permission management
//   - pkg/migrations: forward-only schema migration runner
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	hearthctl db migrate
//
//	# Create the first account
//	hearthctl user create --email admin@example.com
//
//	# Start the server
//	hearthctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - JWT_SECRET: HMAC secret for signing auth tokens
//   - HEARTH_ENV: Deployment environment (development or production)
//   - HEARTH_LOG_LEVEL: Log level (debug, info, warn, error)
//   - PORT: Server port (default: 3000)
//
// For more information, see https://github.com/hearthhq/hearth
package main
