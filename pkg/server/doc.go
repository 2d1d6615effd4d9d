// Package server provides the HTTP server for the hearth API.
//
// The Server struct wires the store interfaces, the authentication and
// authorization services, and the configuration into a gorilla/mux router
// wrapped with request logging.
//
// # Server Setup
//
//	srv := server.NewServer(users, roles, permissions, grants, health,
//		authnService, authzService, cfg, log)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - /api/v1/auth/register - account registration
//   - /api/v1/auth/login - password login and token issuance
//   - /api/v1/roles, /api/v1/permissions - RBAC administration
//   - /api/v1/users/{id}/roles, /api/v1/users/{id}/permissions - grants
//   - /api/v1/healthcheck - liveness
package server
