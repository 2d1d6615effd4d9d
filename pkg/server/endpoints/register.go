package endpoints

import (
	"github.com/hearthhq/hearth/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterAuthEndpoints(srv)
	RegisterRolesEndpoints(srv)
	RegisterPermissionsEndpoints(srv)
	RegisterUsersEndpoints(srv)
	RegisterStatusEndpoints(srv)
}
