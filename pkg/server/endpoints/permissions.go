package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/hearthhq/hearth/pkg/authz"
	"github.com/hearthhq/hearth/pkg/server"
	"github.com/hearthhq/hearth/pkg/server/store"
)

// CreatePermissionRequest is the payload for permission creation
type CreatePermissionRequest struct {
	Name     string  `json:"name"`
	Resource *string `json:"resource"`
	Action   string  `json:"action"`
}

// RegisterPermissionsEndpoints registers the permission management endpoints
func RegisterPermissionsEndpoints(s *server.Server) {
	authzService := s.Authz
	permissionsStore := s.PermissionsStore
	log := s.Log

	// POST /api/v1/permissions - Create a permission
	s.Router.HandleFunc("/api/v1/permissions", handleCreatePermission(authzService, log)).Methods("POST")

	// GET /api/v1/permissions - List all permissions
	s.Router.HandleFunc("/api/v1/permissions", handleListPermissions(permissionsStore, log)).Methods("GET")
}

func handleCreatePermission(authzService *authz.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePermissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if req.Name == "" || req.Action == "" {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		permission, err := authzService.CreatePermission(req.Name, req.Resource, req.Action)
		if err != nil {
			respondWithServiceError(log, w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, permission)
	}
}

func handleListPermissions(permissionsStore store.PermissionsStore, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		permissions, err := permissionsStore.ListPermissions()
		if err != nil {
			respondWithServiceError(log, w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, permissions)
	}
}
