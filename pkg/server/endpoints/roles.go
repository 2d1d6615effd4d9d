package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/hearthhq/hearth/pkg/audit"
	"github.com/hearthhq/hearth/pkg/authz"
	"github.com/hearthhq/hearth/pkg/server"
	"github.com/hearthhq/hearth/pkg/server/store"
)

// CreateRoleRequest is the payload for role creation
type CreateRoleRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// PermissionIDsRequest carries permission ids for grant and revoke calls
type PermissionIDsRequest struct {
	PermissionIDs []int64 `json:"permission_ids"`
}

// RegisterRolesEndpoints registers the role management endpoints
func RegisterRolesEndpoints(s *server.Server) {
	authzService := s.Authz
	rolesStore := s.RolesStore
	log := s.Log

	// POST /api/v1/roles - Create a role
	s.Router.HandleFunc("/api/v1/roles", handleCreateRole(authzService, log)).Methods("POST")

	// GET /api/v1/roles - List all roles
	s.Router.HandleFunc("/api/v1/roles", handleListRoles(rolesStore, log)).Methods("GET")

	// GET /api/v1/roles/{id}/permissions - List a role's permissions
	s.Router.HandleFunc("/api/v1/roles/{id}/permissions", handleRolePermissions(authzService, log)).Methods("GET")

	// POST /api/v1/roles/{id}/permissions - Grant permissions to a role
	s.Router.HandleFunc("/api/v1/roles/{id}/permissions", handleGrantPermissions(authzService, log)).Methods("POST")

	// DELETE /api/v1/roles/{id}/permissions - Revoke permissions from a role
	s.Router.HandleFunc("/api/v1/roles/{id}/permissions", handleRevokePermissions(authzService, log)).Methods("DELETE")
}

func handleCreateRole(authzService *authz.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		role, err := authzService.CreateRole(req.Name, req.Description)
		if err != nil {
			respondWithServiceError(log, w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, role)
	}
}

func handleListRoles(rolesStore store.RolesStore, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := rolesStore.ListRoles()
		if err != nil {
			respondWithServiceError(log, w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, roles)
	}
}

func handleRolePermissions(authzService *authz.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		permissions, err := authzService.RolePermissions(roleID)
		if err != nil {
			respondWithServiceError(log, w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, permissions)
	}
}

func handleGrantPermissions(authzService *authz.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		var req PermissionIDsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if len(req.PermissionIDs) == 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		created, err := authzService.GrantPermissionsToRole(roleID, req.PermissionIDs)
		event := audit.GrantEvent{
			Operation:   "grant",
			SubjectKind: "role",
			SubjectID:   roleID,
			TargetKind:  "permission",
			TargetIDs:   req.PermissionIDs,
			ClientIP:    clientIP(r),
		}
		if err != nil {
			event.ErrorMessage = err.Error()
			audit.Log(event)
			respondWithServiceError(log, w, err)
			return
		}

		event.Success = true
		audit.Log(event)
		respondWithJSON(w, http.StatusOK, created)
	}
}

func handleRevokePermissions(authzService *authz.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		var req PermissionIDsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if len(req.PermissionIDs) == 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		event := audit.GrantEvent{
			Operation:   "revoke",
			SubjectKind: "role",
			SubjectID:   roleID,
			TargetKind:  "permission",
			TargetIDs:   req.PermissionIDs,
			ClientIP:    clientIP(r),
		}
		if err := authzService.RevokePermissionsFromRole(roleID, req.PermissionIDs); err != nil {
			event.ErrorMessage = err.Error()
			audit.Log(event)
			respondWithServiceError(log, w, err)
			return
		}

		event.Success = true
		audit.Log(event)
		w.WriteHeader(http.StatusNoContent)
	}
}
