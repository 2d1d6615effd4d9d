package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/hearthhq/hearth/pkg/audit"
	"github.com/hearthhq/hearth/pkg/authz"
	"github.com/hearthhq/hearth/pkg/server"
)

// RoleIDsRequest carries role ids for grant and revoke calls
type RoleIDsRequest struct {
	RoleIDs []int64 `json:"role_ids"`
}

// PermissionCheckResponse reports the outcome of a permission check
type PermissionCheckResponse struct {
	Allowed bool `json:"allowed"`
}

// RegisterUsersEndpoints registers the user grant endpoints
func RegisterUsersEndpoints(s *server.Server) {
	authzService := s.Authz
	log := s.Log

	// GET /api/v1/users/{id}/permissions/check - Check a single permission
	s.Router.HandleFunc("/api/v1/users/{id}/permissions/check", handlePermissionCheck(authzService, log)).Methods("GET")

	// GET /api/v1/users/{id}/permissions - Effective permissions for a user
	s.Router.HandleFunc("/api/v1/users/{id}/permissions", handleUserPermissions(authzService, log)).Methods("GET")

	// GET /api/v1/users/{id}/roles - List a user's roles
	s.Router.HandleFunc("/api/v1/users/{id}/roles", handleUserRoles(authzService, log)).Methods("GET")

	// POST /api/v1/users/{id}/roles - Grant roles to a user
	s.Router.HandleFunc("/api/v1/users/{id}/roles", handleGrantRoles(authzService, log)).Methods("POST")

	// DELETE /api/v1/users/{id}/roles - Revoke roles from a user
	s.Router.HandleFunc("/api/v1/users/{id}/roles", handleRevokeRoles(authzService, log)).Methods("DELETE")
}

func handleGrantRoles(authzService *authz.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		var req RoleIDsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if len(req.RoleIDs) == 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		created, err := authzService.GrantRolesToUser(userID, req.RoleIDs)
		event := audit.GrantEvent{
			Operation:   "grant",
			SubjectKind: "user",
			SubjectID:   userID,
			TargetKind:  "role",
			TargetIDs:   req.RoleIDs,
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

func handleRevokeRoles(authzService *authz.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		var req RoleIDsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if len(req.RoleIDs) == 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		event := audit.GrantEvent{
			Operation:   "revoke",
			SubjectKind: "user",
			SubjectID:   userID,
			TargetKind:  "role",
			TargetIDs:   req.RoleIDs,
			ClientIP:    clientIP(r),
		}
		if err := authzService.RevokeRolesFromUser(userID, req.RoleIDs); err != nil {
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

func handleUserRoles(authzService *authz.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		roles, err := authzService.UserRoles(userID)
		if err != nil {
			respondWithServiceError(log, w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, roles)
	}
}

func handleUserPermissions(authzService *authz.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		permissions, err := authzService.UserPermissions(userID)
		if err != nil {
			respondWithServiceError(log, w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, permissions)
	}
}

// handlePermissionCheck answers either ?name=... or ?resource=...&action=...
func handlePermissionCheck(authzService *authz.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		name := r.URL.Query().Get("name")
		resource := r.URL.Query().Get("resource")
		action := r.URL.Query().Get("action")

		var allowed bool
		switch {
		case name != "":
			allowed, err = authzService.UserHasPermission(userID, name)
		case resource != "" && action != "":
			allowed, err = authzService.UserHasResourcePermission(userID, resource, action)
		default:
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if err != nil {
			respondWithServiceError(log, w, err)
			return
		}

		permission := name
		if permission == "" {
			permission = resource + ":" + action
		}
		audit.Log(audit.CheckEvent{
			UserID:     userID,
			Permission: permission,
			ClientIP:   clientIP(r),
			Allowed:    allowed,
		})
		respondWithJSON(w, http.StatusOK, PermissionCheckResponse{Allowed: allowed})
	}
}
