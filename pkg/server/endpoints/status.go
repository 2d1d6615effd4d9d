package endpoints

import (
	"net/http"

	"github.com/hearthhq/hearth/pkg/server"
	"github.com/hearthhq/hearth/pkg/server/store"
)

// HealthcheckResponse represents the response from /api/v1/healthcheck
type HealthcheckResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RegisterStatusEndpoints registers the liveness endpoint
func RegisterStatusEndpoints(s *server.Server) {
	healthStore := s.HealthStore

	// GET /api/v1/healthcheck - Liveness, includes a database ping
	s.Router.HandleFunc("/api/v1/healthcheck", handleHealthcheck(healthStore)).Methods("GET")
}

func handleHealthcheck(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, HealthcheckResponse{
				Status: "error",
				Error:  "database connectivity check failed",
			})
			return
		}

		respondWithJSON(w, http.StatusOK, HealthcheckResponse{Status: "ok"})
	}
}
