package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/hearthhq/hearth/pkg/audit"
	"github.com/hearthhq/hearth/pkg/authn"
	"github.com/hearthhq/hearth/pkg/errs"
	"github.com/hearthhq/hearth/pkg/identity"
	"github.com/hearthhq/hearth/pkg/server"
)

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest is the payload for password login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the payload for a credential change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// RegisterAuthEndpoints registers the registration, login, and credential
// endpoints
func RegisterAuthEndpoints(s *server.Server) {
	authnService := s.Authn
	log := s.Log

	// POST /api/v1/auth/register - Create an account
	s.Router.HandleFunc("/api/v1/auth/register", handleRegister(authnService, log)).Methods("POST")

	// POST /api/v1/auth/login - Password login, returns a signed token
	s.Router.HandleFunc("/api/v1/auth/login", handleLogin(authnService, log)).Methods("POST")

	// PUT /api/v1/auth/password - Change the caller's password (requires token)
	s.Router.Handle("/api/v1/auth/password",
		s.TokenAuth.Middleware(handleChangePassword(authnService, log))).Methods("PUT")

	// GET /api/v1/auth/whoami - Token introspection (requires token)
	s.Router.Handle("/api/v1/auth/whoami",
		s.TokenAuth.Middleware(handleWhoami())).Methods("GET")
}

func handleRegister(authnService *authn.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if err := authnService.Register(req.FirstName, req.LastName, req.Email, req.Password); err != nil {
			audit.Log(audit.RegistrationEvent{
				Email:        req.Email,
				ClientIP:     clientIP(r),
				ErrorMessage: err.Error(),
			})
			if errors.Is(err, errs.ErrAlreadyExists) {
				respondWithError(w, http.StatusConflict, "User already exists")
				return
			}
			log.WithError(err).Error("Registration failed")
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		audit.Log(audit.RegistrationEvent{
			Email:    req.Email,
			ClientIP: clientIP(r),
			Success:  true,
		})
		respondWithJSON(w, http.StatusCreated, map[string]string{
			"message": "User registered successfully",
		})
	}
}

func handleLogin(authnService *authn.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if req.Email == "" || req.Password == "" {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		result, err := authnService.Login(req.Email, req.Password)
		if err != nil {
			audit.Log(audit.AuthenticateEvent{
				Email:        req.Email,
				ClientIP:     clientIP(r),
				ErrorMessage: err.Error(),
			})
			if errors.Is(err, errs.ErrInvalidCredentials) {
				respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
				return
			}
			log.WithError(err).Error("Login failed")
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Email:    req.Email,
			ClientIP: clientIP(r),
			Success:  true,
		})
		respondWithJSON(w, http.StatusOK, result)
	}
}

func handleChangePassword(authnService *authn.Service, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Authorization missing")
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if req.CurrentPassword == "" || req.NewPassword == "" {
			respondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if err := authnService.ChangePassword(id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
			audit.Log(audit.PasswordChangeEvent{UserID: id.UserID, ClientIP: clientIP(r)})
			respondWithServiceError(log, w, err)
			return
		}

		audit.Log(audit.PasswordChangeEvent{UserID: id.UserID, ClientIP: clientIP(r), Success: true})
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Authorization missing")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"id":    id.UserID,
			"email": id.Email,
		})
	}
}
