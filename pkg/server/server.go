package server

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/hearthhq/hearth/pkg/authn"
	"github.com/hearthhq/hearth/pkg/authz"
	"github.com/hearthhq/hearth/pkg/config"
	"github.com/hearthhq/hearth/pkg/server/middleware"
	"github.com/hearthhq/hearth/pkg/server/store"
)

type Server struct {
	UsersStore       store.UsersStore
	RolesStore       store.RolesStore
	PermissionsStore store.PermissionsStore
	GrantsStore      store.GrantsStore
	HealthStore      store.HealthStore

	Authn     *authn.Service
	Authz     *authz.Service
	TokenAuth *middleware.TokenAuthenticator

	Config *config.Config
	Router *mux.Router
	Log    *logrus.Logger

	srv *http.Server
}

func NewServer(
	users store.UsersStore,
	roles store.RolesStore,
	permissions store.PermissionsStore,
	grants store.GrantsStore,
	health store.HealthStore,
	authnService *authn.Service,
	authzService *authz.Service,
	issuer *authn.TokenIssuer,
	cfg *config.Config,
	log *logrus.Logger,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(log.Writer(), router),
		Addr:    cfg.BindAddress + ":" + cfg.Port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		UsersStore:       users,
		RolesStore:       roles,
		PermissionsStore: permissions,
		GrantsStore:      grants,
		HealthStore:      health,
		Authn:            authnService,
		Authz:            authzService,
		TokenAuth:        middleware.NewTokenAuthenticator(issuer),
		Config:           cfg,
		Router:           router,
		Log:              log,
		srv:              srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
