package endpoints

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hearthhq/hearth/pkg/audit"
	"github.com/hearthhq/hearth/pkg/authn"
	"github.com/hearthhq/hearth/pkg/authz"
	"github.com/hearthhq/hearth/pkg/config"
	"github.com/hearthhq/hearth/pkg/server"
)

const testSigningSecret = "test-secret"

func TestMain(m *testing.M) {
	audit.SetEnabled(false)
	os.Exit(m.Run())
}

type testStores struct {
	users       *MockUsersStore
	roles       *MockRolesStore
	permissions *MockPermissionsStore
	grants      *MockGrantsStore
	health      *MockHealthStore
}

// newTestServer builds a server over mock stores with all endpoints
// registered.
func newTestServer() (*server.Server, *testStores) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	stores := &testStores{
		users:       NewMockUsersStore(),
		roles:       NewMockRolesStore(),
		permissions: NewMockPermissionsStore(),
		grants:      NewMockGrantsStore(),
		health:      NewMockHealthStore(),
	}

	issuer := authn.NewTokenIssuer(testSigningSecret, 24*time.Hour)
	authnService := authn.NewService(stores.users, issuer, log)
	authzService := authz.NewService(stores.roles, stores.permissions, stores.grants, log)

	cfg := &config.Config{
		BindAddress:        "127.0.0.1",
		Port:               "0",
		TokenSigningSecret: testSigningSecret,
	}

	srv := server.NewServer(
		stores.users,
		stores.roles,
		stores.permissions,
		stores.grants,
		stores.health,
		authnService,
		authzService,
		issuer,
		cfg,
		log,
	)
	RegisterAll(srv)

	return srv, stores
}
