package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/authn"
	"github.com/hearthhq/hearth/pkg/authz"
	"github.com/hearthhq/hearth/pkg/config"
	"github.com/hearthhq/hearth/pkg/db"
	"github.com/hearthhq/hearth/pkg/logging"
	"github.com/hearthhq/hearth/pkg/migrations"
	"github.com/hearthhq/hearth/pkg/server"
	"github.com/hearthhq/hearth/pkg/server/endpoints"
	gormstore "github.com/hearthhq/hearth/pkg/server/store/gorm"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the hearth API server",
	Long: `Run the hearth API server.

The server requires the DATABASE_URL and JWT_SECRET environment variables,
or the equivalent keys in the config file.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		cfg := config.Get()

		if host, _ := cmd.Flags().GetString("bind-address"); host != "" {
			cfg.BindAddress = host
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		log := logging.New(cfg.Environment)
		log.WithField("environment", cfg.Environment).Info("Starting server")

		database, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
		if err != nil {
			log.WithError(err).Fatal("Unable to connect to database")
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if cfg.AutoMigrate && !noMigrate {
			log.Info("Running database migrations")
			runner := migrations.NewRunner(database, log)
			if err := runner.Initialize(); err != nil {
				log.WithError(err).Fatal("Migration bookkeeping setup failed")
			}
			if err := runner.ApplyAll(); err != nil {
				log.WithError(err).Fatal("Migration failed")
			}
		}

		usersStore := gormstore.NewUsersStore(database)
		rolesStore := gormstore.NewRolesStore(database)
		permissionsStore := gormstore.NewPermissionsStore(database)
		grantsStore := gormstore.NewGrantsStore(database)
		healthStore := gormstore.NewHealthStore(database)

		issuer := authn.NewTokenIssuer(cfg.TokenSigningSecret, cfg.TokenTTL())
		authnService := authn.NewService(usersStore, issuer, log)
		authzService := authz.NewService(rolesStore, permissionsStore, grantsStore, log)

		s := server.NewServer(
			usersStore,
			rolesStore,
			permissionsStore,
			grantsStore,
			healthStore,
			authnService,
			authzService,
			issuer,
			cfg,
			log,
		)
		endpoints.RegisterAll(s)

		if watch, _ := cmd.Flags().GetBool("watch-config"); watch {
			go func() {
				if err := config.Watch(context.Background(), log); err != nil {
					log.WithError(err).Warn("Config watcher stopped")
				}
			}()
		}

		log.WithField("address", cfg.BindAddress+":"+cfg.Port).Info("Server listening")
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", "", "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("watch-config", false, "reload the config file when it changes")
}
