package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/authn"
	"github.com/hearthhq/hearth/pkg/config"
	"github.com/hearthhq/hearth/pkg/db"
	"github.com/hearthhq/hearth/pkg/logging"
	gormstore "github.com/hearthhq/hearth/pkg/server/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long: `Create a user account directly in the database.

This is intended for bootstrapping the first account before the HTTP API is
reachable. If no password is provided, a random one is generated and printed
to STDOUT.

Example:
  hearthctl user create --email admin@example.com --first-name Ada --last-name Admin`,
	Run: func(cmd *cobra.Command, args []string) {
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			fmt.Fprintln(os.Stderr, "--email is required")
			os.Exit(1)
		}

		generated := false
		if password == "" {
			var err error
			password, err = generatePassword()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to generate password: %v\n", err)
				os.Exit(1)
			}
			generated = true
		}

		if err := createUser(firstName, lastName, email, password); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created user '%s'\n", email)
		if generated {
			fmt.Printf("Password: %s\n", password)
		}
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().String("first-name", "Hearth", "First name")
	userCreateCmd.Flags().String("last-name", "Admin", "Last name")
	userCreateCmd.Flags().StringP("email", "e", "", "Email address")
	userCreateCmd.Flags().StringP("password", "w", "", "Password (generated when omitted)")
}

func generatePassword() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func createUser(firstName, lastName, email, password string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return err
	}

	log := logging.New(cfg.Environment)
	usersStore := gormstore.NewUsersStore(database)
	issuer := authn.NewTokenIssuer(cfg.TokenSigningSecret, cfg.TokenTTL())
	authnService := authn.NewService(usersStore, issuer, log)

	return authnService.Register(firstName, lastName, email, password)
}
