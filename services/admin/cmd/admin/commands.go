package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	pkgdb "github.com/Skotchmaster/farm_admin/pkg/db"
	"github.com/Skotchmaster/farm_admin/pkg/hash"
	"github.com/Skotchmaster/farm_admin/pkg/tokens"

	admincfg "github.com/Skotchmaster/farm_admin/services/admin/internal/config"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/repo"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := admincfg.LoadDB(*configPath)
			if err != nil {
				return err
			}
			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = pkgdb.Close(db) }()

			if err := models.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func createUserCmd(configPath *string) *cobra.Command {
	var name, email, password, role string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user, typically the first admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !models.ValidRole(role) {
				return fmt.Errorf("invalid role %q", role)
			}
			if name == "" || email == "" {
				return fmt.Errorf("name and email are required")
			}
			hashed, err := hash.HashPassword(password)
			if err != nil {
				return err
			}

			cfg, err := admincfg.LoadDB(*configPath)
			if err != nil {
				return err
			}
			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = pkgdb.Close(db) }()

			u := &models.User{Name: name, Email: email, PasswordHash: hashed, Role: role}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			if err := repo.New(db).CreateUser(ctx, u); err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s)\n", u.ID, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&role, "role", models.RoleAdmin, "Role (farmer, customer, admin)")
	return cmd
}

func tokenCmd(configPath *string) *cobra.Command {
	var (
		role string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Sign an access token for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			cfg, err := admincfg.Load(*configPath)
			if err != nil {
				return err
			}
			tok, err := tokens.SignAccessToken(uint(id), role, time.Now().Add(ttl), cfg.JWTAccessSecret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", models.RoleAdmin, "Role claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 15*time.Minute, "Token lifetime")
	return cmd
}
