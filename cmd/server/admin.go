package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
	"github.com/blog-cms-api/internal/service"
	"github.com/blog-cms-api/internal/validation"
	"github.com/spf13/cobra"
)

var (
	adminEmail    string
	adminName     string
	adminPassword string
	adminRole     string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long: `Create a user account with a bcrypt-hashed password.

Examples:
  cms admin create --email ops@example.com --name Ops --password 's3cret-pass'
  ADMIN_PASSWORD=... cms admin create --email ed@example.com --name Ed --role editor`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminPassword == "" {
			adminPassword = os.Getenv("ADMIN_PASSWORD")
		}
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		services := service.NewServices(repository.New(db), cfg, service.Deps{}, log)

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		in := &models.UserCreateInput{
			Email:    adminEmail,
			Name:     adminName,
			Password: adminPassword,
			Role:     adminRole,
		}
		if err := validation.NewValidator().Validate(in); err != nil {
			return describe(err)
		}

		user, err := services.Auth.CreateUser(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s (%s)\n", user.Role, user.Email, user.ID)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "Email address (required)")
	adminCreateCmd.Flags().StringVar(&adminName, "name", "", "Display name (required)")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "Password, defaults to $ADMIN_PASSWORD")
	adminCreateCmd.Flags().StringVar(&adminRole, "role", models.RoleAdmin, "Role: admin, editor or viewer")
	adminCreateCmd.MarkFlagRequired("email")
	adminCreateCmd.MarkFlagRequired("name")
	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}

// describe flattens validation details into one line for the terminal
func describe(err error) error {
	e, ok := apperr.As(err)
	if !ok || len(e.Details) == 0 {
		return err
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.String())
	}
	return errors.New(e.Message + ": " + strings.Join(parts, "; "))
}
