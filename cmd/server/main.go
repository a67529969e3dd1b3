package main

import (
	"fmt"
	"os"

	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command; with no subcommand it serves HTTP
var rootCmd = &cobra.Command{
	Use:   "cms",
	Short: "Blog CMS API",
	Long: `Blog CMS API serves articles, categories, tags, comments and contact
inquiries over HTTP, with an admin area behind session authentication.

Commands:
  serve     - Run the HTTP server (default)
  migrate   - Apply or roll back database migrations
  docs      - Generate the OpenAPI document
  admin     - Manage admin accounts`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the logger every command shares
func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, logger.New("info", "json"), fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format), nil
}
