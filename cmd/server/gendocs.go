package main

import (
	"github.com/blog-cms-api/internal/docs"
	"github.com/blog-cms-api/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	docsSearchDir string
	docsMainFile  string
	docsOutputDir string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "API documentation tooling",
}

var docsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the OpenAPI document from handler annotations",
	Long: `Parse the swag annotations of the HTTP handlers and write swagger.yaml and
swagger.json. The server reads swagger.yaml from DOCS_PATH at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New("info", "pretty")
		return docs.Generate(docs.GenerateOptions{
			SearchDir: docsSearchDir,
			MainFile:  docsMainFile,
			OutputDir: docsOutputDir,
		}, log)
	},
}

func init() {
	// No config.Load here: generation must work without a database or secret
	docsGenerateCmd.Flags().StringVar(&docsSearchDir, "dir", "./", "Directory to parse")
	docsGenerateCmd.Flags().StringVar(&docsMainFile, "main", "cmd/server/docs.go", "File holding the general API annotations")
	docsGenerateCmd.Flags().StringVar(&docsOutputDir, "output", "./docs", "Output directory")
	docsCmd.AddCommand(docsGenerateCmd)
	rootCmd.AddCommand(docsCmd)
}
