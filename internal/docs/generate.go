package docs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
	"github.com/swaggo/swag/gen"
)

// GenerateOptions locates the annotated sources and the output directory
type GenerateOptions struct {
	SearchDir string
	MainFile  string
	OutputDir string
}

// debugLogger adapts zerolog to swag's Debugger
type debugLogger struct {
	log zerolog.Logger
}

func (d debugLogger) Printf(format string, v ...interface{}) {
	d.log.Debug().Msgf(format, v...)
}

// Generate scans handler annotations and writes swagger.yaml and swagger.json
// into OutputDir. It is a build-time step; the server only reads the result.
func Generate(opts GenerateOptions, log zerolog.Logger) error {
	if opts.SearchDir == "" {
		opts.SearchDir = "./"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "docs"
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create docs dir: %w", err)
	}

	err := gen.New().Build(&gen.Config{
		SearchDir:          opts.SearchDir,
		MainAPIFile:        opts.MainFile,
		PropNamingStrategy: swag.CamelCase,
		OutputDir:          opts.OutputDir,
		OutputTypes:        []string{"yaml", "json"},
		ParseInternal:      true,
		ParseDepth:         100,
		LeftTemplateDelim:  "{{",
		RightTemplateDelim: "}}",
		Debugger:           debugLogger{log: log},
	})
	if err != nil {
		return fmt.Errorf("generate docs: %w", err)
	}

	log.Info().
		Str("output", filepath.Join(opts.OutputDir, "swagger.yaml")).
		Msg("API documentation generated")
	return nil
}
