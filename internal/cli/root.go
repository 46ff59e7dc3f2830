// Package cli implements the shoebox command-line interface: a read-only
// inspector for Photos library stores.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shoebox/internal/paths"
	"github.com/mesh-intelligence/shoebox/pkg/shoebox"
	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	library  string
	jsonMode bool
	verbose  bool
}

var flags rootFlags

// NewRootCmd creates the top-level "shoebox" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shoebox",
		Short: "Read-only inspector for Photos library stores",
		Long: "Shoebox opens a Photos library bundle (or its SQLite store directly)\n" +
			"read-only and reports on its assets, albums, people, keywords, and\n" +
			"shared albums.",
		Version: shoebox.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.library, "library", "", "path to the .photoslibrary bundle or store file (default: config, then ~/Pictures)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newAssetsCmd())
	root.AddCommand(newAlbumsCmd())
	root.AddCommand(newPersonsCmd())
	root.AddCommand(newKeywordsCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode classifies an error: problems with the user's input or store
// are user errors, everything else is a system error.
func exitCode(err error) int {
	if errors.Is(err, types.ErrStoreUnavailable) ||
		errors.Is(err, types.ErrUnsupportedSchemaVersion) ||
		errors.Is(err, types.ErrNotFound) {
		return exitUserError
	}
	return exitSysError
}

// resolveLibraryPath returns the library path from flag, config.yaml, or
// the platform default, in that order.
func resolveLibraryPath() (string, error) {
	if flags.library != "" {
		return flags.library, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if p := cfg.GetString(cfgKeyLibraryPath); p != "" {
		return p, nil
	}

	return paths.DefaultLibraryPath(), nil
}

// newLogger builds the CLI logger: a development logger with --verbose,
// a no-op logger otherwise.
func newLogger() (*zap.Logger, error) {
	if !flags.verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// openLibrary resolves the library path and opens it. The caller must
// close the returned Library.
func openLibrary() (*shoebox.Library, error) {
	path, err := resolveLibraryPath()
	if err != nil {
		return nil, err
	}

	log, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	lib, err := shoebox.Open(path, shoebox.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("opening library %s: %w", path, err)
	}
	return lib, nil
}
