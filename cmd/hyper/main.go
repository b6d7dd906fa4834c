// Command hyper renders hyperscript expression files and serves live apps.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hyper/internal/config"
	"github.com/vango-dev/hyper/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hyper",
		Short: "Render hyperscript expressions",
		Long: `hyper renders hyperscript expressions stored as JSON, YAML or
MessagePack files, and serves live model-view-update apps.

Settings are read from hyper.json in the working directory or one of
its parents; flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		renderCmd(),
		convertCmd(),
		serveCmd(),
		versionCmd(),
	)
	return cmd
}

// loadConfig reads hyper.json, falling back to defaults when there is none.
func loadConfig() (*config.Config, error) {
	return config.LoadFromWorkingDir()
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
