package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vitalvas/oasnav/config"
	"github.com/vitalvas/oasnav/logging"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "oasnav",
	Short: "Documentation navigation for OpenAPI documents",
	Long: `oasnav turns OpenAPI 3.x and Swagger 2.0 documents into documentation
navigation: an Overview link followed by one group per operation tag and a
Webhooks group, for every configured schema.

Schemas are listed in oasnav.yaml (see "oasnav init"). The sidebar can be
printed with "oasnav build" or served, together with rendered reference
pages, with "oasnav serve".`,
	SilenceUsage: true,
	Version:      versionString(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./oasnav.yaml or ~/.oasnav/oasnav.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "json", "output format: json or yaml",
	)

	rootCmd.AddCommand(buildCmd, serveCmd, initCmd, versionCmd)
}

// loadConfig reads the configuration and builds the logger it describes.
// The closer releases the log file, if any.
func loadConfig(stderr io.Writer) (*config.Manager, *slog.Logger, io.Closer, error) {
	m, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, closer, err := logging.New(m.Get().Log, stderr)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("logging: %w", err)
	}

	logger.Debug("configuration loaded", "file", m.ConfigFile(), "schemas", len(m.Get().Sidebars))
	return m, logger, closer, nil
}
