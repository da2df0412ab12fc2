package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/oasnav/sidebar"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Print the sidebar of every configured schema",
	Long: `Load every configured schema and print the resulting sidebar groups.

Examples:
  oasnav build                     # JSON on stdout
  oasnav build -o yaml             # YAML on stdout
  oasnav build --out sidebar.json  # write to a file`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, logger, closer, err := loadConfig(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closer.Close()

		cfg := m.Get()
		schemas := make([]sidebar.Schema, 0, len(cfg.Sidebars))
		for _, sc := range cfg.Sidebars {
			schema, err := sidebar.LoadSchema(cmd.Context(), sc)
			if err != nil {
				return fmt.Errorf("load %s: %w", sc.Schema, err)
			}
			logger.Debug("schema loaded", "schema", sc.Schema, "base", sc.Base, "version", schema.Document.Version())
			schemas = append(schemas, schema)
		}

		groups, err := sidebar.BuildGroups(schemas)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if buildOut != "" {
			f, err := os.Create(buildOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		if err := writeGroups(out, groups, outputFormat); err != nil {
			return err
		}
		logger.Info("sidebar built", "schemas", len(groups))
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildOut, "out", "", "write to this file instead of stdout")
}

func writeGroups(w io.Writer, groups []sidebar.Group, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(groups); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
