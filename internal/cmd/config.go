package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"ganttsvg/internal/config"
	"ganttsvg/internal/planfile"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, create or check the configuration",
	}
	cmd.AddCommand(newConfigShowCmd(a), newConfigInitCmd(), newConfigCheckCmd(), newConfigPathCmd())
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("yaml marshal: %w", err)
			}
			w := cmd.OutOrStdout()
			if viper.ConfigFileUsed() != "" {
				fmt.Fprintf(w, "# Config file: %s\n", viper.ConfigFileUsed())
			} else {
				fmt.Fprintf(w, "# Config file: (none - using defaults)\n")
			}
			fmt.Fprint(w, string(out))
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding every default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := target
			if path == "" {
				path = filepath.Join(config.Dir(), "config.yaml")
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists at %s", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			out, err := yaml.Marshal(config.Default())
			if err != nil {
				return fmt.Errorf("yaml marshal: %w", err)
			}
			content := append([]byte("# ganttsvg configuration\n# Every key can be overridden with a GANTTSVG_ environment variable,\n# e.g. GANTTSVG_LAYOUT_DAY_WIDTH=24.\n\n"), out...)
			check := func(b []byte) error {
				_, err := config.Parse(b)
				return err
			}
			if err := planfile.AtomicWrite(path, content, check); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "path", "", "where to write the file (default is the user config directory)")
	return cmd
}

func newConfigCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a config file on its own, without environment overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadFile(args[0]); err != nil {
				var errs config.ValidationErrors
				if errors.As(err, &errs) {
					return fmt.Errorf("%s is invalid: %w", args[0], err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where configuration is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if viper.ConfigFileUsed() != "" {
				fmt.Fprintf(w, "Active config: %s\n", viper.ConfigFileUsed())
			} else {
				fmt.Fprintf(w, "Default path: %s (not created)\n", filepath.Join(config.Dir(), "config.yaml"))
			}
			fmt.Fprintln(w, "\nSearch paths:")
			fmt.Fprintf(w, "  1. %s\n", filepath.Join(config.Dir(), "config.yaml"))
			fmt.Fprintln(w, "  2. ./config.yaml (current directory)")
			fmt.Fprintf(w, "\nEnvironment variables: %s_* (e.g., %s_LAYOUT_DAY_WIDTH)\n", config.EnvPrefix, config.EnvPrefix)
			return nil
		},
	}
}
