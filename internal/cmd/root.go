// Package cmd implements the ganttsvg command line.
package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ganttsvg/internal/config"
	"ganttsvg/internal/logging"
)

// DefaultPlan is the plan file used when --plan is not given.
const DefaultPlan = "plan.yaml"

// app is the state shared by every command of one run.
type app struct {
	cfg *config.Config
	log *logging.Logger
	now func() time.Time
}

func newApp() *app {
	return &app{log: logging.NopLogger(), now: time.Now}
}

// Execute runs the root command
func Execute() error {
	return newRootCmd(newApp()).Execute()
}

func newRootCmd(a *app) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:   "ganttsvg",
		Short: "Gantt charts from task lists",
		Long: `ganttsvg keeps a project plan as a list of tasks with dates, an assignee,
a completion fraction and dependencies, and draws it as a Gantt chart.

Plans are CSV tables or YAML files. Charts are written as SVG or previewed
in the terminal.

Example:
  ganttsvg task add "Design" --team Alice --start 2024-01-01 --duration 5
  ganttsvg task add "Build" --team Bob --start 2024-01-06 --end 2024-01-12 --depends Design
  ganttsvg render -o roadmap.svg`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			level := cfg.Logging.Level
			if debug {
				level = logging.LevelDebug
			}
			logger, err := logging.NewLogger(cfg.Logging.Dir, level)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.With("command", cmd.Name())
			a.log.Debug("configuration loaded", "config", viper.ConfigFileUsed(), "plan", viper.GetString("plan"))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.log.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/ganttsvg/config.yaml)")
	flags.StringP("plan", "p", DefaultPlan, "plan file, .csv or .yaml")
	flags.String("log-dir", "", "write JSON logs to this directory instead of stderr")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("plan", flags.Lookup("plan"))
	_ = viper.BindPFlag("logging.dir", flags.Lookup("log-dir"))

	root.AddCommand(
		newRenderCmd(a),
		newPreviewCmd(a),
		newWatchCmd(a),
		newTaskCmd(a),
		newTeamCmd(a),
		newTitleCmd(a),
		newTodayCmd(a),
		newExportCmd(a),
		newConfigCmd(a),
	)
	return root
}

func initConfig() error {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.Dir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(config.EnvPrefix)
	// e.g. GANTTSVG_LAYOUT_DAY_WIDTH for layout.day_width
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}
