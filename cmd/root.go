package cmd

import (
	"log/slog"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/store"
	"github.com/spf13/cobra"
)

// cfg is resolved once per invocation in PersistentPreRunE.
var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "mathgen",
	Short: "Procedural math question generator",
	Long: `mathgen builds grade-school math questions from parameterized templates.

Every question is computed, not written: parameters are sampled within the
template's ranges, the answer is calculated exactly, and the wrong options are
derived from common mistakes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = resolved
		slog.SetDefault(cfg.NewLogger())
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHGEN_DB env var)")
	rootCmd.PersistentFlags().String("templates", "", "Extra template catalog directory (overrides MATHGEN_TEMPLATES)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides MATHGEN_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (overrides MATHGEN_LOG_FORMAT)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(adaptiveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, then applies any flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	c, err := config.FromEnv()
	if err != nil {
		return c, err
	}

	flags := cmd.Flags()
	if p, _ := flags.GetString("db"); p != "" {
		c.DBPath = p
	}
	if d, _ := flags.GetString("templates"); d != "" {
		c.TemplatesDir = d
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		if c.LogLevel, err = config.ParseLevel(v); err != nil {
			return c, err
		}
	}
	if v, _ := flags.GetString("log-format"); v != "" {
		if c.LogFormat, err = config.ParseFormat(v); err != nil {
			return c, err
		}
	}
	if flags.Lookup("seed") != nil {
		if s, _ := flags.GetString("seed"); s != "" {
			c.Seed = s
		}
	}
	return c, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHGEN_DB env var, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
