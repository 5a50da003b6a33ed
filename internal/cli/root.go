// Package cli implements the miniledger command tree.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/efreitasn/miniledger/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "miniledger",
	Short: "Payments engine with a bounded dispute window",
	Long: `miniledger consumes an ordered stream of transaction records
(deposit, withdrawal, dispute, resolve, chargeback) and produces final
per-client account summaries. Disputes left unresolved past the configured
window are force-settled: resolved when the account total is non-negative,
charged back otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if cfgFile != "" {
			if err := config.ApplyFile(cfg, cfgFile); err != nil {
				return err
			}
		}
		logger = newLogger(cfg.LogLevel)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds a JSON slog logger on stderr, keeping the diagnostic
// stream separate from the CSV summary on stdout.
func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
}
