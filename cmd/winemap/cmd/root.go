package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"winemap/internal/app"
	"winemap/internal/config"
	"winemap/internal/env"
	"winemap/internal/logging"
)

var (
	envFile  string
	storage  string
	slot     string
	dataDir  string
	logLevel string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "winemap",
	Short: "winemap records wine-tasting notes and plots them on a world map",
	Long: `winemap keeps a list of wine-tasting notes, resolves each note's
place of origin to coordinates (known wine regions first, then
OpenStreetMap Nominatim) and serves the notes as a table and as map
markers.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file instead of .env")
	rootCmd.PersistentFlags().StringVar(&storage, "storage", "", "storage backend: file, s3, postgres or redis (WINEMAP_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&slot, "slot", "", "name of the storage slot (WINEMAP_SLOT)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for file storage (WINEMAP_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (WINEMAP_LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd, addCmd, listCmd, deleteCmd, markersCmd, regionsCmd)
}

func setup(_ *cobra.Command, _ []string) error {
	if envFile != "" {
		if !env.LoadEnv(envFile) {
			return fmt.Errorf("could not load %s", envFile)
		}
	} else {
		env.LoadEnv()
	}

	cfg = config.FromEnv()
	if storage != "" {
		cfg.Storage = storage
	}
	if slot != "" {
		cfg.Slot = slot
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	var err error
	logger, err = logging.NewLogger(cfg.LogLevel, cfg.LogFormat, "winemap")
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	return nil
}

// openApp builds the store for commands that need it. The caller must
// Close the result.
func openApp(cmd *cobra.Command) (*app.App, error) {
	return app.New(cmd.Context(), cfg, logger)
}
