// Package cmd provides command-line interface functionality for the
// video-nugget application.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/acailic/video-nugget/internal/application/common/slogger"
	"github.com/acailic/video-nugget/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "video-nugget",
	Short: "Batch video nugget extraction engine",
	Long: `video-nugget orchestrates batches of video URLs through a per-item
processing pipeline that extracts time-bounded "nuggets", optional
transcripts, and AI content analysis.

The engine supports:
- Bounded-concurrency batch processing with per-item retry and backoff
- Live progress tracking with ETA estimation
- Pause, resume, and cancel controls with a strict job state machine
- Nugget export to JSON, CSV, and Markdown
- Batch lifecycle events over NATS JetStream`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "Log format (json, text)")

	// Bind flags to viper
	if err := viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
	}
	if err := viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-format flag: %v\n", err)
	}

	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func initConfig() {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Set config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Environment variables
	v.SetEnvPrefix("VIDEONUGGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read configuration
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
		// Config file not found; use defaults and environment
	}

	cfg = config.New(v)
	slogger.Configure(cfg.Log.Level, cfg.Log.Format)
}

// GetConfig returns the loaded application configuration.
func GetConfig() *config.Config {
	return cfg
}

func setDefaults(v *viper.Viper) {
	// Batch defaults
	v.SetDefault("batch.output_directory", "./output")
	v.SetDefault("batch.concurrent_jobs", 3)
	v.SetDefault("batch.retry_failed", true)
	v.SetDefault("batch.max_retries", 2)
	v.SetDefault("batch.export_formats", []string{"json"})

	// NATS defaults
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.max_reconnects", 5)
	v.SetDefault("nats.reconnect_wait", "2s")

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
