package main

import (
	"context"
	"fmt"
	"os"

	pumprun "github.com/freund17/streambuffer17/internal/cmd/pump"
	cfgpkg "github.com/freund17/streambuffer17/internal/config"
	logpkg "github.com/freund17/streambuffer17/pkg/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// initialize logger for CLI
	// Respect STREAMBUF_LOG_LEVEL for both CLI and pump start output
	level := os.Getenv("STREAMBUF_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "streambuf",
		Short: "Bounded in-memory byte buffer CLI",
		Long:  "streambuf moves a byte stream through a bounded, append-only in-memory buffer with retention-window eviction.",
	}

	pumpCmd := &cobra.Command{
		Use:   "pump",
		Short: "Pump input to output through a bounded buffer",
		RunE: func(cmd *cobra.Command, args []string) error {
			inPath, _ := cmd.Flags().GetString("in")
			outPath, _ := cmd.Flags().GetString("out")
			retention, _ := cmd.Flags().GetInt64("retention")
			readCap, _ := cmd.Flags().GetInt64("read-cap")
			chunk, _ := cmd.Flags().GetInt("chunk")
			rate, _ := cmd.Flags().GetInt64("rate")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			cfg := cfgpkg.Default()
			cfgpkg.FromEnv(&cfg)
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if logFormat != "" {
				cfg.LogFormat = logFormat
			}

			in := os.Stdin
			if inPath != "" && inPath != "-" {
				f, err := os.Open(inPath)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			out := os.Stdout
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			if err := pumprun.Run(context.Background(), pumprun.Options{
				In:              in,
				Out:             out,
				Retention:       retention,
				ReadCap:         readCap,
				ChunkBytes:      chunk,
				RateBytesPerSec: rate,
				Config:          cfg,
			}); err != nil {
				return fmt.Errorf("pump error: %w", err)
			}
			return nil
		},
	}
	pumpCmd.Flags().String("in", "-", "Input path (- for stdin)")
	pumpCmd.Flags().String("out", "-", "Output path (- for stdout)")
	pumpCmd.Flags().Int64("retention", 0, "Retention window in bytes (0 uses config, negative means unbounded)")
	pumpCmd.Flags().Int64("read-cap", 0, "Per-read cap in bytes (0 uses config)")
	pumpCmd.Flags().Int("chunk", 0, "Producer read size in bytes (0 uses config)")
	pumpCmd.Flags().Int64("rate", 0, "Ingress rate limit in bytes per second (0 uses config, negative disables)")
	pumpCmd.Flags().String("log-level", os.Getenv("STREAMBUF_LOG_LEVEL"), "Log level: debug|info|warn|error")
	pumpCmd.Flags().String("log-format", os.Getenv("STREAMBUF_LOG_FORMAT"), "Log format: text|json (default text)")
	rootCmd.AddCommand(pumpCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("streambuf", version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
