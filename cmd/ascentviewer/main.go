package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ascentviewer/internal/config"
	"ascentviewer/internal/logging"
	"ascentviewer/internal/ui"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		cfgPath  string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "ascentviewer [image or folder]",
		Short: "AscentViewer - a simple image viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath == "" {
				var err error
				if cfgPath, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Debug.Logging.LoggingLevel = logLevel
			}
			level, err := cfg.LogLevel()
			if err != nil {
				return err
			}

			logDir := filepath.Join(filepath.Dir(cfgPath), "logs")
			logger, closer, err := logging.Setup(logging.Options{
				Level:     level,
				Dir:       logDir,
				DeleteOld: cfg.TemporaryFiles.Logs.DeleteLogsOnStartup,
			})
			if err != nil {
				return err
			}
			defer closer.Close()

			memory := logging.NewMemoryHook(0)
			logger.AddHook(memory)
			logger.WithField("config", cfgPath).Debug("Configuration loaded")

			opts := ui.Options{
				Config:     cfg,
				ConfigPath: cfgPath,
				Logger:     logger,
				Memory:     memory,
				LogDir:     logDir,
			}
			if len(args) == 1 {
				opts.StartPath = args[0]
			}
			ui.Run(opts)
			return nil
		},
		SilenceUsage: true,
	}
	cmd.Version = ui.Version

	cmd.Flags().StringVar(&cfgPath, "config", "", "config file (default is <user config dir>/ascentviewer/config.json)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "override the logging level (DEBUG, INFO, WARNING, ERROR, CRITICAL)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
