package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GoDocVault/GoDocVault/internal/config"
	"github.com/GoDocVault/GoDocVault/internal/daemon"
	"github.com/GoDocVault/GoDocVault/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().StringVar(&configPath, "config", "etc/", "Path to the configuration directory")
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	configPath string // Path to the configuration file

	err     error
	cfg     config.Config
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the GoDocVault web service",
		PreRun: func(_ *cobra.Command, _ []string) {
			if cfg, err = config.ReadConfig(configPath); err != nil {
				panic(err)
			}

			if devMode {
				cfg.DevMode = true
			}

			if err = logger.Init(cfg.Log); err != nil {
				panic(err)
			}

			if cfg.DevMode {
				dump, dumpErr := config.DumpConfig(cfg)
				if dumpErr == nil {
					log.Debug().Msg(dump)
				}
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			log.Info().Str("title", cfg.Title).Msg("starting")

			daemon := daemon.New(&cfg)
			if err := daemon.Start(); err != nil {
				return err
			}

			return nil
		},
	}
)
