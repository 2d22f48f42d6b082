package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitlab.com/missiondax-platform/ledger_api/cmd/commands"
	"gitlab.com/missiondax-platform/ledger_api/config"
	"gitlab.com/missiondax-platform/ledger_api/server"
)

func init() {
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ledger service and listen for conversion events",
	Long:  `Connect to the configured message queue and database, run migrations and start serving ledger queries and event intake`,
	Run: func(cmd *cobra.Command, args []string) {
		log.Debug().Msg("Loading server configuration")
		if viper.ConfigFileUsed() != "" {
			log.Debug().Str("section", "init").Str("path", viper.ConfigFileUsed()).Msg("Configuration file loaded")
		}
		cfg := config.LoadConfig(viper.GetViper())

		log.Debug().Msg("Running migrations")
		commands.Migrate(cfg)

		log.Debug().Str("section", "init").Msg("Starting new server instance")
		srv := server.NewServer(cfg)
		log.Info().Str("section", "init").Msg("Listening for incoming events")
		srv.Listen()
	},
}
