package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"gitlab.com/missiondax-platform/ledger_api/net/kafka"
)

// Config structure
type Config struct {
	Server          ServerConfig          `mapstructure:"server"`
	Kafka           kafka.Config          `mapstructure:"kafka"`
	DatabaseCluster DatabaseClusterConfig `mapstructure:"database_cluster"`
	Ledger          LedgerConfig          `mapstructure:"ledger"`
	Payouts         PayoutsConfig         `mapstructure:"payouts"`
	Crons           Crons                 `mapstructure:"crons"`
}

// ServerConfig structure
type ServerConfig struct {
	API APIConfig `mapstructure:"api"`
}

// APIConfig structure
type APIConfig struct {
	Port      int    `mapstructure:"port"`
	KeepAlive bool   `mapstructure:"keep_alive"`
	Domain    string `mapstructure:"domain"`
}

// Crons maps a cron id to its schedule expression
type Crons map[string]string

// DatabaseClusterConfig structure
type DatabaseClusterConfig struct {
	Writer DatabaseConfig `mapstructure:"writer"`
	Reader DatabaseConfig `mapstructure:"reader"`
}

// DatabaseConfig structure
type DatabaseConfig struct {
	Type            string `mapstructure:"type"`
	Host            string `mapstructure:"host"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Name            string `mapstructure:"name"`
	SSLmode         string `mapstructure:"sslmode"`
	ApplicationName string `mapstructure:"application_name"`
	Port            int    `mapstructure:"port"`
}

// LedgerConfig carries the ledger defaults applied when a mission leaves
// a field unset
type LedgerConfig struct {
	DefaultHoldDays int `mapstructure:"default_hold_days"`
}

// PayoutsConfig configures the payout batch runner and its external rail
type PayoutsConfig struct {
	MinAmount      int64  `mapstructure:"min_amount"`
	RailURL        string `mapstructure:"rail_url"`
	RailAPIKey     string `mapstructure:"rail_api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// LoadConfig decodes the viper tree into the Config structure
func LoadConfig(viperConf *viper.Viper) Config {
	var config Config

	err := viperConf.Unmarshal(&config)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to decode config into struct")
	}
	return config
}

// OpenConfig godoc
func OpenConfig(file string) {
	if file != "" {
		// Use config file from the flag.
		viper.SetConfigFile(file)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigName(".config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath("/etc/ledger_api/")
	viper.SetEnvPrefix("CFG")
	viper.AutomaticEnv()
	setDefaultVariables()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Unable to read configuration file, using defaults")
	}
}

func setDefaultVariables() {
	viper.SetDefault("server.api.port", 8090)
	viper.SetDefault("ledger.default_hold_days", 14)
	viper.SetDefault("payouts.min_amount", 1000)
	viper.SetDefault("payouts.timeout_seconds", 10)
}
