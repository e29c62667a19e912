package config

// Package config provides a reusable loader for the ledger's network
// configuration files and environment variables. It is versioned so that
// applications can depend on a stable API contract.
//
// Version: v0.1.0

import (
	"fmt"

	"github.com/spf13/viper"

	"dpos-ledger/core"
	"dpos-ledger/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config represents the ambient network parameters a TransactionExecutor
// consults. It mirrors the structure of the YAML files under cmd/config.
type Config struct {
	Network struct {
		ID                    uint8  `mapstructure:"id" json:"id"`
		MinTransactionFee     uint64 `mapstructure:"min_transaction_fee" json:"min_transaction_fee"`
		MinDelegateBurnAmount uint64 `mapstructure:"min_delegate_burn_amount" json:"min_delegate_burn_amount"`
	} `mapstructure:"network" json:"network"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // env vars named after the upper-cased keys override; no prefix is set

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the LEDGER_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("LEDGER_ENV", ""))
}

// ExecutorConfig converts the loaded network parameters into the core
// package's executor Config.
func (c *Config) ExecutorConfig() core.Config {
	return core.Config{
		NetworkID:             c.Network.ID,
		MinTransactionFee:     core.NanoSem(c.Network.MinTransactionFee),
		MinDelegateBurnAmount: core.NanoSem(c.Network.MinDelegateBurnAmount),
	}
}
