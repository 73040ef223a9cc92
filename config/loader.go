package config

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GlobalConfig stores the config instance for global use
var GlobalConfig *Config

// Load loads config from command instance to predefined config variables
func Load(cmd *cobra.Command) (*Config, error) {
	err := viper.BindPFlags(cmd.Flags())
	if err != nil {
		return nil, err
	}

	// default viper configs
	viper.SetEnvPrefix("KS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// set default configs
	setDefaultConfig()

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".ks")
		viper.AddConfigPath("./")
		viper.AddConfigPath("/vault/secrets")
	}

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("Warning: No configuration file found. Proceeding with defaults")
	}

	return populateConfig(new(ConfigWrapper))
}

// populateConfig round trips the merged settings through json so the json tags of the
// model apply.
func populateConfig(wrapper *ConfigWrapper) (*Config, error) {
	raw, err := json.Marshal(viper.AllSettings())
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, wrapper); err != nil {
		return nil, err
	}
	cfg := &wrapper.Config
	// command line flags win over the file and the environment
	if workspace := viper.GetString("workspace"); workspace != "" {
		cfg.Workspace = workspace
	}
	if port := viper.GetString("port"); port != "" {
		cfg.Port = port
	}
	GlobalConfig = cfg
	return cfg, nil
}
