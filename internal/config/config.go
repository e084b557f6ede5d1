// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port     int `mapstructure:"port"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Import struct {
		Path         string `mapstructure:"path"`
		ScanInterval int    `mapstructure:"scan_interval"`
	} `mapstructure:"import"`
	Library struct {
		// StrictTransitions rejects status changes out of terminal states
		// instead of allowing arbitrary jumps between known statuses.
		StrictTransitions bool `mapstructure:"strict_transitions"`
	} `mapstructure:"library"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or "yaml"
	viper.AddConfigPath(".")      // looking for config in the current directory

	// --- Environment Variable Overrides ---
	// This tells Viper to look for environment variables with a "BOOKTRACK_" prefix.
	// e.g., BOOKTRACK_DATABASE_PATH will override the `database.path` key.
	viper.SetEnvPrefix("BOOKTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("port", 8080)
	viper.SetDefault("database.path", "./booktrack.db")
	viper.SetDefault("import.path", "./import")
	viper.SetDefault("import.scan_interval", 60)
	viper.SetDefault("library.strict_transitions", false)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
