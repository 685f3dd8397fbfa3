package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the CLI configuration. Values come from mdtree.yaml, the
// MDTREE_* environment and bound flags, in ascending priority.
type Config struct {
	Format  string `mapstructure:"format"`
	Color   bool   `mapstructure:"color"`
	LogPath string `mapstructure:"log_path"`
	Verbose bool   `mapstructure:"verbose"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("format", "tree")
	viper.SetDefault("color", true)
	viper.SetDefault("log_path", "")
	viper.SetDefault("verbose", false)

	viper.SetConfigName("mdtree")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "mdtree"))
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MDTREE")
	viper.AutomaticEnv()

	// a missing or malformed config file is not an error
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}
