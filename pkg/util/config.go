package util

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/spf13/viper"
)

func SetConfigDefaults() {
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("GRAPH_PATH", "./data/road_network.graph")
	viper.SetDefault("SNAP_RADIUS_METERS", pkg.DEFAULT_SNAP_RADIUS_METERS)
	viper.SetDefault("MAX_SETTLED_NODES", pkg.DEFAULT_MAX_SETTLED_NODES)
	viper.SetDefault("SUGGESTION_LIMIT", pkg.DEFAULT_SUGGESTION_LIMIT)
	viper.SetDefault("CROSSCHECK_WORKERS", 4)
	viper.SetDefault("CROSSCHECK_QUERIES", 1000)
	viper.SetDefault("CROSSCHECK_SEED", 42)
}

// ReadConfig loads ./data/config.yaml on top of the defaults. a missing file is not an error.
func ReadConfig() error {
	SetConfigDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
