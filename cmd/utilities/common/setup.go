package common

import (
	"os"

	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/logging"
)

// LoadConfig reads the configuration for a utility and sets up logging to the console only.
func LoadConfig(configPath string) *config.MainRepoConfig {
	// Override config path with config for Docker users
	if configEnv := os.Getenv("JUL_CONFIG"); configEnv != "" {
		configPath = configEnv
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(err)
	}

	err = logging.Setup("-", cfg.General.LogColors, cfg.General.JsonLogs, cfg.General.LogLevel)
	if err != nil {
		panic(err)
	}
	return cfg
}
