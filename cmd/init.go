package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/natlog/internal/config"
)

// initCmd: natlog init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default grammar and proof rules to a configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(cfgFile, checkCategory)
		if err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

// initConfigurationFile writes the embedded configuration to
// configurationPath, or to .natlog.yaml when empty. With checkCategory the
// configuration is re-encoded with category-aware matching switched on.
func initConfigurationFile(configurationPath string, checkCategory bool) (string, error) {
	if configurationPath == "" {
		configurationPath = config.DefaultPath
	}

	data := config.DefaultBytes()
	if checkCategory {
		cfg, err := config.Parse(data)
		if err != nil {
			return "", err
		}
		cfg.CheckCategory = true
		if data, err = config.Marshal(cfg); err != nil {
			return "", err
		}
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", err
	}
	return configurationPath, nil
}
