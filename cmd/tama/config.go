package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tama/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration",
	Long: `Print the built-in configuration as YAML. Save it as ~/.tama/config.yaml
or configs/tama.yaml and edit it to override the defaults.

With --effective the loaded configuration is printed instead, after the
config file and the global flags have been applied.

Examples:
  tama config > ~/.tama/config.yaml
  tama config --effective --fps 60`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the loaded configuration")
}

func runConfig(_ *cobra.Command, _ []string) error {
	data := config.DefaultYAML()
	if flagEffective {
		cfg, source, err := loadConfig()
		if err != nil {
			return err
		}
		if data, err = yaml.Marshal(cfg); err != nil {
			return fmt.Errorf("cannot encode config: %w", err)
		}
		fmt.Printf("# source: %s\n", source)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	return nil
}
