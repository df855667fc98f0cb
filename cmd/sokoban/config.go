package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-sokoban/internal/config"
)

var flagWrite string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or write the configuration",
	Long: `Print the effective configuration (file plus flags) as YAML.

With --write, save it to a file instead, for example to start a user
configuration:

  sokoban config --write ~/.sokoban/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagWrite, "write", "", "Write the configuration to this path")
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	if flagWrite != "" {
		path, err := config.ExpandPath(flagWrite)
		if err != nil {
			return err
		}
		if err := config.Write(path, cfg); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", path)
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "# source: %s\n", source)
	_, err = os.Stdout.Write(data)
	return err
}
