package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		fmt.Printf("api.base_url  %s\n", cfg.API.BaseURL)
		fmt.Printf("api.timeout   %s\n", cfg.API.Timeout)
		fmt.Printf("data_dir      %s\n", cfg.DataDir)
		return nil
	},
}
