package cmd

import (
	"fmt"

	"github.com/devantler-tech/credboot/pkg/io/configmanager"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the command printing the effective configuration.
func NewConfigCmd(cfgManager *configmanager.Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration after applying defaults, the config file,
CREDBOOT_* environment variables and flags. The output is a valid credboot.yaml,
headed by a comment naming the config file that was read, if any.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgManager, configmanager.LoadOptions{Silent: true, SkipValidation: true})
			if err != nil {
				return err
			}

			if path := cfgManager.ConfigFileUsed(); path != "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", path)
				if err != nil {
					return fmt.Errorf("write config header: %w", err)
				}
			}

			return writeYAML(cmd.OutOrStdout(), cfg)
		},
	}
}
