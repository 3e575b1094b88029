package cmd

import (
	"github.com/devantler-tech/credboot/pkg/di"
	"github.com/devantler-tech/credboot/pkg/io/configmanager"
	"github.com/devantler-tech/credboot/pkg/notify"
	"github.com/spf13/cobra"
)

// NewProvisionCmd creates the command that writes the credential file without
// starting the server.
func NewProvisionCmd(runtimeContainer *di.Runtime, cfgManager *configmanager.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Write the credential file and exit",
		Long: `Resolve the configured credential and write it to the output path,
replacing any previous file. Exits non-zero when the payload cannot be decoded.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.RunE = di.RunEWithRuntime(runtimeContainer, di.WithServices(
		func(cmd *cobra.Command, services di.Services) error {
			notify.Titlef(cmd.OutOrStdout(), "🍪", "Provision credential")

			cfg, err := loadConfig(cfgManager, configmanager.LoadOptions{})
			if err != nil {
				return err
			}

			_, err = provisionCredential(cmd, cfg, services.Credentials)

			return err
		},
	))

	return cmd
}
