package cmd

import (
	"fmt"

	"github.com/devantler-tech/credboot/pkg/di"
	"github.com/devantler-tech/credboot/pkg/io/configmanager"
	"github.com/devantler-tech/credboot/pkg/notify"
	"github.com/spf13/cobra"
)

const waitCmdLong = `Block until the server accepts TCP connections.

The address defaults to readiness.address, or 127.0.0.1:<server port> when
unset. Gives up after --ready-timeout. Suitable as a container health check:

  HEALTHCHECK CMD ["credboot", "wait", "--ready-timeout", "5s"]`

// NewWaitCmd creates the readiness command.
func NewWaitCmd(runtimeContainer *di.Runtime, cfgManager *configmanager.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "wait [address]",
		Short:        "Wait until the server accepts connections",
		Long:         waitCmdLong,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}

	cmd.RunE = di.RunEWithRuntime(runtimeContainer, di.WithServices(
		func(cmd *cobra.Command, services di.Services) error {
			cfg, err := loadConfig(cfgManager, configmanager.LoadOptions{Silent: true, SkipValidation: true})
			if err != nil {
				return err
			}

			address := cfg.ReadinessAddress()
			if args := cmd.Flags().Args(); len(args) > 0 {
				address = args[0]
			}

			notify.Activityf(cmd.OutOrStdout(), "waiting for %s (timeout %s)", address, cfg.Readiness.Timeout)

			err = services.Probers.Create(cfg.Readiness).Wait(cmd.Context(), address)
			if err != nil {
				return fmt.Errorf("server not ready: %w", err)
			}

			notify.Successf(cmd.OutOrStdout(), "%s is accepting connections", address)

			return nil
		},
	))

	return cmd
}
