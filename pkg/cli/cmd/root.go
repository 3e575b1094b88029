package cmd

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/credboot/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/credboot/pkg/di"
	"github.com/devantler-tech/credboot/pkg/io/configmanager"
	"github.com/spf13/cobra"
)

// ErrUnknownCommand is returned for positional arguments that are neither a
// subcommand nor a server command following "--".
var ErrUnknownCommand = errors.New("unknown command")

const rootCmdLong = `credboot provisions a credential file and then hands the process over to
the application server.

Without arguments it acts as the container entrypoint: the base64 payload in
YOUTUBE_COOKIES_BASE64 is decoded into /app/cookies.txt, then credboot replaces
itself with "uvicorn api:app --host 0.0.0.0 --port 7860". A missing payload only
produces a warning. A malformed payload stops startup and the server is not run.

Configuration is layered, lowest precedence first: built-in defaults,
credboot.yaml (./ or /etc/credboot/), CREDBOOT_* environment variables, flags.

Examples:
  # Container entrypoint
  credboot

  # Start another server once the credential is in place
  credboot -- gunicorn api:app --bind '${HOST}:${PORT}'

  # Read an age-encrypted payload
  credboot --source age --env COOKIES_AGE --age-identity-env AGE_KEY`

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime creates the root command resolving services from runtimeContainer.
func NewRootCmdWithRuntime(runtimeContainer *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "credboot [-- command...]",
		Short:        "Provision a credential file, then start the server",
		Long:         rootCmdLong,
		Args:         serverCommandArgs,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cfgManager := configmanager.NewCommandManager(cmd)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return applyConfigFlag(cmd, cfgManager)
	}

	cmd.RunE = di.RunEWithRuntime(runtimeContainer, di.WithServices(
		func(cmd *cobra.Command, services di.Services) error {
			return runBootstrap(cmd, cfgManager, services, cmd.Flags().Args())
		},
	))

	cmd.AddCommand(NewProvisionCmd(runtimeContainer, cfgManager))
	cmd.AddCommand(NewInspectCmd(cfgManager))
	cmd.AddCommand(NewWaitCmd(runtimeContainer, cfgManager))
	cmd.AddCommand(NewConfigCmd(cfgManager))
	cmd.AddCommand(NewEncodeCmd())

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

// serverCommandArgs only accepts positional arguments after "--", so a
// mistyped subcommand is not started as the server.
func serverCommandArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && cmd.ArgsLenAtDash() != 0 {
		return fmt.Errorf(
			"%w %q for %q; pass the server command after --",
			ErrUnknownCommand, args[0], cmd.CommandPath(),
		)
	}

	return nil
}

func applyConfigFlag(cmd *cobra.Command, cfgManager *configmanager.Manager) error {
	path, err := cmd.Flags().GetString(configmanager.ConfigFlag)
	if err != nil {
		return fmt.Errorf("read --%s: %w", configmanager.ConfigFlag, err)
	}

	cfgManager.SetConfigFile(path)

	return nil
}
