package cmd

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
	"github.com/devantler-tech/credboot/pkg/di"
	"github.com/devantler-tech/credboot/pkg/io/configmanager"
	"github.com/devantler-tech/credboot/pkg/notify"
	"github.com/devantler-tech/credboot/pkg/svc/credential"
	"github.com/devantler-tech/credboot/pkg/svc/launcher"
	"github.com/devantler-tech/credboot/pkg/svc/provisioner"
	"github.com/spf13/cobra"
)

func loadConfig(cfgManager *configmanager.Manager, opts configmanager.LoadOptions) (*v1alpha1.Config, error) {
	cfg, err := cfgManager.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// runBootstrap provisions the credential and then starts the server.
// A non-empty command replaces the configured server command.
func runBootstrap(
	cmd *cobra.Command,
	cfgManager *configmanager.Manager,
	services di.Services,
	command []string,
) error {
	cfg, err := loadConfig(cfgManager, configmanager.LoadOptions{})
	if err != nil {
		return err
	}

	if len(command) > 0 {
		cfg, err = cfg.DeepCopy()
		if err != nil {
			return fmt.Errorf("override server command: %w", err)
		}

		cfg.Server.Command = command
	}

	_, err = provisionCredential(cmd, cfg, services.Credentials)
	if err != nil {
		return err
	}

	spec, err := launcher.Resolve(cfg.Server, os.Environ())
	if err != nil {
		return fmt.Errorf("resolve server command: %w", err)
	}

	serverLauncher, err := services.Launchers.Create(cfg.Server.Launch)
	if err != nil {
		return fmt.Errorf("create launcher: %w", err)
	}

	notify.Activityf(cmd.OutOrStdout(), "starting %s on %s",
		strings.Join(spec.Args, " "),
		net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)))

	err = serverLauncher.Launch(cmd.Context(), spec)
	if err != nil {
		return fmt.Errorf("launch server: %w", err)
	}

	return nil
}

func provisionCredential(
	cmd *cobra.Command,
	cfg *v1alpha1.Config,
	factory credential.Factory,
) (provisioner.Result, error) {
	source, err := factory.Create(cfg.Credential)
	if err != nil {
		return provisioner.Result{}, fmt.Errorf("create credential source: %w", err)
	}

	prov := provisioner.New(source, provisioner.Options{
		Output:  cfg.Credential.Output,
		Mode:    cfg.Credential.Mode,
		Strict:  cfg.Credential.Strict,
		Inspect: cfg.Credential.Inspect,
		Writer:  cmd.OutOrStdout(),
	})

	result, err := prov.Provision(cmd.Context())
	if err != nil {
		return result, fmt.Errorf("provision credential: %w", err)
	}

	return result, nil
}
