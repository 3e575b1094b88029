package configmanager

import (
	"strings"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
	"github.com/spf13/viper"
)

const (
	// ConfigName is the config file name without extension.
	ConfigName = "credboot"
	// EnvPrefix prefixes environment variables that override configuration.
	EnvPrefix = "CREDBOOT"
	// SystemConfigDir is searched after the working directory.
	SystemConfigDir = "/etc/credboot"
)

// InitializeViper creates a Viper instance with credboot's search paths,
// environment handling and defaults.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()

	viperInstance.SetConfigName(ConfigName)
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")
	viperInstance.AddConfigPath(SystemConfigDir)

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	setDefaults(viperInstance, v1alpha1.NewConfig())

	return viperInstance
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(viperInstance *viper.Viper, config *v1alpha1.Config) {
	defaults := map[string]any{
		"kind":       config.Kind,
		"apiVersion": config.APIVersion,

		"credential.source":         string(config.Credential.Source),
		"credential.env":            config.Credential.Env,
		"credential.file":           config.Credential.File,
		"credential.encoding":       string(config.Credential.Encoding),
		"credential.sopsFormat":     string(config.Credential.SopsFormat),
		"credential.sopsKey":        config.Credential.SopsKey,
		"credential.ageIdentity":    config.Credential.AgeIdentity,
		"credential.ageIdentityEnv": config.Credential.AgeIdentityEnv,
		"credential.output":         config.Credential.Output,
		"credential.mode":           config.Credential.Mode,
		"credential.strict":         config.Credential.Strict,
		"credential.inspect":        config.Credential.Inspect,

		"server.command": config.Server.Command,
		"server.host":    config.Server.Host,
		"server.port":    config.Server.Port,
		"server.dir":     config.Server.Dir,
		"server.launch":  string(config.Server.Launch),

		"readiness.address":  config.Readiness.Address,
		"readiness.timeout":  config.Readiness.Timeout,
		"readiness.interval": config.Readiness.Interval,
	}

	for key, value := range defaults {
		viperInstance.SetDefault(key, value)
	}
}
