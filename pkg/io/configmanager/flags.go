package configmanager

import (
	"fmt"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigFlag names the flag selecting an explicit config file.
const ConfigFlag = "config"

// flagBindings maps flag names to configuration keys.
//
//nolint:gochecknoglobals // read-only lookup table
var flagBindings = map[string]string{
	"source":           "credential.source",
	"env":              "credential.env",
	"file":             "credential.file",
	"encoding":         "credential.encoding",
	"sops-format":      "credential.sopsFormat",
	"sops-key":         "credential.sopsKey",
	"age-identity":     "credential.ageIdentity",
	"age-identity-env": "credential.ageIdentityEnv",
	"output":           "credential.output",
	"mode":             "credential.mode",
	"strict":           "credential.strict",
	"inspect":          "credential.inspect",
	"host":             "server.host",
	"port":             "server.port",
	"dir":              "server.dir",
	"launch":           "server.launch",
	"ready-address":    "readiness.address",
	"ready-timeout":    "readiness.timeout",
	"ready-interval":   "readiness.interval",
}

// AddFlags registers the configuration flags on flags.
// Flag defaults only document the built-in values; Viper defaults take effect
// unless a flag is set explicitly.
func AddFlags(flags *pflag.FlagSet) {
	defaults := v1alpha1.NewConfig()
	credential := defaults.Credential

	flags.String(ConfigFlag, "", "config file (default: ./credboot.yaml, then /etc/credboot/credboot.yaml)")

	flags.Var(&credential.Source, "source",
		fmt.Sprintf("credential source %v", v1alpha1.ValidSources()))
	flags.String("env", credential.Env, "environment variable holding the credential payload")
	flags.String("file", credential.File, "credential payload file (file and sops sources)")
	flags.Var(&credential.Encoding, "encoding",
		fmt.Sprintf("payload encoding %v", v1alpha1.ValidEncodings()))
	flags.Var(&credential.SopsFormat, "sops-format",
		fmt.Sprintf("SOPS document format %v", v1alpha1.ValidSopsFormats()))
	flags.String("sops-key", credential.SopsKey, "top-level key holding the payload in a SOPS document")
	flags.String("age-identity", credential.AgeIdentity, "age identity file")
	flags.String("age-identity-env", credential.AgeIdentityEnv, "environment variable holding age identities")
	flags.StringP("output", "o", credential.Output, "credential file to write")
	flags.String("mode", fmt.Sprintf("%#o", uint32(credential.Mode)), "permission bits of the credential file")
	flags.Bool("strict", credential.Strict, "fail when the credential cannot be decoded")
	flags.Bool("inspect", credential.Inspect, "report cookie file problems after writing")

	flags.String("host", defaults.Server.Host, "address the server binds to (exported as HOST)")
	flags.Int("port", defaults.Server.Port, "port the server binds to (exported as PORT)")
	flags.String("dir", defaults.Server.Dir, "working directory of the server")
	flags.Var(&defaults.Server.Launch, "launch",
		fmt.Sprintf("how the server is started %v", v1alpha1.ValidLaunchModes()))

	flags.String("ready-address", defaults.Readiness.Address, "address probed by wait (default 127.0.0.1:<port>)")
	flags.Duration("ready-timeout", defaults.Readiness.Timeout, "maximum time to wait for the server")
	flags.Duration("ready-interval", defaults.Readiness.Interval, "maximum delay between readiness probes")
}

// BindFlags binds the registered configuration flags to their Viper keys.
// Flags missing from flags are skipped.
func BindFlags(viperInstance *viper.Viper, flags *pflag.FlagSet) {
	for name, key := range flagBindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}

		_ = viperInstance.BindPFlag(key, flag)
	}
}
