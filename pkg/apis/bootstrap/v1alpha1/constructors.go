package v1alpha1

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// NewConfig creates a Config populated with the defaults of the container entry script.
func NewConfig() *Config {
	return &Config{
		Kind:       Kind,
		APIVersion: APIVersion,
		Credential: NewCredentialSpec(),
		Server:     NewServerSpec(),
		Readiness:  NewReadinessSpec(),
	}
}

// NewCredentialSpec creates a CredentialSpec with default values.
func NewCredentialSpec() CredentialSpec {
	return CredentialSpec{
		Source:         SourceEnv,
		Env:            DefaultCredentialEnv,
		Encoding:       EncodingBase64,
		SopsFormat:     SopsFormatBinary,
		AgeIdentityEnv: DefaultAgeKeyEnv,
		Output:         DefaultOutput,
		Mode:           DefaultMode,
		Strict:         true,
		Inspect:        true,
	}
}

// NewServerSpec creates a ServerSpec with default values.
func NewServerSpec() ServerSpec {
	return ServerSpec{
		Command: DefaultCommand(),
		Host:    DefaultHost,
		Port:    DefaultPort,
		Launch:  LaunchExec,
	}
}

// NewReadinessSpec creates a ReadinessSpec with default values.
func NewReadinessSpec() ReadinessSpec {
	return ReadinessSpec{
		Timeout:  DefaultReadyTimeout,
		Interval: DefaultReadyInterval,
	}
}

// DeepCopy returns an independent copy of the configuration.
func (c *Config) DeepCopy() (*Config, error) {
	if c == nil {
		return nil, nil //nolint:nilnil // nil in, nil out.
	}

	out := &Config{}

	err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true})
	if err != nil {
		return nil, fmt.Errorf("copy config: %w", err)
	}

	return out, nil
}

// ReadinessAddress returns the address probed by the wait command.
func (c *Config) ReadinessAddress() string {
	if c.Readiness.Address != "" {
		return c.Readiness.Address
	}

	return fmt.Sprintf("127.0.0.1:%d", c.Server.Port)
}
