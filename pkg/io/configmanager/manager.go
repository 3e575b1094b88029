package configmanager

import (
	"errors"
	"fmt"
	"io"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
	"github.com/devantler-tech/credboot/pkg/notify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// Silent suppresses loading notifications.
	Silent bool
	// SkipValidation skips config validation.
	SkipValidation bool
}

// ConfigManager provides configuration management functionality.
//
//go:generate mockery
type ConfigManager[T any] interface {
	// Load returns the configuration, either freshly loaded or previously cached.
	Load(opts LoadOptions) (*T, error)
}

// Manager loads v1alpha1.Config documents.
type Manager struct {
	Viper *viper.Viper
	// Config holds the loaded configuration.
	Config *v1alpha1.Config
	// Writer receives loading notifications.
	Writer io.Writer

	configLoaded    bool
	configFileFound bool
}

var _ ConfigManager[v1alpha1.Config] = (*Manager)(nil)

// NewManager creates a Manager reading config files from the default locations.
func NewManager(writer io.Writer) *Manager {
	return &Manager{
		Viper:  InitializeViper(),
		Config: v1alpha1.NewConfig(),
		Writer: writer,
	}
}

// NewCommandManager creates a Manager whose flags are registered on cmd's
// persistent flag set and bound as the highest-precedence layer.
func NewCommandManager(cmd *cobra.Command) *Manager {
	manager := NewManager(cmd.OutOrStdout())
	AddFlags(cmd.PersistentFlags())
	BindFlags(manager.Viper, cmd.PersistentFlags())

	return manager
}

// SetConfigFile makes the manager read path instead of searching the default locations.
// Unlike a searched file, an explicit file that does not exist is an error.
func (m *Manager) SetConfigFile(path string) {
	if path != "" {
		m.Viper.SetConfigFile(path)
	}
}

// ConfigFileUsed returns the path of the config file that was read, if any.
func (m *Manager) ConfigFileUsed() string {
	if !m.configFileFound {
		return ""
	}

	return m.Viper.ConfigFileUsed()
}

// Load implements ConfigManager.
func (m *Manager) Load(opts LoadOptions) (*v1alpha1.Config, error) {
	if m.configLoaded {
		return m.Config, nil
	}

	err := m.readConfig()
	if err != nil {
		return nil, err
	}

	config := v1alpha1.NewConfig()

	err = m.Viper.Unmarshal(config, viper.DecodeHook(DecodeHook()))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	err = checkTypeMeta(config)
	if err != nil {
		return nil, err
	}

	if !opts.SkipValidation {
		err = config.Validate()
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	if !opts.Silent && m.configFileFound {
		notify.Infof(m.Writer, "loaded configuration from %s", m.Viper.ConfigFileUsed())
	}

	m.Config = config
	m.configLoaded = true

	return m.Config, nil
}

func (m *Manager) readConfig() error {
	err := m.Viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		m.configFileFound = false

		return nil
	}

	m.configFileFound = true

	return nil
}

func checkTypeMeta(config *v1alpha1.Config) error {
	if config.Kind != v1alpha1.Kind {
		return fmt.Errorf("%w: kind %q, expected %q", ErrUnexpectedKind, config.Kind, v1alpha1.Kind)
	}

	if config.APIVersion != v1alpha1.APIVersion {
		return fmt.Errorf(
			"%w: apiVersion %q, expected %q",
			ErrUnexpectedKind, config.APIVersion, v1alpha1.APIVersion,
		)
	}

	return nil
}
