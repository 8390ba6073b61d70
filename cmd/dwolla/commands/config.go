package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	Environment  string `json:"environment,omitempty"   yaml:"environment,omitempty"`
	APIEndpoint  string `json:"api_endpoint,omitempty"  yaml:"api_endpoint,omitempty"`
	ClientID     string `json:"client_id,omitempty"     yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	Output       string `json:"output,omitempty"        yaml:"output,omitempty"`
	Timeout      string `json:"timeout,omitempty"       yaml:"timeout,omitempty"`
	TokenStore   string `json:"token_store,omitempty"   yaml:"token_store,omitempty"`
	NATSURL      string `json:"nats_url,omitempty"      yaml:"nats_url,omitempty"`
	NATSBucket   string `json:"nats_bucket,omitempty"   yaml:"nats_bucket,omitempty"`
}

// configFields maps configuration keys to their field in Config.
var configFields = map[string]func(*Config) *string{
	"environment":   func(c *Config) *string { return &c.Environment },
	"api_endpoint":  func(c *Config) *string { return &c.APIEndpoint },
	"client_id":     func(c *Config) *string { return &c.ClientID },
	"client_secret": func(c *Config) *string { return &c.ClientSecret },
	"output":        func(c *Config) *string { return &c.Output },
	"timeout":       func(c *Config) *string { return &c.Timeout },
	"token_store":   func(c *Config) *string { return &c.TokenStore },
	"nats_url":      func(c *Config) *string { return &c.NATSURL },
	"nats_bucket":   func(c *Config) *string { return &c.NATSBucket },
}

// ConfigKeys returns the supported configuration keys in order.
func ConfigKeys() []string {
	keys := make([]string, 0, len(configFields))
	for key := range configFields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Masked returns a copy of the configuration safe to display.
func (c Config) Masked() Config {
	if c.ClientSecret != "" {
		c.ClientSecret = constants.MaskedSecret
	}

	return c
}

// Set assigns value to key.
func (c *Config) Set(key, value string) error {
	field, ok := configFields[key]
	if !ok {
		return fmt.Errorf("%w: %s (valid keys: %s)", constants.ErrUnknownConfigKey, key, strings.Join(ConfigKeys(), ", "))
	}

	*field(c) = value

	return nil
}

// Get returns the value of key.
func (c *Config) Get(key string) string {
	field, ok := configFields[key]
	if !ok {
		return ""
	}

	return *field(c)
}

// ConfigDir returns the directory holding the CLI configuration.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".dwolla"), nil
}

// configFile returns the configuration file in use, or the default one.
func configFile() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.yml"), nil
}

// loadConfig reads the effective configuration: flags, DWOLLA_* variables and
// the configuration file, in that order of precedence.
func loadConfig() *Config {
	config := &Config{}
	for key, field := range configFields {
		*field(config) = viper.GetString(key)
	}

	return config
}

// loadConfigFile reads only what is stored in the configuration file, so that
// saving it never persists flags or environment variables.
func loadConfigFile() (*Config, error) {
	path, err := configFile()
	if err != nil {
		return nil, err
	}

	config := &Config{}

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config file
	if os.IsNotExist(err) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func saveConfigStruct(config *Config) error {
	path, err := configFile()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ConfigPersister serializes read-modify-write cycles of the config file.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// Update applies change to the stored configuration and saves it.
func (p *ConfigPersister) Update(change func(*Config) error) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := loadConfigFile()
	if err != nil {
		return err
	}

	err = change(config)
	if err != nil {
		return err
	}

	return saveConfigStruct(config)
}

var persister = NewConfigPersister()

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the credentials, environment and token store used by the CLI",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with the client secret masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig().Masked()

			v := view{header: []string{"Key", "Value"}}
			for _, key := range ConfigKeys() {
				v.rows = append(v.rows, []string{key, orNotAvailable(config.Get(key))})
			}

			return render(cmd, config, v)
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(ConfigKeys(), ", "),
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			err := persister.Update(func(config *Config) error {
				return config.Set(key, value)
			})
			if err != nil {
				return err
			}

			if key == "client_secret" {
				value = constants.MaskedSecret
			}

			return render(cmd, map[string]string{"key": key, "value": value}, propertyView("Set", key, "Value", value))
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			err := persister.Update(func(config *Config) error {
				return config.Set(key, "")
			})
			if err != nil {
				return err
			}

			return render(cmd, map[string]string{"key": key}, propertyView("Unset", key))
		},
	}
}
