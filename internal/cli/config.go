// Config loading for the shoebox CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeyLibraryPath = "library_path"
)

// configDir returns the CLI's configuration directory, overridable with
// SHOEBOX_CONFIG_DIR for tests.
func configDir() (string, error) {
	if v := os.Getenv("SHOEBOX_CONFIG_DIR"); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(base, "shoebox"), nil
}

// loadConfig reads config.yaml from the config directory using Viper.
// A missing directory or config.yaml is not an error.
func loadConfig() (*viper.Viper, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return v, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return v, nil
}
