package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// GlobalConfigDirectoryName is the directory under the user home that
	// holds the global configuration file.
	GlobalConfigDirectoryName = ".repodigest"
	// GlobalConfigFileName is the global configuration file name.
	GlobalConfigFileName = "config.yaml"
	// LocalConfigFileName is the per-project configuration file name.
	LocalConfigFileName = ".repodigest.yaml"
)

// ApplicationConfiguration supplies defaults for CLI flags. Values left
// empty or nil defer to the built-in defaults; local configuration overrides
// global configuration field by field.
type ApplicationConfiguration struct {
	Format           string   `mapstructure:"format"`
	MaxFileSizeBytes int64    `mapstructure:"max_file_size"`
	MaxDepth         *int     `mapstructure:"max_depth"`
	TokenizerModel   string   `mapstructure:"model"`
	Tokens           *bool    `mapstructure:"tokens"`
	Exclude          []string `mapstructure:"exclude"`
}

// Merge overlays the other configuration on top of the receiver and returns
// the result. Set fields win; unset fields fall through.
func (configuration ApplicationConfiguration) Merge(other ApplicationConfiguration) ApplicationConfiguration {
	merged := configuration
	if other.Format != "" {
		merged.Format = other.Format
	}
	if other.MaxFileSizeBytes != 0 {
		merged.MaxFileSizeBytes = other.MaxFileSizeBytes
	}
	if other.MaxDepth != nil {
		merged.MaxDepth = other.MaxDepth
	}
	if other.TokenizerModel != "" {
		merged.TokenizerModel = other.TokenizerModel
	}
	if other.Tokens != nil {
		merged.Tokens = other.Tokens
	}
	if len(other.Exclude) > 0 {
		merged.Exclude = append(merged.Exclude, other.Exclude...)
	}
	return merged
}

// LoadApplicationConfiguration merges the global configuration under the
// user home with the local configuration found in the working directory.
// Missing files are not an error.
func LoadApplicationConfiguration(workingDirectory string) (ApplicationConfiguration, error) {
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, GlobalConfigDirectoryName, GlobalConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath := filepath.Join(workingDirectory, LocalConfigFileName)
	localConfiguration, loadError := loadConfigurationFromPath(localPath)
	if loadError != nil {
		return ApplicationConfiguration{}, loadError
	}
	merged = merged.Merge(localConfiguration)

	return merged, nil
}

// loadConfigurationFromPath reads one YAML configuration file with viper.
// A missing file yields the zero configuration.
func loadConfigurationFromPath(configurationPath string) (ApplicationConfiguration, error) {
	if _, statError := os.Stat(configurationPath); statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", configurationPath, statError)
	}

	viperInstance := viper.New()
	viperInstance.SetConfigFile(configurationPath)
	viperInstance.SetConfigType("yaml")
	if readError := viperInstance.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration %s: %w", configurationPath, readError)
	}

	var configuration ApplicationConfiguration
	if unmarshalError := viperInstance.Unmarshal(&configuration); unmarshalError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("parse configuration %s: %w", configurationPath, unmarshalError)
	}
	return configuration, nil
}
