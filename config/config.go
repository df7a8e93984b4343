package config

import (
	"os"
	"path/filepath"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/bytom/sm3/errors"
)

const configFileName = "config.toml"

type Config struct {
	// Top level options use an anonymous struct
	BaseConfig `mapstructure:",squash"`
	// Options for hashing
	Hash *HashConfig `mapstructure:"hash" toml:"hash"`
}

// Default configurable parameters.
func DefaultConfig() *Config {
	return &Config{
		BaseConfig: DefaultBaseConfig(),
		Hash:       DefaultHashConfig(),
	}
}

// Set the RootDir for all Config structs
func (cfg *Config) SetRoot(root string) *Config {
	cfg.BaseConfig.RootDir = root
	return cfg
}

// ExpandRoot resolves a leading ~ in the root directory.
func (cfg *Config) ExpandRoot() error {
	root, err := homedir.Expand(cfg.RootDir)
	if err != nil {
		return errors.Wrap(err, "expand root dir")
	}
	cfg.RootDir = root
	return nil
}

type BaseConfig struct {
	// The root directory for all data.
	// This should be set in viper so it can unmarshal into this struct
	RootDir string `mapstructure:"home" toml:"-"`

	//log level to set
	LogLevel string `mapstructure:"log_level" toml:"log_level"`

	//log file name
	LogFile string `mapstructure:"log_file" toml:"log_file"`

	// Version of the tool that wrote the config file
	Version string `mapstructure:"version" toml:"version"`
}

// Default configurable base parameters.
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		LogLevel: "info",
		LogFile:  "log",
	}
}

func (b BaseConfig) LogDir() string {
	return rootify(b.LogFile, b.RootDir)
}

func (b BaseConfig) ConfigFile() string {
	return rootify(configFileName, b.RootDir)
}

// HashConfig controls how inputs are read and how digests are printed.
type HashConfig struct {
	// Size in bytes of the buffer used to stream files into the digest.
	ReadBuffer int `mapstructure:"read_buffer" toml:"read_buffer"`
	// Print BSD-style "SM3 (name) = digest" lines instead of GNU style.
	Tag bool `mapstructure:"tag" toml:"tag"`
}

func DefaultHashConfig() *HashConfig {
	return &HashConfig{
		ReadBuffer: 32 * 1024,
		Tag:        false,
	}
}

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// DefaultDataDir is the default directory holding the config file and logs.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := homeDir()
	if home == "" {
		return "./.sm3sum"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Sm3sum")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "Sm3sum")
	default:
		return filepath.Join(home, ".sm3sum")
	}
}

func isFolderNotExists(path string) bool {
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}

func homeDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return home
}
