package config

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/bytom/sm3/errors"
	"github.com/bytom/sm3/version"
)

const configHeader = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml
`

// EnsureRoot creates the root and log directories and writes a default
// config file if none exists yet.
func EnsureRoot(rootDir string) error {
	cfg := DefaultConfig().SetRoot(rootDir)
	for _, dir := range []string{rootDir, cfg.LogDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}

	configFilePath := cfg.ConfigFile()
	if !isFolderNotExists(configFilePath) {
		return nil
	}

	data, err := defaultConfigFile()
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(configFilePath, data, 0644), "write config file")
}

func defaultConfigFile() ([]byte, error) {
	cfg := DefaultConfig()
	cfg.Version = version.Version

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	return buf.Bytes(), nil
}
