package main

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// configFileName is looked up in the current working directory.
const configFileName = ".apicov.yaml"

// cliConfig holds defaults read from the optional config file.
// Command-line flags always win over file values.
type cliConfig struct {
	// Format is the default report format (text, json, html).
	Format string `yaml:"format"`

	// ShowZeroCounts includes never-hit responses in text reports.
	ShowZeroCounts bool `yaml:"showZeroCounts"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
}

// loadCLIConfig reads .apicov.yaml when present. A missing file is
// not an error; an unreadable or malformed one is logged and ignored
// so a stray config file can never break the CLI.
func loadCLIConfig(logger *charmlog.Logger) cliConfig {
	var cfg cliConfig

	data, err := os.ReadFile(configFileName)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cannot read config file", "file", configFileName, "err", err)
		}
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Warn("ignoring malformed config file", "file", configFileName, "err", err)
		return cliConfig{}
	}

	if cfg.Debug {
		logger.SetLevel(charmlog.DebugLevel)
	}
	return cfg
}
