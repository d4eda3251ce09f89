package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fwojciec/docdex"
)

// BuildConfig holds optional build settings loaded from a YAML file. Flags
// take precedence over config values; config values take precedence over
// defaults.
type BuildConfig struct {
	Concurrency int      `yaml:"concurrency"`
	RateLimit   float64  `yaml:"rate_limit"` // requests per second per domain
	StopWords   []string `yaml:"stop_words"` // extra stop words beyond the built-in list
	Filters     []string `yaml:"filters"`    // URL include patterns (regexps)
	DebounceMs  int      `yaml:"debounce_ms"`
}

// defaultConfigFile is picked up from the working directory when --config is
// not given.
const defaultConfigFile = "docdex.yaml"

// LoadBuildConfig reads the config at path. When path is empty it tries
// defaultConfigFile and returns an empty config if that does not exist.
func LoadBuildConfig(path string) (*BuildConfig, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &BuildConfig{}, nil
		}
		return nil, docdex.Errorf(docdex.ENOTFOUND, "Cannot read config file %q.", path)
	}

	cfg := &BuildConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "Invalid config file %q: %s", path, err)
	}
	return cfg, nil
}
