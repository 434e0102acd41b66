// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads ledgermeta configuration from a YAML file and the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/blinklabs-io/ledgermeta/internal/logging"
	"github.com/blinklabs-io/ledgermeta/metadata"
	"github.com/jinzhu/copier"
	"github.com/spf13/viper"
)

const (
	configFileName = "ledgermeta"
	configFileType = "yaml"
	configFileExt  = "ledgermeta.yaml"

	envPrefix = "LEDGERMETA"

	keyDatabase  = "database"
	keyLogLevel  = "log.level"
	keyLogFormat = "log.format"

	DefaultDatabase      = "ledgermeta.db"
	DefaultMaxEntries    = 1 << 20
	DefaultMaxEntryBytes = 4096
)

// Entity kinds that carry metadata. Each kind has its own limits
const (
	KindAccount     = "account"
	KindTransaction = "transaction"
	KindAsset       = "asset"
)

var ErrUnknownKind = errors.New("unknown entity kind")

const defaultConfigYAML = `# ledgermeta configuration

# SQLite database holding entity metadata
# database: ledgermeta.db

log:
  level: info
  format: text

# Limits applied to metadata mutations, per entity kind
# limits:
#   account:
#     max_entries: 1048576
#     max_entry_bytes: 4096
`

// LimitsConfig holds the configured metadata limits for one entity kind
type LimitsConfig struct {
	MaxEntries    uint32 `mapstructure:"max_entries"`
	MaxEntryBytes uint32 `mapstructure:"max_entry_bytes"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Database string                  `mapstructure:"database"`
	Log      LogConfig               `mapstructure:"log"`
	Limits   map[string]LimitsConfig `mapstructure:"limits"`
}

// Kinds returns the supported entity kinds
func Kinds() []string {
	return []string{KindAccount, KindTransaction, KindAsset}
}

// Load reads ledgermeta.yaml from configDir and applies LEDGERMETA_ environment
// overrides on top of the defaults. A default config file is written on first use. An
// empty configDir skips the file and uses defaults and the environment only
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		if err := ensureDefaultConfigFile(configDir); err != nil {
			return nil, fmt.Errorf("ensure default config: %w", err)
		}
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFoundErr viper.ConfigFileNotFoundError
			if !errors.As(err, &notFoundErr) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyDatabase, DefaultDatabase)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, logging.FormatText)
	for _, kind := range Kinds() {
		v.SetDefault(limitsKey(kind, "max_entries"), DefaultMaxEntries)
		v.SetDefault(limitsKey(kind, "max_entry_bytes"), DefaultMaxEntryBytes)
	}
}

func limitsKey(kind string, field string) string {
	return "limits." + kind + "." + field
}

// Validate checks the log settings and rejects limits for unknown entity kinds
func (c *Config) Validate() error {
	if c.Database == "" {
		return errors.New("database path must not be empty")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	for kind := range c.Limits {
		if !slices.Contains(Kinds(), kind) {
			return fmt.Errorf("limits: %w: %s", ErrUnknownKind, kind)
		}
	}
	return nil
}

// LimitsFor returns the metadata limits configured for an entity kind
func (c *Config) LimitsFor(kind string) (metadata.Limits, error) {
	var ret metadata.Limits
	if !slices.Contains(Kinds(), kind) {
		return ret, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	tmpLimits, ok := c.Limits[kind]
	if !ok {
		return metadata.NewLimits(DefaultMaxEntries, DefaultMaxEntryBytes), nil
	}
	if err := copier.Copy(&ret, &tmpLimits); err != nil {
		return ret, fmt.Errorf("copy limits for %s: %w", kind, err)
	}
	return ret, nil
}

// AllLimits returns the limits for every supported entity kind
func (c *Config) AllLimits() (map[string]metadata.Limits, error) {
	ret := make(map[string]metadata.Limits, len(Kinds()))
	for _, kind := range Kinds() {
		tmpLimits, err := c.LimitsFor(kind)
		if err != nil {
			return nil, err
		}
		ret[kind] = tmpLimits
	}
	return ret, nil
}

func ensureDefaultConfigFile(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
