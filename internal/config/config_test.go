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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blinklabs-io/ledgermeta/internal/config"
	"github.com/blinklabs-io/ledgermeta/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(
		t,
		os.WriteFile(filepath.Join(dir, "ledgermeta.yaml"), []byte(content), 0o644),
	)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDatabase, cfg.Database)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	for _, kind := range config.Kinds() {
		limits, err := cfg.LimitsFor(kind)
		require.NoError(t, err)
		assert.Equal(
			t,
			metadata.NewLimits(config.DefaultMaxEntries, config.DefaultMaxEntryBytes),
			limits,
		)
	}
	// A default config file is written on first use
	assert.FileExists(t, filepath.Join(dir, "ledgermeta.yaml"))
}

func TestLoadFile(t *testing.T) {
	dir := writeConfig(t, `
database: /var/lib/ledgermeta/world.db
log:
  level: debug
  format: json
limits:
  asset:
    max_entries: 8
    max_entry_bytes: 64
`)
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/ledgermeta/world.db", cfg.Database)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	limits, err := cfg.LimitsFor(config.KindAsset)
	require.NoError(t, err)
	assert.Equal(t, metadata.NewLimits(8, 64), limits)
	limits, err = cfg.LimitsFor(config.KindAccount)
	require.NoError(t, err)
	assert.Equal(t, uint32(config.DefaultMaxEntries), limits.MaxEntries)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LEDGERMETA_DATABASE", "env.db")
	t.Setenv("LEDGERMETA_LIMITS_TRANSACTION_MAX_ENTRY_BYTES", "128")
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Database)
	limits, err := cfg.LimitsFor(config.KindTransaction)
	require.NoError(t, err)
	assert.Equal(t, uint32(128), limits.MaxEntryBytes)
}

func TestLoadInvalid(t *testing.T) {
	testDefs := []struct {
		name    string
		content string
	}{
		{name: "unknown kind", content: "limits:\n  domain:\n    max_entries: 1\n"},
		{name: "bad level", content: "log:\n  level: loud\n"},
		{name: "bad format", content: "log:\n  format: xml\n"},
		{name: "malformed yaml", content: "log: [\n"},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, testDef.content))
			require.Error(t, err)
		})
	}
}

func TestLimitsForUnknownKind(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	_, err = cfg.LimitsFor("domain")
	require.ErrorIs(t, err, config.ErrUnknownKind)
	all, err := cfg.AllLimits()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
