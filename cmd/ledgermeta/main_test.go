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

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type cli struct {
	t         *testing.T
	configDir string
	database  string
}

func newCli(t *testing.T) *cli {
	dir := t.TempDir()
	return &cli{
		t:         t,
		configDir: filepath.Join(dir, "config"),
		database:  filepath.Join(dir, "ledgermeta.db"),
	}
}

func (c *cli) run(args ...string) (string, error) {
	var out bytes.Buffer
	fullArgs := append(
		[]string{"--config-dir", c.configDir, "--database", c.database},
		args...,
	)
	err := run(fullArgs, &out)
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	out, err := c.run(args...)
	require.NoError(c.t, err, strings.Join(args, " "))
	return out
}

func TestSetGetRemove(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := newCli(t)
	c.mustRun("set", "account", "alice", "profile", "--container")
	c.mustRun("set", "account", "alice", "profile/age", "42")
	c.mustRun("set", "account", "alice", "profile/tags", `["a", "b"]`)
	out := c.mustRun("get", "account", "alice", "profile/age")
	assert.Equal(t, "42\n", out)

	out = c.mustRun("len", "account", "alice")
	assert.Equal(t, "len: 1\nnested_len: 8\n", out)

	out = c.mustRun("remove", "account", "alice", "profile/age")
	assert.Equal(t, "42\n", out)
	_, err := c.run("get", "account", "alice", "profile/age")
	require.ErrorIs(t, err, errNotFound)
	_, err = c.run("remove", "account", "alice", "profile/age")
	require.ErrorIs(t, err, errNotFound)
}

func TestSetErrors(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := newCli(t)
	_, err := c.run("set", "account", "alice", "a/b", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no metadata for key a")
	_, err = c.run("set", "account", "alice", "a", "1", "--container")
	require.Error(t, err)
	_, err = c.run("set", "account", "alice", "a", "1.5")
	require.Error(t, err)
	_, err = c.run("set", "domain", "alice", "a", "1")
	require.Error(t, err)
	_, err = c.run("set", "account", "alice", "a/b", "1", "--flat")
	require.Error(t, err)
}

func TestSetVariants(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := newCli(t)
	c.mustRun("set", "asset", "coin", "raw", "--bytes", "0xcafe")
	c.mustRun(
		"set", "asset", "coin", "owner",
		"--public-key", "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
	)
	c.mustRun("set", "asset", "coin", "name", `"Coin"`, "--flat")
	out := c.mustRun("show", "asset", "coin")
	assert.JSONEq(
		t,
		`{
			"raw": "0xcafe",
			"owner": "0xd75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
			"name": "Coin"
		}`,
		out,
	)
	_, err := c.run("set", "asset", "coin", "bad", "--public-key", "00")
	require.Error(t, err)
}

func TestShowHashList(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := newCli(t)
	c.mustRun("set", "transaction", "tx1", "a", "1")
	out := c.mustRun("show", "transaction", "tx1", "--cbor")
	assert.Equal(t, "a1616101\n", out)
	out = c.mustRun("show", "transaction", "tx1", "--structure")
	assert.Contains(t, out, `"a"`)

	out = c.mustRun("hash", "transaction", "tx1")
	assert.Equal(
		t,
		"hash: 1394d94c7b5980f7ea48c811d1dcee267a0e441da8eb0d20d78655e47e99168f\n"+
			"fingerprint: meta1htxzgh5nmmullgn8x9sh85hqnsrnu9vmt9sgtu\n",
		out,
	)

	c.mustRun("set", "transaction", "tx0", "b", "true")
	out = c.mustRun("list", "transaction")
	assert.Equal(t, "tx0\t1\ntx1\t1\n", out)
}
