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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/blinklabs-io/ledgermeta/internal/config"
	"github.com/blinklabs-io/ledgermeta/internal/logging"
	"github.com/blinklabs-io/ledgermeta/internal/store"
	"github.com/blinklabs-io/ledgermeta/metadata"
	"github.com/spf13/cobra"
)

var errNotFound = errors.New("not found")

type app struct {
	configDir string
	database  string
	out       io.Writer
	logger    *slog.Logger
	store     *store.Store
}

// run executes the command line in args and releases the store afterward, including
// when the command fails
func run(args []string, out io.Writer) error {
	a := &app{out: out}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if closeErr := a.close(); err == nil {
		err = closeErr
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ledgermeta",
		Short:         "Manage metadata attached to ledger entities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
	}
	cmd.SetOut(a.out)
	cmd.PersistentFlags().StringVar(&a.configDir, "config-dir", defaultConfigDir(), "directory holding ledgermeta.yaml")
	cmd.PersistentFlags().StringVar(&a.database, "database", "", "SQLite database file (overrides the config file)")
	cmd.AddCommand(
		a.getCmd(),
		a.setCmd(),
		a.removeCmd(),
		a.lenCmd(),
		a.showCmd(),
		a.hashCmd(),
		a.listCmd(),
	)
	return cmd
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ledgermeta")
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(a.configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return err
	}
	a.logger = logger
	limits, err := cfg.AllLimits()
	if err != nil {
		return err
	}
	dbPath := cfg.Database
	if a.database != "" {
		dbPath = a.database
	}
	a.store, err = store.Open(
		ctx,
		dbPath,
		store.WithLogger(logger),
		store.WithAllLimits(limits),
	)
	if err != nil {
		return err
	}
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func parsePath(s string) (metadata.Path, error) {
	path, err := metadata.ParsePath(s, metadata.PathSeparator)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", s, err)
	}
	return path, nil
}
