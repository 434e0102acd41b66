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

// Package store persists entity metadata containers in SQLite
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"slices"

	"github.com/blinklabs-io/ledgermeta/cbor"
	"github.com/blinklabs-io/ledgermeta/metadata"

	_ "modernc.org/sqlite"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS entity_metadata (
	kind TEXT NOT NULL,
	id   TEXT NOT NULL,
	data BLOB NOT NULL,
	PRIMARY KEY (kind, id)
)`

var (
	ErrUnknownKind = errors.New("no metadata limits configured for entity kind")
	ErrEmptyID     = errors.New("entity id must not be empty")

	errPathNotFound = errors.New("metadata path not found")
)

// Store holds one metadata container per (kind, id) entity. Each mutation is a single
// transaction that loads, modifies and saves the container, so concurrent writers
// serialize at the database
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	limits map[string]metadata.Limits
}

// Entity summarizes the stored metadata of one entity
type Entity struct {
	ID      string
	Entries int
}

// UpdateFunc mutates a container loaded from the store. Returning an error discards
// the mutation
type UpdateFunc func(m *metadata.Metadata, limits metadata.Limits) error

// Open opens or creates the database at path
func Open(ctx context.Context, path string, options ...StoreOptionFunc) (*Store, error) {
	s := &Store{
		limits: make(map[string]metadata.Limits),
	}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	db, err := sql.Open("sqlite", dataSourceName(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	s.db = db
	s.logger.Debug("opened metadata store", "path", path)
	return s, nil
}

// dataSourceName builds a SQLite URI for path. The path is escaped so that '?' and
// '#' in file names are not read as the start of the query or fragment
func dataSourceName(path string) string {
	dsn := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(path),
		OmitHost: true,
		RawQuery: "_pragma=busy_timeout(5000)",
	}
	return dsn.String()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Limits returns the limits configured for an entity kind
func (s *Store) Limits(kind string) (metadata.Limits, error) {
	tmpLimits, ok := s.limits[kind]
	if !ok {
		return tmpLimits, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return tmpLimits, nil
}

// Kinds returns the entity kinds with configured limits, in ascending order
func (s *Store) Kinds() []string {
	ret := make([]string, 0, len(s.limits))
	for kind := range s.limits {
		ret = append(ret, kind)
	}
	slices.Sort(ret)
	return ret
}

func (s *Store) checkEntity(kind string, id string) error {
	if _, err := s.Limits(kind); err != nil {
		return err
	}
	if id == "" {
		return ErrEmptyID
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func load(ctx context.Context, q queryer, kind string, id string) (*metadata.Metadata, bool, error) {
	var cborData []byte
	err := q.QueryRowContext(
		ctx,
		"SELECT data FROM entity_metadata WHERE kind = ? AND id = ?",
		kind,
		id,
	).Scan(&cborData)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return metadata.New(), false, nil
		}
		return nil, false, fmt.Errorf("query metadata: %w", err)
	}
	m, err := metadata.Decode(cborData)
	if err != nil {
		return nil, false, fmt.Errorf("decode stored metadata for %s %s: %w", kind, id, err)
	}
	return m, true, nil
}

// Load returns the container stored for an entity. An entity without stored metadata
// yields an empty container and false
func (s *Store) Load(ctx context.Context, kind string, id string) (*metadata.Metadata, bool, error) {
	if err := s.checkEntity(kind, id); err != nil {
		return nil, false, err
	}
	return load(ctx, s.db, kind, id)
}

// LoadRaw returns the canonical CBOR stored for an entity
func (s *Store) LoadRaw(ctx context.Context, kind string, id string) ([]byte, bool, error) {
	if err := s.checkEntity(kind, id); err != nil {
		return nil, false, err
	}
	var cborData []byte
	err := s.db.QueryRowContext(
		ctx,
		"SELECT data FROM entity_metadata WHERE kind = ? AND id = ?",
		kind,
		id,
	).Scan(&cborData)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []byte{cbor.CborTypeMap}, false, nil
		}
		return nil, false, fmt.Errorf("query metadata: %w", err)
	}
	return cborData, true, nil
}

// Save replaces the container stored for an entity
func (s *Store) Save(ctx context.Context, kind string, id string, m *metadata.Metadata) error {
	if err := s.checkEntity(kind, id); err != nil {
		return err
	}
	cborData, err := metadata.Encode(m)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, upsertSQL, kind, id, cborData); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	s.logger.Debug("saved metadata", "kind", kind, "entity", id, "entries", m.Len())
	return nil
}

const upsertSQL = `INSERT INTO entity_metadata (kind, id, data) VALUES (?, ?, ?)
ON CONFLICT (kind, id) DO UPDATE SET data = excluded.data`

// Update loads the container for an entity, applies fn with the limits of its kind
// and saves the result, all in one transaction. Nothing is written when fn fails
func (s *Store) Update(ctx context.Context, kind string, id string, fn UpdateFunc) error {
	if err := s.checkEntity(kind, id); err != nil {
		return err
	}
	limits := s.limits[kind]
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck
	m, _, err := load(ctx, tx, kind, id)
	if err != nil {
		return err
	}
	if err := fn(m, limits); err != nil {
		if isLimitError(err) {
			s.logger.Info(
				"rejected metadata update",
				"kind", kind,
				"entity", id,
				"limits", limits.String(),
				"error", err,
			)
		}
		return err
	}
	cborData, err := metadata.Encode(m)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsertSQL, kind, id, cborData); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.logger.Debug(
		"updated metadata",
		"kind", kind,
		"entity", id,
		"entries", m.Len(),
		"size", len(cborData),
	)
	return nil
}

// Insert stores value at path in the container of an entity
func (s *Store) Insert(ctx context.Context, kind string, id string, path metadata.Path, value metadata.Value) (metadata.Value, error) {
	var prev metadata.Value
	err := s.Update(
		ctx,
		kind,
		id,
		func(m *metadata.Metadata, limits metadata.Limits) error {
			var err error
			prev, err = m.NestedInsertWithLimits(path, value, limits)
			return err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", path, err)
	}
	return prev, nil
}

// Remove deletes the value at path from the container of an entity. A missing path is
// not an error and leaves the stored container untouched
func (s *Store) Remove(ctx context.Context, kind string, id string, path metadata.Path) (metadata.Value, bool, error) {
	var prev metadata.Value
	var found bool
	err := s.Update(
		ctx,
		kind,
		id,
		func(m *metadata.Metadata, _ metadata.Limits) error {
			prev, found = m.NestedRemove(path)
			if !found {
				return errPathNotFound
			}
			return nil
		},
	)
	if err != nil && !errors.Is(err, errPathNotFound) {
		return nil, false, fmt.Errorf("remove %s: %w", path, err)
	}
	return prev, found, nil
}

// Delete drops all metadata stored for an entity
func (s *Store) Delete(ctx context.Context, kind string, id string) (bool, error) {
	if err := s.checkEntity(kind, id); err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(
		ctx,
		"DELETE FROM entity_metadata WHERE kind = ? AND id = ?",
		kind,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("delete metadata: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete metadata: %w", err)
	}
	s.logger.Debug("deleted metadata", "kind", kind, "entity", id)
	return count > 0, nil
}

// List returns the entities of a kind that have stored metadata, ordered by id
func (s *Store) List(ctx context.Context, kind string) ([]Entity, error) {
	if _, err := s.Limits(kind); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT id, data FROM entity_metadata WHERE kind = ? ORDER BY id",
		kind,
	)
	if err != nil {
		return nil, fmt.Errorf("list metadata: %w", err)
	}
	defer rows.Close()
	var ret []Entity
	for rows.Next() {
		var tmpEntity Entity
		var cborData []byte
		if err := rows.Scan(&tmpEntity.ID, &cborData); err != nil {
			return nil, fmt.Errorf("scan metadata: %w", err)
		}
		// Only the map header is needed for the entry count
		count, err := cbor.MapLength(cborData)
		if err != nil {
			return nil, fmt.Errorf("stored metadata for %s %s: %w", kind, tmpEntity.ID, err)
		}
		tmpEntity.Entries = count
		ret = append(ret, tmpEntity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list metadata: %w", err)
	}
	return ret, nil
}

func isLimitError(err error) bool {
	return errors.Is(err, metadata.ErrLengthLimit) ||
		errors.Is(err, metadata.ErrEntrySize)
}
