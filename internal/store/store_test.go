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

package store_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/blinklabs-io/ledgermeta/internal/store"
	"github.com/blinklabs-io/ledgermeta/internal/test"
	"github.com/blinklabs-io/ledgermeta/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	kindAccount = "account"
	kindAsset   = "asset"
)

func openStore(t *testing.T, options ...store.StoreOptionFunc) *store.Store {
	t.Helper()
	options = append(
		[]store.StoreOptionFunc{
			store.WithLimits(kindAccount, metadata.NewLimits(4, 32)),
			store.WithLimits(kindAsset, metadata.NewLimits(2, 16)),
		},
		options...,
	)
	s, err := store.Open(
		context.Background(),
		filepath.Join(t.TempDir(), "test.db"),
		options...,
	)
	require.NoError(t, err)
	return s
}

func TestStoreInsertLoad(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := openStore(t)
	defer s.Close()
	ctx := context.Background()

	m, found, err := s.Load(ctx, kindAccount, "alice")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, m.Len())

	prev, err := s.Insert(ctx, kindAccount, "alice", test.Path("profile"), metadata.New())
	require.NoError(t, err)
	assert.Nil(t, prev)
	_, err = s.Insert(ctx, kindAccount, "alice", test.Path("profile", "nick"), metadata.String("al"))
	require.NoError(t, err)

	m, found, err = s.Load(ctx, kindAccount, "alice")
	require.NoError(t, err)
	assert.True(t, found)
	val, ok := m.NestedGet(test.Path("profile", "nick"))
	require.True(t, ok)
	assert.Equal(t, metadata.String("al"), val)

	cborData, found, err := s.LoadRaw(ctx, kindAccount, "alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, test.DecodeHexString("a16770726f66696c65a1646e69636b62616c"), cborData)
}

func TestStoreLimitsPerKind(t *testing.T) {
	defer goleak.VerifyNone(t)
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	s := openStore(t, store.WithLogger(logger))
	defer s.Close()
	ctx := context.Background()

	// Fits the account limits but not the asset limits
	value := metadata.String("a longer value")
	_, err := s.Insert(ctx, kindAsset, "x", test.Path("k"), value)
	require.ErrorIs(t, err, metadata.ErrEntrySize)
	_, err = s.Insert(ctx, kindAccount, "x", test.Path("k"), value)
	require.NoError(t, err)
	_, err = s.Insert(ctx, kindAsset, "x", test.Path("k"), metadata.String("short"))
	require.NoError(t, err)
	_, err = s.Insert(ctx, kindAsset, "x", test.Path("k2"), metadata.String("short"))
	require.NoError(t, err)
	_, err = s.Insert(ctx, kindAsset, "x", test.Path("k3"), metadata.String("short"))
	require.ErrorIs(t, err, metadata.ErrLengthLimit)
	assert.Contains(t, logBuf.String(), "rejected metadata update")

	// Rejected updates are not persisted
	m, found, err := s.Load(ctx, kindAsset, "x")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []metadata.Name{"k", "k2"}, m.Keys())
	m, _, err = s.Load(ctx, kindAccount, "x")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestStoreUnknownKind(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := openStore(t)
	defer s.Close()
	ctx := context.Background()
	_, _, err := s.Load(ctx, "domain", "x")
	require.ErrorIs(t, err, store.ErrUnknownKind)
	_, err = s.List(ctx, "domain")
	require.ErrorIs(t, err, store.ErrUnknownKind)
	_, _, err = s.Load(ctx, kindAccount, "")
	require.ErrorIs(t, err, store.ErrEmptyID)
	assert.Equal(t, []string{kindAccount, kindAsset}, s.Kinds())
}

func TestStoreRemove(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := openStore(t)
	defer s.Close()
	ctx := context.Background()
	require.NoError(
		t,
		s.Save(ctx, kindAccount, "bob", test.MetadataFromJSON(`{"a": {"b": 1}, "c": 2}`)),
	)

	prev, found, err := s.Remove(ctx, kindAccount, "bob", test.Path("a", "b"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, metadata.NewInt(1), prev)

	prev, found, err = s.Remove(ctx, kindAccount, "bob", test.Path("a", "b"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, prev)

	m, _, err := s.Load(ctx, kindAccount, "bob")
	require.NoError(t, err)
	assert.True(t, m.Equal(test.MetadataFromJSON(`{"a": {}, "c": 2}`)))
}

func TestStoreListDelete(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := openStore(t)
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, kindAccount, "carol", test.MetadataFromJSON(`{"a": 1, "b": 2}`)))
	require.NoError(t, s.Save(ctx, kindAccount, "bob", test.MetadataFromJSON(`{"a": 1}`)))
	require.NoError(t, s.Save(ctx, kindAsset, "coin", test.MetadataFromJSON(`{}`)))

	entities, err := s.List(ctx, kindAccount)
	require.NoError(t, err)
	assert.Equal(
		t,
		[]store.Entity{{ID: "bob", Entries: 1}, {ID: "carol", Entries: 2}},
		entities,
	)

	deleted, err := s.Delete(ctx, kindAccount, "bob")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.Delete(ctx, kindAccount, "bob")
	require.NoError(t, err)
	assert.False(t, deleted)
	entities, err = s.List(ctx, kindAccount)
	require.NoError(t, err)
	assert.Len(t, entities, 1)
}

func TestStoreConcurrentUpdates(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := openStore(t, store.WithLimits("transaction", metadata.NewLimits(64, 64)))
	defer s.Close()
	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.Update(
				ctx,
				"transaction",
				"tx1",
				func(m *metadata.Metadata, limits metadata.Limits) error {
					key := metadata.MustParseName(string(rune('a' + i)))
					_, err := m.InsertWithLimits(key, metadata.NewInt(int64(i)), limits)
					return err
				},
			)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	m, _, err := s.Load(ctx, "transaction", "tx1")
	require.NoError(t, err)
	assert.Equal(t, 20, m.Len())
}

func TestStorePathWithReservedCharacters(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger?v=1#main.db")
	limits := store.WithLimits(kindAccount, metadata.NewLimits(4, 32))
	s, err := store.Open(ctx, path, limits)
	require.NoError(t, err)
	_, err = s.Insert(ctx, kindAccount, "erin", test.Path("n"), metadata.NewInt(1))
	require.NoError(t, err)
	require.NoError(t, s.Close())
	// The database file carries the full name
	assert.FileExists(t, path)

	s, err = store.Open(ctx, path, limits)
	require.NoError(t, err)
	defer s.Close()
	_, found, err := s.Load(ctx, kindAccount, "erin")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestStoreReopen(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")
	limits := store.WithLimits(kindAccount, metadata.NewLimits(4, 32))
	s, err := store.Open(ctx, path, limits)
	require.NoError(t, err)
	_, err = s.Insert(ctx, kindAccount, "dave", test.Path("n"), metadata.NewInt(5))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(ctx, path, limits)
	require.NoError(t, err)
	defer s.Close()
	m, found, err := s.Load(ctx, kindAccount, "dave")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, m.Len())
}
