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

package metadata

import (
	"iter"
	"maps"
	"slices"
)

// Metadata is a collection of named values with limit-checked insertion. It can be
// attached to accounts, transactions and assets, and nests through values that are
// themselves *Metadata.
//
// The zero value is an empty container ready for use. Metadata performs no locking;
// callers sharing a container must provide their own synchronization. A container
// takes ownership of inserted values, so callers must not modify or reinsert a value
// after handing it over.
type Metadata struct {
	entries map[Name]Value
}

// SchemaName is the name under which the container layout is published. The layout
// itself is a transparent map of names to values
func (*Metadata) SchemaName() string {
	return "Metadata"
}

// New returns an empty container
func New() *Metadata {
	return &Metadata{
		entries: make(map[Name]Value),
	}
}

// Len returns the number of entries in this layer, not counting nested entries
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// NestedLen returns the cumulative length of all values housed in this container.
// Every entry counts as 1 plus the Size of its value, recursing through nested
// containers. This walks the whole tree and is not cached, so it should not be used
// on hot paths
func (m *Metadata) NestedLen() int {
	if m == nil {
		return 0
	}
	ret := 0
	for _, v := range m.entries {
		ret += 1 + v.Size()
	}
	return ret
}

// Get returns the value stored at key in this layer
func (m *Metadata) Get(key Name) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.entries[key]
	return v, ok
}

// Contains reports whether key is present in this layer
func (m *Metadata) Contains(key Name) bool {
	_, ok := m.Get(key)
	return ok
}

// Remove deletes key from this layer and returns the value it held. Removing a key
// that is not present is a no-op
func (m *Metadata) Remove(key Name) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.entries[key]
	if ok {
		delete(m.entries, key)
	}
	return v, ok
}

// InsertWithLimits stores value under key and returns the value previously held
// there, if any.
//
// Inserting a new key fails with a *LengthLimitError when the layer already holds
// limits.MaxEntries entries. Replacing an existing key is exempt from that check.
// Any insertion fails with an *EntrySizeError when the canonical encoding of the
// (key, value) pair exceeds limits.MaxEntryBytes. The length check runs first, and
// the container is unchanged on failure. Inserting into a nil *Metadata fails with
// ErrNilContainer.
func (m *Metadata) InsertWithLimits(key Name, value Value, limits Limits) (Value, error) {
	if m == nil {
		return nil, ErrNilContainer
	}
	value, err := normalizeValue(value)
	if err != nil {
		return nil, err
	}
	if err := m.checkLength(key, limits); err != nil {
		return nil, err
	}
	size, err := EntrySize(key, value)
	if err != nil {
		return nil, err
	}
	return m.insert(key, value, size, limits)
}

// insert finishes an insertion whose entry size is already known
func (m *Metadata) insert(key Name, value Value, size int, limits Limits) (Value, error) {
	if err := m.checkLength(key, limits); err != nil {
		return nil, err
	}
	if err := limits.checkEntrySize(size); err != nil {
		return nil, err
	}
	if containsContainer(value, m) {
		return nil, ErrCyclicValue
	}
	if m.entries == nil {
		m.entries = make(map[Name]Value)
	}
	prev := m.entries[key]
	m.entries[key] = value
	return prev, nil
}

func (m *Metadata) checkLength(key Name, limits Limits) error {
	if m.Len() >= int(limits.MaxEntries) && !m.Contains(key) {
		return &LengthLimitError{Max: limits.MaxEntries}
	}
	return nil
}

// NestedGet returns the value at path. If the path is empty, or any interior segment
// is missing or is not a nested container, it reports false. Malformed and missing
// paths are deliberately not distinguished
func (m *Metadata) NestedGet(path Path) (Value, bool) {
	layer, key, ok := m.resolve(path)
	if !ok {
		return nil, false
	}
	return layer.Get(key)
}

// NestedRemove removes the leaf at path and returns the value it held. It follows the
// same traversal rules as NestedGet and reports false for malformed or missing paths
func (m *Metadata) NestedRemove(path Path) (Value, bool) {
	layer, key, ok := m.resolve(path)
	if !ok {
		return nil, false
	}
	return layer.Remove(key)
}

// resolve walks the interior segments of path and returns the innermost container
// along with the leaf key
func (m *Metadata) resolve(path Path) (*Metadata, Name, bool) {
	if len(path) == 0 {
		return nil, "", false
	}
	interior, key := path.split()
	layer := m
	for _, k := range interior {
		v, ok := layer.Get(k)
		if !ok {
			return nil, "", false
		}
		next, ok := v.(*Metadata)
		if !ok {
			return nil, "", false
		}
		layer = next
	}
	return layer, key, true
}

// NestedInsertWithLimits stores value at path and returns the value previously held
// there, if any. Creating the interior containers of the path is the caller's
// responsibility; missing segments are never created.
//
// The entry count of the root container is checked against limits.MaxEntries before
// navigating, unless the path names an existing key of the root itself. This means a
// nested insertion is rejected whenever the root is full, independent of how full the
// destination layer is. The destination layer then applies its own length and size
// checks as in InsertWithLimits.
//
// Errors:
//   - ErrNilContainer if m is nil
//   - ErrEmptyPath if path has no segments
//   - *LengthLimitError if the root or destination layer is full
//   - *MissingIntermediateKeyError if an interior segment is absent
//   - *NonContainerSegmentError if an interior segment holds a leaf value
//   - *EntrySizeError if the encoded entry is too large
func (m *Metadata) NestedInsertWithLimits(path Path, value Value, limits Limits) (Value, error) {
	if m == nil {
		return nil, ErrNilContainer
	}
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	value, err := normalizeValue(value)
	if err != nil {
		return nil, err
	}
	if m.Len() >= int(limits.MaxEntries) &&
		(len(path) > 1 || !m.Contains(path[0])) {
		return nil, &LengthLimitError{Max: limits.MaxEntries}
	}
	interior, key := path.split()
	layer := m
	for _, k := range interior {
		v, ok := layer.Get(k)
		if !ok {
			return nil, &MissingIntermediateKeyError{Key: k}
		}
		next, ok := v.(*Metadata)
		if !ok {
			return nil, &NonContainerSegmentError{Key: k}
		}
		layer = next
	}
	size, err := EntrySize(key, value)
	if err != nil {
		return nil, err
	}
	if err := limits.checkEntrySize(size); err != nil {
		return nil, err
	}
	return layer.insert(key, value, size, limits)
}

// Keys returns the keys of this layer in ascending order
func (m *Metadata) Keys() []Name {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.entries))
}

// All iterates over the entries of this layer in ascending key order
func (m *Metadata) All() iter.Seq2[Name, Value] {
	return func(yield func(Name, Value) bool) {
		for _, key := range m.Keys() {
			if !yield(key, m.entries[key]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the container
func (m *Metadata) Clone() *Metadata {
	ret := New()
	if m == nil {
		return ret
	}
	for k, v := range m.entries {
		ret.entries[k] = cloneValue(v)
	}
	return ret
}

// Equal reports whether two containers hold structurally identical entries
func (m *Metadata) Equal(other *Metadata) bool {
	if m.Len() != other.Len() {
		return false
	}
	for k, v := range m.All() {
		otherValue, ok := other.Get(k)
		if !ok || !Equal(v, otherValue) {
			return false
		}
	}
	return true
}
