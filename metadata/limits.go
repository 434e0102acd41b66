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
	"fmt"

	"github.com/blinklabs-io/ledgermeta/cbor"
)

// Limits bounds the number of entries in a metadata layer and the encoded size of each
// entry. Limits are policy supplied by the caller on every mutation and are never
// stored with the container
type Limits struct {
	MaxEntries    uint32 `json:"maxEntries"`
	MaxEntryBytes uint32 `json:"maxEntryBytes"`
}

// NewLimits returns Limits with the provided entry count and entry size bounds
func NewLimits(maxEntries uint32, maxEntryBytes uint32) Limits {
	return Limits{
		MaxEntries:    maxEntries,
		MaxEntryBytes: maxEntryBytes,
	}
}

func (l Limits) String() string {
	return fmt.Sprintf(
		"max_entries=%d max_entry_bytes=%d",
		l.MaxEntries,
		l.MaxEntryBytes,
	)
}

func (l Limits) checkEntrySize(size int) error {
	if size > int(l.MaxEntryBytes) {
		return &EntrySizeError{Max: l.MaxEntryBytes, Actual: size}
	}
	return nil
}

// entry is the canonical (key, value) pair used to measure an entry against
// MaxEntryBytes
type entry struct {
	cbor.StructAsArray
	Key   Name
	Value Value
}

// EncodeEntry returns the canonical encoding of a (key, value) pair: a two element
// CBOR array holding the key as text and the value
func EncodeEntry(key Name, value Value) ([]byte, error) {
	if value == nil {
		return nil, ErrNilValue
	}
	return cbor.Encode(&entry{Key: key, Value: value})
}

// EntrySize returns the length in bytes of the canonical encoding of a (key, value)
// pair. The value is encoded in place and is not copied
func EntrySize(key Name, value Value) (int, error) {
	if value == nil {
		return 0, ErrNilValue
	}
	size, err := cbor.EncodedSize(&entry{Key: key, Value: value})
	if err != nil {
		return 0, fmt.Errorf("encode metadata entry %s: %w", key, err)
	}
	return size, nil
}
