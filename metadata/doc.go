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

// Package metadata implements a bounded, path-addressable key-value container for
// ledger entities such as accounts, transactions and assets.
//
// A Metadata maps a Name to a Value. Values are leaves (Bool, Int, String, Bytes,
// PublicKey), ordered lists, or nested *Metadata containers, which makes the container
// a tree that can be addressed by a Path of names.
//
// Every mutation takes a Limits argument. Limits bound the number of entries in a
// single layer and the canonical encoded size of each (key, value) entry. Limits are
// policy chosen by the caller, typically per entity kind, and are never stored with
// the container.
//
// The canonical encoding is deterministic CBOR: a container is a map of text keys in
// core deterministic order, and an entry is a two element array of its key and value.
// The same encoding feeds entry size checks, hashing and fingerprints. For schema
// purposes a container is a transparent map from names to values.
package metadata
