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

// Package cbor provides the canonical CBOR encoding used to store and measure
// ledger metadata.
//
// This package wraps github.com/fxamacker/cbor/v2. Encode always uses
// core-deterministic map key ordering and shortest-form integers, so the same
// value always produces the same bytes. That property is what makes encoded
// length usable as a size limit and encoded bytes usable as hash input.
//
// # Key Types
//
//   - RawMessage: Deferred decoding (like json.RawMessage)
//   - Tag, RawTag: CBOR semantic tags
//   - StructAsArray: Embed to encode struct fields as a CBOR array instead of a map
//
// # Helpers
//
//   - MajorType, MapLength: inspect a data item header without decoding it
//   - EncodedSize: length of the canonical encoding
//   - DecodeFull: decode and reject trailing bytes
//   - DumpCborStructure: indented rendering of decoded generic data for debugging
package cbor
