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

package cbor

const (
	// Useful tag numbers
	CborTagBignumPositive = 2
	CborTagBignumNegative = 3

	// Ed25519 public keys stored in metadata. This is a first-come-first-served
	// tag number with no IANA registration
	CborTagPublicKey = 3000
)

// IsBignumTag reports whether the tag number marks an arbitrary-precision integer
func IsBignumTag(tagNum uint64) bool {
	return tagNum == CborTagBignumPositive || tagNum == CborTagBignumNegative
}
