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
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const (
	Blake2b256Size = 32
	Blake2b160Size = 20

	// FingerprintPrefix is the bech32 human-readable part of metadata fingerprints
	FingerprintPrefix = "meta"
)

type Blake2b256 [Blake2b256Size]byte

func (b Blake2b256) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b256) Bytes() []byte {
	return b[:]
}

func (b Blake2b256) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// Blake2b256Hash generates a Blake2b-256 hash from the provided data
func Blake2b256Hash(data []byte) Blake2b256 {
	return Blake2b256(blake2bSum(Blake2b256Size, data))
}

type Blake2b160 [Blake2b160Size]byte

func (b Blake2b160) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b160) Bytes() []byte {
	return b[:]
}

func (b Blake2b160) Bech32(prefix string) string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(b[:], 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(prefix, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

// Blake2b160Hash generates a Blake2b-160 hash from the provided data
func Blake2b160Hash(data []byte) Blake2b160 {
	return Blake2b160(blake2bSum(Blake2b160Size, data))
}

// blake2bSum returns the unkeyed Blake2b digest of data with the given output size
func blake2bSum(size int, data []byte) []byte {
	hasher, err := blake2b.New(size, nil)
	if err != nil {
		// Only reachable with a size outside 1..64
		panic(fmt.Sprintf("invalid blake2b digest size %d: %s", size, err))
	}
	hasher.Write(data)
	return hasher.Sum(nil)
}

// Hash returns the Blake2b-256 hash of the canonical CBOR encoding of the container
func (m *Metadata) Hash() (Blake2b256, error) {
	cborData, err := Encode(m)
	if err != nil {
		return Blake2b256{}, err
	}
	return Blake2b256Hash(cborData), nil
}

// Fingerprint returns a short human-readable identifier for the container contents:
// the bech32 encoding of the Blake2b-160 hash of its canonical CBOR encoding
func (m *Metadata) Fingerprint() (string, error) {
	cborData, err := Encode(m)
	if err != nil {
		return "", err
	}
	return Blake2b160Hash(cborData).Bech32(FingerprintPrefix), nil
}

// DecodeFingerprint returns the digest held in a metadata fingerprint
func DecodeFingerprint(fingerprint string) (Blake2b160, error) {
	var ret Blake2b160
	hrp, data, err := bech32.Decode(fingerprint)
	if err != nil {
		return ret, err
	}
	if hrp != FingerprintPrefix {
		return ret, fmt.Errorf("unexpected fingerprint prefix: %s", hrp)
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return ret, err
	}
	if len(decoded) != Blake2b160Size {
		return ret, fmt.Errorf("invalid fingerprint length: %d", len(decoded))
	}
	copy(ret[:], decoded)
	return ret, nil
}
