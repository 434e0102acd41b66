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

package cbor_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/blinklabs-io/ledgermeta/cbor"
)

type encodeTestDefinition struct {
	CborHex string
	Object  any
}

type testArrayStruct struct {
	cbor.StructAsArray
	Key   string
	Value string
}

var encodeTests = []encodeTestDefinition{
	// Simple list of numbers
	{
		CborHex: "83010203",
		Object:  []any{1, 2, 3},
	},
	// Map keys are sorted length-first, then bytewise
	{
		CborHex: "a3616101616202626161 03",
		Object:  map[string]int{"aa": 3, "b": 2, "a": 1},
	},
	// Struct encoded as array
	{
		CborHex: "8261316130",
		Object:  testArrayStruct{Key: "1", Value: "0"},
	},
	// Small bignum is written as a plain integer
	{
		CborHex: "1864",
		Object:  big.NewInt(100),
	},
	// Negative small bignum
	{
		CborHex: "3863",
		Object:  big.NewInt(-100),
	},
}

func TestEncode(t *testing.T) {
	for _, test := range encodeTests {
		cborData, err := cbor.Encode(test.Object)
		if err != nil {
			t.Fatalf("failed to encode object to CBOR: %s", err)
		}
		cborHex := hex.EncodeToString(cborData)
		wantHex := stripSpaces(test.CborHex)
		if cborHex != wantHex {
			t.Fatalf(
				"object did not encode to expected CBOR\n  got: %s\n  wanted: %s",
				cborHex,
				wantHex,
			)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	obj := map[string]any{
		"zeta":  []any{"x", uint64(1)},
		"alpha": map[string]any{"b": true, "a": false},
		"mid":   []byte{0x01, 0x02},
	}
	first, err := cbor.Encode(obj)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for range 20 {
		again, err := cbor.Encode(obj)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if hex.EncodeToString(again) != hex.EncodeToString(first) {
			t.Fatalf("encoding is not deterministic")
		}
	}
}

func TestEncodedSize(t *testing.T) {
	size, err := cbor.EncodedSize([]any{"1", "23456"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if size != 9 {
		t.Fatalf("did not get expected size: got %d, wanted %d", size, 9)
	}
}

func stripSpaces(s string) string {
	ret := make([]byte, 0, len(s))
	for i := range len(s) {
		if s[i] != ' ' {
			ret = append(ret, s[i])
		}
	}
	return string(ret)
}
