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
	"reflect"
	"strings"
	"testing"

	"github.com/blinklabs-io/ledgermeta/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTestDefinition struct {
	CborHex   string
	Object    any
	BytesRead int
}

var decodeTests = []decodeTestDefinition{
	// Simple list of numbers
	{
		CborHex: "83010203",
		Object:  []any{uint64(1), uint64(2), uint64(3)},
	},
	// Multiple CBOR objects
	{
		CborHex:   "81018102",
		Object:    []any{uint64(1)},
		BytesRead: 2,
	},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeTests {
		cborData, err := hex.DecodeString(test.CborHex)
		if err != nil {
			t.Fatalf("failed to decode CBOR hex: %s", err)
		}
		var dest any
		bytesRead, err := cbor.Decode(cborData, &dest)
		if err != nil {
			t.Fatalf("failed to decode CBOR: %s", err)
		}
		if test.BytesRead > 0 {
			if bytesRead != test.BytesRead {
				t.Fatalf("expected to read %d bytes, read %d instead", test.BytesRead, bytesRead)
			}
		}
		if !reflect.DeepEqual(dest, test.Object) {
			t.Fatalf("CBOR did not decode to expected object\n  got: %#v\n  wanted: %#v", dest, test.Object)
		}
	}
}

func TestDecodeFullRejectsTrailingData(t *testing.T) {
	cborData, err := hex.DecodeString("81018102")
	require.NoError(t, err)
	var dest any
	err = cbor.DecodeFull(cborData, &dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 trailing bytes")

	require.NoError(t, cbor.DecodeFull(cborData[:2], &dest))
	assert.Equal(t, []any{uint64(1)}, dest)
}

func TestMapLength(t *testing.T) {
	testDefs := []struct {
		name    string
		cborHex string
		count   int
		invalid bool
	}{
		{name: "empty map", cborHex: "a0", count: 0},
		{name: "small map", cborHex: "a2", count: 2},
		{name: "one byte length", cborHex: "b818", count: 24},
		{name: "two byte length", cborHex: "b90100", count: 256},
		{name: "four byte length", cborHex: "ba00010000", count: 65536},
		{name: "indefinite", cborHex: "bf", invalid: true},
		{name: "not a map", cborHex: "80", invalid: true},
		{name: "truncated", cborHex: "b9", invalid: true},
		{name: "too large", cborHex: "bb0000000100000000", invalid: true},
		{name: "empty", cborHex: "", invalid: true},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data, err := hex.DecodeString(testDef.cborHex)
			require.NoError(t, err)
			count, err := cbor.MapLength(data)
			if testDef.invalid {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testDef.count, count)
		})
	}
}

func TestMajorType(t *testing.T) {
	majorType, ok := cbor.MajorType([]byte{0x65, 'h', 'e', 'l', 'l', 'o'})
	require.True(t, ok)
	assert.Equal(t, cbor.CborTypeTextString, majorType)

	majorType, ok = cbor.MajorType([]byte{0xc2, 0x41, 0x01})
	require.True(t, ok)
	assert.Equal(t, cbor.CborTypeTag, majorType)

	_, ok = cbor.MajorType(nil)
	assert.False(t, ok)
}

func TestDumpCborStructure(t *testing.T) {
	cborData, err := hex.DecodeString("a261620261618201f5")
	require.NoError(t, err)
	var dest any
	require.NoError(t, cbor.DecodeFull(cborData, &dest))
	dump := cbor.DumpCborStructure(dest, "")
	// Keys are rendered in sorted order regardless of map iteration order
	assert.Less(t, strings.Index(dump, `"a"`), strings.Index(dump, `"b"`))
	assert.Contains(t, dump, "0x2 (2)")
	assert.Contains(t, dump, "true")
}
