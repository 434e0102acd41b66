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
	"errors"
	"fmt"
	"math/big"

	"github.com/blinklabs-io/ledgermeta/cbor"
)

func (b Bool) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(bool(b))
}

func (i Int) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(i.BigInt())
}

func (s String) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(string(s))
}

func (b Bytes) MarshalCBOR() ([]byte, error) {
	// Ensure that a nil slice encodes as an empty bytestring rather than null
	if b == nil {
		return cbor.Encode([]byte{})
	}
	return cbor.Encode([]byte(b))
}

func (p PublicKey) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(
		cbor.Tag{
			Number:  cbor.CborTagPublicKey,
			Content: p[:],
		},
	)
}

func (l List) MarshalCBOR() ([]byte, error) {
	tmpItems := make([]Value, len(l))
	for idx, item := range l {
		if item == nil {
			return nil, errNilListItem
		}
		// The encoder writes a nil pointer as null, which is not a metadata value
		if m, ok := item.(*Metadata); ok && m == nil {
			item = New()
		}
		tmpItems[idx] = item
	}
	return cbor.Encode(tmpItems)
}

// MarshalCBOR encodes the container transparently as a CBOR map of text keys. Keys are
// written in canonical order
func (m *Metadata) MarshalCBOR() ([]byte, error) {
	if m == nil || m.entries == nil {
		return cbor.Encode(map[Name]Value{})
	}
	return cbor.Encode(m.entries)
}

func (m *Metadata) UnmarshalCBOR(cborData []byte) error {
	majorType, ok := cbor.MajorType(cborData)
	if !ok {
		return errors.New("empty cbor")
	}
	if majorType != cbor.CborTypeMap {
		return fmt.Errorf(
			"metadata must be a CBOR map, found major type 0x%x",
			majorType,
		)
	}
	var tmpData map[string]cbor.RawMessage
	if _, err := cbor.Decode(cborData, &tmpData); err != nil {
		return fmt.Errorf("decode metadata map: %w", err)
	}
	entries := make(map[Name]Value, len(tmpData))
	for k, raw := range tmpData {
		name, err := ParseName(k)
		if err != nil {
			return err
		}
		val, err := DecodeValue(raw)
		if err != nil {
			return fmt.Errorf("decode metadata value for key %s: %w", name, err)
		}
		entries[name] = val
	}
	m.entries = entries
	return nil
}

// DecodeValue decodes a single CBOR data item into the matching Value variant. Maps
// become nested containers
func DecodeValue(cborData []byte) (Value, error) {
	majorType, ok := cbor.MajorType(cborData)
	if !ok {
		return nil, errors.New("empty cbor")
	}
	switch majorType {
	case cbor.CborTypeUnsigned, cbor.CborTypeNegative:
		n := new(big.Int)
		if _, err := cbor.Decode(cborData, n); err != nil {
			return nil, err
		}
		return Int{Value: n}, nil

	case cbor.CborTypeTextString:
		var s string
		if _, err := cbor.Decode(cborData, &s); err != nil {
			return nil, err
		}
		return String(s), nil

	case cbor.CborTypeByteString:
		var bs []byte
		if _, err := cbor.Decode(cborData, &bs); err != nil {
			return nil, err
		}
		return Bytes(bs), nil

	case cbor.CborTypeArray:
		var rawItems []cbor.RawMessage
		if _, err := cbor.Decode(cborData, &rawItems); err != nil {
			return nil, err
		}
		items := make(List, 0, len(rawItems))
		for _, r := range rawItems {
			item, err := DecodeValue(r)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil

	case cbor.CborTypeMap:
		m := New()
		if err := m.UnmarshalCBOR(cborData); err != nil {
			return nil, err
		}
		return m, nil

	case cbor.CborTypeTag:
		return decodeTaggedValue(cborData)

	case cbor.CborTypeSimple:
		switch cborData[0] {
		case cbor.CborSimpleFalse:
			return Bool(false), nil
		case cbor.CborSimpleTrue:
			return Bool(true), nil
		}
		return nil, fmt.Errorf(
			"unsupported CBOR simple value or float 0x%x in metadata",
			cborData[0],
		)

	default:
		return nil, errors.New("unknown CBOR major type")
	}
}

func decodeTaggedValue(cborData []byte) (Value, error) {
	var tmpTag cbor.RawTag
	if _, err := cbor.Decode(cborData, &tmpTag); err != nil {
		return nil, err
	}
	switch {
	case cbor.IsBignumTag(tmpTag.Number):
		n := new(big.Int)
		if _, err := cbor.Decode(cborData, n); err != nil {
			return nil, err
		}
		return Int{Value: n}, nil
	case tmpTag.Number == cbor.CborTagPublicKey:
		var keyBytes []byte
		if _, err := cbor.Decode(tmpTag.Content, &keyBytes); err != nil {
			return nil, fmt.Errorf("decode public key: %w", err)
		}
		return NewPublicKey(keyBytes)
	default:
		return nil, fmt.Errorf(
			"unsupported CBOR tag %d in metadata",
			tmpTag.Number,
		)
	}
}

// Encode returns the canonical CBOR encoding of the container
func Encode(m *Metadata) ([]byte, error) {
	if m == nil {
		m = New()
	}
	return cbor.Encode(m)
}

// Decode decodes a container from its CBOR encoding. Trailing bytes are rejected
func Decode(cborData []byte) (*Metadata, error) {
	ret := New()
	if err := cbor.DecodeFull(cborData, ret); err != nil {
		return nil, err
	}
	return ret, nil
}
