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
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
)

func (b Bool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

func (i Int) MarshalJSON() ([]byte, error) {
	// big.Int renders as a bare JSON number of any length
	return []byte(i.BigInt().String()), nil
}

func (s String) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + hex.EncodeToString(b))
}

func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + hex.EncodeToString(p[:]))
}

func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Value(l))
}

// MarshalJSON renders the container as a JSON object. Byte strings and public keys are
// rendered as 0x-prefixed hex and cannot be told apart from text on the way back in
func (m *Metadata) MarshalJSON() ([]byte, error) {
	if m == nil || m.entries == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.entries)
}

func (m *Metadata) UnmarshalJSON(jsonData []byte) error {
	tmpValue, err := ValueFromJSON(jsonData)
	if err != nil {
		return err
	}
	tmpMeta, ok := tmpValue.(*Metadata)
	if !ok {
		return fmt.Errorf("metadata must be a JSON object, found %s", tmpValue.TypeName())
	}
	m.entries = tmpMeta.entries
	return nil
}

// ValueFromJSON converts plain JSON into a Value. Objects become nested containers,
// arrays become lists, numbers must be integers, and strings are always text
func ValueFromJSON(jsonData []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	var tmpData any
	if err := dec.Decode(&tmpData); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON value")
	}
	return valueFromGeneric(tmpData)
}

func valueFromGeneric(v any) (Value, error) {
	switch tmp := v.(type) {
	case nil:
		return nil, ErrNilValue
	case bool:
		return Bool(tmp), nil
	case string:
		return String(tmp), nil
	case json.Number:
		n, ok := new(big.Int).SetString(tmp.String(), 10)
		if !ok {
			return nil, fmt.Errorf("metadata numbers must be integers, found %s", tmp.String())
		}
		return Int{Value: n}, nil
	case []any:
		ret := make(List, 0, len(tmp))
		for _, item := range tmp {
			val, err := valueFromGeneric(item)
			if err != nil {
				return nil, err
			}
			ret = append(ret, val)
		}
		return ret, nil
	case map[string]any:
		ret := New()
		for k, item := range tmp {
			name, err := ParseName(k)
			if err != nil {
				return nil, err
			}
			val, err := valueFromGeneric(item)
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", name, err)
			}
			ret.entries[name] = val
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("unsupported JSON type %T", v)
	}
}
