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
	"fmt"
	"math/big"

	"filippo.io/edwards25519"
	"github.com/blinklabs-io/plutigo/data"
	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

// Value is a single metadata payload. Exactly one variant, *Metadata, is itself a
// container of further values
type Value interface {
	isValue()
	TypeName() string
	// Size is the recursive size metric: 1 for a leaf, 1 plus the size of the contents
	// for a list or nested container
	Size() int
	MarshalCBOR() ([]byte, error)
	MarshalJSON() ([]byte, error)
	ToPlutusData() data.PlutusData
	Utxorpc() (*utxorpc.Metadatum, error)
}

// Bool is a boolean leaf value
type Bool bool

// Int is an arbitrary precision integer leaf value
type Int struct{ Value *big.Int }

// String is a UTF-8 text leaf value
type String string

// Bytes is a byte string leaf value
type Bytes []byte

// PublicKey is an Ed25519 public key leaf value
type PublicKey [PublicKeySize]byte

// List is an ordered sequence of values
type List []Value

const PublicKeySize = 32

func (Bool) isValue()      {}
func (Int) isValue()       {}
func (String) isValue()    {}
func (Bytes) isValue()     {}
func (PublicKey) isValue() {}
func (List) isValue()      {}
func (*Metadata) isValue() {}

func (Bool) TypeName() string      { return "bool" }
func (Int) TypeName() string       { return "int" }
func (String) TypeName() string    { return "text" }
func (Bytes) TypeName() string     { return "bytes" }
func (PublicKey) TypeName() string { return "public_key" }
func (List) TypeName() string      { return "list" }
func (*Metadata) TypeName() string { return "map" }

func (Bool) Size() int      { return 1 }
func (Int) Size() int       { return 1 }
func (String) Size() int    { return 1 }
func (Bytes) Size() int     { return 1 }
func (PublicKey) Size() int { return 1 }

func (l List) Size() int {
	ret := 1
	for _, item := range l {
		if item != nil {
			ret += item.Size()
		}
	}
	return ret
}

// Size returns 1 plus the recursive length of the container's contents
func (m *Metadata) Size() int {
	return 1 + m.NestedLen()
}

// NewInt returns an Int holding the provided value
func NewInt(v int64) Int {
	return Int{Value: big.NewInt(v)}
}

// NewUint returns an Int holding the provided unsigned value
func NewUint(v uint64) Int {
	return Int{Value: new(big.Int).SetUint64(v)}
}

// NewBigInt returns an Int holding a copy of the provided value
func NewBigInt(v *big.Int) Int {
	if v == nil {
		return Int{Value: new(big.Int)}
	}
	return Int{Value: new(big.Int).Set(v)}
}

// BigInt returns the integer value, treating a nil payload as zero
func (i Int) BigInt() *big.Int {
	if i.Value == nil {
		return new(big.Int)
	}
	return i.Value
}

func (i Int) String() string {
	return i.BigInt().String()
}

// NewPublicKey validates that b is the 32-byte encoding of a point on the Ed25519
// curve and returns it as a PublicKey
func NewPublicKey(b []byte) (PublicKey, error) {
	var ret PublicKey
	if len(b) != PublicKeySize {
		return ret, fmt.Errorf(
			"invalid public key length: expected %d bytes, got %d",
			PublicKeySize,
			len(b),
		)
	}
	if _, err := new(edwards25519.Point).SetBytes(b); err != nil {
		return ret, fmt.Errorf("invalid public key: %w", err)
	}
	copy(ret[:], b)
	return ret, nil
}

func (p PublicKey) Bytes() []byte {
	return p[:]
}

// IsContainer reports whether v is the nested container variant
func IsContainer(v Value) bool {
	_, ok := v.(*Metadata)
	return ok
}

// Equal reports whether two values are structurally identical
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av.BigInt().Cmp(bv.BigInt()) == 0
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bytes:
		bv, ok := b.(Bytes)
		return ok && bytes.Equal(av, bv)
	case PublicKey:
		bv, ok := b.(PublicKey)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for idx := range av {
			if !Equal(av[idx], bv[idx]) {
				return false
			}
		}
		return true
	case *Metadata:
		bv, ok := b.(*Metadata)
		return ok && av.Equal(bv)
	default:
		return false
	}
}

// cloneValue returns a deep copy of v
func cloneValue(v Value) Value {
	switch tmp := v.(type) {
	case Int:
		return NewBigInt(tmp.Value)
	case Bytes:
		if tmp == nil {
			return tmp
		}
		return Bytes(bytes.Clone(tmp))
	case List:
		if tmp == nil {
			return tmp
		}
		ret := make(List, len(tmp))
		for idx, item := range tmp {
			ret[idx] = cloneValue(item)
		}
		return ret
	case *Metadata:
		return tmp.Clone()
	default:
		// Bool, String and PublicKey are immutable values
		return v
	}
}

// normalizeValue rejects nil values and replaces typed nil containers with empty ones,
// including containers held in lists. Lists are copied rather than modified in place
func normalizeValue(v Value) (Value, error) {
	switch tmp := v.(type) {
	case nil:
		return nil, ErrNilValue
	case *Metadata:
		if tmp == nil {
			return New(), nil
		}
	case List:
		if tmp == nil {
			return tmp, nil
		}
		ret := make(List, len(tmp))
		for idx, item := range tmp {
			if item == nil {
				return nil, errNilListItem
			}
			tmpItem, err := normalizeValue(item)
			if err != nil {
				return nil, err
			}
			ret[idx] = tmpItem
		}
		return ret, nil
	}
	return v, nil
}

// containsContainer reports whether target is reachable from v
func containsContainer(v Value, target *Metadata) bool {
	switch tmp := v.(type) {
	case *Metadata:
		if tmp == target {
			return true
		}
		if tmp == nil {
			return false
		}
		for _, child := range tmp.entries {
			if containsContainer(child, target) {
				return true
			}
		}
	case List:
		for _, item := range tmp {
			if containsContainer(item, target) {
				return true
			}
		}
	}
	return false
}

var errNilListItem = fmt.Errorf("metadata list item: %w", ErrNilValue)
