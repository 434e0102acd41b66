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

	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

func (b Bool) Utxorpc() (*utxorpc.Metadatum, error) {
	// UTxO RPC has no boolean metadatum, so booleans travel as 0 and 1
	var tmpInt int64
	if b {
		tmpInt = 1
	}
	return &utxorpc.Metadatum{
		Metadatum: &utxorpc.Metadatum_Int{Int: tmpInt},
	}, nil
}

func (i Int) Utxorpc() (*utxorpc.Metadatum, error) {
	n := i.BigInt()
	if !n.IsInt64() {
		return nil, fmt.Errorf("integer %s does not fit in a UTxO RPC metadatum", n.String())
	}
	return &utxorpc.Metadatum{
		Metadatum: &utxorpc.Metadatum_Int{Int: n.Int64()},
	}, nil
}

func (s String) Utxorpc() (*utxorpc.Metadatum, error) {
	return &utxorpc.Metadatum{
		Metadatum: &utxorpc.Metadatum_Text{Text: string(s)},
	}, nil
}

func (b Bytes) Utxorpc() (*utxorpc.Metadatum, error) {
	return &utxorpc.Metadatum{
		Metadatum: &utxorpc.Metadatum_Bytes{Bytes: []byte(b)},
	}, nil
}

func (p PublicKey) Utxorpc() (*utxorpc.Metadatum, error) {
	return &utxorpc.Metadatum{
		Metadatum: &utxorpc.Metadatum_Bytes{Bytes: p.Bytes()},
	}, nil
}

func (l List) Utxorpc() (*utxorpc.Metadatum, error) {
	items := make([]*utxorpc.Metadatum, 0, len(l))
	for _, item := range l {
		if item == nil {
			return nil, errNilListItem
		}
		tmpItem, err := item.Utxorpc()
		if err != nil {
			return nil, err
		}
		items = append(items, tmpItem)
	}
	return &utxorpc.Metadatum{
		Metadatum: &utxorpc.Metadatum_Array{
			Array: &utxorpc.MetadatumArray{Items: items},
		},
	}, nil
}

// Utxorpc converts the container to a UTxO RPC metadatum map with text keys, in
// ascending key order
func (m *Metadata) Utxorpc() (*utxorpc.Metadatum, error) {
	pairs := make([]*utxorpc.MetadatumPair, 0, m.Len())
	for k, v := range m.All() {
		tmpValue, err := v.Utxorpc()
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", k, err)
		}
		pairs = append(
			pairs,
			&utxorpc.MetadatumPair{
				Key: &utxorpc.Metadatum{
					Metadatum: &utxorpc.Metadatum_Text{Text: string(k)},
				},
				Value: tmpValue,
			},
		)
	}
	return &utxorpc.Metadatum{
		Metadatum: &utxorpc.Metadatum_Map{
			Map: &utxorpc.MetadatumMap{Pairs: pairs},
		},
	}, nil
}
