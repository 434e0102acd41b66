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
	"math/big"

	"github.com/blinklabs-io/plutigo/data"
)

func (b Bool) ToPlutusData() data.PlutusData {
	// False and True are the first and second constructors of the Plutus Bool type
	if b {
		return data.NewConstr(1)
	}
	return data.NewConstr(0)
}

func (i Int) ToPlutusData() data.PlutusData {
	return data.NewInteger(new(big.Int).Set(i.BigInt()))
}

func (s String) ToPlutusData() data.PlutusData {
	return data.NewByteString([]byte(s))
}

func (b Bytes) ToPlutusData() data.PlutusData {
	return data.NewByteString([]byte(b))
}

func (p PublicKey) ToPlutusData() data.PlutusData {
	return data.NewByteString(p.Bytes())
}

func (l List) ToPlutusData() data.PlutusData {
	tmpItems := make([]data.PlutusData, 0, len(l))
	for _, item := range l {
		if item == nil {
			continue
		}
		tmpItems = append(tmpItems, item.ToPlutusData())
	}
	return data.NewList(tmpItems...)
}

// ToPlutusData converts the container to a Plutus map keyed by the UTF-8 bytes of each
// name, in ascending key order
func (m *Metadata) ToPlutusData() data.PlutusData {
	pairs := make([][2]data.PlutusData, 0, m.Len())
	for k, v := range m.All() {
		pairs = append(
			pairs,
			[2]data.PlutusData{
				data.NewByteString([]byte(k)),
				v.ToPlutusData(),
			},
		)
	}
	return data.NewMap(pairs)
}
