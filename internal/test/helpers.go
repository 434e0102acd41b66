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

package test

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/ledgermeta/metadata"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace and inner spacing in hex string
	hexData = strings.ReplaceAll(strings.TrimSpace(hexData), " ", "")
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// MetadataFromJSON builds a container from a JSON object literal, bypassing limits. It
// panics on invalid input, which makes it usable inline.
func MetadataFromJSON(jsonData string) *metadata.Metadata {
	ret := metadata.New()
	if err := ret.UnmarshalJSON([]byte(jsonData)); err != nil {
		panic(fmt.Sprintf("error decoding metadata JSON: %s", err))
	}
	return ret
}

// Path builds a metadata path from its string segments. It panics on invalid names.
func Path(segments ...string) metadata.Path {
	ret := make(metadata.Path, 0, len(segments))
	for _, segment := range segments {
		ret = append(ret, metadata.MustParseName(segment))
	}
	return ret
}
