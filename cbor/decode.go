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

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use.
// Uses sync.Once for thread-safe lazy initialization.
// Returns the cached error if initialization failed.
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			// This defaults to 32, which is too shallow for deeply nested metadata
			MaxNestedLevels: 256,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

// Decode decodes the first CBOR data item into dest and returns the number of bytes read
func Decode(dataBytes []byte, dest any) (int, error) {
	data := bytes.NewReader(dataBytes)
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	if decMode == nil {
		return 0, errors.New("CBOR decoder mode not initialized")
	}
	dec := decMode.NewDecoder(data)
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

// DecodeFull is like Decode, but fails if any bytes remain after the first data item
func DecodeFull(dataBytes []byte, dest any) error {
	bytesRead, err := Decode(dataBytes, dest)
	if err != nil {
		return err
	}
	if bytesRead != len(dataBytes) {
		return fmt.Errorf(
			"found %d trailing bytes after CBOR data item",
			len(dataBytes)-bytesRead,
		)
	}
	return nil
}

// MapLength returns the number of entries announced by the header of a definite
// length CBOR map, without decoding the entries
func MapLength(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, errors.New("empty CBOR data")
	}
	if data[0]&CborTypeMask != CborTypeMap {
		return 0, fmt.Errorf("expected CBOR map, found major type 0x%x", data[0]&CborTypeMask)
	}
	additional := data[0] &^ CborTypeMask
	if additional <= CborMaxUintSimple {
		return int(additional), nil
	}
	var argSize int
	switch additional {
	case 24:
		argSize = 1
	case 25:
		argSize = 2
	case 26:
		argSize = 4
	case 27:
		argSize = 8
	default:
		return 0, fmt.Errorf("unsupported CBOR map header 0x%x", data[0])
	}
	if len(data) < 1+argSize {
		return 0, errors.New("truncated CBOR map header")
	}
	// Left-pad the big-endian argument to 8 bytes
	var tmpArg [8]byte
	copy(tmpArg[8-argSize:], data[1:1+argSize])
	count := binary.BigEndian.Uint64(tmpArg[:])
	if count > math.MaxInt32 {
		return 0, fmt.Errorf("CBOR map length %d out of range", count)
	}
	return int(count), nil
}
