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
)

var (
	// ErrEmptyPath is returned when a mutating path operation is given no segments
	ErrEmptyPath = errors.New("empty metadata path")

	// ErrNilContainer is returned when inserting into a nil *Metadata
	ErrNilContainer = errors.New("metadata container is nil")

	// ErrNilValue is returned when inserting a nil Value
	ErrNilValue = errors.New("metadata value is nil")

	// ErrCyclicValue is returned when inserting a container that already holds the
	// target container
	ErrCyclicValue = errors.New("metadata value would contain itself")

	// Sentinel errors so callers can use errors.Is against the typed errors below
	ErrLengthLimit            = errors.New("metadata length limit reached")
	ErrEntrySize              = errors.New("metadata entry exceeds maximum size")
	ErrMissingIntermediateKey = errors.New("metadata path has missing segment")
	ErrNonContainerSegment    = errors.New("metadata path has non-container segment")
	ErrInvalidName            = errors.New("invalid metadata name")
)

// LengthLimitError indicates that inserting a new key would exceed the entry count limit
type LengthLimitError struct {
	Max uint32
}

func (e *LengthLimitError) Error() string {
	return fmt.Sprintf("metadata length limit is reached: %d", e.Max)
}

func (*LengthLimitError) Is(target error) bool {
	return target == ErrLengthLimit
}

// EntrySizeError indicates that the canonical encoding of an entry is too large
type EntrySizeError struct {
	Max    uint32
	Actual int
}

func (e *EntrySizeError) Error() string {
	return fmt.Sprintf(
		"metadata entry exceeds maximum size: expected less than or equal to %d bytes, actual: %d bytes",
		e.Max,
		e.Actual,
	)
}

func (*EntrySizeError) Is(target error) bool {
	return target == ErrEntrySize
}

// MissingIntermediateKeyError indicates that a non-terminal path segment has no entry
type MissingIntermediateKeyError struct {
	Key Name
}

func (e *MissingIntermediateKeyError) Error() string {
	return fmt.Sprintf(
		"no metadata for key %s in path, path is malformed",
		e.Key,
	)
}

func (*MissingIntermediateKeyError) Is(target error) bool {
	return target == ErrMissingIntermediateKey
}

// NonContainerSegmentError indicates that a non-terminal path segment holds a leaf value
type NonContainerSegmentError struct {
	Key Name
}

func (e *NonContainerSegmentError) Error() string {
	return fmt.Sprintf("path contains non-metadata segment at key %s", e.Key)
}

func (*NonContainerSegmentError) Is(target error) bool {
	return target == ErrNonContainerSegment
}

// InvalidNameError indicates a name that fails validation
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid metadata name %q: %s", e.Name, e.Reason)
}

func (*InvalidNameError) Is(target error) bool {
	return target == ErrInvalidName
}
