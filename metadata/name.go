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
	"strings"
	"unicode"
)

// PathSeparator is the default separator used when rendering and parsing paths
const PathSeparator = "/"

// Name identifies an entry within a single metadata layer
type Name string

// ParseName validates and returns a Name. Names must be non-empty and may not contain
// whitespace or any of the reserved characters '@', '#' and '/'
func ParseName(s string) (Name, error) {
	if s == "" {
		return "", &InvalidNameError{Name: s, Reason: "empty name"}
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			return "", &InvalidNameError{Name: s, Reason: "contains whitespace"}
		}
		switch r {
		case '@', '#', '/':
			return "", &InvalidNameError{
				Name:   s,
				Reason: "contains reserved character '" + string(r) + "'",
			}
		}
	}
	return Name(s), nil
}

// MustParseName is like ParseName but panics on an invalid name. It is intended for
// constants and tests
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Name) String() string {
	return string(n)
}

// Path locates an entry through nested containers. The last element names the leaf
// key and every preceding element must name a nested container
type Path []Name

// ParsePath splits s on sep and validates each segment. An empty string yields an
// empty path
func ParsePath(s string, sep string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	if sep == "" {
		sep = PathSeparator
	}
	segments := strings.Split(s, sep)
	ret := make(Path, 0, len(segments))
	for _, segment := range segments {
		name, err := ParseName(segment)
		if err != nil {
			return nil, err
		}
		ret = append(ret, name)
	}
	return ret, nil
}

// NewPath builds a path from already-validated names
func NewPath(names ...Name) Path {
	return Path(names)
}

func (p Path) String() string {
	tmp := make([]string, len(p))
	for i, name := range p {
		tmp[i] = string(name)
	}
	return strings.Join(tmp, PathSeparator)
}

// split returns the interior segments and the leaf key. It must not be called on an
// empty path
func (p Path) split() (Path, Name) {
	return p[:len(p)-1], p[len(p)-1]
}
