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

package store

import (
	"log/slog"

	"github.com/blinklabs-io/ledgermeta/metadata"
)

// StoreOptionFunc is a type that represents functions that modify the Store config
type StoreOptionFunc func(*Store)

// WithLogger specifies the logger to use. The default is slog.Default()
func WithLogger(logger *slog.Logger) StoreOptionFunc {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithLimits specifies the limits applied to metadata mutations for an entity kind.
// Only kinds with configured limits can be stored
func WithLimits(kind string, limits metadata.Limits) StoreOptionFunc {
	return func(s *Store) {
		s.limits[kind] = limits
	}
}

// WithAllLimits is like WithLimits for several kinds at once
func WithAllLimits(limits map[string]metadata.Limits) StoreOptionFunc {
	return func(s *Store) {
		for kind, tmpLimits := range limits {
			s.limits[kind] = tmpLimits
		}
	}
}
