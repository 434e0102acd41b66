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

// Package logging builds the slog loggers used by the ledgermeta command and store
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel converts a level name such as "debug" or "warn" into a slog.Level
func ParseLevel(level string) (slog.Level, error) {
	var ret slog.Level
	if level == "" {
		return slog.LevelInfo, nil
	}
	if err := ret.UnmarshalText([]byte(level)); err != nil {
		return ret, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return ret, nil
}

// New returns a logger writing to w at the given level, using a text or JSON handler
func New(level string, format string, w io.Writer) (*slog.Logger, error) {
	tmpLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{
		Level: tmpLevel,
	}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", FormatText:
		handler = slog.NewTextHandler(w, opts)
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	return slog.New(handler), nil
}
