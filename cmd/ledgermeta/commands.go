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

package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blinklabs-io/ledgermeta/cbor"
	"github.com/blinklabs-io/ledgermeta/metadata"
	"github.com/spf13/cobra"
)

func (a *app) printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Fprintln(a.out, string(out))
	return nil
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KIND ID PATH",
		Short: "Print the value at a path as JSON",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parsePath(args[2])
			if err != nil {
				return err
			}
			m, _, err := a.store.Load(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			val, ok := m.NestedGet(path)
			if !ok {
				return errNotFound
			}
			return a.printJSON(val)
		},
	}
}

type setOptions struct {
	bytesHex     string
	publicKeyHex string
	container    bool
	flat         bool
}

func (o *setOptions) value(args []string) (metadata.Value, error) {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if o.bytesHex != "" {
		sources++
	}
	if o.publicKeyHex != "" {
		sources++
	}
	if o.container {
		sources++
	}
	if sources != 1 {
		return nil, errors.New("exactly one of VALUE, --bytes, --public-key or --container is required")
	}
	switch {
	case o.bytesHex != "":
		tmpBytes, err := hex.DecodeString(strings.TrimPrefix(o.bytesHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("decode --bytes: %w", err)
		}
		return metadata.Bytes(tmpBytes), nil
	case o.publicKeyHex != "":
		tmpBytes, err := hex.DecodeString(strings.TrimPrefix(o.publicKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("decode --public-key: %w", err)
		}
		return metadata.NewPublicKey(tmpBytes)
	case o.container:
		return metadata.New(), nil
	default:
		return metadata.ValueFromJSON([]byte(args[0]))
	}
}

func (a *app) setCmd() *cobra.Command {
	opts := &setOptions{}
	cmd := &cobra.Command{
		Use:   "set KIND ID PATH [VALUE]",
		Short: "Store a value at a path, subject to the limits of the entity kind",
		Long: `Store a value at a path. VALUE is JSON: objects become nested containers,
arrays become lists and numbers must be integers. Interior containers of the
path must already exist.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id := args[0], args[1]
			path, err := parsePath(args[2])
			if err != nil {
				return err
			}
			val, err := opts.value(args[3:])
			if err != nil {
				return err
			}
			var prev metadata.Value
			err = a.store.Update(
				cmd.Context(),
				kind,
				id,
				func(m *metadata.Metadata, limits metadata.Limits) error {
					var err error
					if opts.flat {
						if len(path) != 1 {
							return fmt.Errorf("--flat requires a single path segment, got %q", path.String())
						}
						prev, err = m.InsertWithLimits(path[0], val, limits)
						return err
					}
					prev, err = m.NestedInsertWithLimits(path, val, limits)
					return err
				},
			)
			if err != nil {
				return fmt.Errorf("set %s: %w", path, err)
			}
			a.logger.Debug("stored metadata value", "kind", kind, "entity", id, "path", path.String())
			if prev != nil {
				return a.printJSON(prev)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.bytesHex, "bytes", "", "store a byte string given as hex")
	cmd.Flags().StringVar(&opts.publicKeyHex, "public-key", "", "store an Ed25519 public key given as hex")
	cmd.Flags().BoolVar(&opts.container, "container", false, "store an empty nested container")
	cmd.Flags().BoolVar(&opts.flat, "flat", false, "insert into the top level only")
	return cmd
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove KIND ID PATH",
		Short: "Remove the value at a path and print it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parsePath(args[2])
			if err != nil {
				return err
			}
			prev, found, err := a.store.Remove(cmd.Context(), args[0], args[1], path)
			if err != nil {
				return err
			}
			if !found {
				return errNotFound
			}
			return a.printJSON(prev)
		},
	}
}

func (a *app) lenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "len KIND ID",
		Short: "Print the top level and nested length of an entity's metadata",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := a.store.Load(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "len: %d\nnested_len: %d\n", m.Len(), m.NestedLen())
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	var showCbor, showStructure bool
	cmd := &cobra.Command{
		Use:   "show KIND ID",
		Short: "Print all metadata of an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !showCbor && !showStructure {
				m, _, err := a.store.Load(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return a.printJSON(m)
			}
			cborData, _, err := a.store.LoadRaw(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if showCbor {
				fmt.Fprintln(a.out, hex.EncodeToString(cborData))
			}
			if showStructure {
				var tmpData any
				if err := cbor.DecodeFull(cborData, &tmpData); err != nil {
					return fmt.Errorf("decode stored metadata: %w", err)
				}
				fmt.Fprint(a.out, cbor.DumpCborStructure(tmpData, ""))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showCbor, "cbor", false, "print the canonical CBOR encoding as hex")
	cmd.Flags().BoolVar(&showStructure, "structure", false, "print the decoded CBOR structure")
	return cmd
}

func (a *app) hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash KIND ID",
		Short: "Print the hash and fingerprint of an entity's metadata",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := a.store.Load(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			hash, err := m.Hash()
			if err != nil {
				return err
			}
			fingerprint, err := m.Fingerprint()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "hash: %s\nfingerprint: %s\n", hash.String(), fingerprint)
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list KIND",
		Short: "List the entities of a kind that have metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, err := a.store.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, entity := range entities {
				fmt.Fprintf(a.out, "%s\t%d\n", entity.ID, entity.Entries)
			}
			return nil
		},
	}
}
