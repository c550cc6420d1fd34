package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/alatty/internal/cache"
)

func newCacheCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Read and write persistent cached values",
	}
	cmd.PersistentFlags().StringVar(&dir, "cache-dir", "", "cache directory (default $"+cache.EnvCacheDir+" or the user cache dir)")

	store := func() *cache.Store {
		if dir == "" {
			dir = cache.DefaultDir()
		}
		return cache.NewStore(dir)
	}

	get := &cobra.Command{
		Use:   "get SCOPE [KEY]",
		Short: "Print a cached value, or every value in a scope",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := store().Open(args[0]).Values
			out := cmd.OutOrStdout()

			if len(args) == 2 {
				v, ok := values[args[1]]
				if !ok {
					return fmt.Errorf("no cached value %q in scope %q", args[1], args[0])
				}
				data, err := json.Marshal(v)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				data, err := json.Marshal(values[k])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s\n", k, data)
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set SCOPE KEY VALUE",
		Short: "Store a value; VALUE is parsed as JSON, falling back to a plain string",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			var v any
			dec := json.NewDecoder(strings.NewReader(args[2]))
			dec.UseNumber()
			if err := dec.Decode(&v); err != nil || dec.More() {
				v = args[2]
			}
			store().With(args[0], func(values map[string]any) {
				values[args[1]] = v
			})
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete SCOPE KEY",
		Short: "Remove a cached value",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			store().With(args[0], func(values map[string]any) {
				delete(values, args[1])
			})
			return nil
		},
	}

	cmd.AddCommand(get, set, del)
	return cmd
}
