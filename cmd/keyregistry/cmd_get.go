/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/suparena/keyregistry/keys"
)

func getCmd() *cobra.Command {
	var (
		all        bool
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "get [fixture.yaml] [entity-type] [key] [value]",
		Short: "Load a fixture and retrieve entities by key",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(args[0], newLogger())
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}

			entityType, name := args[1], args[2]
			var value any = args[3]
			if t, ok := s.reg.Table(entityType); ok {
				if d, ok := t.Descriptor(name); ok {
					if value, err = d.Type.Parse(args[3]); err != nil {
						return fmt.Errorf("get: %w", err)
					}
				}
			}

			var found []keys.Keyable
			if all {
				found, err = s.reg.RetrieveList(entityType, name, value)
			} else {
				var e keys.Keyable
				e, err = s.reg.RetrieveFirst(entityType, name, value)
				if e != nil {
					found = append(found, e)
				}
			}
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}
			if len(found) == 0 {
				return fmt.Errorf("get: no %s with %s=%s", entityType, name, args[3])
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				rows := make([]map[string]any, 0, len(found))
				for _, e := range found {
					rows = append(rows, keyValues(e))
				}
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return fmt.Errorf("get: marshaling JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			for i, e := range found {
				if i > 0 {
					fmt.Fprintln(out)
				}
				values := keyValues(e)
				names := make([]string, 0, len(values))
				for k := range values {
					names = append(names, k)
				}
				sort.Strings(names)
				for _, k := range names {
					fmt.Fprintf(out, "%-12s %v\n", k+":", values[k])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "print every match instead of the first")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	return cmd
}
