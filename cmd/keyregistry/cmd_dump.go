/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suparena/keyregistry/export/ddb"
)

func dumpCmd() *cobra.Command {
	var batches bool

	cmd := &cobra.Command{
		Use:   "dump [fixture.yaml]",
		Short: "Load a fixture and print the index as DynamoDB items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			s, err := openSession(args[0], logger)
			if err != nil {
				return fmt.Errorf("dump: %w", err)
			}

			exp := ddb.NewExporter(ddb.WithDefaultIndexMap(cfg.Export.IndexMap()))
			items, err := exp.Items(s.reg.Snapshot())
			if err != nil {
				return fmt.Errorf("dump: %w", err)
			}

			out := cmd.OutOrStdout()
			if batches {
				for i, in := range ddb.Batches(cfg.Export.TableName, items) {
					fmt.Fprintf(out, "batch %d: %d put requests for %s\n",
						i+1, len(in.RequestItems[cfg.Export.TableName]), cfg.Export.TableName)
				}
				return nil
			}

			data, err := ddb.JSON(items)
			if err != nil {
				return fmt.Errorf("dump: %w", err)
			}
			fmt.Fprintln(out, string(data))
			logger.Debug("items exported", "items", len(items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&batches, "batches", false, "summarize BatchWriteItem batches instead of printing items")
	return cmd
}
