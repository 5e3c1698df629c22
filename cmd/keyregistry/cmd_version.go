/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/suparena/keyregistry"
)

func versionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := keyregistry.GetVersionInfo()
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(info)
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(data))
			default:
				fmt.Fprintf(out, "keyregistry version %s\n", info.Version)
				fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
				fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
				fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}
