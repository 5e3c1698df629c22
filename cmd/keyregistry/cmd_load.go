/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func loadCmd() *cobra.Command {
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "load [fixture.yaml]",
		Short: "Load a fixture and print entity counts per type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(args[0], newLogger())
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}

			out := cmd.OutOrStdout()
			names := make([]string, 0, len(s.doc.Types))
			for _, spec := range s.doc.Types {
				names = append(names, spec.Name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "%-20s %d\n", name, s.reg.Count(name))
			}

			if !showMetrics {
				return nil
			}
			families, err := s.metrics.Gather()
			if err != nil {
				return fmt.Errorf("load: gathering metrics: %w", err)
			}
			fmt.Fprintln(out)
			for _, mf := range families {
				for _, m := range mf.GetMetric() {
					labels := make([]string, 0, len(m.GetLabel()))
					for _, lp := range m.GetLabel() {
						labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
					}
					value := m.GetCounter().GetValue()
					if m.GetGauge() != nil {
						value = m.GetGauge().GetValue()
					}
					fmt.Fprintf(out, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), value)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print registry metrics after loading")
	return cmd
}
