/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cli implements the ovx command line.
package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/ovx"
	"dirpx.dev/ovx/apis"
	"dirpx.dev/ovx/builder"
	"dirpx.dev/ovx/config"
	"dirpx.dev/ovx/metrics"
	"dirpx.dev/ovx/registry"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Metrics    bool

	// set up by the root pre-run
	cfg  apis.Config
	prom *prometheus.Registry
}

// NewRootCommand creates the root command for the ovx CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ovx",
		Short: "ovx - type-directed call routing",
		Long: `Route calls by the dynamic types of their arguments.

Permuted operations accept their arguments in any order; overloaded
operations pick the highest-priority applicable candidate.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			_ = opts.cfg.Log().Sync()
			if !opts.Metrics {
				return nil
			}
			return writeMetrics(cmd.OutOrStdout(), opts.prom)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().BoolVar(&opts.Metrics, "metrics", false, "print routing metrics after the command")

	// Add subcommands
	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// setup loads the configuration and installs a fresh global snapshot with
// an empty registry.
func (o *RootOptions) setup() error {
	var extra []config.Option
	o.prom = prometheus.NewRegistry()
	if o.Metrics {
		m := metrics.New()
		if err := m.Register(o.prom); err != nil {
			return err
		}
		extra = append(extra, config.WithMetrics(m))
	}

	cfg := config.NewConfig(extra...)
	if o.ConfigPath != "" {
		var err error
		if cfg, err = config.LoadFile(o.ConfigPath, extra...); err != nil {
			return err
		}
	}
	o.cfg = cfg

	ovx.SetAll(&cfg, nil, registry.New(cfg), builder.New())
	cfg.Log().Debug("configured",
		zap.Stringer("cache", cfg.Cache),
		zap.Stringer("match", cfg.Match),
		zap.Int("min_priority", cfg.MinPriority),
		zap.Int("max_priority", cfg.MaxPriority))
	return nil
}

// writeMetrics prints every gathered sample as name{labels} value, sorted.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	fmt.Fprintln(w, "# metrics")
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}
