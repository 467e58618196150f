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

package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/ovx/apis"
	"dirpx.dev/ovx/cache/strategy"
)

// effective is the YAML view of the resolved configuration.
type effective struct {
	Priority struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	} `yaml:"priority"`
	Match           apis.MatchMode `yaml:"match"`
	RejectAmbiguous bool           `yaml:"reject_ambiguous"`
	Cache           struct {
		Strategy strategy.Strategy `yaml:"strategy"`
		Size     int               `yaml:"size"`
		TTL      string            `yaml:"ttl"`
	} `yaml:"cache"`
}

// NewConfigCommand creates the config command, which prints the effective
// configuration after defaults and the --config file are applied.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.cfg
			var e effective
			e.Priority.Min, e.Priority.Max = cfg.MinPriority, cfg.MaxPriority
			e.Match = cfg.Match
			e.RejectAmbiguous = cfg.RejectAmbiguous
			e.Cache.Strategy = cfg.Cache
			e.Cache.Size = cfg.CacheSize
			e.Cache.TTL = cfg.CacheTTL.String()

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(e); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
