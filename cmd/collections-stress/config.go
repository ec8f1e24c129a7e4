/*
   Copyright The containerd Authors.

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

package main

import (
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/containerd/errdefs"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v2"
)

// profile holds the knobs of a stress run. A profile file overrides
// the defaults and command line flags override both.
type profile struct {
	// Duration is how long the test runs, in time.ParseDuration form.
	Duration string `toml:"duration"`
	// Concurrency is the number of workers hammering collections in
	// parallel.
	Concurrency int `toml:"concurrent"`
	// Elements is the number of operations one workload pass applies.
	Elements int `toml:"elements"`
	// Lists is the number of lists a pass spreads its elements over.
	Lists int `toml:"lists"`
	// Seed feeds the per-worker random streams.
	Seed int64 `toml:"seed"`
	// Metrics is the address to serve prometheus metrics on; empty
	// disables the endpoint.
	Metrics string `toml:"metrics"`
	// JSON selects machine readable results on stdout.
	JSON bool `toml:"json"`
}

func defaultProfile() *profile {
	return &profile{
		Duration:    "1m",
		Concurrency: 1,
		Elements:    4096,
		Lists:       4,
		Seed:        1,
	}
}

func (p *profile) runDuration() (time.Duration, error) {
	return time.ParseDuration(p.Duration)
}

func (p *profile) validate() error {
	if _, err := p.runDuration(); err != nil {
		return fmt.Errorf("duration %q: %w", p.Duration, errdefs.ErrInvalidArgument)
	}
	if p.Concurrency < 1 {
		return fmt.Errorf("concurrent %d cannot be less than one: %w", p.Concurrency, errdefs.ErrInvalidArgument)
	}
	if p.Elements < 1 {
		return fmt.Errorf("elements %d cannot be less than one: %w", p.Elements, errdefs.ErrInvalidArgument)
	}
	if p.Lists < 1 {
		return fmt.Errorf("lists %d cannot be less than one: %w", p.Lists, errdefs.ErrInvalidArgument)
	}
	return nil
}

// loadProfile merges the profile file at path over p. Fields the file
// leaves unset keep their current values.
func loadProfile(path string, p *profile) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file profile
	if err := toml.Unmarshal(b, &file); err != nil {
		return fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return mergo.Merge(p, &file, mergo.WithOverride)
}

func applyFlags(cliContext *cli.Context, p *profile) {
	if cliContext.IsSet("duration") {
		p.Duration = cliContext.Duration("duration").String()
	}
	if cliContext.IsSet("concurrent") {
		p.Concurrency = cliContext.Int("concurrent")
	}
	if cliContext.IsSet("elements") {
		p.Elements = cliContext.Int("elements")
	}
	if cliContext.IsSet("lists") {
		p.Lists = cliContext.Int("lists")
	}
	if cliContext.IsSet("seed") {
		p.Seed = cliContext.Int64("seed")
	}
	if cliContext.IsSet("metrics") {
		p.Metrics = cliContext.String("metrics")
	}
	if cliContext.IsSet("json") {
		p.JSON = cliContext.Bool("json")
	}
}

func outputProfile(p *profile) error {
	return toml.NewEncoder(os.Stdout).SetIndentTables(true).Encode(p)
}

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "Information on the stress profile",
	Subcommands: []*cli.Command{
		{
			Name:  "default",
			Usage: "See the output of the default profile",
			Action: func(cliContext *cli.Context) error {
				return outputProfile(defaultProfile())
			},
		},
		{
			Name:  "dump",
			Usage: "See the final profile with the profile file merged in",
			Action: func(cliContext *cli.Context) error {
				p := defaultProfile()
				if path := cliContext.String("config"); path != "" {
					if err := loadProfile(path, p); err != nil && !os.IsNotExist(err) {
						return err
					}
				}
				return outputProfile(p)
			},
		},
	},
}
