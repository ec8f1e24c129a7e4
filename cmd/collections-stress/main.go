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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/containerd/log"
	metrics "github.com/docker/go-metrics"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/containerd/collections/version"
)

func init() {
	cli.VersionPrinter = func(cliContext *cli.Context) {
		fmt.Println(cliContext.App.Name, version.Package, cliContext.App.Version, version.Revision)
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "collections-stress"
	app.Usage = "stress test the xor linked list and trie collections"
	app.Version = version.Version
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Set debug output in the logs",
		},
		&cli.DurationFlag{
			Name:    "duration",
			Aliases: []string{"d"},
			Usage:   "Duration of the stress test",
			Value:   1 * time.Minute,
		},
		&cli.IntFlag{
			Name:    "concurrent",
			Aliases: []string{"c"},
			Usage:   "Set the concurrency of the stress test",
			Value:   1,
		},
		&cli.IntFlag{
			Name:  "elements",
			Usage: "Number of operations in one workload pass",
			Value: 4096,
		},
		&cli.IntFlag{
			Name:  "lists",
			Usage: "Number of lists one pass spreads its elements over",
			Value: 4,
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "Seed for the per-worker random streams",
			Value: 1,
		},
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "Output results in json format",
		},
		&cli.StringFlag{
			Name:    "metrics",
			Aliases: []string{"m"},
			Usage:   "Address to serve the metrics API",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to a stress profile file",
		},
	}
	app.Before = func(cliContext *cli.Context) error {
		if cliContext.Bool("debug") {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	}
	app.Commands = []*cli.Command{
		configCommand,
		densityCommand,
	}
	app.Action = func(cliContext *cli.Context) error {
		p := defaultProfile()
		if path := cliContext.String("config"); path != "" {
			if err := loadProfile(path, p); err != nil {
				return err
			}
		}
		applyFlags(cliContext, p)
		if err := p.validate(); err != nil {
			return err
		}
		if p.Metrics != "" {
			return serve(cliContext.Context, p)
		}
		return test(cliContext.Context, p)
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, p *profile) error {
	go func() {
		srv := &http.Server{
			Addr:              p.Metrics,
			Handler:           metrics.Handler(),
			ReadHeaderTimeout: 5 * time.Minute,
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.L.WithError(err).Error("listen and serve")
		}
	}()
	return test(ctx, p)
}

func test(ctx context.Context, p *profile) error {
	d, err := p.runDuration()
	if err != nil {
		return err
	}
	tctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	run := uuid.New().String()
	log.G(ctx).WithField("run", run).Infof("starting stress test, %d workers for %s", p.Concurrency, d)

	var (
		wg      sync.WaitGroup
		workers []*worker
		start   = time.Now()
	)
	for i := 0; i < p.Concurrency; i++ {
		wg.Add(1)
		w := &worker{
			id:       i,
			wg:       &wg,
			seed:     p.Seed + int64(i),
			elements: p.Elements,
			lists:    p.Lists,
		}
		workers = append(workers, w)
		go w.run(ctx, tctx)
	}
	wg.Wait()

	var results struct {
		Total           int     `json:"total"`
		Failures        int     `json:"failures"`
		Operations      int     `json:"operations"`
		Seconds         float64 `json:"seconds"`
		PassesPerSecond float64 `json:"passesPerSecond"`
		OpsPerSecond    float64 `json:"opsPerSecond"`
	}
	for _, w := range workers {
		results.Total += w.count
		results.Failures += w.failures
		results.Operations += w.ops
	}
	results.Seconds = time.Since(start).Seconds()
	results.PassesPerSecond = float64(results.Total) / results.Seconds
	results.OpsPerSecond = float64(results.Operations) / results.Seconds

	if p.JSON {
		if err := json.NewEncoder(os.Stdout).Encode(results); err != nil {
			return err
		}
	} else {
		log.G(ctx).WithField("run", run).Infof("ran %d passes (%d operations) in %.2fs: %.2f passes/s, %.0f ops/s, %d failures",
			results.Total, results.Operations, results.Seconds, results.PassesPerSecond, results.OpsPerSecond, results.Failures)
	}
	if results.Failures > 0 {
		return fmt.Errorf("%d workload passes failed", results.Failures)
	}
	return nil
}
