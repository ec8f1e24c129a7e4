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
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/containerd/errdefs"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/containerd/collections/xorlist"
)

var densityCommand = &cli.Command{
	Name:  "density",
	Usage: "Measure the memory overhead of densely packed lists",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "count",
			Usage: "Number of lists to build",
			Value: 16,
		},
		&cli.IntFlag{
			Name:  "list-size",
			Usage: "Number of elements per list",
			Value: 100000,
		},
	},
	Action: func(cliContext *cli.Context) error {
		var (
			count = cliContext.Int("count")
			size  = cliContext.Int("list-size")
		)
		if count < 1 || size < 1 {
			return fmt.Errorf("count %d and list-size %d cannot be less than one: %w", count, size, errdefs.ErrInvalidArgument)
		}

		runtime.GC()
		var before runtime.MemStats
		runtime.ReadMemStats(&before)

		logrus.Infof("building %d lists of %d elements", count, size)
		arenas := make([]*xorlist.Arena[int64], count)
		var g errgroup.Group
		for i := 0; i < count; i++ {
			g.Go(func() error {
				arena := xorlist.NewArena[int64]()
				l := arena.NewList()
				for j := 0; j < size; j++ {
					l.PushBack(int64(j))
				}
				if l.Len() != size {
					return fmt.Errorf("list %d holds %d elements, want %d", i, l.Len(), size)
				}
				arenas[i] = arena
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		runtime.GC()
		var after runtime.MemStats
		runtime.ReadMemStats(&after)

		nodes := count * size
		heap := int64(after.HeapAlloc) - int64(before.HeapAlloc)
		results := struct {
			Lists        int   `json:"lists"`
			Nodes        int   `json:"nodes"`
			HeapBytes    int64 `json:"heapBytes"`
			BytesPerNode int64 `json:"bytesPerNode"`
		}{
			Lists:     count,
			Nodes:     nodes,
			HeapBytes: heap,
		}
		if heap > 0 {
			results.BytesPerNode = heap / int64(nodes)
		}

		if cliContext.Bool("json") {
			if err := json.NewEncoder(os.Stdout).Encode(results); err != nil {
				return err
			}
		} else {
			logrus.Infof("%d nodes in %d lists: %d heap bytes, %d bytes/node",
				results.Nodes, results.Lists, results.HeapBytes, results.BytesPerNode)
		}
		runtime.KeepAlive(arenas)
		return nil
	},
}
