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
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/containerd/log"
	metrics "github.com/docker/go-metrics"
	"github.com/sirupsen/logrus"

	"github.com/containerd/collections/btrie"
	"github.com/containerd/collections/xorlist"
)

var (
	passTimer  metrics.LabeledTimer
	errCounter metrics.LabeledCounter
)

func init() {
	ns := metrics.NewNamespace("stress", "", nil)
	passTimer = ns.NewLabeledTimer("pass", "Run time of one full workload pass", "worker")
	errCounter = ns.NewLabeledCounter("errors", "Errors encountered verifying the collections", "err")
	metrics.Register(ns)
}

type worker struct {
	id       int
	wg       *sync.WaitGroup
	count    int
	ops      int
	failures int

	seed     int64
	elements int
	lists    int
}

func (w *worker) run(ctx, tctx context.Context) {
	defer func() {
		w.wg.Done()
		logrus.Infof("worker %d finished", w.id)
	}()
	r := rand.New(rand.NewSource(w.seed))
	for {
		select {
		case <-tctx.Done():
			return
		default:
		}

		w.count++
		log.G(ctx).Debugf("worker %d starting pass %d", w.id, w.count)
		start := time.Now()
		if err := w.runPass(ctx, r); err != nil {
			w.failures++
			logrus.WithError(err).Errorf("running pass %d", w.count)
			errCounter.WithValues(err.Error()).Inc()
			continue
		}
		passTimer.WithValues(strconv.Itoa(w.id)).UpdateSince(start)
	}
}

func (w *worker) runPass(ctx context.Context, r *rand.Rand) error {
	if err := w.listPass(ctx, r); err != nil {
		return fmt.Errorf("list workload: %w", err)
	}
	if err := w.triePass(ctx, r); err != nil {
		return fmt.Errorf("trie workload: %w", err)
	}
	return nil
}

// listPass spreads random pushes, pops, splits and splices over a
// family of lists in one arena, mirroring every operation onto plain
// slices, and requires the lists to agree with the slices afterwards.
func (w *worker) listPass(ctx context.Context, r *rand.Rand) error {
	arena := xorlist.NewArena[int]()
	lists := make([]*xorlist.List[int], w.lists)
	models := make([][]int, w.lists)
	for i := range lists {
		lists[i] = arena.NewList()
	}

	for i := 0; i < w.elements; i++ {
		w.ops++
		li := r.Intn(w.lists)
		l := lists[li]
		switch r.Intn(8) {
		case 0, 1:
			v := r.Intn(1 << 16)
			l.PushFront(v)
			models[li] = append([]int{v}, models[li]...)
		case 2, 3:
			v := r.Intn(1 << 16)
			l.PushBack(v)
			models[li] = append(models[li], v)
		case 4:
			v, ok := l.PopFront()
			if ok != (len(models[li]) > 0) {
				return fmt.Errorf("PopFront reported %v with %d elements", ok, len(models[li]))
			}
			if ok {
				if v != models[li][0] {
					return fmt.Errorf("PopFront returned %d, want %d", v, models[li][0])
				}
				models[li] = models[li][1:]
			}
		case 5:
			v, ok := l.PopBack()
			if ok != (len(models[li]) > 0) {
				return fmt.Errorf("PopBack reported %v with %d elements", ok, len(models[li]))
			}
			if ok {
				last := len(models[li]) - 1
				if v != models[li][last] {
					return fmt.Errorf("PopBack returned %d, want %d", v, models[li][last])
				}
				models[li] = models[li][:last]
			}
		case 6:
			at := r.Intn(l.Len() + 1)
			tail, err := l.SplitOff(at)
			if err != nil {
				return fmt.Errorf("SplitOff(%d) of %d elements: %w", at, l.Len(), err)
			}
			lj := (li + 1) % w.lists
			if lj == li {
				l.Append(tail)
				continue
			}
			lists[lj].Append(tail)
			moved := append([]int(nil), models[li][at:]...)
			models[li] = models[li][:at]
			models[lj] = append(models[lj], moved...)
		case 7:
			d := l.Drain()
			for n := r.Intn(4); n > 0 && len(models[li]) > 0; n-- {
				v, ok := d.Next()
				if !ok {
					return fmt.Errorf("Drain stopped with %d elements left", len(models[li]))
				}
				if v != models[li][0] {
					return fmt.Errorf("Drain returned %d, want %d", v, models[li][0])
				}
				models[li] = models[li][1:]
			}
		}
	}

	total := 0
	for i := range lists {
		if err := verifyList(lists[i], models[i]); err != nil {
			return fmt.Errorf("list %d: %w", i, err)
		}
		total += len(models[i])
	}
	if arena.Len() != total {
		return fmt.Errorf("arena holds %d live nodes, lists hold %d elements", arena.Len(), total)
	}
	log.G(ctx).Debugf("worker %d verified %d elements across %d lists", w.id, total, w.lists)
	return nil
}

// verifyList walks l from both ends against a reference slice.
func verifyList(l *xorlist.List[int], model []int) error {
	if l.Len() != len(model) {
		return fmt.Errorf("Len() = %d, want %d", l.Len(), len(model))
	}
	i := 0
	for v := range l.All() {
		if v != model[i] {
			return fmt.Errorf("forward position %d: got %d, want %d", i, v, model[i])
		}
		i++
	}
	i = len(model) - 1
	for v := range l.Backward() {
		if v != model[i] {
			return fmt.Errorf("backward position %d: got %d, want %d", i, v, model[i])
		}
		i--
	}
	if front, ok := l.Front(); ok && front != model[0] {
		return fmt.Errorf("Front() = %d, want %d", front, model[0])
	}
	if back, ok := l.Back(); ok && back != model[len(model)-1] {
		return fmt.Errorf("Back() = %d, want %d", back, model[len(model)-1])
	}
	return nil
}

// triePass mirrors random trie operations onto a plain map and checks
// that a full prefix query comes back in ascending key order.
func (w *worker) triePass(ctx context.Context, r *rand.Rand) error {
	m := btrie.New[byte, string]()
	mirror := make(map[string]string)

	for i := 0; i < w.elements; i++ {
		w.ops++
		key := make([]byte, 1+r.Intn(6))
		for j := range key {
			key[j] = 'a' + byte(r.Intn(4))
		}
		switch r.Intn(3) {
		case 0:
			m.Insert(key, string(key))
			mirror[string(key)] = string(key)
		case 1:
			v, ok := m.Get(key)
			want, wantOK := mirror[string(key)]
			if ok != wantOK {
				return fmt.Errorf("Get(%q) reported %v, want %v", key, ok, wantOK)
			}
			if ok && v != want {
				return fmt.Errorf("Get(%q) = %q, want %q", key, v, want)
			}
		case 2:
			_, wantOK := mirror[string(key)]
			if got := m.Contains(key); got != wantOK {
				return fmt.Errorf("Contains(%q) = %v, want %v", key, got, wantOK)
			}
		}
	}

	values := m.GetWithPrefix(nil)
	if len(values) != len(mirror) {
		return fmt.Errorf("full prefix query returned %d values, want %d", len(values), len(mirror))
	}
	if !sort.StringsAreSorted(values) {
		return fmt.Errorf("full prefix query out of key order")
	}
	log.G(ctx).Debugf("worker %d verified %d trie keys", w.id, len(mirror))
	return nil
}
