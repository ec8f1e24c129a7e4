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

// Package btrie provides an ordered trie keyed by element sequences.
//
// Every trie level keeps its children sorted by key element, so prefix
// queries return values in ascending key order without an explicit
// sort. Keys are slices of any ordered element type; string keys are
// used as []byte("...").
package btrie

import (
	"cmp"
	"slices"
)

// Map is a trie from []K keys to V values. Each node holds at most one
// value and its children in ascending key order. The zero value is an
// empty map ready for use.
type Map[K cmp.Ordered, V any] struct {
	value    V
	hasValue bool

	// keys and nodes are parallel slices sorted by key element; the
	// child for keys[i] is nodes[i].
	keys  []K
	nodes []*Map[K, V]
}

// New returns an empty map.
func New[K cmp.Ordered, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

// node returns the node addressed by key, or nil if no such path
// exists. The empty key addresses the root.
func (m *Map[K, V]) node(key []K) *Map[K, V] {
	cur := m
	for _, k := range key {
		i, ok := slices.BinarySearch(cur.keys, k)
		if !ok {
			return nil
		}
		cur = cur.nodes[i]
	}
	return cur
}

// Insert stores value under key, creating the path as needed and
// overwriting any value already stored there.
func (m *Map[K, V]) Insert(key []K, value V) {
	cur := m
	for _, k := range key {
		i, ok := slices.BinarySearch(cur.keys, k)
		if !ok {
			cur.keys = slices.Insert(cur.keys, i, k)
			cur.nodes = slices.Insert(cur.nodes, i, &Map[K, V]{})
		}
		cur = cur.nodes[i]
	}
	cur.value = value
	cur.hasValue = true
}

// Get returns the value stored under exactly key. It reports false
// when the key is absent, including when key is only a prefix of
// stored keys.
func (m *Map[K, V]) Get(key []K) (V, bool) {
	if n := m.node(key); n != nil && n.hasValue {
		return n.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether a value is stored under exactly key.
func (m *Map[K, V]) Contains(key []K) bool {
	n := m.node(key)
	return n != nil && n.hasValue
}

// GetWithPrefix returns the values of every key beginning with prefix,
// in ascending key order. A key equal to the prefix itself sorts
// first. The empty prefix returns every value in the map.
func (m *Map[K, V]) GetWithPrefix(prefix []K) []V {
	n := m.node(prefix)
	if n == nil {
		return nil
	}
	return n.appendValues(nil)
}

func (m *Map[K, V]) appendValues(out []V) []V {
	if m.hasValue {
		out = append(out, m.value)
	}
	for _, c := range m.nodes {
		out = c.appendValues(out)
	}
	return out
}
