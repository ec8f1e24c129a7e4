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

package xorlist

import "math"

// node is one arena slot: the element it owns plus the XOR link word
// tying it to its neighbors. Free slots reuse the link field to thread
// the arena's free list, needing no storage beyond the one word.
type node[T any] struct {
	link ref
	elem T
}

// Arena is the node store backing one family of lists. Lists created
// from the same arena move nodes between each other in O(1) during
// Append and SplitOff; nodes never leave their arena without being
// copied.
//
// An arena and every list built on it belong to a single goroutine at
// a time; see the package documentation for the sharing rules.
type Arena[T any] struct {
	nodes []node[T] // slot 0 reserved as the nilRef sentinel
	free  ref       // head of the free slot list
	live  int
}

// NewArena returns an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{nodes: make([]node[T], 1)}
}

// NewList returns an empty list whose nodes are allocated from a.
func (a *Arena[T]) NewList() *List[T] {
	return &List[T]{arena: a}
}

// Len returns the number of live nodes across all lists of the arena.
func (a *Arena[T]) Len() int {
	return a.live
}

// Cap returns the number of node slots the arena has grown to,
// counting free slots held for reuse.
func (a *Arena[T]) Cap() int {
	if len(a.nodes) == 0 {
		return 0
	}
	return len(a.nodes) - 1
}

// at resolves a ref to its slot. The pointer is good until the next
// alloc, which may relocate the slot store.
func (a *Arena[T]) at(r ref) *node[T] {
	return &a.nodes[r]
}

// alloc stores elem in a free slot and returns the slot's identity.
// A fresh node's link word decodes to "no neighbor" on both sides.
func (a *Arena[T]) alloc(elem T) ref {
	if r := a.free; r != nilRef {
		nd := &a.nodes[r]
		a.free = nd.link
		nd.link = nilRef
		nd.elem = elem
		a.live++
		return r
	}
	if len(a.nodes) == 0 {
		// Zero-value arena: reserve the sentinel slot now.
		a.nodes = make([]node[T], 1, 2)
	}
	if uint64(len(a.nodes)) > math.MaxUint32 {
		panic("xorlist: arena is out of node identities")
	}
	a.nodes = append(a.nodes, node[T]{elem: elem})
	a.live++
	return ref(len(a.nodes) - 1)
}

// release returns a slot to the free list. The element is zeroed so
// the arena does not pin it for the garbage collector.
func (a *Arena[T]) release(r ref) {
	var zero T
	nd := &a.nodes[r]
	nd.elem = zero
	nd.link = a.free
	a.free = r
	a.live--
}
