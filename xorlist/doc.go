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

// Package xorlist implements a double-ended list that stores a single
// link word per node instead of the two pointers of a classic doubly
// linked list.
//
// Each node records the XOR of the identities of its two neighbors.
// Given one neighbor, XOR-ing it with the link word recovers the
// other; given none (the position just outside either end of the
// list), the word decodes directly to the boundary's single neighbor.
// The saving is real but has a price: a link word cannot be decoded in
// isolation, so every traversal has to remember the node it came from
// and every mutation has to recover the neighbor it is about to splice
// around. Cursors in this package carry that context for the caller.
//
// Nodes live in an Arena, a growable slot store addressed by 32-bit
// indices, rather than being individually heap-allocated: XOR-combined
// machine pointers would be invisible to the garbage collector. Slot
// indices are stable across growth, slot 0 is reserved as the "no
// neighbor" sentinel, and freed slots are reused for later inserts.
// Lists created from the same arena via (*Arena).NewList exchange
// nodes in O(1) during Append and SplitOff; each node belongs to
// exactly one list at a time and only its link word is rewritten when
// it changes hands.
//
//	a := xorlist.NewArena[string]()
//	l := a.NewList()
//	l.PushBack("b")
//	l.PushFront("a")
//	l.PushBack("c")
//
//	rest, _ := l.SplitOff(1) // l is [a], rest is [b c]
//	l.Append(rest)           // l is [a b c], rest is empty
//
//	for v := range l.All() {
//		fmt.Println(v)
//	}
//
// Lists are not synchronized. A list, and all lists sharing its arena,
// may be used by one goroutine at a time; handing a list to another
// goroutine or sharing it read-only is safe only when the element type
// itself tolerates that. Pointers obtained from FrontMut, BackMut or
// IterMut are valid until the next insert into any list of the arena,
// which may relocate the slot store; structural changes made while a
// cursor is live cause the cursor's next use to panic rather than walk
// rewritten links.
package xorlist
