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

import (
	"fmt"
	"strings"

	"github.com/containerd/errdefs"
)

// List is a double-ended sequence of elements backed by XOR-linked
// nodes in an Arena. Push, pop, Front and Back are O(1) at both ends,
// Append splices whole lists in O(1), and SplitOff walks only to the
// split point from the nearer end.
//
// The zero value is an empty list that creates its own arena on first
// insert. Use (*Arena).NewList to place several lists in one arena so
// that Append and SplitOff can move nodes between them without
// copying.
type List[T any] struct {
	arena *Arena[T]
	head  ref
	tail  ref
	len   int

	// mutations counts structural changes so live cursors can detect
	// that their link context is stale instead of decoding rewritten
	// words into garbage.
	mutations uint64
}

// New returns an empty list. The list's arena is created on first
// insert; see (*Arena).NewList for sharing an arena between lists.
func New[T any]() *List[T] {
	return &List[T]{}
}

func (l *List[T]) ensureArena() *Arena[T] {
	if l.arena == nil {
		l.arena = NewArena[T]()
	}
	return l.arena
}

func (l *List[T]) checkMutations(snapshot uint64) {
	if l.mutations != snapshot {
		panic("xorlist: list mutated during iteration")
	}
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int {
	return l.len
}

// Empty reports whether the list holds no elements.
func (l *List[T]) Empty() bool {
	return l.len == 0
}

// PushFront inserts v at the front of the list.
func (l *List[T]) PushFront(v T) {
	a := l.ensureArena()
	n := a.alloc(v)
	if l.head == nilRef {
		l.tail = n
	} else {
		head := a.at(l.head)
		next := decodeLink(nilRef, head.link)
		head.link = encodeLink(n, next)
		a.at(n).link = encodeLink(nilRef, l.head)
	}
	l.head = n
	l.len++
	l.mutations++
}

// PushBack inserts v at the back of the list.
func (l *List[T]) PushBack(v T) {
	a := l.ensureArena()
	n := a.alloc(v)
	if l.tail == nilRef {
		l.head = n
	} else {
		tail := a.at(l.tail)
		prev := decodeLink(nilRef, tail.link)
		tail.link = encodeLink(prev, n)
		a.at(n).link = encodeLink(l.tail, nilRef)
	}
	l.tail = n
	l.len++
	l.mutations++
}

// PopFront removes and returns the front element. It reports false on
// an empty list.
func (l *List[T]) PopFront() (T, bool) {
	var zero T
	if l.head == nilRef {
		return zero, false
	}
	a := l.arena
	n := l.head
	nd := a.at(n)
	v := nd.elem
	if next := decodeLink(nilRef, nd.link); next != nilRef {
		newHead := a.at(next)
		newHead.link = encodeLink(nilRef, decodeLink(n, newHead.link))
		l.head = next
	} else {
		l.head = nilRef
		l.tail = nilRef
	}
	l.len--
	l.mutations++
	a.release(n)
	return v, true
}

// PopBack removes and returns the back element. It reports false on an
// empty list.
func (l *List[T]) PopBack() (T, bool) {
	var zero T
	if l.tail == nilRef {
		return zero, false
	}
	a := l.arena
	n := l.tail
	nd := a.at(n)
	v := nd.elem
	if prev := decodeLink(nilRef, nd.link); prev != nilRef {
		newTail := a.at(prev)
		newTail.link = encodeLink(decodeLink(n, newTail.link), nilRef)
		l.tail = prev
	} else {
		l.head = nilRef
		l.tail = nilRef
	}
	l.len--
	l.mutations++
	a.release(n)
	return v, true
}

// Front returns the front element without removing it. It reports
// false on an empty list.
func (l *List[T]) Front() (T, bool) {
	var zero T
	if l.head == nilRef {
		return zero, false
	}
	return l.arena.at(l.head).elem, true
}

// Back returns the back element without removing it. It reports false
// on an empty list.
func (l *List[T]) Back() (T, bool) {
	var zero T
	if l.tail == nilRef {
		return zero, false
	}
	return l.arena.at(l.tail).elem, true
}

// FrontMut returns a pointer to the front element, or nil if the list
// is empty. The pointer is valid until the next insert into any list
// sharing the arena, which may relocate the node store.
func (l *List[T]) FrontMut() *T {
	if l.head == nilRef {
		return nil
	}
	return &l.arena.at(l.head).elem
}

// BackMut returns a pointer to the back element, or nil if the list is
// empty. The FrontMut validity rule applies.
func (l *List[T]) BackMut() *T {
	if l.tail == nilRef {
		return nil
	}
	return &l.arena.at(l.tail).elem
}

// Append moves every element of other to the back of l in order,
// leaving other empty. When l is empty it takes over other's state
// wholesale; when both lists share an arena only the two boundary link
// words are rewritten, so nothing is allocated, freed or copied. Two
// non-empty lists with distinct arenas cannot exchange node
// identities, so their elements are moved one at a time instead.
//
// Append panics if l and other are the same list.
func (l *List[T]) Append(other *List[T]) {
	if l == other {
		panic("xorlist: cannot append a list to itself")
	}
	if other.len == 0 {
		return
	}
	switch {
	case l.len == 0:
		l.arena = other.arena
		l.head = other.head
		l.tail = other.tail
		l.len = other.len
	case l.arena == other.arena:
		a := l.arena
		head := a.at(other.head)
		head.link = encodeLink(l.tail, decodeLink(nilRef, head.link))
		tail := a.at(l.tail)
		tail.link = encodeLink(decodeLink(nilRef, tail.link), other.head)
		l.tail = other.tail
		l.len += other.len
	default:
		for {
			v, ok := other.PopFront()
			if !ok {
				return
			}
			l.PushBack(v)
		}
	}
	other.head = nilRef
	other.tail = nilRef
	other.len = 0
	l.mutations++
	other.mutations++
}

// SplitOff removes the elements at positions [at, Len()) and returns
// them as a new list sharing l's arena. SplitOff(0) moves everything
// out, leaving l empty; SplitOff(Len()) moves nothing and leaves l
// untouched. For interior positions the cost is the walk to the split
// point from the nearer end; only two link words are rewritten and no
// node is allocated, freed or copied.
//
// A position outside [0, Len()] yields an error wrapping
// errdefs.ErrInvalidArgument, and l is left unchanged.
func (l *List[T]) SplitOff(at int) (*List[T], error) {
	if at < 0 || at > l.len {
		return nil, fmt.Errorf("split position %d out of range [0, %d]: %w", at, l.len, errdefs.ErrInvalidArgument)
	}
	switch at {
	case 0:
		out := &List[T]{arena: l.arena, head: l.head, tail: l.tail, len: l.len}
		l.head = nilRef
		l.tail = nilRef
		l.len = 0
		l.mutations++
		return out, nil
	case l.len:
		return &List[T]{arena: l.arena}, nil
	}

	a := l.arena

	// Locate the node at position at-1, the new tail of l, together
	// with the node before it: the predecessor is the context needed
	// to decode past the split node and to rewrite its link word. Walk
	// in from whichever end is nearer.
	var split, before ref
	if at-1 <= l.len-1-(at-1) {
		cur, last := l.head, nilRef
		for i := 0; i < at-1; i++ {
			cur, last = decodeLink(last, a.at(cur).link), cur
		}
		split, before = cur, last
	} else {
		cur, last := l.tail, nilRef
		for i := 0; i < l.len-at+1; i++ {
			cur, last = decodeLink(last, a.at(cur).link), cur
		}
		split, before = last, cur
	}

	splitNode := a.at(split)
	next := decodeLink(before, splitNode.link)
	splitNode.link = encodeLink(before, nilRef)

	// next heads the returned list; it exists because at < Len().
	nextNode := a.at(next)
	nextNode.link = encodeLink(nilRef, decodeLink(split, nextNode.link))

	out := &List[T]{arena: a, head: next, tail: l.tail, len: l.len - at}
	l.tail = split
	l.len = at
	l.mutations++
	return out, nil
}

// Clear removes all elements, returning every node to the arena.
func (l *List[T]) Clear() {
	for l.len > 0 {
		l.PopBack()
	}
}

// Extend appends the values to the back of the list in order.
func (l *List[T]) Extend(values ...T) {
	for _, v := range values {
		l.PushBack(v)
	}
}

// String renders the list for debugging.
func (l *List[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for it := l.Iter(); ; {
		v, ok := it.Next()
		if !ok {
			break
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%v", v)
	}
	b.WriteByte(']')
	return b.String()
}
