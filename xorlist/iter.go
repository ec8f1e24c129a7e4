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

import "iter"

// Iter is a double-ended cursor over a list. The two ends advance
// independently and share one element budget: a cursor driven from
// both ends yields every element exactly once, with the ends meeting
// in the middle.
//
// An XOR link word only decodes relative to a known neighbor, so each
// end carries the identity of the node it last visited alongside its
// current position. The cursor is only valid against the list state it
// was created from; advancing it after any structural change panics.
// An exhausted cursor is inert and never panics.
type Iter[T any] struct {
	list      *List[T]
	head      ref
	tail      ref
	lastHead  ref
	lastTail  ref
	remaining int
	snapshot  uint64
}

// Iter returns a cursor positioned before the first and after the last
// element.
func (l *List[T]) Iter() *Iter[T] {
	return &Iter[T]{
		list:      l,
		head:      l.head,
		tail:      l.tail,
		remaining: l.len,
		snapshot:  l.mutations,
	}
}

// Next returns the next element from the front. It reports false once
// the front meets the back end of the cursor.
func (it *Iter[T]) Next() (T, bool) {
	var zero T
	if it.remaining == 0 {
		return zero, false
	}
	it.list.checkMutations(it.snapshot)
	nd := it.list.arena.at(it.head)
	v := nd.elem
	it.head, it.lastHead = decodeLink(it.lastHead, nd.link), it.head
	it.remaining--
	return v, true
}

// NextBack returns the next element from the back. It reports false
// once the back meets the front end of the cursor.
func (it *Iter[T]) NextBack() (T, bool) {
	var zero T
	if it.remaining == 0 {
		return zero, false
	}
	it.list.checkMutations(it.snapshot)
	nd := it.list.arena.at(it.tail)
	v := nd.elem
	it.tail, it.lastTail = decodeLink(it.lastTail, nd.link), it.tail
	it.remaining--
	return v, true
}

// Remaining returns the number of elements the cursor has not yet
// yielded from either end.
func (it *Iter[T]) Remaining() int {
	return it.remaining
}

// IterMut is a double-ended cursor yielding pointers to the elements
// in place. The Iter validity rules apply; additionally the yielded
// pointers are only valid until the next insert into any list sharing
// the arena.
type IterMut[T any] struct {
	it Iter[T]
}

// IterMut returns a mutating cursor positioned before the first and
// after the last element.
func (l *List[T]) IterMut() *IterMut[T] {
	return &IterMut[T]{it: Iter[T]{
		list:      l,
		head:      l.head,
		tail:      l.tail,
		remaining: l.len,
		snapshot:  l.mutations,
	}}
}

// Next returns a pointer to the next element from the front.
func (m *IterMut[T]) Next() (*T, bool) {
	it := &m.it
	if it.remaining == 0 {
		return nil, false
	}
	it.list.checkMutations(it.snapshot)
	nd := it.list.arena.at(it.head)
	it.head, it.lastHead = decodeLink(it.lastHead, nd.link), it.head
	it.remaining--
	return &nd.elem, true
}

// NextBack returns a pointer to the next element from the back.
func (m *IterMut[T]) NextBack() (*T, bool) {
	it := &m.it
	if it.remaining == 0 {
		return nil, false
	}
	it.list.checkMutations(it.snapshot)
	nd := it.list.arena.at(it.tail)
	it.tail, it.lastTail = decodeLink(it.lastTail, nd.link), it.tail
	it.remaining--
	return &nd.elem, true
}

// Remaining returns the number of elements the cursor has not yet
// yielded from either end.
func (m *IterMut[T]) Remaining() int {
	return m.it.remaining
}

// Drain is a consuming cursor: each step pops an element off the list
// and frees its node. Unlike Iter it stays valid across its own pops,
// and elements not drained simply remain in the list.
type Drain[T any] struct {
	list *List[T]
}

// Drain returns a consuming cursor over the list.
func (l *List[T]) Drain() *Drain[T] {
	return &Drain[T]{list: l}
}

// Next pops the front element off the list.
func (d *Drain[T]) Next() (T, bool) {
	return d.list.PopFront()
}

// NextBack pops the back element off the list.
func (d *Drain[T]) NextBack() (T, bool) {
	return d.list.PopBack()
}

// Remaining returns the number of elements left in the list.
func (d *Drain[T]) Remaining() int {
	return d.list.len
}

// All returns a front-to-back iterator over the list for use with
// range. The list must not be structurally modified during the walk.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := l.Iter(); ; {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Backward returns a back-to-front iterator over the list for use with
// range. The list must not be structurally modified during the walk.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := l.Iter(); ; {
			v, ok := it.NextBack()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
