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
	"cmp"
	"encoding/binary"
	"hash/maphash"
	"iter"
)

// Of returns a new list holding the values in order.
func Of[T any](values ...T) *List[T] {
	l := New[T]()
	l.Extend(values...)
	return l
}

// Collect builds a list from seq.
func Collect[T any](seq iter.Seq[T]) *List[T] {
	l := New[T]()
	for v := range seq {
		l.PushBack(v)
	}
	return l
}

// Equal reports whether a and b hold the same elements in the same
// order.
func Equal[T comparable](a, b *List[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc reports whether a and b hold pairwise-equal elements in
// the same order, comparing with eq.
func EqualFunc[T any](a, b *List[T], eq func(T, T) bool) bool {
	if a.len != b.len {
		return false
	}
	ia, ib := a.Iter(), b.Iter()
	for {
		x, ok := ia.Next()
		if !ok {
			return true
		}
		y, _ := ib.Next()
		if !eq(x, y) {
			return false
		}
	}
}

// Compare orders a and b lexicographically: elementwise until the
// first difference, with a shorter prefix ordering before its
// extension. The result is -1, 0 or +1.
func Compare[T cmp.Ordered](a, b *List[T]) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc is like Compare but compares elements with cmpf, which
// must return a negative, zero or positive int in the usual way.
func CompareFunc[T any](a, b *List[T], cmpf func(T, T) int) int {
	ia, ib := a.Iter(), b.Iter()
	for {
		x, okA := ia.Next()
		y, okB := ib.Next()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return -1
		case !okB:
			return +1
		}
		if c := cmpf(x, y); c != 0 {
			return c
		}
	}
}

// Contains reports whether the list holds v.
func Contains[T comparable](l *List[T], v T) bool {
	return ContainsFunc(l, func(x T) bool { return x == v })
}

// ContainsFunc reports whether any element satisfies match.
func ContainsFunc[T any](l *List[T], match func(T) bool) bool {
	for v := range l.All() {
		if match(v) {
			return true
		}
	}
	return false
}

// Hash returns a hash of the list under seed, feeding each element to
// elem in order. The length is hashed first so that lists that are
// prefixes of one another hash apart. Lists holding equal elements in
// equal order hash equal regardless of how they were assembled.
func Hash[T any](seed maphash.Seed, l *List[T], elem func(*maphash.Hash, T)) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(l.len))
	h.Write(n[:])
	for v := range l.All() {
		elem(&h, v)
	}
	return h.Sum64()
}

// Clone returns a copy of the list in the same arena. The copy shares
// no nodes with the original.
func (l *List[T]) Clone() *List[T] {
	return l.CloneFunc(func(v T) T { return v })
}

// CloneFunc is like Clone but copies each element through clone,
// allowing deep copies of element types holding references.
func (l *List[T]) CloneFunc(clone func(T) T) *List[T] {
	out := &List[T]{arena: l.arena}
	for v := range l.All() {
		out.PushBack(clone(v))
	}
	return out
}
