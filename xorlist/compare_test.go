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
	"hash/maphash"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	assert.True(t, Equal(New[int](), New[int]()))
	assert.True(t, Equal(Of(1, 2, 3), Of(1, 2, 3)))
	assert.False(t, Equal(Of(1, 2, 3), Of(1, 2)))
	assert.False(t, Equal(Of(1, 2), Of(1, 2, 3)))
	assert.False(t, Equal(Of(1, 2, 3), Of(1, 2, 4)))
	assert.False(t, Equal(Of(1), New[int]()))
}

func TestEqualFunc(t *testing.T) {
	a := Of("GO", "Rules")
	b := Of("go", "rules")
	assert.False(t, Equal(a, b))
	assert.True(t, EqualFunc(a, b, strings.EqualFold))
}

func TestCompare(t *testing.T) {
	for _, tc := range []struct {
		a, b *List[int]
		want int
	}{
		{New[int](), New[int](), 0},
		{Of(1, 2, 3), Of(1, 2, 3), 0},
		{Of(1, 2, 3), Of(1, 2, 4), -1},
		{Of(1, 2, 4), Of(1, 2, 3), +1},
		{Of(1, 2), Of(1, 2, 3), -1},
		{Of(1, 2, 3), Of(1, 2), +1},
		{New[int](), Of(0), -1},
		{Of(2), Of(1, 9, 9), +1},
	} {
		assert.Equal(t, tc.want, Compare(tc.a, tc.b), "%v vs %v", tc.a, tc.b)
	}
}

func TestCompareFunc(t *testing.T) {
	desc := func(a, b int) int { return b - a }
	assert.Equal(t, +1, CompareFunc(Of(1), Of(2), desc))
	assert.Equal(t, 0, CompareFunc(Of(3, 3), Of(3, 3), desc))
}

func TestContains(t *testing.T) {
	l := Of(1, 2, 3)
	assert.True(t, Contains(l, 1))
	assert.True(t, Contains(l, 3))
	assert.False(t, Contains(l, 4))
	assert.False(t, Contains(New[int](), 0))
}

func TestContainsFunc(t *testing.T) {
	l := Of("alpha", "beta")
	assert.True(t, ContainsFunc(l, func(s string) bool { return strings.HasPrefix(s, "be") }))
	assert.False(t, ContainsFunc(l, func(s string) bool { return len(s) > 5 }))
}

func TestHash(t *testing.T) {
	seed := maphash.MakeSeed()
	writeInt := func(h *maphash.Hash, v int) {
		var b [8]byte
		for i := range b {
			b[i] = byte(v >> (8 * i))
		}
		h.Write(b[:])
	}

	// Lists holding the same elements hash equal no matter how they
	// were put together.
	a := Of(1, 2, 3, 4)
	b := New[int]()
	b.PushFront(2)
	b.PushFront(1)
	b.PushBack(3)
	b.PushBack(4)
	tail, err := b.SplitOff(2)
	require.NoError(t, err)
	b.Append(tail)
	require.True(t, Equal(a, b))

	assert.Equal(t, Hash(seed, a, writeInt), Hash(seed, b, writeInt))

	// The length prefix keeps a list and its extension apart even
	// when the extension only adds zero bytes.
	assert.NotEqual(t, Hash(seed, Of(1, 2), writeInt), Hash(seed, Of(1, 2, 0), writeInt))
	assert.NotEqual(t, Hash(seed, a, writeInt), Hash(seed, Of(1, 2, 3), writeInt))
}

func TestClone(t *testing.T) {
	ar := NewArena[int]()
	l := ar.NewList()
	l.Extend(1, 2, 3)

	c := l.Clone()
	assert.Same(t, l.arena, c.arena)
	assert.True(t, Equal(l, c))

	c.PushBack(4)
	l.PopFront()
	assert.Equal(t, []int{2, 3}, elems(l))
	assert.Equal(t, []int{1, 2, 3, 4}, elems(c))
	checkLinks(t, l)
	checkLinks(t, c)
}

func TestCloneFunc(t *testing.T) {
	type box struct{ n *int }
	one, two := 1, 2
	l := Of(box{&one}, box{&two})

	deep := l.CloneFunc(func(b box) box {
		n := *b.n
		return box{&n}
	})

	*deep.FrontMut() = box{n: new(int)}
	v, ok := l.Front()
	require.True(t, ok)
	assert.Equal(t, 1, *v.n, "deep clone shares no element state")
}

func TestCollect(t *testing.T) {
	l := Of(1, 2, 3)
	c := Collect(l.All())
	assert.True(t, Equal(l, c))
	assert.NotSame(t, l, c)

	empty := Collect(New[string]().All())
	assert.True(t, empty.Empty())
}

func TestOf(t *testing.T) {
	assert.True(t, Of[int]().Empty())
	assert.Equal(t, []string{"x", "y"}, elems(Of("x", "y")))
}
