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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verifyModel compares the list with a reference slice in both
// directions and checks the link chain.
func verifyModel(t *testing.T, l *List[int], model []int) {
	t.Helper()
	require.Equal(t, len(model), l.Len())

	i := 0
	for v := range l.All() {
		require.Equal(t, model[i], v, "forward position %d", i)
		i++
	}
	require.Equal(t, len(model), i)

	i = len(model) - 1
	for v := range l.Backward() {
		require.Equal(t, model[i], v, "backward position %d", i)
		i--
	}
	require.Equal(t, -1, i)

	checkLinks(t, l)
}

func FuzzOpsAgainstSliceModel(f *testing.F) {
	f.Add([]byte{2, 3, 2, 3, 0, 1, 0, 1})
	f.Add([]byte{3, 3, 3, 3, 3, 0, 0, 0, 0, 0, 0})
	f.Add([]byte{2, 2, 2, 1, 1, 1, 1})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, ops []byte) {
		l := New[int]()
		var model []int
		for step, op := range ops {
			switch op % 6 {
			case 0:
				v, ok := l.PopBack()
				require.Equal(t, len(model) > 0, ok)
				if ok {
					require.Equal(t, model[len(model)-1], v)
					model = model[:len(model)-1]
				}
			case 1:
				v, ok := l.PopFront()
				require.Equal(t, len(model) > 0, ok)
				if ok {
					require.Equal(t, model[0], v)
					model = model[1:]
				}
			case 2, 4:
				l.PushFront(step)
				model = append([]int{step}, model...)
			case 3, 5:
				l.PushBack(step)
				model = append(model, step)
			}
			require.Equal(t, len(model), l.Len())

			if front, ok := l.Front(); ok {
				require.Equal(t, model[0], front)
			}
			if back, ok := l.Back(); ok {
				require.Equal(t, model[len(model)-1], back)
			}
			if step%16 == 15 {
				verifyModel(t, l, model)
			}
		}
		verifyModel(t, l, model)
	})
}

func TestRandomOps(t *testing.T) {
	for _, size := range []int{3, 16, 189} {
		r := rand.New(rand.NewSource(int64(size)))
		l := New[int]()
		var model []int

		for step := 0; step < 20*size; step++ {
			switch r.Intn(8) {
			case 0:
				v, ok := l.PopBack()
				assert.Equal(t, len(model) > 0, ok)
				if ok {
					require.Equal(t, model[len(model)-1], v)
					model = model[:len(model)-1]
				}
			case 1:
				v, ok := l.PopFront()
				assert.Equal(t, len(model) > 0, ok)
				if ok {
					require.Equal(t, model[0], v)
					model = model[1:]
				}
			case 2, 3:
				v := r.Intn(1000)
				l.PushFront(v)
				model = append([]int{v}, model...)
			case 4, 5:
				v := r.Intn(1000)
				l.PushBack(v)
				model = append(model, v)
			case 6:
				// Split at a random position and splice straight
				// back; contents must come through unchanged.
				at := r.Intn(l.Len() + 1)
				tail, err := l.SplitOff(at)
				require.NoError(t, err)
				require.Equal(t, at, l.Len())
				l.Append(tail)
			case 7:
				// Drain a few elements off the front.
				d := l.Drain()
				for n := r.Intn(3); n > 0 && len(model) > 0; n-- {
					v, ok := d.Next()
					require.True(t, ok)
					require.Equal(t, model[0], v)
					model = model[1:]
				}
			}

			if step%32 == 0 {
				verifyModel(t, l, model)
			}
		}
		verifyModel(t, l, model)
	}
}
