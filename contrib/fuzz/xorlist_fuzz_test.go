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

package fuzz

import (
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"

	"github.com/containerd/collections/xorlist"
)

const familySize = 4

func requireSameElements(t *testing.T, l *xorlist.List[int], model []int) {
	t.Helper()
	if l.Len() != len(model) {
		t.Fatalf("Len() = %d, model holds %d", l.Len(), len(model))
	}
	i := 0
	for v := range l.All() {
		if v != model[i] {
			t.Fatalf("forward position %d: got %d, want %d", i, v, model[i])
		}
		i++
	}
	i = len(model) - 1
	for v := range l.Backward() {
		if v != model[i] {
			t.Fatalf("backward position %d: got %d, want %d", i, v, model[i])
		}
		i--
	}
}

// FuzzListFamily drives a family of lists sharing one arena through
// random pushes, pops, splits and splices, mirroring every operation
// onto plain slices and requiring the lists to agree with them from
// both directions after every step.
func FuzzListFamily(f *testing.F) {
	f.Fuzz(func(t *testing.T, data []byte) {
		ff := fuzz.NewConsumer(data)

		arena := xorlist.NewArena[int]()
		lists := make([]*xorlist.List[int], familySize)
		models := make([][]int, familySize)
		for i := range lists {
			lists[i] = arena.NewList()
		}

		for {
			op, err := ff.GetInt()
			if err != nil {
				break
			}
			target, err := ff.GetInt()
			if err != nil {
				break
			}
			li := target % familySize
			l := lists[li]

			switch op % 8 {
			case 0:
				v, err := ff.GetInt()
				if err != nil {
					break
				}
				l.PushFront(v)
				models[li] = append([]int{v}, models[li]...)
			case 1:
				v, err := ff.GetInt()
				if err != nil {
					break
				}
				l.PushBack(v)
				models[li] = append(models[li], v)
			case 2:
				v, ok := l.PopFront()
				if ok != (len(models[li]) > 0) {
					t.Fatalf("PopFront ok = %v with model length %d", ok, len(models[li]))
				}
				if ok {
					if v != models[li][0] {
						t.Fatalf("PopFront = %d, want %d", v, models[li][0])
					}
					models[li] = models[li][1:]
				}
			case 3:
				v, ok := l.PopBack()
				if ok != (len(models[li]) > 0) {
					t.Fatalf("PopBack ok = %v with model length %d", ok, len(models[li]))
				}
				if ok {
					last := len(models[li]) - 1
					if v != models[li][last] {
						t.Fatalf("PopBack = %d, want %d", v, models[li][last])
					}
					models[li] = models[li][:last]
				}
			case 4:
				at, err := ff.GetInt()
				if err != nil {
					break
				}
				at %= l.Len() + 1
				tail, err := l.SplitOff(at)
				if err != nil {
					t.Fatalf("SplitOff(%d) of %d elements: %v", at, l.Len(), err)
				}
				lj := (li + 1) % familySize
				lists[lj].Append(tail)
				moved := append([]int(nil), models[li][at:]...)
				models[li] = models[li][:at]
				models[lj] = append(models[lj], moved...)
				requireSameElements(t, lists[lj], models[lj])
			case 5:
				lj := (li + 1) % familySize
				lists[lj].Append(l)
				models[lj] = append(models[lj], models[li]...)
				models[li] = nil
				requireSameElements(t, lists[lj], models[lj])
			case 6:
				front, ok := l.Front()
				if ok != (len(models[li]) > 0) {
					t.Fatalf("Front ok = %v with model length %d", ok, len(models[li]))
				}
				if ok && front != models[li][0] {
					t.Fatalf("Front = %d, want %d", front, models[li][0])
				}
				back, ok := l.Back()
				if ok && back != models[li][len(models[li])-1] {
					t.Fatalf("Back = %d, want %d", back, models[li][len(models[li])-1])
				}
			case 7:
				l.Clear()
				models[li] = nil
			}
			requireSameElements(t, lists[li], models[li])
		}

		total := 0
		for i := range lists {
			requireSameElements(t, lists[i], models[i])
			total += len(models[i])
		}
		if arena.Len() != total {
			t.Fatalf("arena holds %d live nodes, lists hold %d elements", arena.Len(), total)
		}
	})
}
