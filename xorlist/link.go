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

// ref is the identity of a node: its slot index in an arena. Slot 0 of
// every arena is reserved, so no live node is ever identified by zero.
type ref uint32

// nilRef is the "no neighbor" identity.
const nilRef ref = 0

// encodeLink folds the identities of a node's two neighbors into one
// link word. nilRef is the identity element of XOR, so a boundary node
// stores its single neighbor unchanged and a lone node stores nilRef.
func encodeLink(prev, next ref) ref {
	return prev ^ next
}

// decodeLink recovers a node's other neighbor from its link word. The
// word is meaningless on its own: the caller must supply one neighbor
// it already knows, or nilRef when entering the list from outside
// either end. A nilRef result means there is no neighbor on that side.
func decodeLink(known, word ref) ref {
	return known ^ word
}
