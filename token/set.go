// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

import (
	"fmt"
	"iter"
	"math/bits"
	"slices"
	"strings"
)

// Set is a set of [Kind] values, implicitly ordered by the kinds' intrinsic
// order. Grammar rules use sets to describe FIRST sets.
//
// A zero Set is empty and ready to use.
type Set struct {
	bits [(total + 63) / 64]uint64
}

// NewSet returns a new [Set] with the given values set.
//
// Panics if any value is not one of the constants in this package.
func NewSet(kinds ...Kind) Set {
	return Set{}.With(kinds...)
}

// Len returns the number of values in the set.
func (s Set) Len() int {
	var n int
	for _, v := range s.bits {
		n += bits.OnesCount64(v)
	}
	return n
}

// Has checks whether k is present in this set.
func (s Set) Has(k Kind) bool {
	if k >= total {
		return false
	}
	return s.bits[int(k)/64]&(uint64(1)<<(int(k)%64)) != 0
}

// With returns a new Set with the given values inserted.
//
// Panics if any value is not one of the constants in this package.
func (s Set) With(kinds ...Kind) Set {
	for _, k := range kinds {
		if k >= total {
			panic(fmt.Sprintf("token: inserted invalid kind %d", k))
		}
		s.bits[int(k)/64] |= uint64(1) << (int(k) % 64)
	}
	return s
}

// Union returns the union of s and the given sets.
func (s Set) Union(others ...Set) Set {
	for _, o := range others {
		for i := range s.bits {
			s.bits[i] |= o.bits[i]
		}
	}
	return s
}

// All returns an iterator over the elements in the set.
func (s Set) All() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		for i, word := range s.bits {
			next := i * 64
			for word != 0 {
				if word&1 == 1 && !yield(Kind(next)) {
					return
				}
				word >>= 1
				next++
			}
		}
	}
}

// Join returns a comma-delimited string containing the quoted names of the
// elements of this set, using the given conjunction as the final separator.
//
// For example, NewSet(Semicolon, Comma).Join("or") produces "`,` or `;`".
func (s Set) Join(conj string) string {
	elems := slices.Collect(s.All())

	var out strings.Builder
	switch len(elems) {
	case 0:
	case 1:
		out.WriteString(elems[0].Quoted())
	case 2:
		fmt.Fprintf(&out, "%s %s %s", elems[0].Quoted(), conj, elems[1].Quoted())
	default:
		for _, v := range elems[:len(elems)-1] {
			fmt.Fprintf(&out, "%s, ", v.Quoted())
		}
		fmt.Fprintf(&out, "%s %s", conj, elems[len(elems)-1].Quoted())
	}
	return out.String()
}
