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

// Package interval provides a map of disjoint half-open intervals, used to
// look up which token covers a given byte offset.
package interval

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/tidwall/btree"
)

// Map is a collection of disjoint half-open intervals [Start, End), each
// associated with a value.
//
// A zero Map is empty and ready to use.
type Map[K cmp.Ordered, V any] struct {
	// Keys are interval starts.
	tree btree.Map[K, entry[K, V]]
}

// Interval is an entry in a [Map].
type Interval[K cmp.Ordered, V any] struct {
	Start, End K
	Value      V
}

type entry[K cmp.Ordered, V any] struct {
	end   K
	value V
}

// Len returns the number of intervals in the map.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}

// Insert adds [start, end) to the map.
//
// Returns false and leaves the map unchanged if the interval is empty or
// overlaps one already present.
func (m *Map[K, V]) Insert(start, end K, value V) bool {
	if end <= start {
		return false
	}
	if prev, ok := m.floor(start); ok && start < prev.End {
		return false
	}
	it := m.tree.Iter()
	if it.Seek(start) && it.Key() < end {
		return false
	}
	m.tree.Set(start, entry[K, V]{end: end, value: value})
	return true
}

// Get looks up the interval which contains point.
func (m *Map[K, V]) Get(point K) (Interval[K, V], bool) {
	prev, ok := m.floor(point)
	if !ok || point >= prev.End {
		return Interval[K, V]{}, false
	}
	return prev, true
}

// All returns an iterator over the intervals in this map, in order.
func (m *Map[K, V]) All() iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		m.tree.Scan(func(start K, e entry[K, V]) bool {
			return yield(Interval[K, V]{Start: start, End: e.end, Value: e.value})
		})
	}
}

// Format implements [fmt.Formatter].
func (m *Map[K, V]) Format(s fmt.State, v rune) {
	fmt.Fprint(s, "{")
	first := true
	for in := range m.All() {
		if !first {
			fmt.Fprint(s, ", ")
		}
		first = false
		fmt.Fprintf(s, "[%v, %v): ", in.Start, in.End)
		fmt.Fprintf(s, fmt.FormatString(s, v), in.Value)
	}
	fmt.Fprint(s, "}")
}

// floor returns the interval with the greatest start not after key.
func (m *Map[K, V]) floor(key K) (out Interval[K, V], ok bool) {
	m.tree.Descend(key, func(start K, e entry[K, V]) bool {
		out, ok = Interval[K, V]{Start: start, End: e.end, Value: e.value}, true
		return false
	})
	return out, ok
}
