// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package snapshot models the application configuration snapshot stored in
// app/etc/env.php: an ordered, recursively nested key/value tree that is
// loaded from a PHP array literal and written back in var_export layout.
//
// Values held by an [Array] are always one of:
//   - string
//   - int64
//   - float64
//   - bool
//   - nil
//   - *Array
package snapshot

import (
	"strconv"
)

// Key is an array key. Like the host runtime, keys are either integers or
// strings; decimal strings that fit into an int64 are stored as integers.
type Key struct {
	Int   int64
	Str   string
	IsInt bool
}

// IntKey returns an integer key.
func IntKey(n int64) Key {
	return Key{Int: n, IsInt: true}
}

// StringKey returns a string key, normalising canonical decimal strings
// ("0", "42", "-7") to integer keys.
func StringKey(s string) Key {
	if n, ok := canonicalInt(s); ok {
		return IntKey(n)
	}
	return Key{Str: s}
}

// String returns the key as it would be printed without quotes.
func (k Key) String() string {
	if k.IsInt {
		return strconv.FormatInt(k.Int, 10)
	}
	return k.Str
}

func canonicalInt(s string) (int64, bool) {
	if s == "" || len(s) > 20 {
		return 0, false
	}
	digits := s
	if s[0] == '-' {
		digits = s[1:]
	}
	if digits == "" || (digits[0] == '0' && len(digits) > 1) || s == "-0" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Array is an insertion-ordered map. The zero value is not usable; create
// arrays with [NewArray].
type Array struct {
	keys   []Key
	values map[Key]any
	next   int64
}

// NewArray returns an empty array.
func NewArray() *Array {
	return &Array{values: make(map[Key]any)}
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (a *Array) Keys() []Key {
	keys := make([]Key, len(a.keys))
	copy(keys, a.keys)
	return keys
}

// Get returns the value stored under k.
func (a *Array) Get(k Key) (any, bool) {
	v, ok := a.values[k]
	return v, ok
}

// Has reports whether k is present, including keys holding nil.
func (a *Array) Has(k Key) bool {
	_, ok := a.values[k]
	return ok
}

// Set stores v under k. An existing key keeps its position; a new key is
// appended.
func (a *Array) Set(k Key, v any) {
	if _, ok := a.values[k]; !ok {
		a.keys = append(a.keys, k)
	}
	a.values[k] = normalize(v)
	if k.IsInt && k.Int >= a.next {
		a.next = k.Int + 1
	}
}

// Put stores v under the string key name and returns a for chaining.
func (a *Array) Put(name string, v any) *Array {
	a.Set(StringKey(name), v)
	return a
}

// Append stores v under the next free integer key.
func (a *Array) Append(v any) {
	a.Set(IntKey(a.next), v)
}

// Delete removes k and reports whether it was present. The next free
// integer key is not lowered.
func (a *Array) Delete(k Key) bool {
	if _, ok := a.values[k]; !ok {
		return false
	}
	delete(a.values, k)
	for i, key := range a.keys {
		if key == k {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
	return true
}

// Lookup walks nested arrays by string keys and returns the value found at
// the end of path.
func (a *Array) Lookup(path ...string) (any, bool) {
	var cur any = a
	for _, name := range path {
		arr, ok := cur.(*Array)
		if !ok {
			return nil, false
		}
		cur, ok = arr.Get(StringKey(name))
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Clone returns a deep copy of a.
func (a *Array) Clone() *Array {
	c := &Array{
		keys:   make([]Key, len(a.keys)),
		values: make(map[Key]any, len(a.values)),
		next:   a.next,
	}
	copy(c.keys, a.keys)
	for k, v := range a.values {
		c.values[k] = cloneValue(v)
	}
	return c
}

// Equal reports whether a and b hold the same keys in the same order with
// equal values.
func Equal(a, b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.keys) != len(b.keys) {
		return false
	}
	for i, k := range a.keys {
		if b.keys[i] != k {
			return false
		}
		if !equalValue(a.values[k], b.values[k]) {
			return false
		}
	}
	return true
}

func equalValue(x, y any) bool {
	xa, xok := x.(*Array)
	ya, yok := y.(*Array)
	if xok || yok {
		return xok && yok && Equal(xa, ya)
	}
	return x == y
}

func cloneValue(v any) any {
	if arr, ok := v.(*Array); ok {
		return arr.Clone()
	}
	return v
}

func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
