package value

import (
	"fmt"
	"strconv"
)

// canonicalKey renders v as the string Map and Set index it under, for
// the primitive kinds allowed as keys (Null, Bool, the numeric kinds,
// Char, Text); Seq/Map/Set/Host/Pattern/Range are not valid keys.
// Integral numbers of every numeric kind (and Char) share one key, so
// I32(5), I64(5), BigInt(5) and F64(5) collide. Bool and Text keys never
// collide with numeric ones, even where Equal treats them as equal (true
// and 1, "5" and 5), and non-integral values key by their printed form,
// so F64(1.5) and the BigDec 1.50 are distinct keys.
func canonicalKey(v Value) (string, bool) {
	switch v.kind {
	case KindNull:
		return "n:", true
	case KindBool:
		return "b:" + strconv.FormatBool(v.Bool()), true
	case KindAtomicBool:
		return "b:" + strconv.FormatBool(v.AtomicBool().Load()), true
	case KindI8:
		return "i:" + strconv.FormatInt(int64(v.I8()), 10), true
	case KindI16:
		return "i:" + strconv.FormatInt(int64(v.I16()), 10), true
	case KindI32:
		return "i:" + strconv.FormatInt(int64(v.I32()), 10), true
	case KindI64:
		return "i:" + strconv.FormatInt(v.I64(), 10), true
	case KindChar:
		return "i:" + strconv.FormatInt(int64(v.Char()), 10), true
	case KindBigInt:
		return "i:" + v.BigInt().String(), true
	case KindBigDec:
		if n, exact := v.BigDec().Int64(); exact {
			return "i:" + strconv.FormatInt(n, 10), true
		}
		return "d:" + v.BigDec().String(), true
	case KindF32:
		f := float64(v.F32())
		if f == float64(int64(f)) {
			return "i:" + strconv.FormatInt(int64(f), 10), true
		}
		return "d:" + strconv.FormatFloat(f, 'g', -1, 64), true
	case KindF64:
		f := v.F64()
		if f == float64(int64(f)) {
			return "i:" + strconv.FormatInt(int64(f), 10), true
		}
		return "d:" + strconv.FormatFloat(f, 'g', -1, 64), true
	case KindText:
		return "s:" + v.Text(), true
	default:
		return "", false
	}
}

// entry is a key/value pair retained in insertion order for deterministic
// printing and iteration, even though spec.md §3 says order is not
// semantically significant for Map.
type entry struct {
	key Value
	val Value
}

// Map is jexl's Map kind: a mapping from Value to Value. Lookups hash by
// canonicalKey rather than Go's native map equality, because BigInt and
// BigDec keys carry pointer payloads that would otherwise compare by
// identity instead of by value.
type Map struct {
	index   map[string]int
	entries []entry
}

func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

func NewMapValue() Value {
	return Value{kind: KindMap, ptr: NewMap()}
}

func (v Value) Map() *Map {
	if v.kind != KindMap {
		panic("value: Map() on non-map Value")
	}
	return v.ptr.(*Map)
}

// Set inserts or overwrites key => val. It panics if key is not a valid
// map-key kind (Seq/Map/Set/Host/Pattern/Range), matching Go's own
// panic-on-unhashable-key behavior for a host-API misuse rather than a
// recoverable evaluation error (SPEC_FULL.md §3).
func (m *Map) Set(key, val Value) {
	k, ok := canonicalKey(key)
	if !ok {
		panic(fmt.Sprintf("value: %s is not a valid map key", key.Kind()))
	}
	if i, exists := m.index[k]; exists {
		m.entries[i].val = val
		return
	}
	m.index[k] = len(m.entries)
	m.entries = append(m.entries, entry{key: key, val: val})
}

func (m *Map) Get(key Value) (Value, bool) {
	k, ok := canonicalKey(key)
	if !ok {
		panic(fmt.Sprintf("value: %s is not a valid map key", key.Kind()))
	}
	i, exists := m.index[k]
	if !exists {
		return Value{}, false
	}
	return m.entries[i].val, true
}

func (m *Map) Has(key Value) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *Map) Delete(key Value) bool {
	k, ok := canonicalKey(key)
	if !ok {
		panic(fmt.Sprintf("value: %s is not a valid map key", key.Kind()))
	}
	i, exists := m.index[k]
	if !exists {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, k)
	for j := i; j < len(m.entries); j++ {
		m.index[mustKey(m.entries[j].key)] = j
	}
	return true
}

func mustKey(v Value) string {
	k, _ := canonicalKey(v)
	return k
}

func (m *Map) Len() int { return len(m.entries) }

func (m *Map) Keys() []Value {
	keys := make([]Value, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return keys
}

func (m *Map) Values() []Value {
	vals := make([]Value, len(m.entries))
	for i, e := range m.entries {
		vals[i] = e.val
	}
	return vals
}

// Set is jexl's Set kind, backed by the same canonical-key indexing as Map.
type Set struct {
	index   map[string]int
	entries []Value
}

func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

func NewSetValue() Value {
	return Value{kind: KindSet, ptr: NewSet()}
}

func (v Value) Set() *Set {
	if v.kind != KindSet {
		panic("value: Set() on non-set Value")
	}
	return v.ptr.(*Set)
}

func (s *Set) Add(val Value) {
	k, ok := canonicalKey(val)
	if !ok {
		panic(fmt.Sprintf("value: %s is not a valid set member", val.Kind()))
	}
	if _, exists := s.index[k]; exists {
		return
	}
	s.index[k] = len(s.entries)
	s.entries = append(s.entries, val)
}

func (s *Set) Has(val Value) bool {
	k, ok := canonicalKey(val)
	if !ok {
		panic(fmt.Sprintf("value: %s is not a valid set member", val.Kind()))
	}
	_, exists := s.index[k]
	return exists
}

func (s *Set) Len() int { return len(s.entries) }

func (s *Set) Values() []Value { return s.entries }
