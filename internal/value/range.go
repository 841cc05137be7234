package value

import "fmt"

// Range is the inclusive [from, to] integer range spec.md §3 describes:
// lazy and restartable (iterating twice yields the same sequence), i32
// when both bounds fit, i64 otherwise.
type Range struct {
	from, to int64
	wide     bool // true => i64-range, false => i32-range
}

// NewRange builds an inclusive range; wide is computed automatically
// from whether both bounds fit in int32, per spec.md §3.
func NewRange(from, to int64) *Range {
	wide := from < math32Min || from > math32Max || to < math32Min || to > math32Max
	return &Range{from: from, to: to, wide: wide}
}

const (
	math32Min = int64(-1) << 31
	math32Max = (int64(1) << 31) - 1
)

func NewRangeValue(from, to int64) Value {
	return Value{kind: KindRange, ptr: NewRange(from, to)}
}

func (v Value) Range() *Range {
	if v.kind != KindRange {
		panic("value: Range() on non-range Value")
	}
	return v.ptr.(*Range)
}

func (r *Range) From() int64 { return r.from }
func (r *Range) To() int64   { return r.to }
func (r *Range) IsWide() bool { return r.wide }

func (r *Range) String() string {
	return fmt.Sprintf("%d..%d", r.from, r.to)
}

// Len returns the number of integers the range spans; 0 when from > to.
func (r *Range) Len() int64 {
	if r.to < r.from {
		return 0
	}
	return r.to - r.from + 1
}

// Iterator is a restartable cursor over a Range: two independent
// Iterators over the same *Range never interfere with one another, and
// calling Restart resets a single Iterator back to the first element -
// together these give "iterating twice yields the same sequence".
type Iterator struct {
	r   *Range
	cur int64
	done bool
}

func (r *Range) Iterator() *Iterator {
	return &Iterator{r: r, cur: r.from, done: r.from > r.to}
}

// Next returns the next element and true, or a zero Value and false when
// the range is exhausted.
func (it *Iterator) Next() (Value, bool) {
	if it.done {
		return Value{}, false
	}
	v := it.element(it.cur)
	if it.cur == it.r.to {
		it.done = true
	} else {
		it.cur++
	}
	return v, true
}

// Restart rewinds the iterator to the first element.
func (it *Iterator) Restart() {
	it.cur = it.r.from
	it.done = it.r.from > it.r.to
}

func (it *Iterator) element(n int64) Value {
	if it.r.wide {
		return NewI64(n)
	}
	return NewI32(int32(n))
}
