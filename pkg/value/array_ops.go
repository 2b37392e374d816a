package value

// Callback is invoked for Array elements by iteration methods, it receives
// the element and its index.
type Callback func(item Item, index int)

// Predicate tests Array elements for search and filtering methods.
type Predicate func(item Item, index int) bool

// Mapper converts Array elements for Map.
type Mapper func(item Item, index int) Item

// Reducer combines the accumulator with the next Array element.
type Reducer func(acc Item, item Item, index int) Item

// CopyWithin copies elements starting from start to the end of the Array to
// the position target. The length is never changed.
func (a *Array) CopyWithin(target, start int) error {
	return a.CopyWithinRange(target, start, len(a.value))
}

// CopyWithinRange copies elements in [start, end) to the position target,
// overwriting existing ones. Source and destination ranges may overlap.
func (a *Array) CopyWithinRange(target, start, end int) error {
	if a.IsFrozen() {
		return ErrFrozen
	}
	var (
		l    = len(a.value)
		to   = relativeIndex(target, l)
		from = relativeIndex(start, l)
		fin  = relativeIndex(end, l)
	)
	count := min(fin-from, l-to)
	if count > 0 {
		copy(a.value[to:to+count], a.value[from:from+count])
	}
	return nil
}

// Fill overwrites elements from start to the end of the Array with item.
func (a *Array) Fill(item Item, start int) error {
	return a.FillRange(item, start, len(a.value))
}

// FillRange overwrites elements in [start, end) with item.
func (a *Array) FillRange(item Item, start, end int) error {
	if a.IsFrozen() {
		return ErrFrozen
	}
	if item == nil {
		item = Undefined{}
	}
	k := relativeIndex(start, len(a.value))
	fin := relativeIndex(end, len(a.value))
	for ; k < fin; k++ {
		a.value[k] = item
	}
	return nil
}

// Every checks whether fn holds for all elements. It stops on the first
// element fn doesn't hold for.
func (a *Array) Every(fn Predicate) bool {
	for k := 0; k < len(a.value); k++ {
		if !fn(a.value[k], k) {
			return false
		}
	}
	return true
}

// Some checks whether fn holds for at least one element.
func (a *Array) Some(fn Predicate) bool {
	return a.FindIndex(fn) >= 0
}

// Filter returns a new Array with elements fn holds for, in the original
// order.
func (a *Array) Filter(fn Predicate) *Array {
	res := make([]Item, 0)
	for k := 0; k < len(a.value); k++ {
		if fn(a.value[k], k) {
			res = append(res, a.value[k])
		}
	}
	return &Array{value: res}
}

// Find returns the first element fn holds for or Undefined.
func (a *Array) Find(fn Predicate) Item {
	if k := a.FindIndex(fn); k >= 0 {
		return a.value[k]
	}
	return Undefined{}
}

// FindIndex returns the index of the first element fn holds for or -1.
func (a *Array) FindIndex(fn Predicate) int {
	for k := 0; k < len(a.value); k++ {
		if fn(a.value[k], k) {
			return k
		}
	}
	return -1
}

// ForEach calls fn once for each element in order. Elements appended by fn
// are not visited.
func (a *Array) ForEach(fn Callback) {
	l := len(a.value)
	for k := 0; k < l && k < len(a.value); k++ {
		fn(a.value[k], k)
	}
}

// Map returns a new Array with results of fn applied to every element.
func (a *Array) Map(fn Mapper) *Array {
	res := make([]Item, len(a.value))
	for k := range res {
		res[k] = fn(a.value[k], k)
		if res[k] == nil {
			res[k] = Undefined{}
		}
	}
	return &Array{value: res}
}

// Reduce folds the Array from left to right using the first element as an
// initial accumulator value.
func (a *Array) Reduce(fn Reducer) (Item, error) {
	if len(a.value) == 0 {
		return nil, ErrEmptyReduce
	}
	acc := a.value[0]
	for k := 1; k < len(a.value); k++ {
		acc = fn(acc, a.value[k], k)
	}
	return acc, nil
}

// ReduceWith folds the Array from left to right starting with initial.
func (a *Array) ReduceWith(fn Reducer, initial Item) Item {
	acc := initial
	for k := 0; k < len(a.value); k++ {
		acc = fn(acc, a.value[k], k)
	}
	return acc
}

// ReduceRight folds the Array from right to left using the last element as
// an initial accumulator value.
func (a *Array) ReduceRight(fn Reducer) (Item, error) {
	if len(a.value) == 0 {
		return nil, ErrEmptyReduce
	}
	k := len(a.value) - 1
	acc := a.value[k]
	for k--; k >= 0; k-- {
		acc = fn(acc, a.value[k], k)
	}
	return acc, nil
}

// ReduceRightWith folds the Array from right to left starting with initial.
func (a *Array) ReduceRightWith(fn Reducer, initial Item) Item {
	acc := initial
	for k := len(a.value) - 1; k >= 0; k-- {
		acc = fn(acc, a.value[k], k)
	}
	return acc
}

// Includes checks whether the Array contains item, NaN is found, no type
// coercion is done.
func (a *Array) Includes(item Item) bool {
	return a.IncludesFrom(item, 0)
}

// IncludesFrom is like Includes, but starts the search from the given index.
func (a *Array) IncludesFrom(item Item, fromIndex int) bool {
	for k := relativeIndex(fromIndex, len(a.value)); k < len(a.value); k++ {
		if SameValueZero(item, a.value[k]) {
			return true
		}
	}
	return false
}

// IndexOf returns the index of the first element strictly equal to item or
// -1.
func (a *Array) IndexOf(item Item) int {
	return a.IndexOfFrom(item, 0)
}

// IndexOfFrom is like IndexOf, but starts the search from the given index.
func (a *Array) IndexOfFrom(item Item, fromIndex int) int {
	for k := relativeIndex(fromIndex, len(a.value)); k < len(a.value); k++ {
		if StrictEquals(item, a.value[k]) {
			return k
		}
	}
	return -1
}

// LastIndexOf returns the index of the last element strictly equal to item
// or -1.
func (a *Array) LastIndexOf(item Item) int {
	return a.LastIndexOfFrom(item, len(a.value)-1)
}

// LastIndexOfFrom is like LastIndexOf, but searches backwards starting from
// the given index.
func (a *Array) LastIndexOfFrom(item Item, fromIndex int) int {
	k := min(fromIndex, len(a.value)-1)
	if fromIndex < 0 {
		k = len(a.value) + fromIndex
	}
	for ; k >= 0; k-- {
		if StrictEquals(item, a.value[k]) {
			return k
		}
	}
	return -1
}
