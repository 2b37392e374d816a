package value

import (
	"slices"
	"strings"
)

// MaxLength is the maximum number of elements an Array and the maximum
// number of code points a String produced by String operations can have.
const MaxLength = 1 << 20

// ro is a read-only flag shared by reference items.
type ro struct {
	frozen bool
}

// Freeze marks the item as read-only, every subsequent modification attempt
// fails with ErrFrozen.
func (o *ro) Freeze() {
	o.frozen = true
}

// IsFrozen checks whether the item is read-only.
func (o *ro) IsFrozen() bool {
	return o.frozen
}

// Array represents an ordered resizable sequence of Items.
type Array struct {
	value []Item
	ro
}

// NewArray returns a new Array object. The slice is used as is, nil elements
// are replaced with Undefined.
func NewArray(items []Item) *Array {
	for i := range items {
		if items[i] == nil {
			items[i] = Undefined{}
		}
	}
	return &Array{
		value: items,
	}
}

// NewArrayOf returns a new Array made of the provided Go values, see Make for
// the list of supported types.
func NewArrayOf(items ...any) *Array {
	return makeArray(items)
}

// NewArrayLen returns a new Array of the given length filled with Undefined.
func NewArrayLen(n int) (*Array, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	if n > MaxLength {
		return nil, ErrTooBig
	}
	arr := make([]Item, n)
	for i := range arr {
		arr[i] = Undefined{}
	}
	return &Array{value: arr}, nil
}

// From returns a new Array containing a shallow copy of items.
func From(items []Item) *Array {
	return NewArray(slices.Clone(items))
}

// FromFunc returns a new Array with every element of items converted by fn.
func FromFunc[T any](items []T, fn func(T) Item) *Array {
	res := make([]Item, len(items))
	for i := range items {
		res[i] = fn(items[i])
	}
	return NewArray(res)
}

// IsArray checks whether the item is an Array.
func IsArray(item Item) bool {
	_, ok := item.(*Array)
	return ok
}

// Value implements the Item interface. The result shares memory with the
// Array and must not be modified.
func (a *Array) Value() any {
	return a.value
}

// Items returns a copy of Array elements.
func (a *Array) Items() []Item {
	return slices.Clone(a.value)
}

// Len returns the length of the Array.
func (a *Array) Len() int {
	return len(a.value)
}

// String implements the Item interface, it's the same as Join(",").
func (a *Array) String() string {
	return a.Join(",")
}

// Dup implements the Item interface.
func (a *Array) Dup() Item {
	// reference type
	return a
}

// TryBool implements the Item interface.
func (a *Array) TryBool() bool { return true }

// TryNumber implements the Item interface.
func (a *Array) TryNumber() float64 {
	return parseNumber(a.String())
}

// Equals implements the Item interface.
func (a *Array) Equals(s Item) bool {
	return a == s
}

// Type implements the Item interface.
func (a *Array) Type() Type { return ArrayT }

// Get returns the element at the given index or Undefined if there is no
// such element.
func (a *Array) Get(index int) Item {
	if index < 0 || index >= len(a.value) {
		return Undefined{}
	}
	return a.value[index]
}

// Set replaces the element at the given index. Setting past the end grows
// the Array filling the gap with Undefined, negative indices are ignored.
// Indices at or above MaxLength are rejected with ErrTooBig.
func (a *Array) Set(index int, item Item) error {
	if a.IsFrozen() {
		return ErrFrozen
	}
	if index < 0 {
		return nil
	}
	if index >= MaxLength {
		return ErrTooBig
	}
	if item == nil {
		item = Undefined{}
	}
	if n := len(a.value); index >= n {
		a.value = slices.Grow(a.value, index+1-n)[:index+1]
		for i := n; i < index; i++ {
			a.value[i] = Undefined{}
		}
	}
	a.value[index] = item
	return nil
}

// Delete empties the slot at the given index, the length is not changed.
func (a *Array) Delete(index int) error {
	if a.IsFrozen() {
		return ErrFrozen
	}
	if index >= 0 && index < len(a.value) {
		a.value[index] = Undefined{}
	}
	return nil
}

// Push appends items to the end of the Array and returns the new length.
func (a *Array) Push(items ...Item) (int, error) {
	if a.IsFrozen() {
		return len(a.value), ErrFrozen
	}
	if len(a.value)+len(items) > MaxLength {
		return len(a.value), ErrTooBig
	}
	for _, item := range items {
		if item == nil {
			item = Undefined{}
		}
		a.value = append(a.value, item)
	}
	return len(a.value), nil
}

// Pop removes the last element and returns it, Undefined is returned for an
// empty Array.
func (a *Array) Pop() (Item, error) {
	if a.IsFrozen() {
		return nil, ErrFrozen
	}
	if len(a.value) == 0 {
		return Undefined{}, nil
	}
	last := a.value[len(a.value)-1]
	a.value[len(a.value)-1] = nil
	a.value = a.value[:len(a.value)-1]
	return last, nil
}

// Shift removes the first element and returns it, Undefined is returned for
// an empty Array.
func (a *Array) Shift() (Item, error) {
	if a.IsFrozen() {
		return nil, ErrFrozen
	}
	if len(a.value) == 0 {
		return Undefined{}, nil
	}
	first := a.value[0]
	a.value = slices.Delete(a.value, 0, 1)
	return first, nil
}

// Unshift inserts items at the start of the Array and returns the new
// length.
func (a *Array) Unshift(items ...Item) (int, error) {
	if a.IsFrozen() {
		return len(a.value), ErrFrozen
	}
	if len(a.value)+len(items) > MaxLength {
		return len(a.value), ErrTooBig
	}
	ins := make([]Item, len(items))
	for i := range items {
		if items[i] == nil {
			ins[i] = Undefined{}
		} else {
			ins[i] = items[i]
		}
	}
	a.value = slices.Insert(a.value, 0, ins...)
	return len(a.value), nil
}

// Concat returns a new Array made of the elements of a followed by items.
// Array arguments are spread, every other item is appended as is. The
// receiver is never modified.
func (a *Array) Concat(items ...Item) *Array {
	res := slices.Clone(a.value)
	for _, item := range items {
		if arr, ok := item.(*Array); ok {
			res = append(res, arr.value...)
			continue
		}
		if item == nil {
			item = Undefined{}
		}
		res = append(res, item)
	}
	if res == nil {
		res = []Item{}
	}
	return &Array{value: res}
}

// Join concatenates textual forms of all elements separated by sep.
// Undefined and Null elements are rendered as empty strings, so are the
// references to arrays that are being joined already.
func (a *Array) Join(sep string) string {
	var sb strings.Builder
	a.join(&sb, sep, make(map[*Array]bool))
	return sb.String()
}

func (a *Array) join(sb *strings.Builder, sep string, seen map[*Array]bool) {
	seen[a] = true
	defer delete(seen, a)
	for i, item := range a.value {
		if i > 0 {
			sb.WriteString(sep)
		}
		if IsNullish(item) {
			continue
		}
		switch it := item.(type) {
		case *Array:
			if !seen[it] {
				it.join(sb, ",", seen)
			}
		default:
			sb.WriteString(it.String())
		}
	}
}

// Reverse reverses the Array in place.
func (a *Array) Reverse() error {
	if a.IsFrozen() {
		return ErrFrozen
	}
	slices.Reverse(a.value)
	return nil
}

// Slice returns a new Array with elements in [start, end). Negative indices
// count from the end.
func (a *Array) Slice(start, end int) *Array {
	k := relativeIndex(start, len(a.value))
	fin := relativeIndex(end, len(a.value))
	if fin < k {
		fin = k
	}
	return &Array{value: slices.Clone(a.value[k:fin])}
}

// SliceFrom returns a new Array with elements from start to the end.
func (a *Array) SliceFrom(start int) *Array {
	return a.Slice(start, len(a.value))
}

// Splice removes deleteCount elements starting from start, inserts items in
// their place and returns removed elements as a new Array.
func (a *Array) Splice(start, deleteCount int, items ...Item) (*Array, error) {
	if a.IsFrozen() {
		return nil, ErrFrozen
	}
	actualStart := relativeIndex(start, len(a.value))
	actualDeleteCount := min(max(deleteCount, 0), len(a.value)-actualStart)
	if len(a.value)-actualDeleteCount+len(items) > MaxLength {
		return nil, ErrTooBig
	}

	removed := slices.Clone(a.value[actualStart : actualStart+actualDeleteCount])
	if removed == nil {
		removed = []Item{}
	}
	ins := make([]Item, len(items))
	for i := range items {
		if items[i] == nil {
			ins[i] = Undefined{}
		} else {
			ins[i] = items[i]
		}
	}
	a.value = slices.Replace(a.value, actualStart, actualStart+actualDeleteCount, ins...)
	return &Array{value: removed}, nil
}

// relativeIndex converts a possibly negative index into [0, length].
func relativeIndex(i, length int) int {
	if i < 0 {
		return max(length+i, 0)
	}
	return min(i, length)
}
