package value

import (
	"slices"
	"strings"
)

// Comparator orders two elements: a negative result puts a before b, a
// positive one puts a after b and zero keeps their relative order.
type Comparator func(a, b Item) int

// CompareFunc adapts a comparator returning an arbitrary number (like
// `(a, b) => a - b`) to Comparator. NaN results are treated as zero.
func CompareFunc(fn func(a, b Item) float64) Comparator {
	return func(a, b Item) int {
		return sign(fn(a, b))
	}
}

// Ascending orders elements by their numeric value.
func Ascending(a, b Item) int {
	return sign(ToNumber(a) - ToNumber(b))
}

// Descending orders elements by their numeric value in reverse.
func Descending(a, b Item) int {
	return sign(ToNumber(b) - ToNumber(a))
}

// CompareText orders elements by their textual forms, it's the default
// Array ordering.
func CompareText(a, b Item) int {
	return strings.Compare(a.String(), b.String())
}

func sign(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	default: // Zero and NaN.
		return 0
	}
}

// Sort sorts the Array in place. The sort is stable, Undefined elements are
// always moved to the end without calling cmp. A nil cmp means CompareText.
func (a *Array) Sort(cmp Comparator) error {
	if a.IsFrozen() {
		return ErrFrozen
	}
	slices.SortStableFunc(a.value, order(cmp))
	return nil
}

// IsSorted checks whether Sort with the same cmp would leave the Array
// unchanged.
func (a *Array) IsSorted(cmp Comparator) bool {
	return slices.IsSortedFunc(a.value, order(cmp))
}

// order puts Undefined elements after all the others and orders the rest
// with cmp.
func order(cmp Comparator) func(x, y Item) int {
	if cmp == nil {
		cmp = CompareText
	}
	return func(x, y Item) int {
		_, ux := x.(Undefined)
		_, uy := y.(Undefined)
		switch {
		case ux && uy:
			return 0
		case ux:
			return 1
		case uy:
			return -1
		default:
			return cmp(x, y)
		}
	}
}
