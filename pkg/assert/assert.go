/*
Package assert contains the equality checks used by the conformance suite.
Every check returns nil on success and a *Failure otherwise, there is no
recovery: callers are expected to return the failure up the stack.
*/
package assert

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/nspcc-dev/jsarray/pkg/value"
	"github.com/pmezard/go-difflib/difflib"
)

// ErrAssertion is the error all assertion failures match with errors.Is.
var ErrAssertion = errors.New("assertion failed")

// DefaultEpsilon is the tolerance used for numeric comparisons when none is
// given.
const DefaultEpsilon = 0

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// Failure is the result of a failed assertion.
type Failure struct {
	Expected value.Item
	Actual   value.Item
	// Epsilon is the tolerance used for numeric comparisons, it's only
	// meaningful when HasEpsilon is set.
	Epsilon    float64
	HasEpsilon bool
	// Diff is a unified diff of expected and actual array contents.
	Diff string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: got '%s', expected '%s'", ErrAssertion, render(f.Actual), render(f.Expected))
	if f.Actual != nil && f.Expected != nil && f.Actual.Type() != f.Expected.Type() {
		fmt.Fprintf(&sb, " (%s/%s)", f.Actual.Type(), f.Expected.Type())
	}
	if f.HasEpsilon {
		fmt.Fprintf(&sb, " with epsilon %v", f.Epsilon)
	}
	if f.Diff != "" {
		sb.WriteString("\n")
		sb.WriteString(f.Diff)
	}
	return sb.String()
}

// Unwrap returns ErrAssertion.
func (f *Failure) Unwrap() error {
	return ErrAssertion
}

// Detail returns a verbose dump of both values.
func (f *Failure) Detail() string {
	return "expected: " + dumper.Sdump(f.Expected) + "actual: " + dumper.Sdump(f.Actual)
}

func render(item value.Item) string {
	if item == nil {
		return "<nil>"
	}
	return item.String()
}

// Equals checks expected and actual for equality, arguments are converted
// with value.Make. If expected is a number, actual must be a number that
// differs from it by no more than epsilon (DefaultEpsilon when omitted).
// Otherwise both values must be strictly equal, so Undefined, Null and the
// strings "undefined" and "null" are all different.
func Equals(expected, actual any, epsilon ...float64) error {
	var (
		exp = value.Make(expected)
		act = value.Make(actual)
	)
	if n, ok := exp.(value.Number); ok {
		f := &Failure{Expected: exp, Actual: act, Epsilon: DefaultEpsilon}
		if len(epsilon) > 0 {
			f.Epsilon = epsilon[0]
			f.HasEpsilon = true
		}
		a, ok := act.(value.Number)
		if !ok {
			return f
		}
		if n == a {
			return nil
		}
		// NaN fails here as well.
		if !(math.Abs(float64(n)-float64(a)) <= f.Epsilon) {
			return f
		}
		return nil
	}
	if !value.StrictEquals(exp, act) {
		return &Failure{Expected: exp, Actual: act}
	}
	return nil
}

// True checks that actual is the boolean true.
func True(actual any) error {
	return Equals(true, actual)
}

// False checks that actual is the boolean false.
func False(actual any) error {
	return Equals(false, actual)
}

// Items checks that arr contains exactly the expected elements, in order.
// Elements are compared the way Array.Includes does, so NaN matches NaN.
func Items(expected []any, arr *value.Array) error {
	exp := value.NewArrayOf(expected...)
	if arr != nil && exp.Len() == arr.Len() {
		var mismatch bool
		for i := 0; i < exp.Len(); i++ {
			if !value.SameValueZero(exp.Get(i), arr.Get(i)) {
				mismatch = true
				break
			}
		}
		if !mismatch {
			return nil
		}
	}
	f := &Failure{Expected: exp}
	if arr != nil {
		f.Actual = arr
		f.Diff = diff(exp, arr)
	}
	return f
}

// Error checks that err matches target.
func Error(err, target error) error {
	if errors.Is(err, target) {
		return nil
	}
	actual := value.Item(value.Null{})
	if err != nil {
		actual = value.String(err.Error())
	}
	return &Failure{Expected: value.String(target.Error()), Actual: actual}
}

func diff(expected, actual *value.Array) string {
	d, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        lines(expected),
		B:        lines(actual),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	if err != nil {
		return ""
	}
	return d
}

func lines(arr *value.Array) []string {
	res := make([]string, arr.Len())
	for i := range res {
		it := arr.Get(i)
		res[i] = fmt.Sprintf("%d: %s(%s)\n", i, it.Type(), it)
	}
	return res
}
