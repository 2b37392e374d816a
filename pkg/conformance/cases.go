package conformance

import (
	"fmt"
	"math"

	"github.com/nspcc-dev/jsarray/pkg/assert"
	"github.com/nspcc-dev/jsarray/pkg/value"
)

// each runs checks in order and returns the first failure.
func each(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// numbers returns an Array of integers in [from, to].
func numbers(from, to int) *value.Array {
	arr := value.NewArray(nil)
	for i := from; i <= to; i++ {
		_, _ = arr.Push(value.NewNumber(float64(i)))
	}
	return arr
}

func testFreeze() error {
	arr := value.NewArrayOf()
	if _, err := arr.Push(value.Make("Some"), value.Make(math.Pi), value.Make("data")); err != nil {
		return err
	}
	arr.Freeze()

	_, err := arr.Push(value.Make("more data"))
	if err := assert.Error(err, value.ErrFrozen); err != nil {
		return err
	}
	if err := assert.Equals(3, arr.Len()); err != nil {
		return err
	}
	if err := assert.Error(arr.Delete(0), value.ErrFrozen); err != nil {
		return err
	}
	if err := assert.Error(arr.Set(1, value.Make("I wanna eat the pi")), value.ErrFrozen); err != nil {
		return err
	}
	return each(
		assert.Equals(math.Pi, arr.Get(1), 0.0001),
		assert.Equals("Some", arr.Get(0)),
		assert.True(arr.IsFrozen()),
	)
}

func testLength() error {
	arr := value.NewArrayOf()
	if err := assert.Equals(0, arr.Len()); err != nil {
		return err
	}
	n, err := arr.Push(value.Make("some data"))
	if err != nil {
		return err
	}
	if err := each(assert.Equals(1, arr.Len()), assert.Equals(1, n)); err != nil {
		return err
	}
	n, err = arr.Push(value.Make("Lots"), value.Make("of"), value.Make("data"))
	if err != nil {
		return err
	}
	return each(assert.Equals(4, arr.Len()), assert.Equals(4, n))
}

func testConcat() error {
	arr := value.NewArrayOf(1232, 392)

	concat := arr.Concat(value.Make("More data"))
	if err := each(
		assert.Equals("More data", concat.Get(2)),
		assert.Equals(3, concat.Len()),
	); err != nil {
		return err
	}

	other := value.NewArrayOf("Even more", "data")
	otherConcat := arr.Concat(other)
	return each(
		assert.Equals("Even more", otherConcat.Get(2)),
		assert.Equals("data", otherConcat.Get(3)),
		assert.Equals(4, otherConcat.Len()),
		assert.Items([]any{1232, 392}, arr),
		assert.Items([]any{"Even more", "data"}, other),
	)
}

func testCopyWithin() error {
	arr := numbers(0, 9)
	if err := arr.CopyWithin(2, 1); err != nil {
		return err
	}
	if err := each(
		assert.Items([]any{0, 1, 1, 2, 3, 4, 5, 6, 7, 8}, arr),
		assert.Equals(10, arr.Len()),
	); err != nil {
		return err
	}

	arr = numbers(0, 9)
	if err := arr.CopyWithinRange(0, 7, 8); err != nil {
		return err
	}
	if err := assert.Items([]any{7, 1, 2, 3, 4, 5, 6, 7, 8, 9}, arr); err != nil {
		return err
	}

	// Overlapping ranges, source before target.
	arr = numbers(0, 4)
	if err := arr.CopyWithin(1, 0); err != nil {
		return err
	}
	return assert.Items([]any{0, 0, 1, 2, 3}, arr)
}

func testEvery() error {
	arr := numbers(1, 10)
	return each(
		assert.True(arr.Every(func(it value.Item, _ int) bool { return value.ToNumber(it) > 0 })),
		assert.False(arr.Every(func(it value.Item, _ int) bool { return value.ToNumber(it) < 10 })),
		assert.True(value.NewArrayOf().Every(func(value.Item, int) bool { return false })),
	)
}

func testFill() error {
	arr := numbers(0, 4)
	if err := arr.Fill(value.Make("x"), 2); err != nil {
		return err
	}
	if err := assert.Items([]any{0, 1, "x", "x", "x"}, arr); err != nil {
		return err
	}
	if err := arr.Fill(value.Make(7), 0); err != nil {
		return err
	}
	if err := assert.Items([]any{7, 7, 7, 7, 7}, arr); err != nil {
		return err
	}
	if err := arr.FillRange(value.Make(nil), 1, -1); err != nil {
		return err
	}
	return assert.Items([]any{7, nil, nil, nil, 7}, arr)
}

func testFilter() error {
	arr := numbers(1, 10)
	even := arr.Filter(func(it value.Item, _ int) bool { return int(value.ToNumber(it))%2 == 0 })
	return each(
		assert.Items([]any{2, 4, 6, 8, 10}, even),
		assert.Equals(10, arr.Len()),
		assert.Equals(0, arr.Filter(func(value.Item, int) bool { return false }).Len()),
	)
}

func testFind() error {
	names := value.NewArrayOf("John", "Bob", "Mary", "Linda")
	return each(
		assert.Equals("Bob", names.Find(func(it value.Item, _ int) bool {
			s, ok := it.(value.String)
			return ok && s.Len() < 4
		})),
		assert.Equals(value.Undefined{}, names.Find(func(it value.Item, _ int) bool {
			return it.String() == "Alice"
		})),
	)
}

func testForEach() error {
	var (
		arr     = value.NewArrayOf("a", "b", "c")
		visited []any
		indices []any
	)
	arr.ForEach(func(it value.Item, i int) {
		visited = append(visited, it)
		indices = append(indices, i)
	})
	return each(
		assert.Items([]any{"a", "b", "c"}, value.NewArrayOf(visited...)),
		assert.Items([]any{0, 1, 2}, value.NewArrayOf(indices...)),
	)
}

func testIncludes() error {
	inner := value.NewArrayOf(1)
	arr := value.NewArrayOf(1, "2", true, nil, math.NaN(), inner)
	return each(
		assert.True(arr.Includes(value.Make(1))),
		assert.True(arr.Includes(value.Make("2"))),
		assert.False(arr.Includes(value.Make(2))),
		assert.False(arr.Includes(value.Make("1"))),
		assert.True(arr.Includes(value.Make(true))),
		assert.True(arr.Includes(value.Null{})),
		assert.False(arr.Includes(value.Undefined{})),
		assert.True(arr.Includes(value.NaN())),
		assert.True(arr.Includes(inner)),
		assert.False(arr.Includes(value.NewArrayOf(1))),
	)
}

func testIndexOf() error {
	arr := numbers(1, 10)
	if _, err := arr.Push(value.Make(28120)); err != nil {
		return err
	}
	return each(
		assert.Equals(10, arr.IndexOf(value.Make(28120))),
		assert.Equals(0, arr.IndexOf(value.Make(1))),
		assert.Equals(-1, arr.IndexOf(value.Make(11))),
		assert.Equals(-1, arr.IndexOf(value.Make("1"))),
	)
}

func testSort() error {
	arr := numbers(1, 9)
	if err := arr.Sort(value.Descending); err != nil {
		return err
	}
	if err := assert.Items([]any{9, 8, 7, 6, 5, 4, 3, 2, 1}, arr); err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if err := arr.Sort(value.Ascending); err != nil {
			return err
		}
		if err := assert.Items([]any{1, 2, 3, 4, 5, 6, 7, 8, 9}, arr); err != nil {
			return err
		}
	}

	// Equal keys keep their relative order.
	pairs := value.NewArrayOf(
		value.NewArrayOf(1, "a"),
		value.NewArrayOf(0, "b"),
		value.NewArrayOf(1, "c"),
		value.NewArrayOf(0, "d"),
	)
	err := pairs.Sort(value.CompareFunc(func(a, b value.Item) float64 {
		return value.ToNumber(a.(*value.Array).Get(0)) - value.ToNumber(b.(*value.Array).Get(0))
	}))
	if err != nil {
		return err
	}
	return assert.Equals("0,b,0,d,1,a,1,c", pairs.String())
}

func testToString() error {
	arr := value.NewArrayOf("nice", 1, true)
	if err := assert.Equals("nice,1,true", arr.String()); err != nil {
		return err
	}
	if _, err := arr.Push(value.Undefined{}); err != nil {
		return err
	}
	if err := assert.Equals("nice,1,true,", arr.String()); err != nil {
		return err
	}
	if _, err := arr.Push(value.Null{}); err != nil {
		return err
	}
	return assert.Equals("nice,1,true,,", arr.String())
}

// wrongType is returned by cases getting an unexpected item kind.
func wrongType(item value.Item, expected value.Type) error {
	return fmt.Errorf("%w: got %s, expected %s", assert.ErrAssertion, item.Type(), expected)
}
