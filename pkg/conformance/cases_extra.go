package conformance

import (
	"math"

	"github.com/nspcc-dev/jsarray/pkg/assert"
	"github.com/nspcc-dev/jsarray/pkg/value"
	"golang.org/x/text/language"
)

func isEven(it value.Item, _ int) bool {
	return math.Mod(value.ToNumber(it), 2) == 0
}

func sum(acc, it value.Item, _ int) value.Item {
	return value.NewNumber(value.ToNumber(acc) + value.ToNumber(it))
}

func testSome() error {
	arr := value.NewArrayOf(1, 3, 5, 6)
	return each(
		assert.True(arr.Some(isEven)),
		assert.False(arr.Slice(0, 3).Some(isEven)),
		assert.False(value.NewArrayOf().Some(func(value.Item, int) bool { return true })),
	)
}

func testFindIndex() error {
	arr := value.NewArrayOf(1, 3, 4, 6)
	return each(
		assert.Equals(2, arr.FindIndex(isEven)),
		assert.Equals(-1, arr.FindIndex(func(it value.Item, _ int) bool { return value.ToNumber(it) > 6 })),
	)
}

func testLastIndexOf() error {
	arr := value.NewArrayOf(2, 5, 9, 2)
	return each(
		assert.Equals(3, arr.LastIndexOf(value.Make(2))),
		assert.Equals(0, arr.LastIndexOfFrom(value.Make(2), -2)),
		assert.Equals(-1, arr.LastIndexOf(value.Make(7))),
		assert.Equals(-1, arr.LastIndexOf(value.Make("2"))),
	)
}

func testJoin() error {
	arr := value.NewArrayOf("Wind", "Water", "Fire")
	nested := value.NewArrayOf(1, value.NewArrayOf(2, value.NewArrayOf(3, nil)), value.Undefined{})
	self := value.NewArrayOf(1, 2)
	if _, err := self.Push(self); err != nil {
		return err
	}
	return each(
		assert.Equals("Wind,Water,Fire", arr.Join(",")),
		assert.Equals("Wind, Water, Fire", arr.Join(", ")),
		assert.Equals("WindWaterFire", arr.Join("")),
		assert.Equals("Wind-Water-Fire", arr.Join("-")),
		assert.Equals("1;2,3,;", nested.Join(";")),
		assert.Equals("1,2,", self.Join(",")),
		assert.Equals("", value.NewArrayOf().Join(",")),
	)
}

func testMap() error {
	arr := value.NewArrayOf(1, 4, 9, 16)
	doubled := arr.Map(func(it value.Item, _ int) value.Item {
		return value.NewNumber(value.ToNumber(it) * 2)
	})
	indexed := arr.Map(func(_ value.Item, i int) value.Item { return value.NewNumber(float64(i)) })
	return each(
		assert.Items([]any{2, 8, 18, 32}, doubled),
		assert.Items([]any{0, 1, 2, 3}, indexed),
		assert.Items([]any{1, 4, 9, 16}, arr),
	)
}

func testReduce() error {
	arr := numbers(1, 4)
	res, err := arr.Reduce(sum)
	if err != nil {
		return err
	}
	if err := each(
		assert.Equals(10, res),
		assert.Equals(15, arr.ReduceWith(sum, value.Make(5))),
		assert.Equals(5, value.NewArrayOf().ReduceWith(sum, value.Make(5))),
	); err != nil {
		return err
	}
	_, err = value.NewArrayOf().Reduce(sum)
	return assert.Error(err, value.ErrEmptyReduce)
}

func testReduceRight() error {
	arr := value.NewArrayOf(value.NewArrayOf(0, 1), value.NewArrayOf(2, 3), value.NewArrayOf(4, 5))
	flatten := func(acc, it value.Item, _ int) value.Item {
		a, ok := acc.(*value.Array)
		if !ok {
			return value.Undefined{}
		}
		return a.Concat(it)
	}
	res, err := arr.ReduceRight(flatten)
	if err != nil {
		return err
	}
	flat, ok := res.(*value.Array)
	if !ok {
		return wrongType(res, value.ArrayT)
	}
	if err := assert.Items([]any{4, 5, 2, 3, 0, 1}, flat); err != nil {
		return err
	}

	var order []any
	value.NewArrayOf("a", "b", "c").ReduceRightWith(func(acc, it value.Item, i int) value.Item {
		order = append(order, i)
		return value.String(acc.String() + it.String())
	}, value.String(""))
	if err := assert.Items([]any{2, 1, 0}, value.NewArrayOf(order...)); err != nil {
		return err
	}
	_, err = value.NewArrayOf().ReduceRight(flatten)
	return assert.Error(err, value.ErrEmptyReduce)
}

func testReverse() error {
	arr := value.NewArrayOf("one", "two", "three")
	if err := arr.Reverse(); err != nil {
		return err
	}
	if err := assert.Items([]any{"three", "two", "one"}, arr); err != nil {
		return err
	}
	arr.Freeze()
	if err := assert.Error(arr.Reverse(), value.ErrFrozen); err != nil {
		return err
	}
	return assert.Items([]any{"three", "two", "one"}, arr)
}

func testSlice() error {
	animals := value.NewArrayOf("ant", "bison", "camel", "duck", "elephant")
	return each(
		assert.Items([]any{"camel", "duck", "elephant"}, animals.SliceFrom(2)),
		assert.Items([]any{"camel", "duck"}, animals.Slice(2, 4)),
		assert.Items([]any{"bison", "camel", "duck", "elephant"}, animals.Slice(1, 5)),
		assert.Items([]any{"duck", "elephant"}, animals.SliceFrom(-2)),
		assert.Items([]any{"camel", "duck"}, animals.Slice(2, -1)),
		assert.Items([]any{}, animals.Slice(3, 1)),
		assert.Equals(5, animals.Len()),
	)
}

func testSplice() error {
	months := value.NewArrayOf("Jan", "March", "April", "June")
	removed, err := months.Splice(1, 0, value.Make("Feb"))
	if err != nil {
		return err
	}
	if err := each(
		assert.Items([]any{"Jan", "Feb", "March", "April", "June"}, months),
		assert.Items([]any{}, removed),
	); err != nil {
		return err
	}
	removed, err = months.Splice(4, 1, value.Make("May"))
	if err != nil {
		return err
	}
	if err := each(
		assert.Items([]any{"Jan", "Feb", "March", "April", "May"}, months),
		assert.Items([]any{"June"}, removed),
	); err != nil {
		return err
	}
	removed, err = months.Splice(-3, 10)
	if err != nil {
		return err
	}
	return each(
		assert.Items([]any{"Jan", "Feb"}, months),
		assert.Items([]any{"March", "April", "May"}, removed),
	)
}

func testPopShiftUnshift() error {
	arr := value.NewArrayOf("broccoli", "cauliflower", "cabbage")
	last, err := arr.Pop()
	if err != nil {
		return err
	}
	first, err := arr.Shift()
	if err != nil {
		return err
	}
	if err := each(
		assert.Equals("cabbage", last),
		assert.Equals("broccoli", first),
		assert.Items([]any{"cauliflower"}, arr),
	); err != nil {
		return err
	}
	n, err := arr.Unshift(value.Make("kale"), value.Make("tomato"))
	if err != nil {
		return err
	}
	if err := each(
		assert.Equals(3, n),
		assert.Items([]any{"kale", "tomato", "cauliflower"}, arr),
	); err != nil {
		return err
	}

	empty := value.NewArrayOf()
	last, err = empty.Pop()
	if err != nil {
		return err
	}
	first, err = empty.Shift()
	if err != nil {
		return err
	}
	if err := each(
		assert.Equals(value.Undefined{}, last),
		assert.Equals(value.Undefined{}, first),
	); err != nil {
		return err
	}

	arr.Freeze()
	_, err = arr.Pop()
	if err := assert.Error(err, value.ErrFrozen); err != nil {
		return err
	}
	_, err = arr.Unshift(value.Make("x"))
	return assert.Error(err, value.ErrFrozen)
}

func testFrom() error {
	src := []value.Item{value.Make(1), value.Make("a")}
	arr := value.From(src)
	src[0] = value.Make(2)
	words := value.FromFunc([]string{"foo", "bar"}, func(s string) value.Item {
		return value.NewNumber(float64(len(s)))
	})
	empty, err := value.NewArrayLen(2)
	if err != nil {
		return err
	}
	return each(
		assert.Items([]any{1, "a"}, arr),
		assert.Items([]any{3, 3}, words),
		assert.Items([]any{value.Undefined{}, value.Undefined{}}, empty),
		assert.True(value.IsArray(arr)),
		assert.False(value.IsArray(value.Make("array"))),
	)
}

func testToLocaleString() error {
	arr := value.NewArrayOf("nice", 1234567, true, nil)
	return each(
		assert.Equals("nice,1,234,567,true,", arr.ToLocaleString(language.English)),
		assert.Equals("nice,1.234.567,true,", arr.ToLocaleString(language.German)),
		assert.Equals("NaN", value.NewArrayOf(math.NaN()).ToLocaleString(language.English)),
	)
}
