package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func numbers(from, to int) *Array {
	res := make([]Item, 0, to-from+1)
	for i := from; i <= to; i++ {
		res = append(res, Number(i))
	}
	return NewArray(res)
}

func requireItems(t *testing.T, expected []any, arr *Array) {
	t.Helper()
	require.Equal(t, NewArrayOf(expected...).Items(), arr.Items())
}

func TestArrayFreeze(t *testing.T) {
	arr := NewArrayOf("Some", math.Pi, "data")
	require.False(t, arr.IsFrozen())
	arr.Freeze()
	require.True(t, arr.IsFrozen())

	n, err := arr.Push(String("more data"))
	require.ErrorIs(t, err, ErrFrozen)
	require.Equal(t, 3, n)
	require.ErrorIs(t, arr.Delete(0), ErrFrozen)
	require.ErrorIs(t, arr.Set(1, String("I wanna eat the pi")), ErrFrozen)

	_, err = arr.Pop()
	require.ErrorIs(t, err, ErrFrozen)
	_, err = arr.Shift()
	require.ErrorIs(t, err, ErrFrozen)
	_, err = arr.Unshift(Number(1))
	require.ErrorIs(t, err, ErrFrozen)
	_, err = arr.Splice(0, 1)
	require.ErrorIs(t, err, ErrFrozen)
	require.ErrorIs(t, arr.CopyWithin(0, 1), ErrFrozen)
	require.ErrorIs(t, arr.Fill(Null{}, 0), ErrFrozen)
	require.ErrorIs(t, arr.Reverse(), ErrFrozen)
	require.ErrorIs(t, arr.Sort(nil), ErrFrozen)
	require.ErrorIs(t, arr.UnmarshalJSON([]byte("[]")), ErrFrozen)

	requireItems(t, []any{"Some", math.Pi, "data"}, arr)

	t.Run("derived arrays are not frozen", func(t *testing.T) {
		c := arr.Concat(String("x"))
		require.False(t, c.IsFrozen())
		_, err := c.Push(Number(1))
		require.NoError(t, err)
		require.Equal(t, 3, arr.Len())
	})
}

func TestArrayLength(t *testing.T) {
	arr := NewArrayOf()
	require.Equal(t, 0, arr.Len())

	n, err := arr.Push(String("some data"))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = arr.Push(String("Lots"), String("of"), String("data"))
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, 4, arr.Len())

	n, err = arr.Push()
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestArrayGetSetDelete(t *testing.T) {
	arr := NewArrayOf(1, 2)
	require.Equal(t, Undefined{}, arr.Get(-1))
	require.Equal(t, Undefined{}, arr.Get(2))

	require.NoError(t, arr.Set(4, String("x")))
	requireItems(t, []any{1, 2, Undefined{}, Undefined{}, "x"}, arr)

	require.NoError(t, arr.Set(-1, String("ignored")))
	require.Equal(t, 5, arr.Len())

	require.NoError(t, arr.Delete(0))
	require.Equal(t, 5, arr.Len())
	require.Equal(t, Undefined{}, arr.Get(0))
	require.NoError(t, arr.Delete(100))
}

func TestArrayLimits(t *testing.T) {
	arr := NewArrayOf(1)
	require.ErrorIs(t, arr.Set(MaxLength, String("x")), ErrTooBig)
	require.ErrorIs(t, arr.Set(100_000_000_000, String("x")), ErrTooBig)
	require.Equal(t, 1, arr.Len())

	require.NoError(t, arr.Set(MaxLength-1, String("last")))
	require.Equal(t, MaxLength, arr.Len())
	require.Equal(t, Undefined{}, arr.Get(MaxLength-2))

	n, err := arr.Push(Null{})
	require.ErrorIs(t, err, ErrTooBig)
	require.Equal(t, MaxLength, n)
	_, err = arr.Unshift(Null{})
	require.ErrorIs(t, err, ErrTooBig)
	_, err = arr.Splice(0, 0, Null{})
	require.ErrorIs(t, err, ErrTooBig)
	_, err = arr.Splice(0, 1, Null{})
	require.NoError(t, err)

	_, err = NewArrayLen(-1)
	require.ErrorIs(t, err, ErrInvalidLength)
	_, err = NewArrayLen(MaxLength + 1)
	require.ErrorIs(t, err, ErrTooBig)
}

func TestArrayConcat(t *testing.T) {
	arr := NewArrayOf(1232, 392)

	c := arr.Concat(String("More data"))
	require.Equal(t, String("More data"), c.Get(2))
	require.Equal(t, 3, c.Len())

	other := NewArrayOf("Even more", "data")
	oc := arr.Concat(other)
	require.Equal(t, 4, oc.Len())
	require.Equal(t, String("data"), oc.Get(3))

	nested := arr.Concat(NewArrayOf(NewArrayOf(1)))
	require.Equal(t, 3, nested.Len())
	require.True(t, IsArray(nested.Get(2)))

	requireItems(t, []any{1232, 392}, arr)
	require.NotSame(t, arr, arr.Concat())
}

func TestArrayCopyWithin(t *testing.T) {
	testCases := []struct {
		name               string
		target, start, end int
		expected           []any
	}{
		{"forward overlap", 2, 1, 10, []any{0, 1, 1, 2, 3, 4, 5, 6, 7, 8}},
		{"single element", 0, 7, 8, []any{7, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"backward overlap", 0, 3, 10, []any{3, 4, 5, 6, 7, 8, 9, 7, 8, 9}},
		{"negative", -2, -4, -2, []any{0, 1, 2, 3, 4, 5, 6, 7, 6, 7}},
		{"empty range", 0, 5, 5, []any{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"target past the end", 10, 0, 10, []any{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			arr := numbers(0, 9)
			require.NoError(t, arr.CopyWithinRange(tc.target, tc.start, tc.end))
			requireItems(t, tc.expected, arr)
		})
	}
	t.Run("default end", func(t *testing.T) {
		arr := numbers(0, 9)
		require.NoError(t, arr.CopyWithin(2, 1))
		requireItems(t, []any{0, 1, 1, 2, 3, 4, 5, 6, 7, 8}, arr)
	})
}

func TestArrayEverySome(t *testing.T) {
	arr := numbers(1, 5)
	require.True(t, arr.Every(func(it Item, _ int) bool { return ToNumber(it) > 0 }))
	require.False(t, arr.Every(func(it Item, _ int) bool { return ToNumber(it) < 5 }))
	require.True(t, NewArrayOf().Every(func(Item, int) bool { return false }))

	var calls int
	arr.Every(func(it Item, _ int) bool {
		calls++
		return ToNumber(it) < 2
	})
	require.Equal(t, 2, calls)

	require.True(t, arr.Some(func(it Item, _ int) bool { return ToNumber(it) == 3 }))
	require.False(t, arr.Some(func(it Item, _ int) bool { return ToNumber(it) > 5 }))
}

func TestArrayFill(t *testing.T) {
	arr := numbers(1, 5)
	require.NoError(t, arr.Fill(Number(0), 2))
	requireItems(t, []any{1, 2, 0, 0, 0}, arr)

	require.NoError(t, arr.Fill(String("x"), 0))
	requireItems(t, []any{"x", "x", "x", "x", "x"}, arr)

	arr = numbers(1, 5)
	require.NoError(t, arr.FillRange(Null{}, 1, -1))
	requireItems(t, []any{1, nil, nil, nil, 5}, arr)
}

func TestArrayFilterFind(t *testing.T) {
	names := NewArrayOf("John", "Bob", "Mary", "Linda")
	short := func(it Item, _ int) bool { return len(it.String()) < 4 }

	require.Equal(t, String("Bob"), names.Find(short))
	require.Equal(t, 1, names.FindIndex(short))
	require.Equal(t, Undefined{}, names.Find(func(Item, int) bool { return false }))
	require.Equal(t, -1, names.FindIndex(func(Item, int) bool { return false }))

	long := names.Filter(func(it Item, _ int) bool { return len(it.String()) >= 4 })
	requireItems(t, []any{"John", "Mary", "Linda"}, long)
	require.Equal(t, 4, names.Len())
	require.Equal(t, 0, names.Filter(func(Item, int) bool { return false }).Len())
}

func TestArrayForEach(t *testing.T) {
	arr := numbers(1, 10)
	var (
		count   int
		indices []int
	)
	arr.ForEach(func(_ Item, i int) {
		count++
		indices = append(indices, i)
		_, _ = arr.Push(Number(0))
	})
	require.Equal(t, 10, count)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, indices)
}

func TestArrayIncludesIndexOf(t *testing.T) {
	arr := NewArrayOf(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 28120)
	require.Equal(t, 10, arr.IndexOf(Number(28120)))
	require.Equal(t, -1, arr.IndexOf(String("28120")))
	require.Equal(t, -1, arr.IndexOfFrom(Number(1), 1))
	require.Equal(t, 0, arr.IndexOfFrom(Number(1), -100))
	require.True(t, arr.Includes(Number(28120)))
	require.False(t, arr.Includes(String("1")))
	require.False(t, arr.IncludesFrom(Number(1), -2))

	withNaN := NewArrayOf(1, math.NaN(), Undefined{}, nil)
	require.True(t, withNaN.Includes(NaN()))
	require.Equal(t, -1, withNaN.IndexOf(NaN()))
	require.Equal(t, 2, withNaN.IndexOf(Undefined{}))
	require.Equal(t, 3, withNaN.IndexOf(Null{}))

	dup := NewArrayOf(1, 2, 1, 2)
	require.Equal(t, 3, dup.LastIndexOf(Number(2)))
	require.Equal(t, 1, dup.LastIndexOfFrom(Number(2), 2))
	require.Equal(t, 1, dup.LastIndexOfFrom(Number(2), -2))
	require.Equal(t, -1, dup.LastIndexOf(Number(3)))
	require.Equal(t, -1, NewArrayOf().LastIndexOf(Number(3)))
}

func TestArraySort(t *testing.T) {
	arr := numbers(1, 9)
	desc := CompareFunc(func(a, b Item) float64 { return ToNumber(b) - ToNumber(a) })
	asc := CompareFunc(func(a, b Item) float64 { return ToNumber(a) - ToNumber(b) })

	require.NoError(t, arr.Sort(desc))
	requireItems(t, []any{9, 8, 7, 6, 5, 4, 3, 2, 1}, arr)

	require.NoError(t, arr.Sort(asc))
	requireItems(t, []any{1, 2, 3, 4, 5, 6, 7, 8, 9}, arr)
	require.True(t, arr.IsSorted(Ascending))
	require.False(t, arr.IsSorted(Descending))

	holes := NewArrayOf(Undefined{}, 2, 1)
	require.False(t, holes.IsSorted(Ascending))
	require.NoError(t, holes.Sort(Ascending))
	requireItems(t, []any{1, 2, Undefined{}}, holes)
	require.True(t, holes.IsSorted(Ascending))
	require.True(t, holes.IsSorted(nil))

	require.NoError(t, arr.Sort(Ascending))
	requireItems(t, []any{1, 2, 3, 4, 5, 6, 7, 8, 9}, arr)

	t.Run("stable", func(t *testing.T) {
		arr := NewArrayOf("b1", "a1", "b2", "a2", "b3")
		byFirst := func(a, b Item) int {
			return CompareText(String(a.String()[:1]), String(b.String()[:1]))
		}
		require.NoError(t, arr.Sort(byFirst))
		requireItems(t, []any{"a1", "a2", "b1", "b2", "b3"}, arr)
	})
	t.Run("default is textual", func(t *testing.T) {
		arr := NewArrayOf(10, 9, 1, "b", "a")
		require.NoError(t, arr.Sort(nil))
		requireItems(t, []any{1, 10, 9, "a", "b"}, arr)
	})
	t.Run("undefined goes last", func(t *testing.T) {
		arr := NewArrayOf(Undefined{}, 3, nil, 1)
		require.NoError(t, arr.Sort(Descending))
		requireItems(t, []any{3, 1, nil, Undefined{}}, arr)
	})
}

func TestArrayToString(t *testing.T) {
	arr := NewArrayOf("nice", 1, true)
	require.Equal(t, "nice,1,true", arr.String())

	_, err := arr.Push(Undefined{})
	require.NoError(t, err)
	require.Equal(t, "nice,1,true,", arr.String())

	_, err = arr.Push(Null{})
	require.NoError(t, err)
	require.Equal(t, "nice,1,true,,", arr.String())

	t.Run("nested", func(t *testing.T) {
		arr := NewArrayOf(1, NewArrayOf(2, 3), 4)
		require.Equal(t, "1,2,3,4", arr.String())
		require.Equal(t, "1 - 2,3 - 4", arr.Join(" - "))
	})
	t.Run("cycle", func(t *testing.T) {
		arr := NewArrayOf(1, 2)
		_, err := arr.Push(arr)
		require.NoError(t, err)
		require.Equal(t, "1,2,", arr.String())
	})
}

func TestArrayToLocaleString(t *testing.T) {
	arr := NewArrayOf("nice", 1234567, true, nil)
	require.Equal(t, "nice,1,234,567,true,", arr.ToLocaleString(language.English))
	require.Equal(t, "nice,1.234.567,true,", arr.ToLocaleString(language.German))
	require.Equal(t, "NaN", NewArrayOf(math.NaN()).ToLocaleString(language.English))
}

func TestArrayMapReduce(t *testing.T) {
	arr := numbers(1, 4)
	doubled := arr.Map(func(it Item, _ int) Item { return Number(ToNumber(it) * 2) })
	requireItems(t, []any{2, 4, 6, 8}, doubled)
	requireItems(t, []any{1, 2, 3, 4}, arr)

	sum := func(acc, it Item, _ int) Item { return Number(ToNumber(acc) + ToNumber(it)) }
	res, err := arr.Reduce(sum)
	require.NoError(t, err)
	require.Equal(t, Number(10), res)
	require.Equal(t, Number(15), arr.ReduceWith(sum, Number(5)))

	concat := func(acc, it Item, _ int) Item { return String(acc.String() + it.String()) }
	res, err = arr.ReduceRight(concat)
	require.NoError(t, err)
	require.Equal(t, String("4321"), res)
	require.Equal(t, String("x4321"), arr.ReduceRightWith(concat, String("x")))

	_, err = NewArrayOf().Reduce(sum)
	require.ErrorIs(t, err, ErrEmptyReduce)
	_, err = NewArrayOf().ReduceRight(sum)
	require.ErrorIs(t, err, ErrEmptyReduce)
	require.Equal(t, Number(7), NewArrayOf().ReduceWith(sum, Number(7)))
}

func TestArrayReverseSlice(t *testing.T) {
	arr := numbers(1, 5)
	require.NoError(t, arr.Reverse())
	requireItems(t, []any{5, 4, 3, 2, 1}, arr)

	requireItems(t, []any{4, 3}, arr.Slice(1, 3))
	requireItems(t, []any{2, 1}, arr.SliceFrom(-2))
	require.Equal(t, 0, arr.Slice(3, 1).Len())
	require.Equal(t, 5, arr.SliceFrom(0).Len())
}

func TestArraySplice(t *testing.T) {
	arr := numbers(1, 5)
	removed, err := arr.Splice(1, 2, String("a"), String("b"), String("c"))
	require.NoError(t, err)
	requireItems(t, []any{2, 3}, removed)
	requireItems(t, []any{1, "a", "b", "c", 4, 5}, arr)

	removed, err = arr.Splice(-2, 100)
	require.NoError(t, err)
	requireItems(t, []any{4, 5}, removed)
	requireItems(t, []any{1, "a", "b", "c"}, arr)

	removed, err = arr.Splice(0, 0, Number(0))
	require.NoError(t, err)
	require.Equal(t, 0, removed.Len())
	requireItems(t, []any{0, 1, "a", "b", "c"}, arr)
}

func TestArrayPopShiftUnshift(t *testing.T) {
	arr := numbers(1, 3)
	it, err := arr.Pop()
	require.NoError(t, err)
	require.Equal(t, Number(3), it)

	it, err = arr.Shift()
	require.NoError(t, err)
	require.Equal(t, Number(1), it)

	n, err := arr.Unshift(String("a"), String("b"))
	require.NoError(t, err)
	require.Equal(t, 3, n)
	requireItems(t, []any{"a", "b", 2}, arr)

	empty := NewArrayOf()
	it, err = empty.Pop()
	require.NoError(t, err)
	require.Equal(t, Undefined{}, it)
	it, err = empty.Shift()
	require.NoError(t, err)
	require.Equal(t, Undefined{}, it)
}

func TestArrayFrom(t *testing.T) {
	src := []Item{Number(1), String("x")}
	arr := From(src)
	src[0] = Null{}
	requireItems(t, []any{1, "x"}, arr)

	lens := FromFunc([]string{"a", "bb", "ccc"}, func(s string) Item { return Number(len(s)) })
	requireItems(t, []any{1, 2, 3}, lens)

	undef, err := NewArrayLen(3)
	require.NoError(t, err)
	require.Equal(t, ",,", undef.String())
	require.Equal(t, 0, undef.IndexOf(Undefined{}))
}
