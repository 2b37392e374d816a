package conformance

import (
	"github.com/nspcc-dev/jsarray/pkg/assert"
	"github.com/nspcc-dev/jsarray/pkg/value"
	"golang.org/x/text/language"
)

// orUndefined turns a failed String operation into Undefined so that it never
// matches an expected String.
func orUndefined(s value.String, err error) value.Item {
	if err != nil {
		return value.Undefined{}
	}
	return s
}

func testStringCharAt() error {
	s := value.NewString("Hello, мир")
	return each(
		assert.Equals(10, s.Len()),
		assert.Equals("H", s.CharAt(0)),
		assert.Equals("м", s.CharAt(7)),
		assert.Equals("", s.CharAt(10)),
		assert.Equals("", s.CharAt(-1)),
		assert.Equals(1084, s.CodePointAt(7)),
		assert.Equals(value.Undefined{}, s.CodePointAt(10)),
	)
}

func testStringConcat() error {
	s := value.NewString("nice")
	return each(
		assert.Equals("nice1trueundefined1,2", s.Concat(value.Make(1), value.Make(true), value.Undefined{}, value.NewArrayOf(1, 2))),
		assert.Equals("nicenull", s.Concat(value.Null{})),
		assert.Equals("nice", s),
	)
}

func testStringIncludes() error {
	s := value.NewString("To be, or not to be, that is the question.")
	return each(
		assert.True(s.Includes("To be")),
		assert.True(s.Includes("question")),
		assert.False(s.Includes("nonexistent")),
		assert.False(s.IncludesFrom("To be", 1)),
		assert.False(s.Includes("TO BE")),
		assert.True(s.Includes("")),
	)
}

func testStringIndexOf() error {
	s := value.NewString("Blue Whale")
	c := value.NewString("canal")
	return each(
		assert.Equals(0, s.IndexOf("Blue")),
		assert.Equals(-1, s.IndexOf("Blute")),
		assert.Equals(5, s.IndexOfFrom("Whale", 0)),
		assert.Equals(5, s.IndexOfFrom("Whale", 5)),
		assert.Equals(-1, s.IndexOfFrom("Whale", 7)),
		assert.Equals(0, s.IndexOf("")),
		assert.Equals(9, s.IndexOfFrom("", 9)),
		assert.Equals(10, s.IndexOfFrom("", 11)),
		assert.Equals(3, c.LastIndexOf("a")),
		assert.Equals(1, c.LastIndexOfFrom("a", 2)),
		assert.Equals(-1, c.LastIndexOfFrom("a", 0)),
		assert.Equals(-1, c.LastIndexOf("x")),
		assert.Equals(0, c.LastIndexOfFrom("c", -5)),
		assert.Equals(5, c.LastIndexOf("")),
		assert.Equals(2, c.LastIndexOfFrom("", 2)),
	)
}

func testStringStartsEndsWith() error {
	s := value.NewString("Saturday night plans")
	e := value.NewString("Cats are the best!")
	return each(
		assert.True(s.StartsWith("Sat")),
		assert.False(s.StartsWithAt("Sat", 3)),
		assert.True(s.StartsWithAt("urday", 3)),
		assert.True(e.EndsWith("best!")),
		assert.False(e.EndsWith("best")),
		assert.True(e.EndsWithAt("best", 17)),
	)
}

func testStringLocaleCompare() error {
	return each(
		assert.Equals(-1, value.NewString("a").LocaleCompare("b", language.English)),
		assert.Equals(1, value.NewString("b").LocaleCompare("a", language.English)),
		assert.Equals(0, value.NewString("a").LocaleCompare("a", language.English)),
		assert.Equals(-1, value.NewString("a").LocaleCompare("B", language.English)),
		assert.Equals(-1, value.NewString("ä").LocaleCompare("z", language.German)),
		assert.Equals(1, value.NewString("ä").LocaleCompare("z", language.Swedish)),
	)
}

func testStringNormalize() error {
	composed, err := value.NewString("A\u030A").Normalize(value.NFC)
	if err != nil {
		return err
	}
	decomposed, err := composed.Normalize(value.NFD)
	if err != nil {
		return err
	}
	compat, err := value.NewString("\uFB01").Normalize(value.NFKC)
	if err != nil {
		return err
	}
	_, err = composed.Normalize("NFX")
	return each(
		assert.Equals("\u00C5", composed),
		assert.Equals(1, composed.Len()),
		assert.Equals(2, decomposed.Len()),
		assert.Equals("fi", compat),
		assert.Error(err, value.ErrInvalidForm),
	)
}

func testStringPad() error {
	s := value.NewString("abc")
	return each(
		assert.Equals("       abc", orUndefined(s.PadStart(10))),
		assert.Equals("foofoofabc", orUndefined(s.PadStart(10, "foo"))),
		assert.Equals("123abc", orUndefined(s.PadStart(6, "123465"))),
		assert.Equals("00000abc", orUndefined(s.PadStart(8, "0"))),
		assert.Equals("abc", orUndefined(s.PadStart(1))),
		assert.Equals("abc       ", orUndefined(s.PadEnd(10))),
		assert.Equals("abcfoofoof", orUndefined(s.PadEnd(10, "foo"))),
		assert.Equals("abc123", orUndefined(s.PadEnd(6, "123456"))),
		assert.Equals("abc", orUndefined(s.PadEnd(1))),
	)
}

func testStringRepeat() error {
	s := value.NewString("abc")
	_, err := s.Repeat(-1)
	return each(
		assert.Equals("", orUndefined(s.Repeat(0))),
		assert.Equals("abc", orUndefined(s.Repeat(1))),
		assert.Equals("abcabc", orUndefined(s.Repeat(2))),
		assert.Error(err, value.ErrInvalidLength),
	)
}

func testStringSlice() error {
	s := value.NewString("The morning is upon us.")
	return each(
		assert.Equals("he morning is upon us.", s.SliceFrom(1)),
		assert.Equals("morning is upon u", s.Slice(4, -2)),
		assert.Equals("is upon us.", s.SliceFrom(12)),
		assert.Equals("", s.SliceFrom(30)),
		assert.Equals("us.", s.SliceFrom(-3)),
		assert.Equals("us", s.Slice(-3, -1)),
		assert.Equals("The morning is upon us", s.Slice(0, -1)),
	)
}

func testStringSubstring() error {
	s := value.NewString("Mozilla")
	return each(
		assert.Equals("oz", s.Substring(1, 3)),
		assert.Equals("oz", s.Substring(3, 1)),
		assert.Equals("zilla", s.SubstringFrom(2)),
		assert.Equals("Mo", s.Substring(-5, 2)),
		assert.Equals("", s.Substring(-5, -2)),
		assert.Equals("Mozilla", s.Substring(0, 100)),
	)
}

func testStringSplit() error {
	s := value.NewString("The quick brown fox")
	return each(
		assert.Items([]any{"The", "quick", "brown", "fox"}, s.Split(" ")),
		assert.Items([]any{"The", "quick"}, s.SplitN(" ", 2)),
		assert.Items([]any{}, s.SplitN(" ", 0)),
		assert.Items([]any{"h", "é", "j"}, value.NewString("héj").Split("")),
		assert.Items([]any{"a", "b", ""}, value.NewString("a,b,").Split(",")),
		assert.Items([]any{""}, value.NewString("").Split(",")),
		assert.Items([]any{}, value.NewString("").Split("")),
	)
}

func testStringCase() error {
	city := value.NewString("istanbul")
	return each(
		assert.Equals("GESÙ", value.NewString("Gesù").ToUpperCase()),
		assert.Equals("àbc", value.NewString("ÀBC").ToLowerCase()),
		assert.Equals("ISTANBUL", city.ToUpperCase()),
		assert.Equals("İSTANBUL", city.ToLocaleUpperCase(language.Turkish)),
		assert.Equals("ı", value.NewString("I").ToLocaleLowerCase(language.Turkish)),
	)
}

func testStringTrim() error {
	s := value.NewString("   Hello world!   ")
	return each(
		assert.Equals("Hello world!", s.Trim()),
		assert.Equals("Hello world!   ", s.TrimStart()),
		assert.Equals("   Hello world!", s.TrimEnd()),
		assert.Equals("x", value.NewString("\t\n\u00a0\uFEFFx\u2028").Trim()),
		assert.Equals("\u0085x", value.NewString("\u0085x").Trim()),
	)
}
