package value

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Unicode normalization forms accepted by String.Normalize.
const (
	NFC  = "NFC"
	NFD  = "NFD"
	NFKC = "NFKC"
	NFKD = "NFKD"
)

// ErrInvalidForm is returned for unknown normalization forms.
var ErrInvalidForm = errors.New("normalization form must be NFC, NFD, NFKC or NFKD")

// All String positions and lengths are counted in code points.

// CharAt returns the code point at pos as a String, it's empty if pos is out
// of range.
func (i String) CharAt(pos int) String {
	r := []rune(string(i))
	if pos < 0 || pos >= len(r) {
		return ""
	}
	return String(r[pos])
}

// CodePointAt returns the code point at pos as a Number or Undefined if pos
// is out of range.
func (i String) CodePointAt(pos int) Item {
	r := []rune(string(i))
	if pos < 0 || pos >= len(r) {
		return Undefined{}
	}
	return Number(r[pos])
}

// Concat appends textual forms of items to the String.
func (i String) Concat(items ...Item) String {
	var sb strings.Builder
	sb.WriteString(string(i))
	for _, item := range items {
		if item == nil {
			item = Undefined{}
		}
		sb.WriteString(item.String())
	}
	return String(sb.String())
}

// Includes checks whether search is a substring of i.
func (i String) Includes(search String) bool {
	return strings.Contains(string(i), string(search))
}

// IncludesFrom checks whether search occurs in i at or after position.
func (i String) IncludesFrom(search String, position int) bool {
	return i.IndexOfFrom(search, position) >= 0
}

// IndexOf returns the position of the first occurrence of search or -1.
func (i String) IndexOf(search String) int {
	return i.IndexOfFrom(search, 0)
}

// IndexOfFrom returns the position of the first occurrence of search at or
// after fromIndex or -1.
func (i String) IndexOfFrom(search String, fromIndex int) int {
	r := []rune(string(i))
	start := min(max(fromIndex, 0), len(r))
	rest := string(r[start:])
	idx := strings.Index(rest, string(search))
	if idx < 0 {
		return -1
	}
	return start + utf8.RuneCountInString(rest[:idx])
}

// LastIndexOf returns the position of the last occurrence of search or -1.
func (i String) LastIndexOf(search String) int {
	return i.LastIndexOfFrom(search, math.MaxInt)
}

// LastIndexOfFrom returns the position of the last occurrence of search
// starting at or before fromIndex or -1.
func (i String) LastIndexOfFrom(search String, fromIndex int) int {
	r := []rune(string(i))
	sr := []rune(string(search))
	start := min(max(fromIndex, 0), len(r))
	for k := min(start, len(r)-len(sr)); k >= 0; k-- {
		if slices.Equal(r[k:k+len(sr)], sr) {
			return k
		}
	}
	return -1
}

// StartsWith checks whether i begins with search.
func (i String) StartsWith(search String) bool {
	return strings.HasPrefix(string(i), string(search))
}

// StartsWithAt checks whether search occurs in i exactly at position.
func (i String) StartsWithAt(search String, position int) bool {
	r := []rune(string(i))
	start := min(max(position, 0), len(r))
	return strings.HasPrefix(string(r[start:]), string(search))
}

// EndsWith checks whether i ends with search.
func (i String) EndsWith(search String) bool {
	return strings.HasSuffix(string(i), string(search))
}

// EndsWithAt checks whether the first endPosition code points of i end with
// search.
func (i String) EndsWithAt(search String, endPosition int) bool {
	r := []rune(string(i))
	end := min(max(endPosition, 0), len(r))
	return strings.HasSuffix(string(r[:end]), string(search))
}

// LocaleCompare compares i with that using the collation rules of the
// given language. It returns -1, 0 or 1.
func (i String) LocaleCompare(that String, tag language.Tag) int {
	return collate.New(tag).CompareString(string(i), string(that))
}

// Normalize returns the Unicode normalization form of the String, an empty
// form means NFC.
func (i String) Normalize(form string) (String, error) {
	var f norm.Form
	switch form {
	case "", NFC:
		f = norm.NFC
	case NFD:
		f = norm.NFD
	case NFKC:
		f = norm.NFKC
	case NFKD:
		f = norm.NFKD
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidForm, form)
	}
	return String(f.String(string(i))), nil
}

// PadStart pads the String from the start with fill (a space by default)
// repeated and truncated up to maxLength.
func (i String) PadStart(maxLength int, fill ...String) (String, error) {
	return i.pad(maxLength, fill, true)
}

// PadEnd pads the String from the end with fill (a space by default)
// repeated and truncated up to maxLength.
func (i String) PadEnd(maxLength int, fill ...String) (String, error) {
	return i.pad(maxLength, fill, false)
}

func (i String) pad(maxLength int, fill []String, atStart bool) (String, error) {
	n := i.Len()
	if maxLength <= n {
		return i, nil
	}
	filler := " "
	if len(fill) != 0 {
		filler = string(fill[0])
	}
	if filler == "" {
		return i, nil
	}
	if maxLength > MaxLength {
		return "", ErrTooBig
	}
	fillLen := maxLength - n
	fr := []rune(strings.Repeat(filler, fillLen/utf8.RuneCountInString(filler)+1))
	if atStart {
		return String(fr[:fillLen]) + i, nil
	}
	return i + String(fr[:fillLen]), nil
}

// Repeat returns the String repeated count times.
func (i String) Repeat(count int) (String, error) {
	if count < 0 {
		return "", fmt.Errorf("%w: count %d", ErrInvalidLength, count)
	}
	if n := i.Len(); count > 0 && n > MaxLength/count {
		return "", ErrTooBig
	}
	return String(strings.Repeat(string(i), count)), nil
}

// Slice returns code points in [start, end). Negative indices count from the
// end.
func (i String) Slice(start, end int) String {
	r := []rune(string(i))
	k := relativeIndex(start, len(r))
	fin := max(relativeIndex(end, len(r)), k)
	return String(r[k:fin])
}

// SliceFrom returns code points from start to the end.
func (i String) SliceFrom(start int) String {
	return i.Slice(start, math.MaxInt)
}

// Substring returns code points between start and end. Negative indices are
// treated as 0 and the arguments are swapped if start is greater than end.
func (i String) Substring(start, end int) String {
	r := []rune(string(i))
	from := min(max(start, 0), len(r))
	to := min(max(end, 0), len(r))
	if from > to {
		from, to = to, from
	}
	return String(r[from:to])
}

// SubstringFrom returns code points from start to the end.
func (i String) SubstringFrom(start int) String {
	return i.Substring(start, math.MaxInt)
}

// Split divides the String around every occurrence of sep. An empty sep
// splits it into code points.
func (i String) Split(sep String) *Array {
	return i.SplitN(sep, -1)
}

// SplitN is like Split, but returns at most limit parts. A negative limit
// means no limit.
func (i String) SplitN(sep String, limit int) *Array {
	if limit == 0 {
		return NewArray([]Item{})
	}
	parts := strings.Split(string(i), string(sep))
	if limit > 0 && len(parts) > limit {
		parts = parts[:limit]
	}
	return FromFunc(parts, func(s string) Item { return String(s) })
}

// ToLowerCase converts the String to lower case using the default Unicode
// mapping.
func (i String) ToLowerCase() String {
	return i.ToLocaleLowerCase(language.Und)
}

// ToUpperCase converts the String to upper case using the default Unicode
// mapping.
func (i String) ToUpperCase() String {
	return i.ToLocaleUpperCase(language.Und)
}

// ToLocaleLowerCase converts the String to lower case following the rules
// of the given language.
func (i String) ToLocaleLowerCase(tag language.Tag) String {
	return String(cases.Lower(tag).String(string(i)))
}

// ToLocaleUpperCase converts the String to upper case following the rules
// of the given language.
func (i String) ToLocaleUpperCase(tag language.Tag) String {
	return String(cases.Upper(tag).String(string(i)))
}

// Trim removes leading and trailing white space and line terminators.
func (i String) Trim() String {
	return String(strings.TrimFunc(string(i), isWhiteSpace))
}

// TrimStart removes leading white space and line terminators.
func (i String) TrimStart() String {
	return String(strings.TrimLeftFunc(string(i), isWhiteSpace))
}

// TrimEnd removes trailing white space and line terminators.
func (i String) TrimEnd() String {
	return String(strings.TrimRightFunc(string(i), isWhiteSpace))
}

// isWhiteSpace matches script white space: Unicode White_Space without NEL,
// plus the byte order mark.
func isWhiteSpace(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}
