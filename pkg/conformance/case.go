/*
Package conformance contains the fixed list of dynamic array checks and the
runner executing them.
*/
package conformance

import (
	"errors"
	"fmt"
)

// ErrUnknownCase is returned when a case name doesn't match any known case.
var ErrUnknownCase = errors.New("unknown case")

// Case is a single named check. Run returns nil on success and an error
// (usually an assertion failure) otherwise.
type Case struct {
	Name string
	Run  func() error
}

var cases = []Case{
	{"Array.freeze", testFreeze},
	{"Array.length", testLength},
	{"Array.concat()", testConcat},
	{"Array.copyWithin()", testCopyWithin},
	{"Array.every()", testEvery},
	{"Array.fill()", testFill},
	{"Array.filter()", testFilter},
	{"Array.find()", testFind},
	{"Array.forEach()", testForEach},
	{"Array.includes()", testIncludes},
	{"Array.indexOf()", testIndexOf},
	{"Array.sort()", testSort},
	{"Array.toString()", testToString},

	{"Array.some()", testSome},
	{"Array.findIndex()", testFindIndex},
	{"Array.lastIndexOf()", testLastIndexOf},
	{"Array.join()", testJoin},
	{"Array.map()", testMap},
	{"Array.reduce()", testReduce},
	{"Array.reduceRight()", testReduceRight},
	{"Array.reverse()", testReverse},
	{"Array.slice()", testSlice},
	{"Array.splice()", testSplice},
	{"Array.pop()/shift()/unshift()", testPopShiftUnshift},
	{"Array.from()", testFrom},
	{"Array.toLocaleString()", testToLocaleString},

	{"String.charAt()", testStringCharAt},
	{"String.concat()", testStringConcat},
	{"String.includes()", testStringIncludes},
	{"String.indexOf()/lastIndexOf()", testStringIndexOf},
	{"String.startsWith()/endsWith()", testStringStartsEndsWith},
	{"String.localeCompare()", testStringLocaleCompare},
	{"String.normalize()", testStringNormalize},
	{"String.padStart()/padEnd()", testStringPad},
	{"String.repeat()", testStringRepeat},
	{"String.slice()", testStringSlice},
	{"String.substring()", testStringSubstring},
	{"String.split()", testStringSplit},
	{"String.toUpperCase()/toLowerCase()", testStringCase},
	{"String.trim()", testStringTrim},
}

// Cases returns all known cases in their execution order.
func Cases() []Case {
	res := make([]Case, len(cases))
	copy(res, cases)
	return res
}

// Names returns names of all known cases in their execution order.
func Names() []string {
	res := make([]string, len(cases))
	for i := range cases {
		res[i] = cases[i].Name
	}
	return res
}

// Lookup returns the case with the given name.
func Lookup(name string) (Case, bool) {
	for _, c := range cases {
		if c.Name == name {
			return c, true
		}
	}
	return Case{}, false
}

// Filter returns cases with the given names keeping the execution order.
// An empty list selects all cases.
func Filter(names []string) ([]Case, error) {
	if len(names) == 0 {
		return Cases(), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := Lookup(n); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCase, n)
		}
		want[n] = true
	}
	var res []Case
	for _, c := range cases {
		if want[c.Name] {
			res = append(res, c)
		}
	}
	return res, nil
}
