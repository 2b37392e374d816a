package conformance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCases(t *testing.T) {
	for _, c := range Cases() {
		t.Run(c.Name, func(t *testing.T) {
			require.NoError(t, c.Run())
		})
	}
}

func TestCasesOrder(t *testing.T) {
	names := Names()
	require.Equal(t, []string{
		"Array.freeze",
		"Array.length",
		"Array.concat()",
		"Array.copyWithin()",
		"Array.every()",
		"Array.fill()",
		"Array.filter()",
		"Array.find()",
		"Array.forEach()",
		"Array.includes()",
		"Array.indexOf()",
		"Array.sort()",
		"Array.toString()",
	}, names[:13])
	require.Equal(t, "Array.toLocaleString()", names[25])
	require.Equal(t, "String.charAt()", names[26])
	require.Equal(t, "String.trim()", names[len(names)-1])

	seen := make(map[string]bool)
	for _, n := range names {
		require.False(t, seen[n], n)
		seen[n] = true
	}
}

func TestLookupFilter(t *testing.T) {
	c, ok := Lookup("Array.sort()")
	require.True(t, ok)
	require.Equal(t, "Array.sort()", c.Name)
	_, ok = Lookup("Array.sort")
	require.False(t, ok)

	cs, err := Filter(nil)
	require.NoError(t, err)
	require.Len(t, cs, len(Names()))

	cs, err = Filter([]string{"Array.sort()", "Array.length", "Array.sort()"})
	require.NoError(t, err)
	require.Len(t, cs, 2)
	require.Equal(t, "Array.length", cs[0].Name)
	require.Equal(t, "Array.sort()", cs[1].Name)

	_, err = Filter([]string{"Array.length", "nope"})
	require.ErrorIs(t, err, ErrUnknownCase)
	require.ErrorContains(t, err, "nope")

	// Cases returns a copy.
	all := Cases()
	all[0].Name = "changed"
	require.Equal(t, "Array.freeze", Cases()[0].Name)
}
