package shell

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/chzyer/readline"
	"github.com/nspcc-dev/jsarray/cli/options"
	"github.com/nspcc-dev/jsarray/pkg/value"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type readCloser struct {
	sync.Mutex
	bytes.Buffer
}

func (r *readCloser) Close() error {
	return nil
}

func (r *readCloser) Read(p []byte) (int, error) {
	r.Lock()
	defer r.Unlock()
	return r.Buffer.Read(p)
}

func (r *readCloser) WriteString(s string) {
	r.Lock()
	defer r.Unlock()
	r.Buffer.WriteString(s)
}

type executor struct {
	in  *readCloser
	out *bytes.Buffer
	reg *prometheus.Registry
	cli *Shell
}

func newTestShell(t *testing.T) *executor {
	return newTestShellWithLogger(t, zaptest.NewLogger(t))
}

func newTestShellWithLogger(t *testing.T, log *zap.Logger) *executor {
	e := &executor{
		in:  &readCloser{Buffer: *bytes.NewBuffer(nil)},
		out: bytes.NewBuffer(nil),
		reg: prometheus.NewRegistry(),
	}
	var err error
	e.cli, err = NewWithConfig(false, &readline.Config{
		Prompt:         "",
		Stdin:          e.in,
		Stderr:         e.out,
		Stdout:         e.out,
		FuncIsTerminal: func() bool { return false },
	}, e.reg, log)
	require.NoError(t, err)
	return e
}

func (e *executor) runProg(t *testing.T, commands ...string) {
	e.in.WriteString(strings.Join(commands, "\n") + "\n")
	require.NoError(t, e.cli.Run())
}

var promptRe = regexp.MustCompile("\x1b\\[32mJSARRAY[^>]*>\x1b\\[0m ")

func (e *executor) nextLine(t *testing.T) string {
	line, err := e.out.ReadString('\n')
	require.NoError(t, err)
	return promptRe.ReplaceAllString(strings.TrimSuffix(line, "\n"), "")
}

func (e *executor) checkNextLine(t *testing.T, expected string) {
	require.Regexp(t, expected, e.nextLine(t))
}

func (e *executor) checkError(t *testing.T, expectedErr error) {
	line := e.nextLine(t)
	require.True(t, strings.HasPrefix(line, "Error: "+expectedErr.Error()), line)
}

func (e *executor) checkEOF(t *testing.T) {
	_, err := e.out.ReadString('\n')
	require.ErrorIs(t, err, io.EOF)
}

func TestPushPopShow(t *testing.T) {
	e := newTestShell(t)
	e.runProg(t,
		"push Some num:3.14 data",
		"push int:1 string:2 true null undefined",
		"pop",
		"shift",
		"show",
		"json")

	e.checkNextLine(t, `^3$`)
	e.checkNextLine(t, `^8$`)
	e.checkNextLine(t, `^undefined$`)
	e.checkNextLine(t, `^"Some"$`)
	e.checkNextLine(t, `^length: 6$`)
	e.checkNextLine(t, `^0\s+Number\s+3.14$`)
	e.checkNextLine(t, `^1\s+String\s+"data"$`)
	e.checkNextLine(t, `^2\s+Number\s+1$`)
	e.checkNextLine(t, `^3\s+String\s+"2"$`)
	e.checkNextLine(t, `^4\s+Boolean\s+true$`)
	e.checkNextLine(t, `^5\s+Null\s+null$`)
	e.checkNextLine(t, `^\[3.14,"data",1,"2",true,null\]$`)
	e.checkEOF(t)

	require.Equal(t, 2.0, testutil.ToFloat64(e.cli.commands.WithLabelValues("push")))
	require.Equal(t, 1.0, testutil.ToFloat64(e.cli.commands.WithLabelValues("json")))
}

func TestFrozen(t *testing.T) {
	e := newTestShell(t)
	e.runProg(t,
		`new '["Some", 3.14, "data"]'`,
		"freeze",
		"push more",
		"delete 0",
		"set 1 pie",
		"sort",
		"get 1",
		"show")

	e.checkError(t, value.ErrFrozen)
	e.checkError(t, value.ErrFrozen)
	e.checkError(t, value.ErrFrozen)
	e.checkError(t, value.ErrFrozen)
	e.checkNextLine(t, `^3.14$`)
	e.checkNextLine(t, `^length: 3 \(frozen\)$`)
}

func TestIndexOperations(t *testing.T) {
	e := newTestShell(t)
	e.runProg(t,
		"new [0,1,2,3,4,5,6,7,8,9]",
		"copywithin 2 1",
		"join",
		"copywithin 0 7 8",
		"join -",
		"get -1",
		"get 100",
		"slice 2 -5",
		"slice -2",
		"splice 1 2 a b c",
		"join",
		"fill x -2",
		"join",
		"indexof 6",
		"indexof string:6",
		"includes 5",
		"includes nope",
		"reverse",
		"join ''",
		"concat num:NaN json:[1,2]",
		"set 12 end",
		"delete 0",
		"join")

	e.checkNextLine(t, `^0,1,1,2,3,4,5,6,7,8$`)
	e.checkNextLine(t, `^6-1-1-2-3-4-5-6-7-8$`)
	e.checkNextLine(t, `^undefined$`)
	e.checkNextLine(t, `^undefined$`)
	e.checkNextLine(t, `^1,2,3$`)
	e.checkNextLine(t, `^7,8$`)
	e.checkNextLine(t, `^removed 2: 1,1$`)
	e.checkNextLine(t, `^6,a,b,c,2,3,4,5,6,7,8$`)
	e.checkNextLine(t, `^6,a,b,c,2,3,4,5,6,x,x$`)
	e.checkNextLine(t, `^0$`)
	e.checkNextLine(t, `^-1$`)
	e.checkNextLine(t, `^true$`)
	e.checkNextLine(t, `^false$`)
	e.checkNextLine(t, `^xx65432cba6$`)
	e.checkNextLine(t, `^x,x,6,5,4,3,2,c,b,a,6,NaN,1,2$`)
	e.checkNextLine(t, `^,x,6,5,4,3,2,c,b,a,6,,end$`)
	e.checkEOF(t)
}

func TestSortAndLocale(t *testing.T) {
	e := newTestShell(t)
	e.runProg(t,
		"new [10, 9, 1, 100]",
		"sort",
		"join",
		"sort asc",
		"join",
		"sort desc",
		"join",
		"sort desc",
		"sort sideways",
		"push num:1234.5",
		"locale de",
		"locale en-US",
		"locale ++")

	e.checkNextLine(t, `^1,10,100,9$`)
	e.checkNextLine(t, `^1,9,10,100$`)
	e.checkNextLine(t, `^100,10,9,1$`)
	e.checkNextLine(t, `^already sorted$`)
	e.checkError(t, ErrInvalidParameter)
	e.checkNextLine(t, `^5$`)
	e.checkNextLine(t, `^100,10,9,1,1.234,5$`)
	e.checkNextLine(t, `^100,10,9,1,1,234.5$`)
	e.checkError(t, ErrInvalidParameter)
}

func TestBadInput(t *testing.T) {
	e := newTestShell(t)
	e.runProg(t,
		"push bool:maybe",
		"push int:1.5",
		"get",
		"get x",
		"set 1",
		"new '{\"a\": 1}'",
		"new 5",
		"set 100000000000 x",
		"show Object",
		`push "unterminated`,
		"",
		"exit",
		"push never")

	e.checkError(t, ErrInvalidParameter)
	e.checkError(t, ErrInvalidParameter)
	e.checkError(t, ErrMissingParameter)
	e.checkError(t, ErrInvalidParameter)
	e.checkError(t, ErrMissingParameter)
	e.checkError(t, ErrInvalidParameter)
	e.checkError(t, ErrInvalidParameter)
	e.checkError(t, value.ErrTooBig)
	e.checkError(t, ErrInvalidParameter)
	e.checkNextLine(t, `^Error: failed to parse arguments`)
	e.checkNextLine(t, `^Bye!$`)
	e.checkEOF(t)
}

func TestCheck(t *testing.T) {
	e := newTestShell(t)
	e.runProg(t,
		`check Array.freeze "Array.toString()"`,
		"check Array.unknown")

	e.checkNextLine(t, `^Array.freeze passed$`)
	e.checkNextLine(t, `^Array.toString\(\) passed$`)
	e.checkNextLine(t, `^$`)
	e.checkNextLine(t, `^All tests finished in \d+ms \(2/2 passed\)$`)
	e.checkNextLine(t, `^Error: unknown case: Array.unknown$`)

	n, err := testutil.GatherAndCount(e.reg, "jsarray_conformance_cases_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestCheckQuiet(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(options.NewFilteringCore(core, options.QuietFilter(zapcore.WarnLevel, "shell"))).Named("shell")
	e := newTestShellWithLogger(t, log)
	e.runProg(t, "check Array.freeze")

	e.checkNextLine(t, `^Array.freeze passed$`)
	e.checkNextLine(t, `^$`)
	e.checkNextLine(t, `^All tests finished in \d+ms \(1/1 passed\)$`)
	e.checkEOF(t)
	require.Equal(t, 0, logs.FilterMessage("starting conformance run").Len())
	require.Equal(t, 0, logs.FilterMessage("conformance run finished").Len())
}

func TestShowTypes(t *testing.T) {
	e := newTestShell(t)
	e.runProg(t,
		`new '[1, "a", null, [2], true, "b"]'`,
		"show String Array",
		"show")

	e.checkNextLine(t, `^length: 6$`)
	e.checkNextLine(t, `^1\s+String\s+"a"$`)
	e.checkNextLine(t, `^3\s+Array\s+\[2\]$`)
	e.checkNextLine(t, `^5\s+String\s+"b"$`)
	e.checkNextLine(t, `^length: 6$`)
	for i := 0; i < 6; i++ {
		e.checkNextLine(t, "^"+strconv.Itoa(i)+`\s`)
	}
	e.checkEOF(t)
}
