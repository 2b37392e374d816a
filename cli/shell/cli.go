package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/nspcc-dev/jsarray/pkg/config"
	"github.com/nspcc-dev/jsarray/pkg/conformance"
	"github.com/nspcc-dev/jsarray/pkg/value"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	arrayKey            = "array"
	exitKey             = "exit"
	loggerKey           = "logger"
	registryKey         = "registry"
	readlineInstanceKey = "readlineKey"
	printLogoKey        = "printLogoKey"
)

var commands = []cli.Command{
	{
		Name:        "exit",
		Usage:       "Exit the shell",
		Description: "Exit the shell",
		Action:      handleExit,
	},
	{
		Name:      "new",
		Usage:     "Replace the working array with a new one",
		UsageText: `new [<json>]`,
		Description: `new [<json>]

<json> is an optional JSON array to initialize the working array with, example:
> new '[1, "two", true, null]'`,
		Action: handleNew,
	},
	{
		Name:      "show",
		Usage:     "Show working array contents",
		UsageText: `show [<type>...]`,
		Description: `show [<type>...]

Shows the length and elements of the working array. If types are given
(Undefined, Null, Boolean, Number, String or Array) only elements of these
types are listed.
Example:
> show Number String`,
		Action: handleShow,
	},
	{
		Name:        "json",
		Usage:       "Dump working array as JSON",
		Description: "Dump working array as JSON",
		Action:      handleJSON,
	},
	{
		Name:      "push",
		Usage:     "Append values to the end of the array",
		UsageText: `push <value>...`,
		Description: `push <value>...

` + valueHelp + `

Example:
> push 1 string:2 bool:true null`,
		Action: handlePush,
	},
	{
		Name:        "pop",
		Usage:       "Remove and show the last element",
		Description: "Remove and show the last element",
		Action:      handlePop,
	},
	{
		Name:        "shift",
		Usage:       "Remove and show the first element",
		Description: "Remove and show the first element",
		Action:      handleShift,
	},
	{
		Name:      "unshift",
		Usage:     "Insert values at the start of the array",
		UsageText: `unshift <value>...`,
		Description: `unshift <value>...

` + valueHelp,
		Action: handleUnshift,
	},
	{
		Name:      "get",
		Usage:     "Show an element",
		UsageText: `get <index>`,
		Action:    handleGet,
	},
	{
		Name:      "set",
		Usage:     "Replace an element",
		UsageText: `set <index> <value>`,
		Description: `set <index> <value>

Setting an element past the end of the array grows it with undefined elements.`,
		Action: handleSet,
	},
	{
		Name:      "delete",
		Usage:     "Delete an element leaving a hole",
		UsageText: `delete <index>`,
		Action:    handleDelete,
	},
	{
		Name:        "freeze",
		Usage:       "Make the array read-only",
		Description: "Make the array read-only, every following modification fails",
		Action:      handleFreeze,
	},
	{
		Name:      "concat",
		Usage:     "Show the array concatenated with values",
		UsageText: `concat <value>...`,
		Description: `concat <value>...

The working array is not changed, array values ('json:' type) are spread.`,
		Action: handleConcat,
	},
	{
		Name:      "copywithin",
		Usage:     "Copy a part of the array to another location in it",
		UsageText: `copywithin <target> <start> [<end>]`,
		Action:    handleCopyWithin,
	},
	{
		Name:      "fill",
		Usage:     "Fill the array with a value",
		UsageText: `fill <value> [<start> [<end>]]`,
		Action:    handleFill,
	},
	{
		Name:   "reverse",
		Usage:  "Reverse the array in place",
		Action: handleReverse,
	},
	{
		Name:      "sort",
		Usage:     "Sort the array in place",
		UsageText: `sort [asc|desc|text]`,
		Description: `sort [asc|desc|text]

Elements are compared as numbers with 'asc' and 'desc' and by their text
representation by default, undefined elements are always moved to the end.`,
		Action: handleSort,
	},
	{
		Name:      "slice",
		Usage:     "Show a part of the array",
		UsageText: `slice [<start> [<end>]]`,
		Action:    handleSlice,
	},
	{
		Name:      "splice",
		Usage:     "Remove elements and insert values in their place",
		UsageText: `splice <start> <count> [<value>...]`,
		Action:    handleSplice,
	},
	{
		Name:      "indexof",
		Usage:     "Show the index of the first strictly equal element",
		UsageText: `indexof <value>`,
		Action:    handleIndexOf,
	},
	{
		Name:      "includes",
		Usage:     "Check whether the array contains a value",
		UsageText: `includes <value>`,
		Action:    handleIncludes,
	},
	{
		Name:      "join",
		Usage:     "Join elements into a string",
		UsageText: `join [<separator>]`,
		Action:    handleJoin,
	},
	{
		Name:      "locale",
		Usage:     "Show the array formatted for a language",
		UsageText: `locale <tag>`,
		Description: `locale <tag>

<tag> is a BCP 47 language tag, example:
> locale de-DE`,
		Action: handleLocale,
	},
	{
		Name:      "check",
		Usage:     "Run conformance cases",
		UsageText: `check [<case>...]`,
		Description: `check [<case>...]

Runs the named conformance cases or all of them, failures don't stop the run.
Example:
> check Array.freeze "Array.sort()"`,
		Action: handleCheck,
	},
}

var completer *readline.PrefixCompleter

func init() {
	var pcItems []readline.PrefixCompleterInterface
	for i := range commands {
		// Negative indices are valid arguments.
		commands[i].SkipFlagParsing = true
	}
	for _, c := range commands {
		if c.Name == "check" {
			var caseItems []readline.PrefixCompleterInterface
			for _, n := range conformance.Names() {
				caseItems = append(caseItems, readline.PcItem(shellquote.Join(n)))
			}
			pcItems = append(pcItems, readline.PcItem(c.Name, caseItems...))
			continue
		}
		pcItems = append(pcItems, readline.PcItem(c.Name))
	}
	completer = readline.NewPrefixCompleter(pcItems...)
}

// Various errors.
var (
	ErrMissingParameter = errors.New("missing argument")
	ErrInvalidParameter = errors.New("can't parse argument")
)

// Shell is an interactive prompt operating on a single working array.
type Shell struct {
	shell    *cli.App
	commands *prometheus.CounterVec
}

// NewWithConfig returns a new Shell instance. Command and conformance metrics
// are registered on reg.
func NewWithConfig(printLogotype bool, c *readline.Config, reg *prometheus.Registry, log *zap.Logger) (*Shell, error) {
	if c.AutoComplete == nil {
		// Autocomplete commands on TAB.
		c.AutoComplete = completer
	}
	l, err := readline.NewEx(c)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	ctl := cli.NewApp()
	ctl.Name = "jsarray shell"

	// Note: need to set empty `ctl.HelpName` and `ctl.UsageText`, otherwise
	// `filepath.Base(os.Args[0])` will be used.
	ctl.HelpName = ""
	ctl.UsageText = ""

	ctl.Writer = l.Stdout()
	ctl.ErrWriter = l.Stderr()
	ctl.Version = config.Version
	ctl.Usage = "Interactive dynamic array shell"

	// Override default error handler in order not to exit on error.
	ctl.ExitErrHandler = func(*cli.Context, error) {}

	ctl.Commands = commands

	cmds := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of executed shell commands",
			Name:      "commands_total",
			Namespace: "jsarray",
			Subsystem: "shell",
		},
		[]string{"command"},
	)
	if err := reg.Register(cmds); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	sh := &Shell{
		shell:    ctl,
		commands: cmds,
	}
	sh.shell.Metadata = map[string]any{
		arrayKey:            value.NewArrayOf(),
		exitKey:             false,
		loggerKey:           log,
		registryKey:         reg,
		readlineInstanceKey: l,
		printLogoKey:        printLogotype,
	}
	changePrompt(sh.shell)
	return sh, nil
}

func getArrayFromContext(app *cli.App) *value.Array {
	return app.Metadata[arrayKey].(*value.Array)
}

func setArrayInContext(app *cli.App, arr *value.Array) {
	app.Metadata[arrayKey] = arr
}

func getReadlineInstanceFromContext(app *cli.App) *readline.Instance {
	return app.Metadata[readlineInstanceKey].(*readline.Instance)
}

func getLoggerFromContext(app *cli.App) *zap.Logger {
	return app.Metadata[loggerKey].(*zap.Logger)
}

func getRegistryFromContext(app *cli.App) *prometheus.Registry {
	return app.Metadata[registryKey].(*prometheus.Registry)
}

func getPrintLogoFromContext(app *cli.App) bool {
	return app.Metadata[printLogoKey].(bool)
}

func exitRequested(app *cli.App) bool {
	return app.Metadata[exitKey].(bool)
}

func handleExit(c *cli.Context) error {
	c.App.Metadata[exitKey] = true
	fmt.Fprintln(c.App.Writer, "Bye!")
	return nil
}

func handleNew(c *cli.Context) error {
	args := c.Args()
	if len(args) == 0 {
		setArrayInContext(c.App, value.NewArrayOf())
		return nil
	}
	arr, err := parseArray(strings.Join(args, " "))
	if err != nil {
		return err
	}
	setArrayInContext(c.App, arr)
	return nil
}

func handleShow(c *cli.Context) error {
	var types []value.Type
	for _, name := range c.Args() {
		typ, err := value.FromString(name)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidParameter, name, err)
		}
		types = append(types, typ)
	}
	arr := getArrayFromContext(c.App)
	fmt.Fprintf(c.App.Writer, "length: %d", arr.Len())
	if arr.IsFrozen() {
		fmt.Fprint(c.App.Writer, " (frozen)")
	}
	fmt.Fprintln(c.App.Writer)

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	for i := 0; i < arr.Len(); i++ {
		item := arr.Get(i)
		if len(types) != 0 && !slices.Contains(types, item.Type()) {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, item.Type(), render(item))
	}
	return w.Flush()
}

func handleJSON(c *cli.Context) error {
	data, err := value.ToJSON(getArrayFromContext(c.App))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(data))
	return nil
}

func handlePush(c *cli.Context) error {
	items, err := parseArgs(c.Args())
	if err != nil {
		return err
	}
	n, err := getArrayFromContext(c.App).Push(items...)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, n)
	return nil
}

func handlePop(c *cli.Context) error {
	item, err := getArrayFromContext(c.App).Pop()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, render(item))
	return nil
}

func handleShift(c *cli.Context) error {
	item, err := getArrayFromContext(c.App).Shift()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, render(item))
	return nil
}

func handleUnshift(c *cli.Context) error {
	items, err := parseArgs(c.Args())
	if err != nil {
		return err
	}
	n, err := getArrayFromContext(c.App).Unshift(items...)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, n)
	return nil
}

func handleGet(c *cli.Context) error {
	idx, err := parseInts(c.Args(), 1, 1, "<index>")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, render(getArrayFromContext(c.App).Get(idx[0])))
	return nil
}

func handleSet(c *cli.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return fmt.Errorf("%w: <index> <value>", ErrMissingParameter)
	}
	idx, err := parseInts(args[:1], 1, 1, "<index>")
	if err != nil {
		return err
	}
	items, err := parseArgs(args[1:])
	if err != nil {
		return err
	}
	return getArrayFromContext(c.App).Set(idx[0], items[0])
}

func handleDelete(c *cli.Context) error {
	idx, err := parseInts(c.Args(), 1, 1, "<index>")
	if err != nil {
		return err
	}
	return getArrayFromContext(c.App).Delete(idx[0])
}

func handleFreeze(c *cli.Context) error {
	getArrayFromContext(c.App).Freeze()
	changePrompt(c.App)
	return nil
}

func handleConcat(c *cli.Context) error {
	items, err := parseArgs(c.Args())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, getArrayFromContext(c.App).Concat(items...).Join(","))
	return nil
}

func handleCopyWithin(c *cli.Context) error {
	idx, err := parseInts(c.Args(), 2, 3, "<target> <start> [<end>]")
	if err != nil {
		return err
	}
	arr := getArrayFromContext(c.App)
	if len(idx) == 3 {
		return arr.CopyWithinRange(idx[0], idx[1], idx[2])
	}
	return arr.CopyWithin(idx[0], idx[1])
}

func handleFill(c *cli.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return fmt.Errorf("%w: <value>", ErrMissingParameter)
	}
	items, err := parseArgs(args[:1])
	if err != nil {
		return err
	}
	arr := getArrayFromContext(c.App)
	idx, err := parseInts(args[1:], 0, 2, "[<start> [<end>]]")
	if err != nil {
		return err
	}
	switch len(idx) {
	case 0:
		return arr.Fill(items[0], 0)
	case 1:
		return arr.Fill(items[0], idx[0])
	default:
		return arr.FillRange(items[0], idx[0], idx[1])
	}
}

func handleReverse(c *cli.Context) error {
	return getArrayFromContext(c.App).Reverse()
}

func handleSort(c *cli.Context) error {
	var cmp value.Comparator
	switch mode := c.Args().First(); mode {
	case "", "text":
		cmp = value.CompareText
	case "asc":
		cmp = value.Ascending
	case "desc":
		cmp = value.Descending
	default:
		return fmt.Errorf("%w: unknown sort order %q", ErrInvalidParameter, mode)
	}
	arr := getArrayFromContext(c.App)
	if !arr.IsFrozen() && arr.IsSorted(cmp) {
		fmt.Fprintln(c.App.Writer, "already sorted")
		return nil
	}
	return arr.Sort(cmp)
}

func handleSlice(c *cli.Context) error {
	idx, err := parseInts(c.Args(), 0, 2, "[<start> [<end>]]")
	if err != nil {
		return err
	}
	arr := getArrayFromContext(c.App)
	var res *value.Array
	switch len(idx) {
	case 0:
		res = arr.SliceFrom(0)
	case 1:
		res = arr.SliceFrom(idx[0])
	default:
		res = arr.Slice(idx[0], idx[1])
	}
	fmt.Fprintln(c.App.Writer, res.Join(","))
	return nil
}

func handleSplice(c *cli.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return fmt.Errorf("%w: <start> <count>", ErrMissingParameter)
	}
	idx, err := parseInts(args[:2], 2, 2, "<start> <count>")
	if err != nil {
		return err
	}
	items, err := parseArgs(args[2:])
	if err != nil {
		return err
	}
	removed, err := getArrayFromContext(c.App).Splice(idx[0], idx[1], items...)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "removed %d: %s\n", removed.Len(), removed.Join(","))
	return nil
}

func handleIndexOf(c *cli.Context) error {
	item, err := parseSingle(c.Args())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, getArrayFromContext(c.App).IndexOf(item))
	return nil
}

func handleIncludes(c *cli.Context) error {
	item, err := parseSingle(c.Args())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, getArrayFromContext(c.App).Includes(item))
	return nil
}

func handleJoin(c *cli.Context) error {
	sep := ","
	if len(c.Args()) > 0 {
		sep = c.Args()[0]
	}
	fmt.Fprintln(c.App.Writer, getArrayFromContext(c.App).Join(sep))
	return nil
}

func handleLocale(c *cli.Context) error {
	if len(c.Args()) != 1 {
		return fmt.Errorf("%w: <tag>", ErrMissingParameter)
	}
	tag, err := language.Parse(c.Args()[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	fmt.Fprintln(c.App.Writer, getArrayFromContext(c.App).ToLocaleString(tag))
	return nil
}

func handleCheck(c *cli.Context) error {
	r, err := conformance.NewRunner(config.Runner{
		KeepGoing: true,
		Cases:     c.Args(),
	}, c.App.Writer, getLoggerFromContext(c.App).Named("runner"), getRegistryFromContext(c.App))
	if err != nil {
		return err
	}
	_, err = r.Run(context.Background())
	if errors.Is(err, conformance.ErrFailed) {
		// Failures are already reported.
		return nil
	}
	return err
}

func changePrompt(app *cli.App) {
	l := getReadlineInstanceFromContext(app)
	if getArrayFromContext(app).IsFrozen() {
		l.SetPrompt("\033[32mJSARRAY (frozen) >\033[0m ")
	} else {
		l.SetPrompt("\033[32mJSARRAY >\033[0m ")
	}
}

// Run waits for user input from Stdin and executes the passed command.
func (c *Shell) Run() error {
	if getPrintLogoFromContext(c.shell) {
		printLogo(c.shell.Writer)
	}
	l := getReadlineInstanceFromContext(c.shell)
	defer l.Close()
	for !exitRequested(c.shell) {
		line, err := l.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil // OK, stop execution.
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err) // Critical error, stop execution.
		}

		args, err := shellquote.Split(line)
		if err != nil {
			writeErr(c.shell.ErrWriter, fmt.Errorf("failed to parse arguments: %w", err))
			continue // Not a critical error, continue execution.
		}
		if len(args) == 0 {
			continue
		}
		if c.shell.Command(args[0]) != nil {
			c.commands.WithLabelValues(args[0]).Inc()
		}

		err = c.shell.Run(append([]string{"jsarray"}, args...))
		if err != nil {
			writeErr(c.shell.ErrWriter, err) // Various command/flags parsing errors and execution errors.
		}
		changePrompt(c.shell)
	}
	return nil
}

func render(item value.Item) string {
	switch it := item.(type) {
	case value.String:
		return strconv.Quote(string(it))
	case *value.Array:
		return "[" + it.Join(",") + "]"
	default:
		return item.String()
	}
}

const logo = `
       _______ ___    ____  ____  ___  __  __
      / / ___//   |  / __ \/ __ \/   | \ \/ /
 __  / /\__ \/ /| | / /_/ / /_/ / /| |  \  /
/ /_/ /___/ / ___ |/ _, _/ _, _/ ___ |  / /
\____//____/_/  |_/_/ |_/_/ |_/_/  |_| /_/
`

func printLogo(w io.Writer) {
	fmt.Fprint(w, logo)
	fmt.Fprintln(w)
	fmt.Fprintln(w)
}

func writeErr(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err)
}
