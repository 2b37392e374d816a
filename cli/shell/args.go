package shell

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nspcc-dev/jsarray/pkg/value"
)

const (
	boolType      = "bool"
	boolFalse     = "false"
	boolTrue      = "true"
	intType       = "int"
	numType       = "num"
	stringType    = "string"
	jsonType      = "json"
	nullType      = "null"
	undefinedType = "undefined"
)

const valueHelp = `<value> is a value that can be specified as <type>:<value>, where type can be:
    '` + boolType + `': supports '` + boolFalse + `' and '` + boolTrue + `' values
    '` + intType + `': supports integers as values
    '` + numType + `': supports any numbers including NaN and Infinity
    '` + stringType + `': supports strings as values
    '` + jsonType + `': supports JSON arrays as values
or can be just <value>, for which the type will be detected automatically
following these rules: '` + boolTrue + `' and '` + boolFalse + `' are treated as respective
boolean values, '` + nullType + `' and '` + undefinedType + `' are the respective special
values, everything that can be converted to a number is treated as a number
and everything else is treated like a string.`

// parseArgs converts shell arguments into array elements.
func parseArgs(args []string) ([]value.Item, error) {
	items := make([]value.Item, len(args))
	for i, arg := range args {
		item, err := parseArg(arg)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

func parseArg(arg string) (value.Item, error) {
	var typ, val string
	typeAndVal := strings.SplitN(arg, ":", 2)
	if len(typeAndVal) < 2 || !knownType(typeAndVal[0]) {
		switch arg {
		case boolFalse, boolTrue:
			typ = boolType
		case nullType, undefinedType:
			typ = arg
		default:
			if _, ok := toNumber(arg); ok {
				typ = numType
			} else {
				typ = stringType
			}
		}
		val = arg
	} else {
		typ = typeAndVal[0]
		val = typeAndVal[1]
	}

	switch typ {
	case boolType:
		switch val {
		case boolFalse:
			return value.NewBool(false), nil
		case boolTrue:
			return value.NewBool(true), nil
		default:
			return nil, fmt.Errorf("%w: invalid bool value", ErrInvalidParameter)
		}
	case intType:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid integer value", ErrInvalidParameter)
		}
		return value.NewNumber(float64(n)), nil
	case numType:
		f, ok := toNumber(val)
		if !ok {
			return nil, fmt.Errorf("%w: invalid number value", ErrInvalidParameter)
		}
		return value.NewNumber(f), nil
	case nullType:
		return value.Null{}, nil
	case undefinedType:
		return value.Undefined{}, nil
	case jsonType:
		return parseArray(val)
	default:
		return value.NewString(val), nil
	}
}

// toNumber converts s the way string to number coercion does, surrounding
// spaces and empty strings are not accepted.
func toNumber(s string) (float64, bool) {
	if s == "NaN" {
		return math.NaN(), true
	}
	if s == "" || strings.TrimSpace(s) != s {
		return 0, false
	}
	f := value.ToNumber(value.NewString(s))
	return f, !math.IsNaN(f)
}

func knownType(typ string) bool {
	switch typ {
	case boolType, intType, numType, stringType, jsonType:
		return true
	}
	return false
}

func parseSingle(args []string) (value.Item, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: <value>", ErrMissingParameter)
	}
	return parseArg(args[0])
}

// parseInts parses between minN and maxN integer arguments, usage is used in
// the error message.
func parseInts(args []string, minN, maxN int, usage string) ([]int, error) {
	if len(args) < minN || len(args) > maxN {
		return nil, fmt.Errorf("%w: %s", ErrMissingParameter, usage)
	}
	res := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidParameter, err)
		}
		res[i] = n
	}
	return res, nil
}

func parseArray(data string) (*value.Array, error) {
	item, err := value.FromJSON([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	arr, ok := item.(*value.Array)
	if !ok {
		return nil, fmt.Errorf("%w: JSON array expected, got %s", ErrInvalidParameter, item.Type())
	}
	return arr, nil
}
