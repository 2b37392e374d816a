package value

import "errors"

// Type represents type of the value.
type Type byte

// This block defines all known value types.
const (
	UndefinedT Type = 0x00
	NullT      Type = 0x01
	BooleanT   Type = 0x20
	NumberT    Type = 0x21
	StringT    Type = 0x28
	ArrayT     Type = 0x40
	InvalidT   Type = 0xFF
)

// String implements fmt.Stringer interface.
func (t Type) String() string {
	switch t {
	case UndefinedT:
		return "Undefined"
	case NullT:
		return "Null"
	case BooleanT:
		return "Boolean"
	case NumberT:
		return "Number"
	case StringT:
		return "String"
	case ArrayT:
		return "Array"
	default:
		return "INVALID"
	}
}

// FromString returns value type from string.
func FromString(s string) (Type, error) {
	switch s {
	case "Undefined":
		return UndefinedT, nil
	case "Null":
		return NullT, nil
	case "Boolean":
		return BooleanT, nil
	case "Number":
		return NumberT, nil
	case "String":
		return StringT, nil
	case "Array":
		return ArrayT, nil
	default:
		return InvalidT, errors.New("invalid type")
	}
}
