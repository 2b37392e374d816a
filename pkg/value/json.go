package value

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	json "github.com/nspcc-dev/go-ordered-json"
)

// MaxJSONDepth is the maximum allowed nesting level of encoded/decoded JSON.
const MaxJSONDepth = 64

var (
	// ErrInvalidValue is returned when a value doesn't fit some constraints
	// during serialization or deserialization.
	ErrInvalidValue = errors.New("invalid value")
	// ErrTooDeep is returned when JSON encoder/decoder goes beyond MaxJSONDepth
	// in its processing, cyclic arrays end up here too.
	ErrTooDeep = errors.New("too deep")
)

// ToJSON encodes Item to JSON.
// It behaves as following:
//
//	Number -> number, NaN and infinities -> null
//	String -> string
//	Bool -> bool
//	Null -> null
//	Undefined -> null inside of an array, error otherwise
//	Array -> array
func ToJSON(item Item) ([]byte, error) {
	if _, ok := item.(Undefined); ok || item == nil {
		return nil, fmt.Errorf("%w: undefined can't be encoded", ErrInvalidConversion)
	}
	return toJSON(nil, item, 0)
}

func toJSON(data []byte, item Item, depth int) ([]byte, error) {
	if depth > MaxJSONDepth {
		return nil, ErrTooDeep
	}
	switch it := item.(type) {
	case *Array:
		data = append(data, '[')
		for i, v := range it.value {
			if i != 0 {
				data = append(data, ',')
			}
			var err error
			data, err = toJSON(data, v, depth+1)
			if err != nil {
				return nil, err
			}
		}
		data = append(data, ']')
	case Number:
		f := float64(it)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			data = append(data, "null"...)
		} else {
			data = append(data, formatNumber(f)...)
		}
	case String:
		raw, err := json.Marshal(string(it))
		if err != nil {
			return nil, err
		}
		data = append(data, raw...)
	case Bool:
		data = append(data, it.String()...)
	case Null, Undefined:
		data = append(data, "null"...)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidConversion, item)
	}
	return data, nil
}

// FromJSON decodes an Item from JSON. Objects are not supported, numbers
// become Number, null becomes Null.
func FromJSON(data []byte) (Item, error) {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseOrderedObject()
	d.UseNumber()

	var v any
	if err := d.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if d.More() {
		return nil, fmt.Errorf("%w: unexpected data after the value", ErrInvalidValue)
	}
	return fromJSON(v, 0)
}

func fromJSON(v any, depth int) (Item, error) {
	if depth > MaxJSONDepth {
		return nil, ErrTooDeep
	}
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		return Number(f), nil
	case []any:
		items := make([]Item, len(val))
		for i := range val {
			var err error
			items[i], err = fromJSON(val[i], depth+1)
			if err != nil {
				return nil, err
			}
		}
		return NewArray(items), nil
	default:
		return nil, fmt.Errorf("%w: %T is not supported", ErrInvalidConversion, v)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (a *Array) MarshalJSON() ([]byte, error) {
	return toJSON(nil, a, 0)
}

// UnmarshalJSON implements the json.Unmarshaler interface. Frozen arrays
// can't be changed.
func (a *Array) UnmarshalJSON(data []byte) error {
	if a.IsFrozen() {
		return ErrFrozen
	}
	item, err := FromJSON(data)
	if err != nil {
		return err
	}
	arr, ok := item.(*Array)
	if !ok {
		return fmt.Errorf("%w: %s is not an array", ErrInvalidConversion, item.Type())
	}
	a.value = arr.value
	return nil
}
