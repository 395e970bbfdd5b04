package features

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies which variant a Value holds.
type ValueKind int

const (
	// Missing marks an absent, null or blank input.
	Missing ValueKind = iota
	// Text is a raw string as typed by the user.
	Text
	// Number is a JSON number (or boolean) input.
	Number
)

// Value is a single raw field as received from a JSON payload or a CSV cell.
type Value struct {
	kind ValueKind
	text string
	num  float64
}

// MissingValue returns the Missing variant.
func MissingValue() Value { return Value{} }

// TextValue returns the Text variant.
func TextValue(s string) Value { return Value{kind: Text, text: s} }

// NumberValue returns the Number variant.
func NumberValue(f float64) Value { return Value{kind: Number, num: f} }

// Kind reports the variant.
func (v Value) Kind() ValueKind { return v.kind }

// IsBlank reports whether the value carries no usable content: Missing, whitespace-only
// text, or a NaN number.
func (v Value) IsBlank() bool {
	switch v.kind {
	case Text:
		return strings.TrimSpace(v.text) == ""
	case Number:
		return math.IsNaN(v.num)
	default:
		return true
	}
}

// String renders the raw value the way it appears in error messages.
func (v Value) String() string {
	switch v.kind {
	case Text:
		return v.text
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// UnmarshalJSON decodes any JSON scalar into the matching variant. Objects and arrays
// are kept as raw text so that they fail column validation with a useful message.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = MissingValue()
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode string value: %w", err)
		}
		*v = TextValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("decode boolean value: %w", err)
		}
		if b {
			*v = NumberValue(1)
		} else {
			*v = NumberValue(0)
		}
	case '{', '[':
		*v = TextValue(string(data))
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("decode numeric value %q: %w", data, err)
		}
		*v = NumberValue(f)
	}
	return nil
}

// MarshalJSON encodes the value back to its JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Text:
		return json.Marshal(v.text)
	case Number:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// naTokens mirrors the default missing-value markers of common CSV exporters.
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {},
	"-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {}, "NA": {}, "NULL": {},
	"NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// CellValue converts a CSV cell into a Value. Blank cells and NA markers are Missing.
func CellValue(cell string) Value {
	s := strings.TrimSpace(cell)
	if s == "" {
		return MissingValue()
	}
	if _, ok := naTokens[s]; ok {
		return MissingValue()
	}
	return TextValue(s)
}

// Record maps column names to raw values.
type Record map[string]Value

// Get returns the value for column, or Missing when absent.
func (r Record) Get(column string) Value {
	v, ok := r[column]
	if !ok {
		return MissingValue()
	}
	return v
}

// UnmarshalJSON decodes a JSON object, trimming whitespace around every key.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("payload must be a JSON object")
	}
	out := make(Record, len(raw))
	for k, v := range raw {
		out[strings.TrimSpace(k)] = v
	}
	*r = out
	return nil
}
