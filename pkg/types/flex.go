package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type FlexKind uint8

const (
	FlexAbsent FlexKind = iota
	FlexNumber
	FlexString
)

// FlexValue is a wire field the backend sends either as a JSON number or as
// its string representation. null and a missing key both decode to Absent.
type FlexValue struct {
	kind FlexKind
	num  float64
	str  string
	// literal digits of a decoded number, kept so large ids survive
	raw string
}

func Number(v float64) FlexValue {
	return FlexValue{kind: FlexNumber, num: v}
}

func String(v string) FlexValue {
	return FlexValue{kind: FlexString, str: v}
}

func (v FlexValue) Kind() FlexKind {
	return v.kind
}

func (v FlexValue) IsAbsent() bool {
	return v.kind == FlexAbsent
}

func (v *FlexValue) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*v = FlexValue{}
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n, err := strconv.ParseFloat(string(raw), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("flex value: invalid number %s: %w", raw, err)
		}
		// out of range numbers keep ±Inf, which every coercion turns into 0
		*v = FlexValue{kind: FlexNumber, num: n, raw: string(raw)}
		return nil
	}
	return fmt.Errorf("flex value: want number or string, got %s", raw)
}

func (v FlexValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case FlexNumber:
		if v.raw != "" {
			return []byte(v.raw), nil
		}
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	case FlexString:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

// Int is the integer coercion used by every adapter: integer parse first,
// then float parse truncated toward zero. Anything else yields 0.
func (v FlexValue) Int() int64 {
	switch v.kind {
	case FlexNumber:
		if n, err := strconv.ParseInt(v.raw, 10, 64); err == nil {
			return n
		}
		return finiteInt(v.num)
	case FlexString:
		s := strings.TrimSpace(v.str)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return finiteInt(f)
		}
	}
	return 0
}

// Float is the float coercion used by every adapter. Non-finite and
// unparsable values yield 0.
func (v FlexValue) Float() float64 {
	var f float64
	switch v.kind {
	case FlexNumber:
		f = v.num
	case FlexString:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func (v FlexValue) Text() string {
	switch v.kind {
	case FlexNumber:
		if v.raw != "" {
			return v.raw
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case FlexString:
		return v.str
	}
	return ""
}

func finiteInt(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}
