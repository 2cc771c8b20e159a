package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
)

// ErrSignParamsMissing is returned when params is absent or null.
var ErrSignParamsMissing = errors.New("params is required")

// ErrSurrogateParams is returned for a string params value holding characters
// outside the Basic Multilingual Plane. Clients key strings by UTF-16 code
// unit, so such a character splits into two unsignable halves.
var ErrSurrogateParams = errors.New("params string must not contain characters outside the BMP")

// ErrInvalidTimestamp is returned when a timestamp does not coerce to a finite number.
var ErrInvalidTimestamp = errors.New("timestamp must be a number")

// SignParam is one rendered key/value pair of a signing request.
type SignParam struct {
	Key   string
	Value string
}

// SignParams keeps the iteration order that existing clients sign with:
// array-index keys ascending first, then the other keys in the order they
// first appear in the JSON document.
type SignParams []SignParam

// ParseSignParams decodes the raw "params" value of a signing request.
// Objects keep their key order (a repeated key keeps its first position and
// its last value), arrays are keyed by index, strings by character index,
// and numbers or booleans contribute no pairs.
func ParseSignParams(raw json.RawMessage) (SignParams, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrSignParamsMissing
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	v, err := decodeOrdered(dec)
	if err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}

	switch t := v.(type) {
	case *orderedObject:
		return t.params(), nil
	case []any:
		out := make(SignParams, 0, len(t))
		for i, el := range t {
			out = append(out, SignParam{Key: strconv.Itoa(i), Value: jsString(el)})
		}
		return out, nil
	case string:
		var out SignParams
		i := 0
		for _, r := range t {
			if utf16.RuneLen(r) > 1 {
				return nil, ErrSurrogateParams
			}
			out = append(out, SignParam{Key: strconv.Itoa(i), Value: string(r)})
			i++
		}
		return out, nil
	default:
		return SignParams{}, nil
	}
}

// ParseTimestamp coerces the raw "timestamp" value the way Number() would:
// numbers pass through, numeric strings are parsed, booleans become 0/1.
func ParseTimestamp(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, ErrInvalidTimestamp
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	var f float64
	switch t := v.(type) {
	case json.Number:
		n, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, ErrInvalidTimestamp
		}
		f = n
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, ErrInvalidTimestamp
		}
		f = n
	case bool:
		if t {
			f = 1
		}
	case nil:
		f = 0
	default:
		return 0, ErrInvalidTimestamp
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidTimestamp
	}
	return f, nil
}

// FormatJSNumber renders f the way JavaScript's Number#toString does:
// shortest round-trip digits, plain notation for 1e-6 <= |f| < 1e21 and
// exponent notation otherwise.
func FormatJSNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}

type orderedObject struct {
	keys   []string
	values map[string]any
}

func (o *orderedObject) set(k string, v any) {
	if o.values == nil {
		o.values = map[string]any{}
	}
	if _, ok := o.values[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.values[k] = v
}

func (o *orderedObject) params() SignParams {
	var index, named []string
	for _, k := range o.keys {
		if _, ok := arrayIndex(k); ok {
			index = append(index, k)
		} else {
			named = append(named, k)
		}
	}
	sort.SliceStable(index, func(i, j int) bool {
		a, _ := arrayIndex(index[i])
		b, _ := arrayIndex(index[j])
		return a < b
	})
	out := make(SignParams, 0, len(o.keys))
	for _, k := range append(index, named...) {
		out = append(out, SignParam{Key: k, Value: jsString(o.values[k])})
	}
	return out
}

// arrayIndex reports whether k is a canonical array index (0 <= n < 2^32-1).
func arrayIndex(k string) (uint64, bool) {
	if k == "" || (len(k) > 1 && k[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(k, 10, 64)
	if err != nil || n >= math.MaxUint32 {
		return 0, false
	}
	return n, true
}

func decodeOrdered(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		obj := &orderedObject{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := kt.(string)
			v, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			obj.set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", d)
}

// jsString renders a decoded JSON value the way String(v) does in JavaScript.
func jsString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil && !math.IsInf(f, 0) {
			return t.String()
		}
		return FormatJSNumber(f)
	case []any:
		parts := make([]string, len(t))
		for i, el := range t {
			if el != nil {
				parts[i] = jsString(el)
			}
		}
		return strings.Join(parts, ",")
	case *orderedObject:
		return "[object Object]"
	}
	return fmt.Sprint(v)
}
