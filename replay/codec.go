package replay

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The portable state encoding is a self-describing JSON record:
//
//    {
//        "constructorArgs":   [ … ],
//        "constructorKwargs": { … },
//        "stepCount":         3,
//        "yieldedHistory":    [ … ],
//        "exhausted":         false
//    }
//
// Field names are stable across versions; unknown extra fields are ignored
// on decode. The value domain is closed: integers (int64), floats (float64),
// strings, booleans, nil, ordered sequences and flat string-keyed mappings.
// Floats are always written with a decimal point (or exponent), so the
// numeric kind of every value survives the round trip: Decode(Encode(s)) is
// structurally equal to s for every state a wrapper can reach.

// SerializationError reports a value outside the encoding's supported value
// domain.
type SerializationError struct {
	Type string // the offending Go type
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("cannot serialize value of type %s", e.Type)
}

// Encode converts a state into its portable encoded form.
func Encode(s State) ([]byte, error) {
	args, err := encodeValues(s.Args)
	if err != nil {
		return nil, err
	}
	yielded, err := encodeValues(s.Yielded)
	if err != nil {
		return nil, err
	}
	var kwargs map[string]interface{}
	if s.Kwargs != nil {
		kw, kerr := encodeValue(s.Kwargs)
		if kerr != nil {
			return nil, kerr
		}
		kwargs = kw.(map[string]interface{})
	}
	return json.Marshal(State{
		Args:      args,
		Kwargs:    kwargs,
		StepCount: s.StepCount,
		Yielded:   yielded,
		Exhausted: s.Exhausted,
	})
}

// Decode converts an encoded record back into a state. Unknown fields in the
// record are ignored for forward compatibility.
func Decode(data []byte) (State, error) {
	var s State
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&s); err != nil {
		return State{}, fmt.Errorf("malformed state record: %v", err)
	}
	if s.StepCount < 0 {
		return State{}, fmt.Errorf("malformed state record: negative step count %d", s.StepCount)
	}
	var err error
	if s.Args, err = decodeValues(s.Args); err != nil {
		return State{}, err
	}
	if s.Yielded, err = decodeValues(s.Yielded); err != nil {
		return State{}, err
	}
	for k, v := range s.Kwargs {
		dv, derr := decodeValue(v)
		if derr != nil {
			return State{}, derr
		}
		s.Kwargs[k] = dv
	}
	return s, nil
}

// --- Encoding ------------------------------------------------------------------

// rawFloat marshals a float64 such that the token always reads back as a
// float (never as an integer).
type rawFloat float64

func (f rawFloat) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return []byte(s), nil
}

func encodeValues(vs []interface{}) ([]interface{}, error) {
	if vs == nil {
		return nil, nil
	}
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		ev, err := encodeValue(v)
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return out, nil
}

func encodeValue(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool, string, int64:
		return val, nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, &SerializationError{Type: fmt.Sprintf("float64 (%v)", val)}
		}
		return rawFloat(val), nil
	case []interface{}:
		return encodeValues(val)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, elem := range val {
			ev, err := encodeValue(elem)
			if err != nil {
				return nil, err
			}
			out[k] = ev
		}
		return out, nil
	}
	return nil, &SerializationError{Type: fmt.Sprintf("%T", v)}
}

// --- Decoding ------------------------------------------------------------------

func decodeValues(vs []interface{}) ([]interface{}, error) {
	if vs == nil {
		return nil, nil
	}
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		dv, err := decodeValue(v)
		if err != nil {
			return nil, err
		}
		out[i] = dv
	}
	return out, nil
}

// decodeValue maps JSON tokens back into the canonical value domain. Numeric
// tokens without a fraction or exponent become int64, all others float64.
func decodeValue(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case nil, bool, string:
		return val, nil
	case json.Number:
		if !strings.ContainsAny(val.String(), ".eE") {
			if n, err := val.Int64(); err == nil {
				return n, nil
			}
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("malformed number in state record: %s", val.String())
		}
		return f, nil
	case []interface{}:
		return decodeValues(val)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, elem := range val {
			dv, err := decodeValue(elem)
			if err != nil {
				return nil, err
			}
			out[k] = dv
		}
		return out, nil
	}
	return nil, &SerializationError{Type: fmt.Sprintf("%T", v)}
}

// --- Canonicalization ------------------------------------------------------------

// canon maps a captured value into the canonical domain: every Go integer
// kind becomes int64, float32 becomes float64. Containers are copied with
// canonical elements. Values outside the domain pass through unchanged and
// are rejected later, by Encode.
func canon(v interface{}) interface{} {
	switch val := v.(type) {
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		if val <= math.MaxInt64 {
			return int64(val)
		}
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		if val <= math.MaxInt64 {
			return int64(val)
		}
	case float32:
		return float64(val)
	case []interface{}:
		return canonSlice(val)
	case map[string]interface{}:
		return canonMap(val)
	}
	return v
}

func canonSlice(vs []interface{}) []interface{} {
	if vs == nil {
		return nil
	}
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		out[i] = canon(v)
	}
	return out
}

func canonMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = canon(v)
	}
	return out
}
