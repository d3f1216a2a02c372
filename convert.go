package modus

import (
	"encoding/json"
	"reflect"
	"strconv"
)

// asInt64 attempts lossless coercion of v to int64. It accepts the Go integer
// kinds, integral floats, json.Number, and decimal strings (decoders hand any
// of these back depending on configuration).
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= 1<<63-1
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= 1<<63-1
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt64(f)
		}
		return 0, false
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	case numberLike:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt64(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

// numberLike matches json.Number regardless of which json package's alias
// the decoder handed back.
type numberLike interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

func floatToInt64(f float64) (int64, bool) {
	i := int64(f)
	if float64(i) != f {
		return 0, false
	}
	return i, true
}

// asUint64 is the unsigned counterpart of asInt64; negative input is rejected.
func asUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case json.Number:
		if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
			return u, true
		}
		if f, err := n.Float64(); err == nil {
			return floatToUint64(f)
		}
		return 0, false
	case string:
		u, err := strconv.ParseUint(n, 10, 64)
		return u, err == nil
	case float32:
		return floatToUint64(float64(n))
	case float64:
		return floatToUint64(n)
	case numberLike:
		if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
			return u, true
		}
		if f, err := n.Float64(); err == nil {
			return floatToUint64(f)
		}
		return 0, false
	default:
		if i, ok := asInt64(v); ok && i >= 0 {
			return uint64(i), true
		}
		return 0, false
	}
}

func floatToUint64(f float64) (uint64, bool) {
	if f < 0 {
		return 0, false
	}
	u := uint64(f)
	if float64(u) != f {
		return 0, false
	}
	return u, true
}

// choiceEqual compares a configured choice against a candidate value.
// Numeric values compare by magnitude regardless of their concrete Go type,
// since deserialization canonicalizes (an int choice must match the int64 the
// Integer field produced); everything else falls back to deep equality.
func choiceEqual(choice, v any) bool {
	if isNumeric(choice) && isNumeric(v) {
		if ci, ok := asInt64(choice); ok {
			if vi, ok := asInt64(v); ok {
				return ci == vi
			}
		}
		if cu, ok := asUint64(choice); ok {
			if vu, ok := asUint64(v); ok {
				return cu == vu
			}
		}
		cf, cok := asFloat64(choice)
		vf, vok := asFloat64(v)
		return cok && vok && cf == vf
	}
	return reflect.DeepEqual(choice, v)
}

func isNumeric(v any) bool {
	if _, ok := v.(numberLike); ok {
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		if i, ok := asInt64(v); ok {
			return float64(i), true
		}
		if u, ok := asUint64(v); ok {
			return float64(u), true
		}
		return 0, false
	}
}
