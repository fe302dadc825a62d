package jsonenc

import (
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
)

// Fallback converts an otherwise-unencodable value into an encodable one.
// It is invoked per value, mirroring orjson's default hook.
type Fallback func(v any) (any, error)

// SerializationError reports a value that could not be encoded even after the
// fallback was consulted.
type SerializationError struct {
	Value any
	Err   error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("jsonenc: cannot serialize value of type %T: %v", e.Value, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Option configures serialization.
type Option func(*encoder)

// WithFallback sets the fallback encoder for non-serializable values.
func WithFallback(fn Fallback) Option {
	return func(e *encoder) {
		e.fallback = fn
	}
}

type encoder struct {
	fallback Fallback
}

// Serialize encodes v as deterministic JSON.
//
// Strings are returned unchanged: the input is assumed pre-serialized, which
// keeps Serialize idempotent. For everything else object keys are sorted
// lexicographically and non-string map keys are coerced to their string form.
func Serialize(v any, opts ...Option) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	e := &encoder{}
	for _, opt := range opts {
		opt(e)
	}

	normalized, err := e.normalize(v)
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(normalized)
	if err != nil {
		return "", &SerializationError{Value: v, Err: err}
	}
	return string(raw), nil
}

// normalize rewrites maps to map[string]any with stringified keys and walks
// containers so the fallback sees individual leaf values.
func (e *encoder) normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return e.normalize(rv.Elem().Interface())
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, ok := iter.Key().Interface().(string)
			if !ok {
				key = fmt.Sprint(iter.Key().Interface())
			}
			val, err := e.normalize(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[key] = val
		}
		return out, nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return e.leaf(v)
		}
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			val, err := e.normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	default:
		return e.leaf(v)
	}
}

// leaf verifies a scalar/struct value is encodable, consulting the fallback once.
func (e *encoder) leaf(v any) (any, error) {
	if _, err := json.Marshal(v); err == nil {
		return v, nil
	} else if e.fallback == nil {
		return nil, &SerializationError{Value: v, Err: err}
	}

	converted, err := e.fallback(v)
	if err != nil {
		return nil, &SerializationError{Value: v, Err: err}
	}
	if _, err := json.Marshal(converted); err != nil {
		return nil, &SerializationError{Value: v, Err: err}
	}
	return converted, nil
}
