package payload

import (
	"bytes"
	"encoding/json"
)

// Record is a single loosely-typed upstream record after unwrapping.
type Record map[string]any

// Shape identifies which top-level layout an upstream response used.
type Shape int

const (
	// ShapeUnrecognized covers null, scalars and anything else we cannot read.
	ShapeUnrecognized Shape = iota
	// ShapeArray is a bare JSON array of records.
	ShapeArray
	// ShapeWrapped is an object holding the records under a wrapper key.
	ShapeWrapped
	// ShapeObject is a bare object that is itself the record.
	ShapeObject
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeWrapped:
		return "wrapped"
	case ShapeObject:
		return "object"
	default:
		return "unrecognized"
	}
}

// wrapperKeys are checked in order; the first array-valued one wins.
var wrapperKeys = []string{"data", "result"}

// Decode parses JSON into generic values. Anything that is not valid JSON
// decodes to nil, which every consumer treats as "no candidate".
func Decode(data []byte) any {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}

// Classify reports the top-level shape of a decoded payload.
func Classify(v any) Shape {
	shape, _ := classify(v)
	return shape
}

// Unwrap reduces a payload of unknown shape to its first candidate record.
// It returns nil when there is no usable candidate.
func Unwrap(v any) Record {
	shape, items := classify(v)
	switch shape {
	case ShapeArray, ShapeWrapped:
		if len(items) == 0 {
			return nil
		}
		return asRecord(items[0])
	case ShapeObject:
		return asRecord(v)
	default:
		return nil
	}
}

// Records returns every object element of a list-shaped payload. A bare
// object yields a single record. Non-object elements are dropped.
func Records(v any) []Record {
	shape, items := classify(v)
	switch shape {
	case ShapeArray, ShapeWrapped:
		out := make([]Record, 0, len(items))
		for _, item := range items {
			if rec := asRecord(item); rec != nil {
				out = append(out, rec)
			}
		}
		return out
	case ShapeObject:
		if rec := asRecord(v); rec != nil {
			return []Record{rec}
		}
		return nil
	default:
		return nil
	}
}

func classify(v any) (Shape, []any) {
	switch t := v.(type) {
	case []any:
		return ShapeArray, t
	case []map[string]any:
		items := make([]any, len(t))
		for i := range t {
			items[i] = t[i]
		}
		return ShapeArray, items
	case map[string]any:
		if t == nil {
			return ShapeUnrecognized, nil
		}
		for _, key := range wrapperKeys {
			if items, ok := t[key].([]any); ok {
				return ShapeWrapped, items
			}
		}
		return ShapeObject, nil
	case Record:
		return classify(map[string]any(t))
	default:
		return ShapeUnrecognized, nil
	}
}

func asRecord(v any) Record {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return nil
		}
		return Record(t)
	case Record:
		return t
	default:
		return nil
	}
}
