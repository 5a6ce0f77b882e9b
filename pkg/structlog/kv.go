package structlog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// KV is a set of key-value pairs attached to a logger or a record.
type KV interface {
	Serialize(r *Record, s Serializer) error
}

// Pair is a single key-value pair.
type Pair struct {
	Key   string
	Value any
}

func (p Pair) Serialize(r *Record, s Serializer) error {
	return EmitValue(r, s, p.Key, p.Value)
}

// Multi serializes its elements in order.
type Multi []KV

func (m Multi) Serialize(r *Record, s Serializer) error {
	for _, kv := range m {
		if kv == nil {
			continue
		}
		if err := kv.Serialize(r, s); err != nil {
			return errors.Wrap(err, "serialize kv list")
		}
	}

	return nil
}

// FnValue is a lazy value, resolved every time the record it belongs to is
// serialized.
type FnValue func(r *Record) any

// Pairs builds a KV list from alternating keys and values. Non-string keys
// are stringified and a trailing key without a value maps to nil.
func Pairs(args ...any) Multi {
	kvs := make(Multi, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		var val any
		if i+1 < len(args) {
			val = args[i+1]
		}
		kvs = append(kvs, Pair{Key: key, Value: val})
	}

	return kvs
}

// Err returns a KV holding err under the "err" key. A nil error serializes
// nothing.
func Err(err error) KV {
	if err == nil {
		return Multi(nil)
	}

	return Pair{Key: "err", Value: err}
}

// EventID attaches a fresh UUID to every record under the given key.
func EventID(key string) KV {
	return Pair{Key: key, Value: FnValue(func(*Record) any {
		return uuid.NewString()
	})}
}
