package structlog

import (
	"fmt"
	"time"
)

// Serializer receives the individual values of a record. Each drain brings
// its own implementation; EmitAny is the escape hatch for values no other
// method covers.
type Serializer interface {
	EmitBool(key string, val bool) error
	EmitInt64(key string, val int64) error
	EmitUint64(key string, val uint64) error
	EmitFloat64(key string, val float64) error
	EmitString(key string, val string) error
	EmitTime(key string, val time.Time) error
	EmitNone(key string) error
	EmitAny(key string, val any) error
}

// EmitValue dispatches val onto the matching Emit method of s. Lazy values
// are resolved first, with the record in hand.
func EmitValue(r *Record, s Serializer, key string, val any) error {
	switch v := val.(type) {
	case nil:
		return s.EmitNone(key)
	case FnValue:
		return EmitValue(r, s, key, v(r))
	case bool:
		return s.EmitBool(key, v)
	case int:
		return s.EmitInt64(key, int64(v))
	case int8:
		return s.EmitInt64(key, int64(v))
	case int16:
		return s.EmitInt64(key, int64(v))
	case int32:
		return s.EmitInt64(key, int64(v))
	case int64:
		return s.EmitInt64(key, v)
	case uint:
		return s.EmitUint64(key, uint64(v))
	case uint8:
		return s.EmitUint64(key, uint64(v))
	case uint16:
		return s.EmitUint64(key, uint64(v))
	case uint32:
		return s.EmitUint64(key, uint64(v))
	case uint64:
		return s.EmitUint64(key, v)
	case uintptr:
		return s.EmitUint64(key, uint64(v))
	case float32:
		return s.EmitFloat64(key, float64(v))
	case float64:
		return s.EmitFloat64(key, v)
	case string:
		return s.EmitString(key, v)
	case time.Time:
		return s.EmitTime(key, v)
	case time.Duration:
		return s.EmitString(key, v.String())
	case error:
		return s.EmitString(key, v.Error())
	case fmt.Stringer:
		return s.EmitString(key, v.String())
	}

	return s.EmitAny(key, val)
}
