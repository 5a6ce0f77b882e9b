//go:build nestedvalues

package jsondrain

// EmitAny encodes arbitrary values as structured JSON: maps, slices and
// structs keep their shape in the output.
func (o *objectSerializer) EmitAny(key string, val any) error {
	return o.emit(key, val)
}
