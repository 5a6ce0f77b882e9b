//go:build !nestedvalues

package jsondrain

import "fmt"

// EmitAny flattens arbitrary values to their fmt representation. Build with
// the nestedvalues tag to keep them structured.
func (o *objectSerializer) EmitAny(key string, val any) error {
	return o.emit(key, fmt.Sprint(val))
}
