//go:build dynamickeys

package structlog

import "sort"

// MapKV serializes every map entry as its own key. Keys are read at
// serialization time, so entries added to the map between logging and
// serialization are visible. Keys are emitted in sorted order to keep the
// output deterministic.
type MapKV map[string]any

func (m MapKV) Serialize(r *Record, s Serializer) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := EmitValue(r, s, k, m[k]); err != nil {
			return err
		}
	}

	return nil
}
