package profile

import (
	"slices"

	"envedit/internal/model"
)

// IsDuplicate reports whether value is already one of key's values.
// Matching is exact: no normalization and no reference resolution.
func IsDuplicate(m model.EnvironmentMap, key, value string) bool {
	values, ok := m[key]
	return ok && slices.Contains(values, value)
}
