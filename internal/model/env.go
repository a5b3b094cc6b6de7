package model

import (
	"slices"
	"sort"
)

// EnvironmentMap maps a variable name to its ordered values.
// Multi-valued variables (PATH-like) are colon-split on read and the first
// element is the value used when another variable references this one.
type EnvironmentMap map[string][]string

// Clone returns a deep copy so folds never touch the caller's map.
func (m EnvironmentMap) Clone() EnvironmentMap {
	out := make(EnvironmentMap, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}

// Keys returns the variable names in sorted order.
func (m EnvironmentMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// First returns the value used for reference substitution.
func (m EnvironmentMap) First(key string) (string, bool) {
	values, ok := m[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Outcome is the result of a successful add.
type Outcome int

const (
	Added Outcome = iota + 1
	AlreadyPresent
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case AlreadyPresent:
		return "already present"
	}
	return "unknown"
}

// Variable is one row of the variable listing, as shown by the TUI,
// the report output and the web API.
type Variable struct {
	Name        string   `json:"name"`
	Values      []string `json:"values"`
	FromProfile bool     `json:"fromProfile"` // Defined or extended by the shell profile
}
