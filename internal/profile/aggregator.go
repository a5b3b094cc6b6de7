package profile

import (
	"bufio"
	"errors"
	"strings"

	"envedit/internal/model"
)

// Large buffer for long PATH lines.
const maxLineSize = 1024 * 1024

// Aggregate folds the export lines of p over a copy of seed.
//
// Parsing is all-or-nothing: the first line that fails to decode aborts
// the fold and no map is returned, since a partial map would hide the
// variables that failed to resolve.
func Aggregate(p Profile, seed model.EnvironmentMap) (model.EnvironmentMap, error) {
	m := seed.Clone()
	err := scanExports(p, func(lineNum int, line string) error {
		a, err := decode(line, m)
		if err != nil {
			return err
		}
		merge(m, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// AggregateFile is Aggregate over a profile on disk.
func AggregateFile(path string, seed model.EnvironmentMap) (model.EnvironmentMap, error) {
	return Aggregate(File(path), seed)
}

// merge applies a decoded assignment. A self-referencing assignment splices
// the existing values in where the reference stood, so `X:$K` puts X in
// front of K's current values and `$K:X` puts it behind them.
func merge(m model.EnvironmentMap, a assignment) {
	existing, ok := m[a.key]
	switch {
	case a.selfAt < 0:
		m[a.key] = a.values
	case ok:
		merged := make([]string, 0, len(existing)+len(a.values))
		merged = append(merged, a.values[:a.selfAt]...)
		merged = append(merged, existing...)
		merged = append(merged, a.values[a.selfAt:]...)
		m[a.key] = merged
	case len(a.values) > 0:
		m[a.key] = a.values
	}
}

// Defined returns, for every key assigned by an export line of p, the
// 1-based line numbers of those assignments. Values are not resolved.
func Defined(p Profile) (map[string][]int, error) {
	defs := make(map[string][]int)
	err := scanExports(p, func(lineNum int, line string) error {
		key, _, ok := strings.Cut(strings.TrimPrefix(line, exportPrefix), "=")
		if ok {
			defs[key] = append(defs[key], lineNum)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

// Locate returns the lines of p that assign key.
func Locate(p Profile, key string) ([]int, error) {
	defs, err := Defined(p)
	if err != nil {
		return nil, err
	}
	return defs[key], nil
}

// scanExports calls fn for each export line of p. Errors from fn are
// annotated with the profile and line.
func scanExports(p Profile, fn func(lineNum int, line string) error) error {
	r, err := p.Open()
	if err != nil {
		return &Error{Kind: KindProfileRead, Path: nameOf(p), Err: err}
	}
	defer r.Close()

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if len(line) < len(exportPrefix) || !strings.HasPrefix(line, exportPrefix) {
			continue
		}
		if err := fn(lineNum, line); err != nil {
			var e *Error
			if errors.As(err, &e) {
				e.Path = nameOf(p)
				e.Line = lineNum
			}
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return &Error{Kind: KindProfileRead, Path: nameOf(p), Err: err}
	}
	return nil
}
