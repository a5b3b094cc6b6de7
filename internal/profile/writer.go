package profile

import (
	"fmt"
	"io"
	"strings"

	"envedit/internal/model"
)

// ValidateSubmission rejects values the profile cannot carry. The key is
// deliberately not checked.
func ValidateSubmission(value string) error {
	if value == "" {
		return &Error{Kind: KindInvalidInput, Detail: "value is empty"}
	}
	if strings.ContainsRune(value, 0) {
		return &Error{Kind: KindInvalidInput, Detail: "value contains a null character"}
	}
	return nil
}

// ExportLine is the exact text appended for a new assignment.
//
// The value is written verbatim inside double quotes. On the next read the
// quotes are stripped and the value is split on ':' like any other line, so
// a value containing ':' comes back as several entries.
func ExportLine(key, value string) string {
	return fmt.Sprintf("\nexport %s=\"%s\":$%s", key, value, key)
}

// AddVariable appends `export KEY="VALUE":$KEY` to p unless value is
// already bound to key in the aggregated environment.
//
// Nothing guards the file between the duplicate check and the append;
// a concurrent editor can still interleave.
func AddVariable(p Profile, environ EnvironFunc, key, value string) (model.Outcome, error) {
	if err := ValidateSubmission(value); err != nil {
		return 0, err
	}

	m, err := Aggregate(p, Seed(environ()))
	if err != nil {
		return 0, err
	}
	if IsDuplicate(m, key, value) {
		return model.AlreadyPresent, nil
	}

	w, err := p.OpenAppend()
	if err != nil {
		return 0, &Error{Kind: KindProfileOpen, Path: nameOf(p), Err: err}
	}
	line := ExportLine(key, value)
	if err := writeAll(w, line); err != nil {
		w.Close()
		return 0, &Error{Kind: KindWrite, Path: nameOf(p), Detail: fmt.Sprintf("could not write %q", line), Err: err}
	}
	if err := w.Close(); err != nil {
		return 0, &Error{Kind: KindWrite, Path: nameOf(p), Err: err}
	}
	return model.Added, nil
}

func writeAll(w io.Writer, s string) error {
	n, err := io.WriteString(w, s)
	if err != nil {
		return err
	}
	if n != len(s) {
		return io.ErrShortWrite
	}
	return nil
}
