package profile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"envedit/internal/model"
)

// Profile is the access the engine needs to a shell profile: one reader
// for aggregation and one append-only writer for new assignments.
// Handles are closed by the engine before each call returns.
type Profile interface {
	Open() (io.ReadCloser, error)
	OpenAppend() (io.WriteCloser, error)
}

// File is a Profile backed by a path on disk.
type File string

func (f File) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

func (f File) OpenAppend() (io.WriteCloser, error) {
	return os.OpenFile(string(f), os.O_WRONLY|os.O_APPEND, 0)
}

func (f File) String() string { return string(f) }

func nameOf(p Profile) string {
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}
	return ""
}

// EnvironFunc returns a snapshot of the live environment as KEY=VALUE
// strings. os.Environ satisfies it.
type EnvironFunc func() []string

// Seed colon-splits an environment snapshot into the starting map for
// aggregation.
func Seed(environ []string) model.EnvironmentMap {
	m := make(model.EnvironmentMap, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		// Windows carries per-drive entries such as "=C:=C:\".
		if !ok || key == "" {
			continue
		}
		m[key] = strings.Split(value, ":")
	}
	return m
}
