package profile

import (
	"errors"
	"io"
	"strings"
)

// memProfile is an in-memory Profile. Appends land in the same buffer the
// reader sees, like a real file.
type memProfile struct {
	content   string
	openErr   error
	appendErr error
	writeErr  error
	opens     int
	appends   int
}

func (p *memProfile) Open() (io.ReadCloser, error) {
	p.opens++
	if p.openErr != nil {
		return nil, p.openErr
	}
	return io.NopCloser(strings.NewReader(p.content)), nil
}

func (p *memProfile) OpenAppend() (io.WriteCloser, error) {
	p.appends++
	if p.appendErr != nil {
		return nil, p.appendErr
	}
	return &memWriter{p: p}, nil
}

func (p *memProfile) String() string { return "mem" }

type memWriter struct{ p *memProfile }

func (w *memWriter) Write(b []byte) (int, error) {
	if w.p.writeErr != nil {
		return 0, w.p.writeErr
	}
	w.p.content += string(b)
	return len(b), nil
}

func (w *memWriter) Close() error { return nil }

// shortWriter reports fewer bytes than it was given.
type shortWriter struct{}

func (shortWriter) Write(b []byte) (int, error) { return len(b) / 2, nil }
func (shortWriter) Close() error                { return nil }

type shortProfile struct{ memProfile }

func (p *shortProfile) OpenAppend() (io.WriteCloser, error) { return shortWriter{}, nil }

var errDenied = errors.New("permission denied")

func environ(kv ...string) EnvironFunc {
	return func() []string { return kv }
}
