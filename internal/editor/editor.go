package editor

import (
	"context"
	"os"

	"envedit/internal/logger"
	"envedit/internal/model"
	"envedit/internal/profile"
	"envedit/internal/settings"
)

// contextRadius is the number of lines shown around a definition.
const contextRadius = 2

// Failure is an error whose text is the user-facing message for its kind.
// The typed cause stays reachable through errors.Is and errors.As.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }
func (f *Failure) Unwrap() error { return f.Err }

// Editor is the surface the presentation layers call: it resolves the
// profile through the settings store and runs the engine with a fresh
// environment snapshot every time.
type Editor struct {
	settings *settings.Store
	environ  profile.EnvironFunc
}

// Option configures an Editor.
type Option func(*Editor)

// WithEnviron replaces os.Environ as the live environment source.
func WithEnviron(fn profile.EnvironFunc) Option {
	return func(e *Editor) {
		e.environ = fn
	}
}

// New returns an Editor reading settings from store.
func New(store *settings.Store, opts ...Option) *Editor {
	e := &Editor{settings: store, environ: os.Environ}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) fail(ctx context.Context, op string, err error) error {
	logger.Error(ctx, op+" failed", "err", err)
	return &Failure{Message: Message(err, e.settings.Path()), Err: err}
}

// ProfilePath resolves the shell profile from settings.
func (e *Editor) ProfilePath(ctx context.Context) (string, error) {
	path, err := e.settings.ProfilePath()
	if err != nil {
		return "", e.fail(ctx, "profile lookup", err)
	}
	return path, nil
}

// ShellLocation returns the configured profile setting as written.
func (e *Editor) ShellLocation(ctx context.Context) (string, error) {
	loc, err := e.settings.ProfileSetting()
	if err != nil {
		return "", e.fail(ctx, "shell location", err)
	}
	return loc, nil
}

// QueryVariables returns the live environment with the profile folded in.
func (e *Editor) QueryVariables(ctx context.Context) (model.EnvironmentMap, error) {
	path, err := e.ProfilePath(ctx)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithValues(ctx, "profile", path)

	m, err := profile.AggregateFile(path, profile.Seed(e.environ()))
	if err != nil {
		return nil, e.fail(ctx, "query", err)
	}
	logger.Debug(ctx, "variables aggregated", "count", len(m))
	return m, nil
}

// Variables is QueryVariables as a sorted listing, marking the variables
// the profile assigns.
func (e *Editor) Variables(ctx context.Context) ([]model.Variable, error) {
	m, err := e.QueryVariables(ctx)
	if err != nil {
		return nil, err
	}
	path, err := e.ProfilePath(ctx)
	if err != nil {
		return nil, err
	}
	defs, err := profile.Defined(profile.File(path))
	if err != nil {
		return nil, e.fail(ctx, "query", err)
	}

	vars := make([]model.Variable, 0, len(m))
	for _, k := range m.Keys() {
		_, fromProfile := defs[k]
		vars = append(vars, model.Variable{Name: k, Values: m[k], FromProfile: fromProfile})
	}
	return vars, nil
}

// Definitions returns each profile line that assigns key, with context.
func (e *Editor) Definitions(ctx context.Context, key string) ([]model.LineContext, error) {
	path, err := e.ProfilePath(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := profile.Locate(profile.File(path), key)
	if err != nil {
		return nil, e.fail(ctx, "locate", err)
	}
	out := make([]model.LineContext, 0, len(lines))
	for _, n := range lines {
		out = append(out, model.GetLineContext(path, n, contextRadius))
	}
	return out, nil
}

// AddVariable appends key=value to the profile and returns the success
// message. An already present value is a success, not an error. The new
// value is only visible to processes started afterwards.
func (e *Editor) AddVariable(ctx context.Context, key, value string) (string, error) {
	ctx = logger.WithValues(ctx, "key", key)

	if err := profile.ValidateSubmission(value); err != nil {
		return "", e.fail(ctx, "add", err)
	}
	path, err := e.ProfilePath(ctx)
	if err != nil {
		return "", err
	}
	ctx = logger.WithValues(ctx, "profile", path)

	outcome, err := profile.AddVariable(profile.File(path), e.environ, key, value)
	if err != nil {
		return "", e.fail(ctx, "add", err)
	}
	logger.Info(ctx, "variable submitted", "outcome", outcome.String())
	return OutcomeMessage(outcome), nil
}
