package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envedit/internal/model"
	"envedit/internal/profile"
	"envedit/internal/settings"
)

type fixture struct {
	editor   *Editor
	store    *settings.Store
	profile  string
	settings string
}

func newFixture(t *testing.T, content string, env ...string) fixture {
	t.Helper()
	dir := t.TempDir()
	profilePath := filepath.Join(dir, ".zshrc")
	require.NoError(t, os.WriteFile(profilePath, []byte(content), 0644))

	store := settings.New(settings.WithFile(filepath.Join(dir, "config", settings.FileName)))
	require.NoError(t, store.SetProfile(profilePath))

	return fixture{
		editor:   New(store, WithEnviron(func() []string { return env })),
		store:    store,
		profile:  profilePath,
		settings: store.Path(),
	}
}

func TestQueryVariables(t *testing.T) {
	f := newFixture(t, "export GOPATH=$HOME/go\nexport PATH=\"$GOPATH/bin:$PATH\"\n", "HOME=/home/u", "PATH=/usr/bin:/bin")

	m, err := f.editor.QueryVariables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/home/u/go"}, m["GOPATH"])
	assert.Equal(t, []string{"/home/u/go/bin", "/usr/bin", "/bin"}, m["PATH"])
	assert.Equal(t, []string{"/home/u"}, m["HOME"])
}

func TestQueryVariables_ForwardReference(t *testing.T) {
	f := newFixture(t, "export A=$B/x\nexport B=hi\n")

	_, err := f.editor.QueryVariables(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrUnknownReference)

	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.True(t, strings.HasPrefix(failure.Message, "The shell profile ("+f.profile+")"))
	assert.Contains(t, failure.Message, "\nFull Error:\n")
}

func TestQueryVariables_Settings(t *testing.T) {
	t.Run("Bootstrap", func(t *testing.T) {
		store := settings.New(settings.WithFile(filepath.Join(t.TempDir(), "cfg", settings.FileName)))
		e := New(store)

		_, err := e.QueryVariables(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, settings.ErrEmptySettings)
		assert.True(t, strings.HasPrefix(err.Error(), "Settings file is empty."))

		_, err = e.QueryVariables(context.Background())
		assert.ErrorIs(t, err, settings.ErrSettingMissing)
	})

	t.Run("ProfileMissing", func(t *testing.T) {
		f := newFixture(t, "")
		require.NoError(t, os.Remove(f.profile))
		_, err := f.editor.QueryVariables(context.Background())
		assert.ErrorIs(t, err, settings.ErrProfileMissing)
		assert.True(t, strings.HasPrefix(err.Error(), "Could not open shell profile"))
	})
}

func TestAddVariable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")

	msg, err := f.editor.AddVariable(ctx, "FOO", "bar")
	require.NoError(t, err)
	assert.Equal(t, msgAdded, msg)

	data, err := os.ReadFile(f.profile)
	require.NoError(t, err)
	assert.Equal(t, "\nexport FOO=\"bar\":$FOO", string(data))

	msg, err = f.editor.AddVariable(ctx, "FOO", "bar")
	require.NoError(t, err)
	assert.Equal(t, msgAlreadyPresent, msg)

	m, err := f.editor.QueryVariables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bar"}, m["FOO"])
}

func TestAddVariable_InvalidInputBeforeSettings(t *testing.T) {
	settingsPath := filepath.Join(t.TempDir(), "cfg", settings.FileName)
	e := New(settings.New(settings.WithFile(settingsPath)))

	for _, value := range []string{"", "x\x00"} {
		_, err := e.AddVariable(context.Background(), "FOO", value)
		require.Error(t, err)
		assert.ErrorIs(t, err, profile.ErrInvalidInput)
		assert.Equal(t, msgInvalidInput, err.Error())
	}

	_, statErr := os.Stat(settingsPath)
	assert.True(t, os.IsNotExist(statErr), "settings must not be touched")
}

func TestVariablesAndDefinitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "# env\nexport EDITOR=vim\nalias g=git\nexport EDITOR=nvim\n", "SHELL=/bin/zsh", "EDITOR=nano")

	vars, err := f.editor.Variables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Variable{
		{Name: "EDITOR", Values: []string{"nvim"}, FromProfile: true},
		{Name: "SHELL", Values: []string{"/bin/zsh"}, FromProfile: false},
	}, vars)

	defs, err := f.editor.Definitions(ctx, "EDITOR")
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, 2, defs[0].LineNumber)
	assert.Equal(t, "export EDITOR=vim", defs[0].Target)
	assert.Equal(t, []string{"# env"}, defs[0].Before)
	assert.Equal(t, []string{"alias g=git", "export EDITOR=nvim"}, defs[0].After)
	assert.Equal(t, "export EDITOR=nvim", defs[1].Target)
}

func TestShellLocation(t *testing.T) {
	f := newFixture(t, "")
	loc, err := f.editor.ShellLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, f.profile, loc)
}
