package tui

import (
	"context"

	"envedit/internal/editor"
	"envedit/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// Focus of the add form.
const (
	focusKey = iota
	focusValue
)

// AppModel holds the TUI state.
type AppModel struct {
	// Dependencies
	ctx    context.Context
	editor *editor.Editor

	// Data
	Vars           []model.Variable
	ProfilePath    string
	Definitions    []model.LineContext
	DefinitionsFor string // Variable the definitions belong to
	Loading        bool
	Err            error

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg

	// Filter State
	FilterMode      bool
	FilterInput     textinput.Model
	FilteredIndices []int // Indices of Vars to show

	// Add Form State
	AddMode    bool
	AddFocus   int
	KeyInput   textinput.Model
	ValueInput textinput.Model
	Status     string // Result of the last add
	StatusErr  bool

	// Components
	DetailsViewport viewport.Model
	watcher         *fsnotify.Watcher
}

// InitialModel returns the initial state.
func InitialModel(ctx context.Context, ed *editor.Editor) AppModel {
	filter := textinput.New()
	filter.Placeholder = "Variable name..."
	filter.CharLimit = 64
	filter.Width = 24

	key := textinput.New()
	key.Placeholder = "KEY"
	key.CharLimit = 128
	key.Width = 30

	value := textinput.New()
	value.Placeholder = "value"
	value.CharLimit = 4096
	value.Width = 50

	return AppModel{
		ctx:             ctx,
		editor:          ed,
		Loading:         true,
		FilterInput:     filter,
		KeyInput:        key,
		ValueInput:      value,
		DetailsViewport: viewport.New(0, 0),
	}
}

// Init loads the variables.
func (m AppModel) Init() tea.Cmd {
	return LoadVarsCmd(m.ctx, m.editor)
}

// Selected returns the highlighted variable.
func (m AppModel) Selected() (model.Variable, bool) {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return model.Variable{}, false
	}
	return m.Vars[m.FilteredIndices[m.SelectedIdx]], true
}

// Close releases the profile watcher.
func (m AppModel) Close() error {
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}
