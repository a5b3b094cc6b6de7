package tui

import (
	"context"
	"path/filepath"
	"strings"

	"envedit/internal/editor"
	"envedit/internal/logger"
	"envedit/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// MsgVarsReady carries a fresh query result.
type MsgVarsReady struct {
	Vars        []model.Variable
	ProfilePath string
}

// MsgError indicates the query failed.
type MsgError error

// MsgAddResult is the outcome of an add.
type MsgAddResult struct {
	Message string
	Err     error
}

// MsgDefinitions carries the profile lines assigning a variable.
type MsgDefinitions struct {
	Name string
	Defs []model.LineContext
}

// MsgWatching hands the profile watcher to the model.
type MsgWatching struct{ Watcher *fsnotify.Watcher }

// MsgProfileChanged means the profile was written on disk.
type MsgProfileChanged struct{}

// Update handles events and re-renders the details pane.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	nm := next.(AppModel)
	nm.DetailsViewport.SetContent(nm.renderDetails(nm.DetailsViewport.Width))
	return nm, cmd
}

func (m AppModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = max(msg.Width-6, 20) - max(msg.Width-6, 20)/2
		m.DetailsViewport.Height = max(msg.Height-8, 2)
		return m, nil

	case MsgVarsReady:
		m.Loading = false
		m.Err = nil
		first := m.ProfilePath == ""
		m.Vars = msg.Vars
		m.ProfilePath = msg.ProfilePath
		m.applyFilter()
		cmds := []tea.Cmd{m.definitionsCmd()}
		if first {
			cmds = append(cmds, WatchProfileCmd(m.ctx, msg.ProfilePath))
		}
		return m, tea.Batch(cmds...)

	case MsgError:
		m.Err = msg
		m.Loading = false
		return m, nil

	case MsgDefinitions:
		if v, ok := m.Selected(); ok && v.Name == msg.Name {
			m.Definitions = msg.Defs
			m.DefinitionsFor = msg.Name
			m.DetailsViewport.GotoTop()
		}
		return m, nil

	case MsgAddResult:
		if msg.Err != nil {
			m.Status = msg.Err.Error()
			m.StatusErr = true
			return m, nil
		}
		m.Status = msg.Message
		m.StatusErr = false
		return m, LoadVarsCmd(m.ctx, m.editor)

	case MsgWatching:
		m.watcher = msg.Watcher
		return m, waitForChange(m.watcher, m.ProfilePath)

	case MsgProfileChanged:
		return m, tea.Batch(LoadVarsCmd(m.ctx, m.editor), waitForChange(m.watcher, m.ProfilePath))

	case tea.KeyMsg:
		if m.AddMode {
			return m.updateAddForm(msg)
		}
		if m.FilterMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.FilterMode = false
				m.FilterInput.Blur()
				return m, m.definitionsCmd()
			case tea.KeyEsc:
				m.FilterMode = false
				m.FilterInput.Blur()
				m.FilterInput.SetValue("")
				m.applyFilter()
				return m, m.definitionsCmd()
			}
			m.FilterInput, cmd = m.FilterInput.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.FilterInput.Value() != "" {
				m.FilterInput.SetValue("")
				m.applyFilter()
				return m, m.definitionsCmd()
			}
			m.Status = ""
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				return m, m.definitionsCmd()
			}
		case "down", "j":
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
				return m, m.definitionsCmd()
			}
		case "/":
			m.FilterMode = true
			m.FilterInput.Focus()
			return m, textinput.Blink
		case "a":
			m.AddMode = true
			m.AddFocus = focusKey
			m.Status = ""
			m.KeyInput.SetValue("")
			m.ValueInput.SetValue("")
			if v, ok := m.Selected(); ok {
				m.KeyInput.SetValue(v.Name)
				m.AddFocus = focusValue
			}
			m.focusAddForm()
			return m, textinput.Blink
		case "r":
			m.Loading = true
			return m, LoadVarsCmd(m.ctx, m.editor)
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
			return m, cmd
		}
	}

	return m, cmd
}

func (m AppModel) updateAddForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.Type {
	case tea.KeyEsc:
		m.AddMode = false
		m.KeyInput.Blur()
		m.ValueInput.Blur()
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.AddFocus = 1 - m.AddFocus
		m.focusAddForm()
		return m, nil
	case tea.KeyEnter:
		if m.AddFocus == focusKey {
			m.AddFocus = focusValue
			m.focusAddForm()
			return m, nil
		}
		m.AddMode = false
		m.KeyInput.Blur()
		m.ValueInput.Blur()
		return m, AddVarCmd(m.ctx, m.editor, strings.TrimSpace(m.KeyInput.Value()), m.ValueInput.Value())
	}

	if m.AddFocus == focusKey {
		m.KeyInput, cmd = m.KeyInput.Update(msg)
	} else {
		m.ValueInput, cmd = m.ValueInput.Update(msg)
	}
	return m, cmd
}

func (m *AppModel) focusAddForm() {
	if m.AddFocus == focusKey {
		m.KeyInput.Focus()
		m.ValueInput.Blur()
	} else {
		m.ValueInput.Focus()
		m.KeyInput.Blur()
	}
}

// applyFilter narrows the list to names containing the filter text,
// case-insensitively.
func (m *AppModel) applyFilter() {
	term := strings.ToLower(m.FilterInput.Value())
	m.FilteredIndices = nil
	for i, v := range m.Vars {
		if term == "" || strings.Contains(strings.ToLower(v.Name), term) {
			m.FilteredIndices = append(m.FilteredIndices, i)
		}
	}

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		m.SelectedIdx = max(len(m.FilteredIndices)-1, 0)
	}
}

func (m AppModel) definitionsCmd() tea.Cmd {
	v, ok := m.Selected()
	if !ok || !v.FromProfile {
		return nil
	}
	return DefinitionsCmd(m.ctx, m.editor, v.Name)
}

// LoadVarsCmd queries the variables in the background.
func LoadVarsCmd(ctx context.Context, ed *editor.Editor) tea.Cmd {
	return func() tea.Msg {
		path, err := ed.ProfilePath(ctx)
		if err != nil {
			return MsgError(err)
		}
		vars, err := ed.Variables(ctx)
		if err != nil {
			return MsgError(err)
		}
		return MsgVarsReady{Vars: vars, ProfilePath: path}
	}
}

// AddVarCmd submits a new variable.
func AddVarCmd(ctx context.Context, ed *editor.Editor, key, value string) tea.Cmd {
	return func() tea.Msg {
		message, err := ed.AddVariable(ctx, key, value)
		return MsgAddResult{Message: message, Err: err}
	}
}

// DefinitionsCmd looks up where the profile assigns name.
func DefinitionsCmd(ctx context.Context, ed *editor.Editor, name string) tea.Cmd {
	return func() tea.Msg {
		defs, err := ed.Definitions(ctx, name)
		if err != nil {
			return MsgDefinitions{Name: name}
		}
		return MsgDefinitions{Name: name, Defs: defs}
	}
}

// WatchProfileCmd starts watching the profile's directory. Editors often
// replace the file instead of writing it in place, so the file itself is
// not watched.
func WatchProfileCmd(ctx context.Context, path string) tea.Cmd {
	return func() tea.Msg {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			logger.Warn(ctx, "profile watch unavailable", "err", err)
			return nil
		}
		if err := w.Add(filepath.Dir(path)); err != nil {
			logger.Warn(ctx, "profile watch unavailable", "path", path, "err", err)
			w.Close()
			return nil
		}
		return MsgWatching{Watcher: w}
	}
}

func waitForChange(w *fsnotify.Watcher, path string) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) == filepath.Clean(path) &&
					ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					return MsgProfileChanged{}
				}
			case _, ok := <-w.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}
