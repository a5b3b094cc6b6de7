package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"envedit/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	profileStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")) // Sky Blue/Cyan
	targetStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("208")) // Orange
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	activeColor = lipgloss.Color("205")
	borderColor = lipgloss.Color("63")
)

func (m AppModel) View() string {
	if m.Loading && m.Vars == nil {
		return "\n  Reading shell profile... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press q to quit, r to retry.\n", m.Err)
	}

	// Subtracting 6 for horizontal margin (borders x2 + buffer)
	// Subtracting 6 for vertical margin (header, footer, borders)
	netWidth := max(m.WindowSize.Width-6, 20)
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth
	interiorHeight := max(m.WindowSize.Height-8, 2)

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(activeColor).
		Render(m.renderList(leftWidth, interiorHeight))

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(m.detailsView(rightWidth))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Environment Variables"))
	b.WriteString(dimStyle.Render("  " + shortenHome(m.ProfilePath)))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m AppModel) renderList(width, height int) string {
	var view strings.Builder
	view.WriteString(titleStyle.Render(fmt.Sprintf("Variables (%d)", len(m.FilteredIndices))))
	view.WriteString("\n\n")

	// Header is 2 lines (Title + 1 blank line)
	visible := max(height-2, 1)
	start, end := window(len(m.FilteredIndices), m.SelectedIdx, visible)

	for i := start; i < end; i++ {
		v := m.Vars[m.FilteredIndices[i]]

		icon := model.IconSession
		if v.FromProfile {
			icon = model.IconProfile
		}
		multi := " "
		if len(v.Values) > 1 {
			multi = model.IconMulti
		}
		line := fmt.Sprintf("%s%s %s", icon, multi, v.Name)
		line = truncate(line, width-2)

		style := normalStyle
		switch {
		case i == m.SelectedIdx:
			style = selectedStyle
		case v.FromProfile:
			style = profileStyle
		}
		view.WriteString(style.Render(line))
		view.WriteString("\n")
	}
	return strings.TrimSuffix(view.String(), "\n")
}

func (m AppModel) detailsView(width int) string {
	if m.AddMode {
		return m.renderAddForm()
	}
	if m.DetailsViewport.Width == 0 {
		return m.renderDetails(width)
	}
	return m.DetailsViewport.View()
}

func (m AppModel) renderDetails(width int) string {

	v, ok := m.Selected()
	if !ok {
		return dimStyle.Render("No variable selected")
	}

	var view strings.Builder
	view.WriteString(titleStyle.Render(v.Name))
	view.WriteString("\n\n")

	dups := map[string]int{}
	for _, val := range v.Values {
		dups[val]++
	}
	for i, val := range v.Values {
		mark := " "
		if dups[val] > 1 {
			mark = model.IconDuplicate
		}
		view.WriteString(truncate(fmt.Sprintf("%2d. %s %s", i+1, mark, val), width-2))
		view.WriteString("\n")
	}

	if !v.FromProfile {
		view.WriteString("\n")
		view.WriteString(dimStyle.Render("Inherited from the environment"))
		return view.String()
	}

	if m.DefinitionsFor != v.Name {
		return strings.TrimSuffix(view.String(), "\n")
	}
	for _, def := range m.Definitions {
		view.WriteString("\n")
		view.WriteString(dimStyle.Render(fmt.Sprintf("%s:%d", shortenHome(m.ProfilePath), def.LineNumber)))
		view.WriteString("\n")
		if def.ErrorMsg != "" {
			view.WriteString(errStyle.Render(def.ErrorMsg))
			view.WriteString("\n")
			continue
		}
		n := def.LineNumber - len(def.Before)
		for _, l := range def.Before {
			view.WriteString(dimStyle.Render(truncate(fmt.Sprintf("%4d  %s", n, l), width-2)))
			view.WriteString("\n")
			n++
		}
		view.WriteString(targetStyle.Render(truncate(fmt.Sprintf("%4d> %s", n, def.Target), width-2)))
		view.WriteString("\n")
		n++
		for _, l := range def.After {
			view.WriteString(dimStyle.Render(truncate(fmt.Sprintf("%4d  %s", n, l), width-2)))
			view.WriteString("\n")
			n++
		}
	}
	return strings.TrimSuffix(view.String(), "\n")
}

func (m AppModel) renderAddForm() string {
	var view strings.Builder
	view.WriteString(titleStyle.Render("Add Variable"))
	view.WriteString("\n\n")
	view.WriteString("Key\n")
	view.WriteString(m.KeyInput.View())
	view.WriteString("\n\nValue\n")
	view.WriteString(m.ValueInput.View())
	view.WriteString("\n\n")
	view.WriteString(dimStyle.Render("Appends: export " + m.KeyInput.Value() + `="` + m.ValueInput.Value() + `":$` + m.KeyInput.Value()))
	return view.String()
}

func (m AppModel) renderFooter() string {
	if m.FilterMode {
		return "Filter: " + m.FilterInput.View()
	}
	if m.Status != "" {
		status, _, _ := strings.Cut(m.Status, "\n")
		if m.StatusErr {
			return errStyle.Render(model.IconError + " " + status)
		}
		return okStyle.Render(model.IconAdded + " " + status)
	}
	if m.AddMode {
		return footerStyle.Render("tab: switch field • enter: submit • esc: cancel")
	}
	help := "↑/↓: navigate • /: filter • a: add • r: reload • q: quit"
	if f := m.FilterInput.Value(); f != "" {
		help = "filter: " + f + " • esc: clear • " + help
	}
	return footerStyle.Render(help)
}

// window returns the slice of n rows to show so selected stays centred.
func window(n, selected, visible int) (int, int) {
	if n <= visible {
		return 0, n
	}
	start := max(selected-visible/2, 0)
	if start+visible > n {
		start = n - visible
	}
	return start, start + visible
}

func truncate(s string, width int) string {
	if width < 4 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-3 {
		r = r[:width-3]
	}
	return string(r) + "..."
}

func shortenHome(path string) string {
	home := os.Getenv("HOME")
	if home != "" && strings.HasPrefix(path, home) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}
