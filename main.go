package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"envedit/internal/editor"
	"envedit/internal/logger"
	"envedit/internal/model"
	"envedit/internal/settings"
	"envedit/internal/tui"
	"envedit/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      model.ReleaseOwner,
		Repository: model.ReleaseRepository,
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: envedit [options]\n\n")
		fmt.Fprintf(os.Stderr, "envedit shows the environment variables your shell profile defines,\n")
		fmt.Fprintf(os.Stderr, "merged over the current environment, and appends new ones to it.\n")
		fmt.Fprintf(os.Stderr, "New variables take effect in processes started afterwards.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  envedit                          # Start TUI mode\n")
		fmt.Fprintf(os.Stderr, "  envedit --list                   # Print variables to stdout\n")
		fmt.Fprintf(os.Stderr, "  envedit -a GOPATH=$HOME/go       # Append to the shell profile\n")
		fmt.Fprintf(os.Stderr, "  envedit --set-profile ~/.zshrc   # Choose the shell profile\n")
	}

	listFlag := pflag.BoolP("list", "l", false, "Print the aggregated variables")
	jsonFlag := pflag.BoolP("json", "j", false, "Print the aggregated variables as JSON")
	addFlag := pflag.StringP("add", "a", "", "Append KEY=VALUE to the shell profile")
	whereFlag := pflag.Bool("where", false, "Print the configured shell profile")
	setProfileFlag := pflag.String("set-profile", "", "Store the shell profile path in settings (\"auto\" detects it from $SHELL)")
	settingsFlag := pflag.String("settings", "", "Settings file (default "+settings.DefaultPath()+")")
	webFlag := pflag.BoolP("web", "w", false, "Start Web Mode on http://localhost:"+web.DefaultPort)
	portFlag := pflag.String("port", web.DefaultPort, "Port for Web Mode")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Enable debug logging")
	logFileFlag := pflag.String("log-file", "", "Also write logs to this file")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("envedit version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	tuiMode := !*listFlag && !*jsonFlag && *addFlag == "" && !*whereFlag && *setProfileFlag == "" && !*webFlag

	var logOpts []logger.Option
	if *verboseFlag {
		logOpts = append(logOpts, logger.WithDebug())
	}
	if tuiMode || !*verboseFlag {
		logOpts = append(logOpts, logger.WithQuiet())
	}
	if *logFileFlag != "" {
		f, err := os.OpenFile(*logFileFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFileFlag, err)
			os.Exit(1)
		}
		defer f.Close()
		logOpts = append(logOpts, logger.WithWriter(f))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logger.WithLogger(ctx, logger.New(logOpts...))

	store := settings.New(settings.WithFile(*settingsFlag))
	ed := editor.New(store)

	var err error
	switch {
	case *setProfileFlag != "":
		err = runSetProfile(store, *setProfileFlag)
	case *whereFlag:
		err = runWhere(ctx, ed)
	case *addFlag != "":
		err = runAdd(ctx, ed, *addFlag)
	case *jsonFlag:
		err = runJsonMode(ctx, ed)
	case *listFlag:
		err = runListMode(ctx, ed)
	case *webFlag:
		err = web.NewServer(ed, *portFlag).Run(ctx)
	default:
		err = runTuiMode(ctx, ed)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func runSetProfile(store *settings.Store, path string) error {
	if path == "auto" {
		shell := settings.DetectShell(os.Getenv("SHELL"))
		path = shell.ProfileFile()
		fmt.Printf("Detected %s, using %s\n", shell.Name(), path)
	}
	if err := store.SetProfile(path); err != nil {
		return errors.New(editor.Message(err, store.Path()))
	}
	fmt.Printf("Shell profile set to %s in %s\n", path, store.Path())
	return nil
}

func runWhere(ctx context.Context, ed *editor.Editor) error {
	loc, err := ed.ShellLocation(ctx)
	if err != nil {
		return err
	}
	fmt.Println(loc)
	return nil
}

func runAdd(ctx context.Context, ed *editor.Editor, assignment string) error {
	key, value, ok := strings.Cut(assignment, "=")
	if !ok {
		return fmt.Errorf("expected KEY=VALUE, got %q", assignment)
	}
	msg, err := ed.AddVariable(ctx, key, value)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func runJsonMode(ctx context.Context, ed *editor.Editor) error {
	vars, err := ed.Variables(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(vars)
}

func runListMode(ctx context.Context, ed *editor.Editor) error {
	vars, err := ed.Variables(ctx)
	if err != nil {
		return err
	}

	nameStyle := lipgloss.NewStyle().Bold(true)
	profileStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	for _, v := range vars {
		icon, style := model.IconSession, nameStyle
		if v.FromProfile {
			icon, style = model.IconProfile, profileStyle
		}
		if len(v.Values) == 1 {
			fmt.Printf("%s %s=%s\n", icon, style.Render(v.Name), valueStyle.Render(v.Values[0]))
			continue
		}
		fmt.Printf("%s %s\n", icon, style.Render(v.Name))
		for i, val := range v.Values {
			fmt.Printf("    %2d. %s\n", i+1, valueStyle.Render(val))
		}
	}
	return nil
}

func runTuiMode(ctx context.Context, ed *editor.Editor) error {
	m := tui.InitialModel(ctx, ed)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(tui.AppModel); ok {
		fm.Close()
	}
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
