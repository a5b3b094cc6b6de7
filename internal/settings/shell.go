package settings

import (
	"path/filepath"
	"strings"
)

// Shell names the profile a login shell sources.
type Shell interface {
	Name() string
	ProfileFile() string
}

// ZshShell implements Shell for Zsh.
type ZshShell struct{}

func (s *ZshShell) Name() string        { return "zsh" }
func (s *ZshShell) ProfileFile() string { return "~/.zshrc" }

// BashShell implements Shell for Bash.
type BashShell struct{}

func (s *BashShell) Name() string        { return "bash" }
func (s *BashShell) ProfileFile() string { return "~/.bashrc" }

// PosixShell covers sh, dash, ksh and anything unrecognised.
type PosixShell struct{}

func (s *PosixShell) Name() string        { return "sh" }
func (s *PosixShell) ProfileFile() string { return "~/.profile" }

// DetectShell identifies the shell from a $SHELL value.
func DetectShell(shellPath string) Shell {
	switch name := filepath.Base(shellPath); {
	case strings.Contains(name, "zsh"):
		return &ZshShell{}
	case strings.Contains(name, "bash"):
		return &BashShell{}
	}
	return &PosixShell{}
}
