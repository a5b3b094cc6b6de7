package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"envedit/internal/model"
)

const (
	// DirName is the settings directory under the XDG config home.
	DirName  = "Environment Variable Editor"
	FileName = "settings.json"

	keyShellProfile = "shell_profile"
	envPrefix       = "ENVEDIT"
)

// Fields is the on-disk shape of settings.json.
type Fields struct {
	ShellProfile string `json:"shell_profile"`
}

// Store reads settings.json. The file is re-read on every lookup so edits
// made while the program runs are picked up.
type Store struct {
	path string
}

// Option configures a Store.
type Option func(*Store)

// WithFile overrides the settings file location.
func WithFile(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.path = model.ExpandTilde(path)
		}
	}
}

// New returns a Store for the default or overridden settings file.
func New(opts ...Option) *Store {
	s := &Store{path: DefaultPath()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath is settings.json under the user's config directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, DirName, FileName)
}

// Path returns the settings file location.
func (s *Store) Path() string { return s.path }

// Ensure creates the settings directory and a blank settings file when
// they are missing. A freshly created file is reported as EmptySettings
// since it cannot name a profile yet.
func (s *Store) Ensure() error {
	dir := filepath.Dir(s.path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &Error{Kind: KindMakeDir, Path: dir, Err: err}
		}
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return &Error{Kind: KindSettingsRead, Path: s.path, Err: err}
	}

	if err := writeFields(s.path, Fields{}); err != nil {
		return &Error{Kind: KindMakeFile, Path: s.path, Err: err}
	}
	return &Error{Kind: KindEmptySettings, Path: s.path}
}

func writeFields(path string, f Fields) error {
	v := viper.New()
	v.SetConfigType("json")
	v.Set(keyShellProfile, f.ShellProfile)
	return v.WriteConfigAs(path)
}

func (s *Store) load() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, &Error{Kind: KindSettingsRead, Path: s.path, Err: err}
	}
	return v, nil
}

// ProfileSetting returns the raw shell_profile value. ENVEDIT_SHELL_PROFILE
// takes precedence over the file.
func (s *Store) ProfileSetting() (string, error) {
	if err := s.Ensure(); err != nil {
		return "", err
	}
	v, err := s.load()
	if err != nil {
		return "", err
	}
	profile := strings.TrimSpace(v.GetString(keyShellProfile))
	if profile == "" {
		return "", &Error{Kind: KindSettingMissing, Path: s.path}
	}
	return profile, nil
}

// ProfilePath returns the expanded shell profile path and checks that it
// names an existing regular file.
func (s *Store) ProfilePath() (string, error) {
	raw, err := s.ProfileSetting()
	if err != nil {
		return "", err
	}
	path := model.ExpandTilde(raw)
	info, err := os.Stat(path)
	if err != nil {
		return "", &Error{Kind: KindProfileMissing, Path: path, Err: err}
	}
	if info.IsDir() {
		return "", &Error{Kind: KindProfileMissing, Path: path, Err: errors.New("is a directory")}
	}
	return path, nil
}

// SetProfile stores a new shell_profile value, creating the settings file
// if needed.
func (s *Store) SetProfile(path string) error {
	if err := s.Ensure(); err != nil && !errors.Is(err, ErrEmptySettings) {
		return err
	}
	v, err := s.load()
	if err != nil {
		return err
	}
	v.Set(keyShellProfile, path)
	if err := v.WriteConfigAs(s.path); err != nil {
		return &Error{Kind: KindMakeFile, Path: s.path, Err: err}
	}
	return nil
}
