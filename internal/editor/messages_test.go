package editor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"envedit/internal/model"
	"envedit/internal/profile"
	"envedit/internal/settings"
)

func TestMessage_DistinctPerKind(t *testing.T) {
	errs := []error{
		&profile.Error{Kind: profile.KindInvalidInput},
		&profile.Error{Kind: profile.KindProfileOpen, Path: "/p"},
		&profile.Error{Kind: profile.KindMalformedLine, Path: "/p", Line: 2},
		&profile.Error{Kind: profile.KindUnknownReference, Path: "/p", Line: 2},
		&profile.Error{Kind: profile.KindWrite, Path: "/p"},
		&settings.Error{Kind: settings.KindSettingsRead, Path: "/s/settings.json"},
		&settings.Error{Kind: settings.KindSettingMissing, Path: "/s/settings.json"},
		&settings.Error{Kind: settings.KindEmptySettings, Path: "/s/settings.json"},
		&settings.Error{Kind: settings.KindMakeDir, Path: "/s"},
		&settings.Error{Kind: settings.KindMakeFile, Path: "/s/settings.json"},
		errors.New("boom"),
	}

	seen := map[string]bool{}
	for _, err := range errs {
		msg := Message(err, "/s/settings.json")
		head, _, _ := strings.Cut(msg, "\n")
		assert.NotEmpty(t, head)
		assert.False(t, seen[head], "message reused: %q", head)
		seen[head] = true
	}
}

func TestMessage_ProfileReadAndOpenShareText(t *testing.T) {
	read := Message(&profile.Error{Kind: profile.KindProfileRead, Path: "/p"}, "/s/settings.json")
	open := Message(&profile.Error{Kind: profile.KindProfileOpen, Path: "/p"}, "/s/settings.json")
	assert.True(t, strings.HasPrefix(read, "Could not open shell profile (/p)."))
	assert.True(t, strings.HasPrefix(open, "Could not open shell profile (/p)."))
	assert.Contains(t, read, `"/s"`)
}

func TestMessage_Nil(t *testing.T) {
	assert.Empty(t, Message(nil, ""))
}

func TestOutcomeMessage(t *testing.T) {
	assert.Equal(t, msgAdded, OutcomeMessage(model.Added))
	assert.Equal(t, msgAlreadyPresent, OutcomeMessage(model.AlreadyPresent))
	assert.NotEqual(t, OutcomeMessage(model.Added), OutcomeMessage(model.AlreadyPresent))
}
