package editor

import (
	"errors"
	"fmt"
	"path/filepath"

	"envedit/internal/model"
	"envedit/internal/profile"
	"envedit/internal/settings"
)

const (
	msgAdded          = "Variable added successfully!\n\nThe new variable will not show up in this window unless the app is closed and open again, but the variable should be there."
	msgAlreadyPresent = "Variable has been added already."
	msgInvalidInput   = "Invalid input, contains null character or is empty."
	msgMalformedLine  = "Could not understand a line in the shell profile (%s). Only lines of the form export KEY=value[:value...] are supported."
	msgUnknownRef     = "The shell profile (%s) refers to a variable before it is defined. Define variables before referencing them and try again."
	msgProfileOpen    = "Could not open shell profile (%s). Please check that the shell profile setting points to the right file (settings.json is in %q) and try again."
	msgProfileWrite   = "Could not write the new variable to file %s. Please write manually"
	msgSettingsRead   = "Could not find or read from settings file at %s. Please make sure the file exists, run the program as sudo/admin, and try again"
	msgSettingMissing = "Value not found in settings file. Please open the settings page and ensure that all settings are set. View help for more info."
	msgEmptySettings  = "Settings file is empty. Please fill out all settings in settings.json before trying again.\nsettings.json is in %q"
	msgMakeDir        = "Could not make a directory at %s. Please see the help page and follow instructions on making a settings directory."
	msgMakeFile       = "Could not make desired file at %s. Please see the help page and follow the steps to diagnose."
	msgUnexpected     = "Something went wrong."
)

// OutcomeMessage is the success text for an add.
func OutcomeMessage(o model.Outcome) string {
	if o == model.AlreadyPresent {
		return msgAlreadyPresent
	}
	return msgAdded
}

// Message renders err as the user-facing text for its kind, followed by
// the underlying error when there is one.
func Message(err error, settingsPath string) string {
	if err == nil {
		return ""
	}
	settingsDir := filepath.Dir(settingsPath)

	var perr *profile.Error
	if errors.As(err, &perr) {
		switch perr.Kind {
		case profile.KindInvalidInput:
			return msgInvalidInput
		case profile.KindProfileRead, profile.KindProfileOpen:
			return withDetail(fmt.Sprintf(msgProfileOpen, perr.Path, settingsDir), perr)
		case profile.KindMalformedLine:
			return withDetail(fmt.Sprintf(msgMalformedLine, perr.Path), perr)
		case profile.KindUnknownReference:
			return withDetail(fmt.Sprintf(msgUnknownRef, perr.Path), perr)
		case profile.KindWrite:
			return withDetail(fmt.Sprintf(msgProfileWrite, perr.Path), perr)
		}
	}

	var serr *settings.Error
	if errors.As(err, &serr) {
		switch serr.Kind {
		case settings.KindSettingsRead:
			return withDetail(fmt.Sprintf(msgSettingsRead, serr.Path), serr)
		case settings.KindSettingMissing:
			return msgSettingMissing
		case settings.KindEmptySettings:
			return fmt.Sprintf(msgEmptySettings, filepath.Dir(serr.Path))
		case settings.KindMakeDir:
			return withDetail(fmt.Sprintf(msgMakeDir, serr.Path), serr)
		case settings.KindMakeFile:
			return withDetail(fmt.Sprintf(msgMakeFile, serr.Path), serr)
		case settings.KindProfileMissing:
			return withDetail(fmt.Sprintf(msgProfileOpen, serr.Path, settingsDir), serr)
		}
	}

	return withDetail(msgUnexpected, err)
}

func withDetail(message string, err error) string {
	return fmt.Sprintf("%s\nFull Error:\n%s", message, err)
}
