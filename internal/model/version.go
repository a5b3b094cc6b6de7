package model

// Version is the current release, compared against GitHub tags by --update.
const Version = "0.3.0"

// Release coordinates for the update check.
const (
	ReleaseOwner      = "envedit"
	ReleaseRepository = "envedit"
)
