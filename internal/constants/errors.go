package constants

import "errors"

// Configuration errors.
var (
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrNoHomeDirectory  = errors.New("could not determine home directory")
)

// Manifest and packaging errors.
var (
	ErrManifestNotFound     = errors.New("function.yml not found, run this command from a function directory or pass --dir")
	ErrFunctionNameRequired = errors.New("function.yml must define a name")
	ErrNotADirectory        = errors.New("not a directory")
)

// Command errors.
var (
	ErrCancelled             = errors.New("cancelled")
	ErrConfirmationRequired  = errors.New("confirmation required: stdin is not a terminal, pass --yes to proceed")
	ErrContextDataRequired   = errors.New("context data is required, use --data or --stdin")
	ErrInvalidHeaderFormat   = errors.New("invalid header format, expected KEY=VALUE")
	ErrConflictingBodyInputs = errors.New("inline data and --stdin cannot be used together")
)
