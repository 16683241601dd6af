package i18n

import "errors"

var (
	// Catalog construction
	ErrNilSource       = errors.New("message source is nil")
	ErrNoMessages      = errors.New("no messages found")
	ErrInvalidLanguage = errors.New("invalid language code")

	// Parsing
	ErrParsingCancelled  = errors.New("message parsing cancelled")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrInvalidStructure  = errors.New("invalid message structure")

	// File system sources
	ErrLoadingCancelled  = errors.New("loading messages cancelled")
	ErrFailedToReadDir   = errors.New("failed to read message directory")
	ErrFailedToReadFile  = errors.New("failed to read message file")
	ErrFailedToParseFile = errors.New("failed to parse message file")
)
