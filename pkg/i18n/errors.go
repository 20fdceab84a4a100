package i18n

import "errors"

var (
	ErrFailedToParseYAML     = errors.New("failed to parse YAML message bundle")
	ErrInvalidBundle         = errors.New("invalid message bundle")
	ErrFailedToReadBundle    = errors.New("failed to read message bundle")
	ErrNoBundles             = errors.New("no message bundles found")
	ErrLanguageNotSupported  = errors.New("language not supported")
	ErrFailedToMarshalBundle = errors.New("failed to marshal message bundle")
)
