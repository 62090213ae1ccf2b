package config

import "errors"

var (
	ErrNilPointer    = errors.New("config: nil pointer provided")
	ErrParsingConfig = errors.New("config: failed to parse")
)
