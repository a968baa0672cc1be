// Copyright (c) 2012-2014 Jeremy Latt
// Copyright (c) 2014-2015 Edmund Huber
// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// Copyright (c) 2026 chatfmt contributors
// released under the MIT license

package irc

import "errors"

// Message Errors
var (
	ErrEmptyMessage   = errors.New("Message is empty")
	ErrInvalidTarget  = errors.New("Invalid message target")
	ErrTargetTooLong  = errors.New("Target is too long to leave room for a message")
	ErrUnknownCommand = errors.New("Only PRIVMSG and NOTICE can carry formatted text")
)

// Config Errors
var (
	ErrInvalidEnvOverride    = errors.New("Invalid environment override")
	ErrLineLengthsTooSmall   = errors.New("Line lengths must be 512 or greater (check max-line-bytes under wire)")
	ErrLoggerExcludeEmpty    = errors.New("Encountered logging type '-' with no type to exclude")
	ErrLoggerFilenameMissing = errors.New("Logging configuration specifies 'file' method but 'filename' is empty")
	ErrLoggerHasNoTypes      = errors.New("Logger has no types to log")
	ErrSourceReserveInvalid  = errors.New("source-reserve must be non-negative and smaller than max-line-bytes")
	ErrUnknownNormalization  = errors.New("normalize must be one of: none, nfc, nfkc")
)
