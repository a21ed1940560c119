package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrInvalidFlag        = errors.New("invalid flag")
	ErrTooManyArgs        = errors.New("too many arguments")
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteHTML          = errors.New("failed to write HTML file")
	ErrInvalidExtension   = errors.New("file must have .md extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrPartialBuild       = errors.New("some documents failed to build")
)
