package build

import "errors"

// Sentinel errors for site builds.
var (
	ErrReadSource  = errors.New("failed to read source file")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrNoDocuments = errors.New("no documents found")
)
