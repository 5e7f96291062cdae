package errors

// Package errors provides sentinel errors for documentation collection operations.
// These enable consistent classification of input tree failures.

import "errors"

var (
	// ErrNotReadableDir indicates an input or output path is missing, unreadable or not a directory.
	ErrNotReadableDir = errors.New("not an existing readable directory")

	// ErrDocsDirWalkFailed indicates filesystem traversal of a docs directory failed.
	ErrDocsDirWalkFailed = errors.New("documentation directory walk failed")

	// ErrFileReadFailed indicates reading content from a discovered documentation file failed.
	ErrFileReadFailed = errors.New("documentation file read failed")
)
