package errors

// Package errors provides sentinel errors for link rewriting.

import "errors"

// ErrMissingExtension indicates a same-directory link target without a file extension.
var ErrMissingExtension = errors.New("link target has no file extension")
