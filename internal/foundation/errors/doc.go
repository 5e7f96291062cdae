// Package errors provides the classified error primitives used across docmerge.
//
// Every failure that reaches the CLI is a ClassifiedError: the category decides
// the process exit code, the message is the diagnostic shown to the user and the
// context carries structured fields (file, link, path) for logging.
//
// Example usage:
//
//	err := errors.ValidationError("No extension on [a](b) in guide.md").
//		WithContext("file", path).
//		WithContext("link", link).
//		WithCause(merr.ErrMissingExtension).
//		Build()
package errors
