// Package errors provides the classified error type used across algowiki.
//
// A ClassifiedError carries a category (which compile phase failed), a
// severity and structured context such as the offending path or page title.
// The CLI adapter turns a classified error into a user-facing message and a
// process exit code.
//
// Example usage:
//
//	err := errors.WrapError(ioErr, errors.CategoryDiscovery, "failed to read descriptor").
//		WithContext("path", path).
//		Build()
package errors
