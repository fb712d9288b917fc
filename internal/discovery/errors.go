package discovery

import "errors"

var (
	// ErrDuplicateTitle indicates two descriptors declare the same title.
	ErrDuplicateTitle = errors.New("duplicate page title")

	// ErrRootNotFound indicates the content root does not exist or is not a directory.
	ErrRootNotFound = errors.New("content root not found")

	// ErrGenericRejected indicates a Generic page was found while Generic pages are disabled.
	ErrGenericRejected = errors.New("generic pages are not supported")
)
