package page

import "errors"

var (
	// ErrUnknownPageType indicates a page_type outside Algorithm, Category, Generic.
	ErrUnknownPageType = errors.New("unknown page type")

	// ErrMissingField indicates a required descriptor key is absent or empty.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownField indicates a descriptor key that is not part of the format.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidURL indicates a url that is not a clean site-relative path.
	ErrInvalidURL = errors.New("invalid page url")

	// ErrFieldNotApplicable indicates a list that the page variant does not use,
	// such as subpages on an Algorithm page.
	ErrFieldNotApplicable = errors.New("field not applicable to page type")
)
