package config

import "git.home.luguber.info/inful/algowiki/internal/foundation/normalization"

// GenericPolicy decides what happens to pages declared with page_type Generic.
type GenericPolicy string

const (
	// GenericEmpty writes an empty document at the page's output path.
	GenericEmpty GenericPolicy = "empty"
	// GenericReject fails the compile when a Generic descriptor is found.
	GenericReject GenericPolicy = "reject"
)

var genericNormalizer = normalization.NewNormalizer(map[string]GenericPolicy{
	"empty":  GenericEmpty,
	"reject": GenericReject,
}, GenericEmpty)

// DuplicatePolicy decides how two implementation files sharing a label are handled.
type DuplicatePolicy string

const (
	// DuplicateLastWins keeps the lexicographically last file name.
	DuplicateLastWins DuplicatePolicy = "last"
	// DuplicateError fails the compile.
	DuplicateError DuplicatePolicy = "error"
)

var duplicateNormalizer = normalization.NewNormalizer(map[string]DuplicatePolicy{
	"last":  DuplicateLastWins,
	"error": DuplicateError,
}, DuplicateLastWins)
