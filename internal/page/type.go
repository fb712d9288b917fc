package page

import "fmt"

// Type is the closed set of page variants. It selects the rendering strategy.
type Type int

const (
	Algorithm Type = iota + 1
	Category
	Generic
)

var typeNames = map[Type]string{
	Algorithm: "Algorithm",
	Category:  "Category",
	Generic:   "Generic",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is one of the declared variants.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPageType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are case-sensitive.
func (t *Type) UnmarshalText(text []byte) error {
	for v, name := range typeNames {
		if name == string(text) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("%w: %q (want Algorithm, Category or Generic)", ErrUnknownPageType, string(text))
}
