package model

import "fmt"

// Size is the grid dimension of a collage. A collage of Size n has n x n tiles.
type Size int

const (
	Size3  Size = 3
	Size4  Size = 4
	Size5  Size = 5
	Size10 Size = 10 // premium only; the service refuses it for free accounts
)

var sizeOptions = []string{"3", "4", "5", "10"}

// ParseSize validates a raw size argument.
//
// Only "3", "4", "5" and "10" are accepted. Size10 is not rejected here even
// though it needs a premium account: the service answers with a permission
// error in that case.
func ParseSize(raw string) (Size, error) {
	switch raw {
	case "3":
		return Size3, nil
	case "4":
		return Size4, nil
	case "5":
		return Size5, nil
	case "10":
		return Size10, nil
	}
	return 0, &ValidationError{Field: "size", Value: raw, Options: sizeOptions, Hint: "10 requires premium"}
}

// Token returns the wire value of the size, e.g. "4x4".
func (s Size) Token() string {
	return fmt.Sprintf("%dx%d", s, s)
}

// Premium reports whether the size needs a premium tapmusic account.
func (s Size) Premium() bool {
	return s == Size10
}
