package model

import (
	"fmt"
	"strings"
)

// ValidationError reports a collage input that is outside its legal value set.
//
// ValidationError is returned before any network or file system access takes
// place, so a caller can always treat it as a usage error.
//
// Example:
//
//	_, err := ParseSize("7")
//	var verr *ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Println(verr.Field)   // "size"
//	    fmt.Println(verr.Options) // [3 4 5 10]
//	}
type ValidationError struct {
	// Field is the name of the offending input (size, period, caption, ...).
	Field string

	// Value is the raw value that failed validation.
	Value string

	// Options lists the accepted values, in display order.
	Options []string

	// Hint is an optional extra sentence shown after the options.
	Hint string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s %q", e.Field, e.Value)
	if len(e.Options) > 0 {
		fmt.Fprintf(&b, ": options: %s", strings.Join(e.Options, ", "))
	}
	if e.Hint != "" {
		b.WriteString(" (")
		b.WriteString(e.Hint)
		b.WriteString(")")
	}
	return b.String()
}
