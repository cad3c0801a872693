package extract

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("invalid python source")

// ParseError reports where the parser first gave up.
type ParseError struct {
	Path   string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s at line %d, column %d", ErrParse, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: %s at line %d, column %d", e.Path, ErrParse, e.Line, e.Column)
}

func (e *ParseError) Unwrap() error { return ErrParse }
