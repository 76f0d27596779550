package snapshot

import (
	"errors"
	"fmt"
)

// ErrNotArray is returned by [Parse] when the file returns something other
// than an array literal.
var ErrNotArray = errors.New("snapshot is not an array literal")

// SyntaxError describes malformed snapshot source. Offset is the byte
// position where parsing stopped.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}
