package parser

import "errors"

var (
	ErrSyntax      = errors.New("xml syntax error")
	ErrStructure   = errors.New("malformed feed structure")
	ErrInvalidFeed = errors.New("not a valid RSS feed")
	ErrDate        = errors.New("unrecognized date")
)

// IsParseError reports whether err came out of feed parsing rather than
// transport or storage.
func IsParseError(err error) bool {
	return errors.Is(err, ErrSyntax) ||
		errors.Is(err, ErrStructure) ||
		errors.Is(err, ErrInvalidFeed) ||
		errors.Is(err, ErrDate)
}
