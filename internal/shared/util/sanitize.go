package util

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidFileName is returned when nothing usable survives sanitization.
var ErrInvalidFileName = errors.New("invalid file name")

// SecureFilename reduces an uploaded file name to a flat, ASCII-only name safe
// to join onto a storage folder. Path separators become word breaks, so
// "../../etc/passwd" becomes "etc_passwd".
func SecureFilename(name string) (string, error) {
	s := norm.NFKD.String(name)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		if r == '/' || r == '\\' {
			return ' '
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), "_")
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_' || r == '.' || r == '-':
			return r
		default:
			return -1
		}
	}, s)
	s = strings.Trim(s, "._")
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
