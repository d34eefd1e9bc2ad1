package user

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// MaxNameLength is the longest display name accepted, in runes
const MaxNameLength = 32

// NormalizeName puts a display name in NFC form, drops control characters
// and collapses runs of whitespace. An empty or overlong result is rejected.
func NormalizeName(name string) (string, error) {
	name = norm.NFC.String(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), " ")

	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", fmt.Errorf("%w: name is longer than %d characters", domain.ErrInvalidInput, MaxNameLength)
	}
	return name, nil
}
