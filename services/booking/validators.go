package booking

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minOwnerNameLen = 2
	minPetNameLen   = 1
	minPhoneDigits  = 10
)

// ValidOwnerName reports whether the trimmed name has at least two characters.
func ValidOwnerName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= minOwnerNameLen
}

// ValidPetName reports whether the trimmed name is non-empty.
func ValidPetName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= minPetNameLen
}

// ValidPhone ignores every non-digit character and requires at least ten digits.
func ValidPhone(s string) bool {
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= minPhoneDigits
}
