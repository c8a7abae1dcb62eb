package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText NFC-normalizes user input and trims surrounding whitespace.
// Applied to free text before it is sent to the API so that visually equal
// strings compare equal server-side.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
