package compliance

import "regexp"

// Identifier formats checked by the licensing rules. Hyphens are accepted in
// their conventional positions but carry no meaning.
//
// ISRC: two-letter country code, three alphanumeric registrant characters,
// two-digit year, five-digit designation (e.g. "US-ABC-12-34567").
//
// Work registration numbers are plain 7 to 10 digit strings as assigned by
// collecting societies.
var (
	isrcPattern       = regexp.MustCompile(`^[A-Z]{2}-?[A-Z0-9]{3}-?\d{2}-?\d{5}$`)
	workNumberPattern = regexp.MustCompile(`^\d{7,10}$`)
)

// ValidateISRC reports whether s is a well-formed recording identifier.
func ValidateISRC(s string) bool {
	return isrcPattern.MatchString(s)
}

// ValidateWorkNumber reports whether s is a well-formed work registration
// number.
func ValidateWorkNumber(s string) bool {
	return workNumberPattern.MatchString(s)
}
