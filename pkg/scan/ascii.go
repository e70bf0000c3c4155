package scan

// Character classes over the ASCII range. Anything else, EOF included, is
// in no class.

// IsSpace reports space, tab, newline, vertical tab, form feed or return.
func IsSpace(c int) bool {
	return c == ' ' || (c >= '\t' && c <= '\r')
}

// IsDigit reports an ASCII decimal digit.
func IsDigit(c int) bool {
	return c >= '0' && c <= '9'
}

// IsAlpha reports an ASCII letter.
func IsAlpha(c int) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsAlnum reports an ASCII letter or digit.
func IsAlnum(c int) bool {
	return IsAlpha(c) || IsDigit(c)
}

// IsPunct reports printable ASCII that is neither alphanumeric nor space.
func IsPunct(c int) bool {
	return c > ' ' && c < 0x7f && !IsAlnum(c)
}

// ToLower folds an ASCII letter to lower case.
func ToLower(c int) int {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
