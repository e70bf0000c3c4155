package rawdef

import "strings"

// privateUse is the code point written around backtick-delimited
// ASCIIMath so a client-side renderer can find it.
const privateUse = "&#xF8F8;"

// ASCIIMath returns the three delimiter specs for ASCIIMath passthrough:
// a custom single-character delimiter (backtick when delim is empty)
// wrapped in U+F8F8, then $$ and $ pairs. A delimiter equal to the ':'
// separator switches that spec's separator to '!'.
func ASCIIMath(delim string) []string {
	if delim == "" {
		delim = "`"
	}

	sep := ":"
	if strings.Contains(delim, sep) {
		sep = "!"
	}
	custom := sep + delim + sep + delim + sep + privateUse + sep + privateUse + sep

	return []string{custom, ":$$:$$:", ":$:$:"}
}
