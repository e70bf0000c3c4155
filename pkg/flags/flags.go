// Package flags defines the option bitmask shared by the inline compiler and
// the block renderer, and a named-boolean view of it for configuration.
package flags

import (
	"fmt"
	"sort"
	"strings"
)

// Flags is a per-render set of option bits.
type Flags uint64

// Option bits.
const (
	NoLinks Flags = 1 << iota
	NoImage
	NoPants
	NoHTML
	Strict
	TagText
	NoExt
	CDATA
	NoSuperscript
	NoRelaxed
	NoTables
	NoStrikethrough
	TOC
	OneCompat
	Autolink
	SafeLink
	NoHeader
	TabStop
	NoDivQuote
	NoAlphaList
	NoDefinitionList
	ExtraFootnote
	XML
	ISO
	Wiki
	GitHubTags

	// IsLabel renders link text only; set internally when computing anchors.
	IsLabel

	InLatin1
	InUTF8

	OutASCII
	OutLatin1
	OutUTF8
)

// Encoding selector masks.
const (
	InputMask  = InLatin1 | InUTF8
	OutputMask = OutASCII | OutLatin1 | OutUTF8
)

// UserMask covers the bits a caller may set; IsLabel is reserved.
const UserMask = ^IsLabel

var names = map[Flags]string{
	NoLinks:          "nolinks",
	NoImage:          "noimage",
	NoPants:          "nopants",
	NoHTML:           "nohtml",
	Strict:           "strict",
	TagText:          "tagtext",
	NoExt:            "noext",
	CDATA:            "cdata",
	NoSuperscript:    "nosuperscript",
	NoRelaxed:        "norelaxed",
	NoTables:         "notables",
	NoStrikethrough:  "nostrikethrough",
	TOC:              "toc",
	OneCompat:        "1.0",
	Autolink:         "autolink",
	SafeLink:         "safelink",
	NoHeader:         "noheader",
	TabStop:          "tabstop",
	NoDivQuote:       "nodivquote",
	NoAlphaList:      "noalphalist",
	NoDefinitionList: "nodlist",
	ExtraFootnote:    "footnote",
	XML:              "xml",
	ISO:              "iso",
	Wiki:             "wiki",
	GitHubTags:       "githubtags",
	IsLabel:          "label",
	InLatin1:         "in-latin1",
	InUTF8:           "in-utf8",
	OutASCII:         "out-ascii",
	OutLatin1:        "out-latin1",
	OutUTF8:          "out-utf8",
}

// Has reports whether every bit in mask is set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// Any reports whether at least one bit in mask is set.
func (f Flags) Any(mask Flags) bool {
	return f&mask != 0
}

// With returns f with mask set.
func (f Flags) With(mask Flags) Flags {
	return f | mask
}

// Without returns f with mask cleared.
func (f Flags) Without(mask Flags) Flags {
	return f &^ mask
}

// Set replaces the bits selected by mask with val.
func (f Flags) Set(val, mask Flags) Flags {
	return f&^mask | val&mask
}

// String renders the set bits as a "|"-separated list of names.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}

	var parts []string
	for bit := Flags(1); bit != 0 && bit <= f; bit <<= 1 {
		if f&bit == 0 {
			continue
		}
		if name, ok := names[bit]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("0x%x", uint64(bit)))
		}
	}
	return strings.Join(parts, "|")
}

// Parse looks up a single flag by name (case-insensitive, leading "no"
// spelled out as in String).
func Parse(name string) (Flags, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for bit, n := range names {
		if n == key && bit != IsLabel {
			return bit, nil
		}
	}
	return 0, fmt.Errorf("unknown flag %q", name)
}

// ParseList parses a comma-separated list of flag names.
func ParseList(list string) (Flags, error) {
	var out Flags
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		bit, err := Parse(part)
		if err != nil {
			return 0, err
		}
		out |= bit
	}
	return out, nil
}

// Names returns every user-settable flag name, sorted.
func Names() []string {
	out := make([]string, 0, len(names))
	for bit, n := range names {
		if bit == IsLabel {
			continue
		}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
