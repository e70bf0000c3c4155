package flags

// Charset selects an input or output character encoding.
type Charset string

// Supported charsets.
const (
	CharsetUTF8   Charset = "utf-8"
	CharsetLatin1 Charset = "iso-8859-1"
	CharsetASCII  Charset = "us-ascii"
)

// Capabilities is the named-boolean form of Flags. Zero value enables every
// extension and selects UTF-8 in and out.
type Capabilities struct {
	Links           bool
	Images          bool
	SmartyPants     bool
	HTML            bool
	PseudoProtocols bool
	Superscript     bool
	RelaxedEmphasis bool
	Tables          bool
	Strikethrough   bool
	DivQuotes       bool
	AlphaLists      bool
	DefinitionLists bool
	PandocHeader    bool

	Strict        bool
	TagText       bool
	CDATA         bool
	TOC           bool
	OneCompat     bool
	Autolink      bool
	SafeLink      bool
	TabStop       bool
	ExtraFootnote bool
	XML           bool
	ISO           bool
	Wiki          bool
	GitHubTags    bool

	Input  Charset
	Output Charset
}

// DefaultCapabilities returns every extension on, UTF-8 in and out.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Links:           true,
		Images:          true,
		SmartyPants:     true,
		HTML:            true,
		PseudoProtocols: true,
		Superscript:     true,
		RelaxedEmphasis: true,
		Tables:          true,
		Strikethrough:   true,
		DivQuotes:       true,
		AlphaLists:      true,
		DefinitionLists: true,
		PandocHeader:    true,
		ExtraFootnote:   true,
		Input:           CharsetUTF8,
		Output:          CharsetUTF8,
	}
}

// Flags converts the capability set into a bitmask.
func (c Capabilities) Flags() Flags {
	var f Flags

	negative := []struct {
		on  bool
		bit Flags
	}{
		{c.Links, NoLinks},
		{c.Images, NoImage},
		{c.SmartyPants, NoPants},
		{c.HTML, NoHTML},
		{c.PseudoProtocols, NoExt},
		{c.Superscript, NoSuperscript},
		{c.RelaxedEmphasis, NoRelaxed},
		{c.Tables, NoTables},
		{c.Strikethrough, NoStrikethrough},
		{c.DivQuotes, NoDivQuote},
		{c.AlphaLists, NoAlphaList},
		{c.DefinitionLists, NoDefinitionList},
		{c.PandocHeader, NoHeader},
	}
	for _, n := range negative {
		if !n.on {
			f |= n.bit
		}
	}

	positive := []struct {
		on  bool
		bit Flags
	}{
		{c.Strict, Strict},
		{c.TagText, TagText},
		{c.CDATA, CDATA},
		{c.TOC, TOC},
		{c.OneCompat, OneCompat},
		{c.Autolink, Autolink},
		{c.SafeLink, SafeLink},
		{c.TabStop, TabStop},
		{c.ExtraFootnote, ExtraFootnote},
		{c.XML, XML},
		{c.ISO, ISO},
		{c.Wiki, Wiki},
		{c.GitHubTags, GitHubTags},
	}
	for _, p := range positive {
		if p.on {
			f |= p.bit
		}
	}

	switch c.Input {
	case CharsetLatin1:
		f |= InLatin1
	default:
		f |= InUTF8
	}

	switch c.Output {
	case CharsetASCII:
		f |= OutASCII
	case CharsetLatin1:
		f |= OutLatin1
	default:
		f |= OutUTF8
	}

	return f
}

// FromFlags is the inverse of Capabilities.Flags.
func FromFlags(f Flags) Capabilities {
	c := Capabilities{
		Links:           !f.Any(NoLinks),
		Images:          !f.Any(NoImage),
		SmartyPants:     !f.Any(NoPants),
		HTML:            !f.Any(NoHTML),
		PseudoProtocols: !f.Any(NoExt),
		Superscript:     !f.Any(NoSuperscript),
		RelaxedEmphasis: !f.Any(NoRelaxed),
		Tables:          !f.Any(NoTables),
		Strikethrough:   !f.Any(NoStrikethrough),
		DivQuotes:       !f.Any(NoDivQuote),
		AlphaLists:      !f.Any(NoAlphaList),
		DefinitionLists: !f.Any(NoDefinitionList),
		PandocHeader:    !f.Any(NoHeader),
		Strict:          f.Any(Strict),
		TagText:         f.Any(TagText),
		CDATA:           f.Any(CDATA),
		TOC:             f.Any(TOC),
		OneCompat:       f.Any(OneCompat),
		Autolink:        f.Any(Autolink),
		SafeLink:        f.Any(SafeLink),
		TabStop:         f.Any(TabStop),
		ExtraFootnote:   f.Any(ExtraFootnote),
		XML:             f.Any(XML),
		ISO:             f.Any(ISO),
		Wiki:            f.Any(Wiki),
		GitHubTags:      f.Any(GitHubTags),
		Input:           CharsetUTF8,
		Output:          CharsetUTF8,
	}
	if f.Any(InLatin1) {
		c.Input = CharsetLatin1
	}
	switch {
	case f.Any(OutASCII):
		c.Output = CharsetASCII
	case f.Any(OutLatin1):
		c.Output = CharsetLatin1
	}
	return c
}
