// Package config defines the gomkd configuration file format and converts
// it into render flags, raw delimiter tables and page options. These types
// are pure data; discovery and layering live in internal/configloader.
package config

import (
	"fmt"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/rawdef"
)

// Extensions toggles Markdown extensions. A nil field keeps the default.
type Extensions struct {
	Links           *bool `yaml:"links,omitempty"`
	Images          *bool `yaml:"images,omitempty"`
	SmartyPants     *bool `yaml:"smartypants,omitempty"`
	HTML            *bool `yaml:"html,omitempty"`
	PseudoProtocols *bool `yaml:"pseudo_protocols,omitempty"`
	Superscript     *bool `yaml:"superscript,omitempty"`
	RelaxedEmphasis *bool `yaml:"relaxed_emphasis,omitempty"`
	Tables          *bool `yaml:"tables,omitempty"`
	Strikethrough   *bool `yaml:"strikethrough,omitempty"`
	DivQuotes       *bool `yaml:"div_quotes,omitempty"`
	AlphaLists      *bool `yaml:"alpha_lists,omitempty"`
	DefinitionLists *bool `yaml:"definition_lists,omitempty"`
	PandocHeader    *bool `yaml:"pandoc_header,omitempty"`
	Footnotes       *bool `yaml:"footnotes,omitempty"`
	Strict          *bool `yaml:"strict,omitempty"`
	TagText         *bool `yaml:"tag_text,omitempty"`
	OneCompat       *bool `yaml:"one_compat,omitempty"`
	Autolink        *bool `yaml:"autolink,omitempty"`
	SafeLink        *bool `yaml:"safe_link,omitempty"`
	TabStop         *bool `yaml:"tab_stop,omitempty"`
	Wiki            *bool `yaml:"wiki,omitempty"`
	GitHubTags      *bool `yaml:"github_tags,omitempty"`
}

// Output selects encodings and output dialect.
type Output struct {
	// Charset is "utf-8", "iso-8859-1" or "us-ascii".
	Charset string `yaml:"charset,omitempty"`

	// InputCharset is "utf-8" or "iso-8859-1".
	InputCharset string `yaml:"input_charset,omitempty"`

	// Doctype is "transitional", "strict" or "iso".
	Doctype string `yaml:"doctype,omitempty"`

	XML   *bool `yaml:"xml,omitempty"`
	CDATA *bool `yaml:"cdata,omitempty"`
	TOC   *bool `yaml:"toc,omitempty"`
}

// Page holds the full-page wrapper settings.
type Page struct {
	CSS    []string `yaml:"css,omitempty"`
	Header []string `yaml:"header,omitempty"`
	Footer []string `yaml:"footer,omitempty"`
	Title  string   `yaml:"title,omitempty"`
}

// Config is the root configuration structure for gomkd.
type Config struct {
	Extensions Extensions `yaml:"extensions,omitempty"`
	Output     Output     `yaml:"output,omitempty"`
	Page       Page       `yaml:"page,omitempty"`

	// RawDelimiters are passthrough specs of the form :begin:end:[open:close:].
	RawDelimiters []string `yaml:"raw_delimiters,omitempty"`

	// ASCIIMath registers the ASCIIMath delimiters; ASCIIMathDelimiter
	// replaces the backtick pair.
	ASCIIMath          *bool  `yaml:"asciimath,omitempty"`
	ASCIIMathDelimiter string `yaml:"asciimath_delimiter,omitempty"`

	// WikiBase is prepended to [[wiki]] link targets.
	WikiBase string `yaml:"wiki_base,omitempty"`

	// RefPrefix replaces "fn" in footnote ids.
	RefPrefix string `yaml:"ref_prefix,omitempty"`

	// Highlight names a chroma style for code blocks; empty disables.
	Highlight string `yaml:"highlight,omitempty"`

	// DetectLanguage guesses a class for unlabelled code blocks.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// Workers bounds concurrent renders; 0 means GOMAXPROCS.
	Workers int `yaml:"workers,omitempty"`

	// MaxDepth limits nested span compilation; 0 means the default.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// Ignore contains glob patterns for files to skip in batch runs.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// OutDir receives batch output.
	OutDir string `yaml:"-"`

	// Backup keeps the previous output as <name>.bak.
	Backup bool `yaml:"-"`

	// Enable and Disable hold raw flag names from the command line,
	// applied after the extension settings.
	Enable  []string `yaml:"-"`
	Disable []string `yaml:"-"`
}

// NewConfig returns a Config with every setting at its default.
func NewConfig() *Config {
	return &Config{
		Output: Output{
			Charset:      string(flags.CharsetUTF8),
			InputCharset: string(flags.CharsetUTF8),
			Doctype:      "transitional",
		},
	}
}

// Bool returns a pointer to v, for filling optional fields.
func Bool(v bool) *bool {
	return &v
}

func apply(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// Capabilities resolves the extension and output settings on top of
// flags.DefaultCapabilities.
func (c *Config) Capabilities() flags.Capabilities {
	caps := flags.DefaultCapabilities()
	ext := c.Extensions

	apply(&caps.Links, ext.Links)
	apply(&caps.Images, ext.Images)
	apply(&caps.SmartyPants, ext.SmartyPants)
	apply(&caps.HTML, ext.HTML)
	apply(&caps.PseudoProtocols, ext.PseudoProtocols)
	apply(&caps.Superscript, ext.Superscript)
	apply(&caps.RelaxedEmphasis, ext.RelaxedEmphasis)
	apply(&caps.Tables, ext.Tables)
	apply(&caps.Strikethrough, ext.Strikethrough)
	apply(&caps.DivQuotes, ext.DivQuotes)
	apply(&caps.AlphaLists, ext.AlphaLists)
	apply(&caps.DefinitionLists, ext.DefinitionLists)
	apply(&caps.PandocHeader, ext.PandocHeader)
	apply(&caps.ExtraFootnote, ext.Footnotes)
	apply(&caps.Strict, ext.Strict)
	apply(&caps.TagText, ext.TagText)
	apply(&caps.OneCompat, ext.OneCompat)
	apply(&caps.Autolink, ext.Autolink)
	apply(&caps.SafeLink, ext.SafeLink)
	apply(&caps.TabStop, ext.TabStop)
	apply(&caps.Wiki, ext.Wiki)
	apply(&caps.GitHubTags, ext.GitHubTags)

	apply(&caps.XML, c.Output.XML)
	apply(&caps.CDATA, c.Output.CDATA)
	apply(&caps.TOC, c.Output.TOC)
	caps.ISO = c.Output.Doctype == "iso"

	if c.Output.Charset != "" {
		caps.Output = flags.Charset(c.Output.Charset)
	}
	if c.Output.InputCharset != "" {
		caps.Input = flags.Charset(c.Output.InputCharset)
	}
	return caps
}

// Flags returns the render flags: the capabilities, then the raw
// --enable and --disable names.
func (c *Config) Flags() (flags.Flags, error) {
	fl := c.Capabilities().Flags()
	for _, name := range c.Enable {
		bit, err := flags.Parse(name)
		if err != nil {
			return 0, fmt.Errorf("enable: %w", err)
		}
		fl = fl.With(bit)
	}
	for _, name := range c.Disable {
		bit, err := flags.Parse(name)
		if err != nil {
			return 0, fmt.Errorf("disable: %w", err)
		}
		fl = fl.Without(bit)
	}
	return fl, nil
}

// RawTable registers the configured raw delimiters, ASCIIMath first. It
// returns the first rejected spec's error.
func (c *Config) RawTable() (*rawdef.Table, error) {
	table := rawdef.New()

	var specs []string
	if c.ASCIIMath != nil && *c.ASCIIMath {
		specs = append(specs, rawdef.ASCIIMath(c.ASCIIMathDelimiter)...)
	}
	specs = append(specs, c.RawDelimiters...)

	for _, spec := range specs {
		if _, err := table.Register(spec); err != nil {
			return nil, fmt.Errorf("raw delimiter %q: %w", spec, err)
		}
	}
	return table, nil
}
