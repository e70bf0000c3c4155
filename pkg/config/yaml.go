package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Unknown keys are an
// error. An empty document yields an empty Config.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c

	clone.Extensions = c.Extensions.clone()
	clone.Output.XML = cloneBool(c.Output.XML)
	clone.Output.CDATA = cloneBool(c.Output.CDATA)
	clone.Output.TOC = cloneBool(c.Output.TOC)
	clone.Page.CSS = slices.Clone(c.Page.CSS)
	clone.Page.Header = slices.Clone(c.Page.Header)
	clone.Page.Footer = slices.Clone(c.Page.Footer)
	clone.RawDelimiters = slices.Clone(c.RawDelimiters)
	clone.ASCIIMath = cloneBool(c.ASCIIMath)
	clone.DetectLanguage = cloneBool(c.DetectLanguage)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Enable = slices.Clone(c.Enable)
	clone.Disable = slices.Clone(c.Disable)

	return &clone
}

func (e Extensions) clone() Extensions {
	return Extensions{
		Links:           cloneBool(e.Links),
		Images:          cloneBool(e.Images),
		SmartyPants:     cloneBool(e.SmartyPants),
		HTML:            cloneBool(e.HTML),
		PseudoProtocols: cloneBool(e.PseudoProtocols),
		Superscript:     cloneBool(e.Superscript),
		RelaxedEmphasis: cloneBool(e.RelaxedEmphasis),
		Tables:          cloneBool(e.Tables),
		Strikethrough:   cloneBool(e.Strikethrough),
		DivQuotes:       cloneBool(e.DivQuotes),
		AlphaLists:      cloneBool(e.AlphaLists),
		DefinitionLists: cloneBool(e.DefinitionLists),
		PandocHeader:    cloneBool(e.PandocHeader),
		Footnotes:       cloneBool(e.Footnotes),
		Strict:          cloneBool(e.Strict),
		TagText:         cloneBool(e.TagText),
		OneCompat:       cloneBool(e.OneCompat),
		Autolink:        cloneBool(e.Autolink),
		SafeLink:        cloneBool(e.SafeLink),
		TabStop:         cloneBool(e.TabStop),
		Wiki:            cloneBool(e.Wiki),
		GitHubTags:      cloneBool(e.GitHubTags),
	}
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
