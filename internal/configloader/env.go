package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gomkd/pkg/config"
)

// envVarPrefix is the prefix for all gomkd environment variables.
const envVarPrefix = "GOMKD_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"CHARSET":         {"output.charset", envTypeString, "Output charset: utf-8, iso-8859-1 or us-ascii"},
	"INPUT_CHARSET":   {"output.input_charset", envTypeString, "Input charset: utf-8 or iso-8859-1"},
	"DOCTYPE":         {"output.doctype", envTypeString, "Page doctype: transitional, strict or iso"},
	"XML":             {"output.xml", envTypeBool, "XML-style empty tags: true or false"},
	"CDATA":           {"output.cdata", envTypeBool, "XML-escape the output: true or false"},
	"TOC":             {"output.toc", envTypeBool, "Emit a table of contents: true or false"},
	"HIGHLIGHT":       {"highlight", envTypeString, "Chroma style for code blocks"},
	"DETECT_LANGUAGE": {"detect_language", envTypeBool, "Guess languages of unlabelled code: true or false"},
	"WIKI_BASE":       {"wiki_base", envTypeString, "Base URL for [[wiki]] links"},
	"REF_PREFIX":      {"ref_prefix", envTypeString, "Footnote id prefix"},
	"ASCIIMATH":       {"asciimath", envTypeBool, "Register ASCIIMath delimiters: true or false"},
	"WORKERS":         {"workers", envTypeInt, "Number of parallel renders (0 = auto)"},
	"MAX_DEPTH":       {"max_depth", envTypeInt, "Nested span compilation limit"},
	"RAW":             {"raw_delimiters", envTypeSlice, "Comma-separated raw delimiter specs"},
	"CSS":             {"page.css", envTypeSlice, "Comma-separated stylesheet URLs"},
	"IGNORE":          {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"FLAGS":           {"enable", envTypeSlice, "Comma-separated render flag names to set"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMKD_ (e.g., GOMKD_CHARSET).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	keys := make([]string, 0, len(envMappings))
	for k := range envMappings {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, envSuffix := range keys {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[envSuffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "output.charset":
		cfg.Output.Charset = value
	case "output.input_charset":
		cfg.Output.InputCharset = value
	case "output.doctype":
		cfg.Output.Doctype = value
	case "highlight":
		cfg.Highlight = value
	case "wiki_base":
		cfg.WikiBase = value
	case "ref_prefix":
		cfg.RefPrefix = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "output.xml":
		cfg.Output.XML = config.Bool(value)
	case "output.cdata":
		cfg.Output.CDATA = config.Bool(value)
	case "output.toc":
		cfg.Output.TOC = config.Bool(value)
	case "detect_language":
		cfg.DetectLanguage = config.Bool(value)
	case "asciimath":
		cfg.ASCIIMath = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "workers":
		cfg.Workers = value
	case "max_depth":
		cfg.MaxDepth = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "raw_delimiters":
		cfg.RawDelimiters = value
	case "page.css":
		cfg.Page.CSS = value
	case "ignore":
		cfg.Ignore = value
	case "enable":
		cfg.Enable = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.help
	}
	return out
}
