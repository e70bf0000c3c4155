package configloader

import "github.com/yaklabco/gomkd/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Strings and ints: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	mergeExtensions(&result.Extensions, override.Extensions)

	mergeString(&result.Output.Charset, override.Output.Charset)
	mergeString(&result.Output.InputCharset, override.Output.InputCharset)
	mergeString(&result.Output.Doctype, override.Output.Doctype)
	mergeBool(&result.Output.XML, override.Output.XML)
	mergeBool(&result.Output.CDATA, override.Output.CDATA)
	mergeBool(&result.Output.TOC, override.Output.TOC)

	mergeSlice(&result.Page.CSS, override.Page.CSS)
	mergeSlice(&result.Page.Header, override.Page.Header)
	mergeSlice(&result.Page.Footer, override.Page.Footer)
	mergeString(&result.Page.Title, override.Page.Title)

	mergeSlice(&result.RawDelimiters, override.RawDelimiters)
	mergeBool(&result.ASCIIMath, override.ASCIIMath)
	mergeString(&result.ASCIIMathDelimiter, override.ASCIIMathDelimiter)
	mergeString(&result.WikiBase, override.WikiBase)
	mergeString(&result.RefPrefix, override.RefPrefix)
	mergeString(&result.Highlight, override.Highlight)
	mergeBool(&result.DetectLanguage, override.DetectLanguage)
	mergeInt(&result.Workers, override.Workers)
	mergeInt(&result.MaxDepth, override.MaxDepth)
	mergeSlice(&result.Ignore, override.Ignore)

	// CLI-only fields.
	mergeString(&result.OutDir, override.OutDir)
	if override.Backup {
		result.Backup = true
	}
	mergeSlice(&result.Enable, override.Enable)
	mergeSlice(&result.Disable, override.Disable)

	return result
}

func mergeExtensions(dst *config.Extensions, src config.Extensions) {
	mergeBool(&dst.Links, src.Links)
	mergeBool(&dst.Images, src.Images)
	mergeBool(&dst.SmartyPants, src.SmartyPants)
	mergeBool(&dst.HTML, src.HTML)
	mergeBool(&dst.PseudoProtocols, src.PseudoProtocols)
	mergeBool(&dst.Superscript, src.Superscript)
	mergeBool(&dst.RelaxedEmphasis, src.RelaxedEmphasis)
	mergeBool(&dst.Tables, src.Tables)
	mergeBool(&dst.Strikethrough, src.Strikethrough)
	mergeBool(&dst.DivQuotes, src.DivQuotes)
	mergeBool(&dst.AlphaLists, src.AlphaLists)
	mergeBool(&dst.DefinitionLists, src.DefinitionLists)
	mergeBool(&dst.PandocHeader, src.PandocHeader)
	mergeBool(&dst.Footnotes, src.Footnotes)
	mergeBool(&dst.Strict, src.Strict)
	mergeBool(&dst.TagText, src.TagText)
	mergeBool(&dst.OneCompat, src.OneCompat)
	mergeBool(&dst.Autolink, src.Autolink)
	mergeBool(&dst.SafeLink, src.SafeLink)
	mergeBool(&dst.TabStop, src.TabStop)
	mergeBool(&dst.Wiki, src.Wiki)
	mergeBool(&dst.GitHubTags, src.GitHubTags)
}

func mergeBool(dst **bool, src *bool) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

func mergeSlice(dst *[]string, src []string) {
	if src != nil {
		*dst = append([]string(nil), src...)
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
