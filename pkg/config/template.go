package config

// Template is the commented configuration written by `gomkd init`.
const Template = `# gomkd configuration
#
# Settings are layered: built-in defaults, then the user config
# ($XDG_CONFIG_HOME/gomkd/config.yml), then .gomkd.yml found walking up
# from the working directory, then --config, then GOMKD_* environment
# variables, then command-line flags.

# Markdown extensions. Omitted keys keep their default.
extensions:
  # links: true
  # images: true
  # smartypants: true
  # html: true
  # pseudo_protocols: true      # [text](id:x), (class:x), (raw:x), (lang:x), (abbr:x)
  # superscript: true
  # relaxed_emphasis: true
  # tables: true
  # strikethrough: true
  # div_quotes: true            # > %class% blockquotes become <div>
  # alpha_lists: true
  # definition_lists: true
  # pandoc_header: true
  # footnotes: true             # [^id] footnotes with an appendix
  # strict: false
  # tag_text: false
  # one_compat: false
  # autolink: false             # link bare urls
  # safe_link: false            # only allow known url schemes
  # tab_stop: false
  # wiki: false                 # [[Page Name]] links
  # github_tags: false

output:
  charset: utf-8                # utf-8, iso-8859-1 or us-ascii
  input_charset: utf-8          # utf-8 or iso-8859-1
  doctype: transitional         # transitional, strict or iso
  # xml: false
  # cdata: false
  # toc: false

# Full-page wrapper used by "gomkd page".
# page:
#   css:
#     - style.css
#   header:
#     - <script src="ASCIIMathML.js"></script>
#   footer: []
#   title: ""

# Passthrough delimiters, :begin:end: or :begin:end:open:close:
# raw_delimiters:
#   - ":\\(:\\):"

# asciimath: false
# asciimath_delimiter: "` + "`" + `"

# wiki_base: ""
# ref_prefix: fn

# Chroma style for code highlighting, e.g. github or monokai.
# highlight: ""
# detect_language: false

# Concurrent renders in batch mode (0 = number of CPUs).
# workers: 0
# max_depth: 32

# File patterns to skip in batch mode.
# ignore:
#   - "vendor/**"
`

// GenerateTemplate returns the default configuration template.
func GenerateTemplate() []byte {
	return []byte(Template)
}
