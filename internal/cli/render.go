package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomkd/internal/configloader"
	"github.com/yaklabco/gomkd/internal/logging"
	"github.com/yaklabco/gomkd/internal/ui/pretty"
	"github.com/yaklabco/gomkd/pkg/config"
	mkdflags "github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/fsutil"
	"github.com/yaklabco/gomkd/pkg/inline"
	"github.com/yaklabco/gomkd/pkg/page"
	"github.com/yaklabco/gomkd/pkg/render"
	"github.com/yaklabco/gomkd/pkg/runner"
)

// outputFilePermissions is the file mode for generated HTML.
const outputFilePermissions = 0o644

// defaultASCIIMathDelimiter is what a bare -a selects.
const defaultASCIIMathDelimiter = "`"

// renderFlags holds the flags shared by the render and page commands.
type renderFlags struct {
	output  string
	outDir  string
	backup  bool
	jobs    int
	ignore  []string
	verbose bool

	css    []string
	header []string
	footer []string
	title  string

	strictDoctype bool
	iso           bool
	ascii         bool
	latin1        bool
	utf8          bool
	inputLatin1   bool
	toc           bool
	xml           bool

	raw       []string
	asciimath string
	enable    []string
	disable   []string

	highlight      string
	detectLanguage bool
	wikiBase       string
	refPrefix      string
}

func newRenderCommand(info BuildInfo) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:     "render [files or directories...]",
		Aliases: []string{"r"},
		Short:   "Compile Markdown to an HTML fragment",
		Long:    renderLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags, info, false)
		},
	}

	addRenderFlags(cmd, flags)
	cmd.Annotations = map[string]string{flagNamesAnnotation: strings.Join(mkdflags.Names(), " ")}

	return cmd
}

func newPageCommand(info BuildInfo) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "page [files or directories...]",
		Short: "Compile Markdown to a complete HTML page",
		Long:  pageLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags, info, true)
		},
	}

	addRenderFlags(cmd, flags)
	cmd.Annotations = map[string]string{flagNamesAnnotation: strings.Join(mkdflags.Names(), " ")}

	return cmd
}

const renderLongDescription = `Compile Markdown into an HTML body fragment.

With no arguments the document is read from standard input and the HTML is
written to standard output. A single file is written to standard output (or
--output). Several files or a directory are rendered concurrently, each into
a .html file next to its source or under --out-dir.

Examples:
  gomkd render < README.md          # stdin to stdout
  gomkd render README.md -o r.html  # one file
  gomkd render docs/ --out-dir site # a whole tree
  gomkd render -T --enable autolink notes.md`

const pageLongDescription = `Compile Markdown into a complete HTML page.

The page carries a doctype, GENERATOR and Content-Type meta tags, the
stylesheets given with --css, the document title (from --title or a pandoc
header), any --header lines, an optional table of contents, the body and any
--footer lines. "gomkd page doc" reads doc, or doc.text when doc does not
exist, and writes doc.html.

Examples:
  gomkd page syntax                     # syntax(.text) -> syntax.html
  gomkd page --css style.css -T doc.md  # with stylesheet and contents
  gomkd page -S -A doc.md               # HTML 4.01 Strict, ASCII output
  gomkd page -a doc.md                  # ASCIIMath passthrough`

func addRenderFlags(cmd *cobra.Command, f *renderFlags) {
	fs := cmd.Flags()

	fs.StringVarP(&f.output, "output", "o", "", "write output to this file (single input only; - for stdout)")
	fs.StringVar(&f.outDir, "out-dir", "", "directory for batch output, mirroring the source layout")
	fs.BoolVar(&f.backup, "backup", false, "keep the previous output as <name>.bak")
	fs.IntVarP(&f.jobs, "jobs", "j", 0, "number of parallel renders (0 = auto)")
	fs.StringSliceVar(&f.ignore, "ignore", nil, "glob patterns to skip in batch mode")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "list every file rendered in batch mode")

	fs.StringArrayVar(&f.css, "css", nil, "stylesheet URL to link (repeatable)")
	fs.StringArrayVar(&f.header, "header", nil, "line to add to <head> (repeatable)")
	fs.StringArrayVar(&f.footer, "footer", nil, "line to add before </body> (repeatable)")
	fs.StringVar(&f.title, "title", "", "page title, overriding the pandoc header")

	fs.BoolVarP(&f.strictDoctype, "strict-doctype", "S", false, "use the HTML 4.01 Strict doctype")
	fs.BoolVarP(&f.iso, "iso", "I", false, "use the ISO/IEC 15445:2000 doctype")
	fs.BoolVarP(&f.ascii, "ascii", "A", false, "write US-ASCII output")
	fs.BoolVarP(&f.latin1, "latin1", "L", false, "write ISO-8859-1 output")
	fs.BoolVarP(&f.utf8, "utf8", "U", false, "write UTF-8 output")
	fs.BoolVarP(&f.inputLatin1, "input-latin1", "l", false, "read ISO-8859-1 input")
	fs.BoolVarP(&f.toc, "toc", "T", false, "emit a table of contents")
	fs.BoolVar(&f.xml, "xml", false, "write XML-style empty tags")

	fs.StringArrayVarP(&f.raw, "raw", "r", nil, "raw passthrough delimiter :begin:end[:open:close]: (repeatable)")
	fs.StringVarP(&f.asciimath, "asciimath", "a", "", "register ASCIIMath delimiters; -a=X replaces the backtick")
	fs.Lookup("asciimath").NoOptDefVal = defaultASCIIMathDelimiter
	fs.StringSliceVar(&f.enable, "enable", nil, "render flag names to set (see 'gomkd flags')")
	fs.StringSliceVar(&f.disable, "disable", nil, "render flag names to clear")

	fs.StringVar(&f.highlight, "highlight", "", "chroma style for code blocks")
	fs.BoolVar(&f.detectLanguage, "detect-language", false, "guess the language of unlabelled code blocks")
	fs.StringVar(&f.wikiBase, "wiki-base", "", "base URL for [[wiki]] links")
	fs.StringVar(&f.refPrefix, "ref-prefix", "", "footnote id prefix (default fn)")

	cmd.MarkFlagsMutuallyExclusive("ascii", "latin1", "utf8")
	cmd.MarkFlagsMutuallyExclusive("strict-doctype", "iso")
	cmd.MarkFlagsMutuallyExclusive("output", "out-dir")
}

// cliConfig maps the flags that were given into a config layer.
func cliConfig(cmd *cobra.Command, f *renderFlags) *config.Config {
	changed := cmd.Flags().Changed
	cfg := &config.Config{
		OutDir:  f.outDir,
		Backup:  f.backup,
		Workers: f.jobs,
		Ignore:  f.ignore,
		Enable:  f.enable,
		Disable: f.disable,
	}

	cfg.Page.CSS = f.css
	cfg.Page.Header = f.header
	cfg.Page.Footer = f.footer
	cfg.Page.Title = f.title

	switch {
	case f.strictDoctype:
		cfg.Output.Doctype = page.Strict.String()
	case f.iso:
		cfg.Output.Doctype = page.ISO.String()
	}

	switch {
	case f.ascii:
		cfg.Output.Charset = string(mkdflags.CharsetASCII)
	case f.latin1:
		cfg.Output.Charset = string(mkdflags.CharsetLatin1)
	case f.utf8:
		cfg.Output.Charset = string(mkdflags.CharsetUTF8)
	}
	if f.inputLatin1 {
		cfg.Output.InputCharset = string(mkdflags.CharsetLatin1)
	}

	if changed("toc") {
		cfg.Output.TOC = config.Bool(f.toc)
	}
	if changed("xml") {
		cfg.Output.XML = config.Bool(f.xml)
	}
	if changed("asciimath") {
		cfg.ASCIIMath = config.Bool(true)
		if f.asciimath != defaultASCIIMathDelimiter {
			cfg.ASCIIMathDelimiter = f.asciimath
		}
	}
	if changed("detect-language") {
		cfg.DetectLanguage = config.Bool(f.detectLanguage)
	}

	cfg.Highlight = f.highlight
	cfg.WikiBase = f.wikiBase
	cfg.RefPrefix = f.refPrefix

	return cfg
}

// loadConfig layers the config files, environment and flags. Raw
// delimiters from -r are appended to the configured ones.
func loadConfig(ctx context.Context, cmd *cobra.Command, f *renderFlags) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return nil, fmt.Errorf("get no-config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cli := cliConfig(cmd, f)

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		NoConfig:     noConfig,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, err
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, result.LoadedFrom)
	}

	cfg := result.Config
	cfg.RawDelimiters = append(cfg.RawDelimiters, f.raw...)
	return cfg, nil
}

// buildConverter turns the resolved configuration into render and page
// options.
func buildConverter(ctx context.Context, cfg *config.Config, info BuildInfo, pageMode bool) (*runner.Converter, error) {
	logger := logging.FromContext(ctx)

	fl, err := cfg.Flags()
	if err != nil {
		return nil, err
	}

	table, err := cfg.RawTable()
	if err != nil {
		return nil, err
	}
	for _, entry := range table.Entries() {
		logger.Debug("raw delimiter registered", logging.FieldDelimiter, entry.Begin+" "+entry.End)
	}

	ropts := render.Options{
		Flags:          fl,
		RefPrefix:      cfg.RefPrefix,
		RawDefs:        table,
		MaxDepth:       cfg.MaxDepth,
		Highlight:      cfg.Highlight,
		DetectLanguage: cfg.DetectLanguage != nil && *cfg.DetectLanguage,
	}
	if cfg.WikiBase != "" {
		ropts.Callbacks = &inline.Callbacks{Data: cfg.WikiBase}
	}

	conv := &runner.Converter{
		Render:      ropts,
		InputLatin1: fl.Any(mkdflags.InLatin1),
	}

	logger.Debug("configuration resolved",
		logging.FieldFlags, fl.String(),
		logging.FieldCharset, cfg.Output.Charset,
		logging.FieldDoctype, cfg.Output.Doctype,
	)

	if !pageMode {
		return conv, nil
	}

	doctype, err := page.ParseDoctype(cfg.Output.Doctype)
	if err != nil {
		return nil, err
	}

	header := append([]string(nil), cfg.Page.Header...)
	if cfg.Highlight != "" {
		css, err := render.StyleCSS(cfg.Highlight)
		if err != nil {
			return nil, fmt.Errorf("highlight style %q: %w", cfg.Highlight, err)
		}
		header = append(header, "<style>\n"+css+"</style>")
	}

	conv.Page = &page.Options{
		Doctype:   doctype,
		CSS:       cfg.Page.CSS,
		Header:    header,
		Footer:    cfg.Page.Footer,
		Title:     cfg.Page.Title,
		Generator: info.generator(),
	}
	return conv, nil
}

func runRender(cmd *cobra.Command, args []string, f *renderFlags, info BuildInfo, pageMode bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logging.Default())

	cfg, err := loadConfig(ctx, cmd, f)
	if err != nil {
		return withExitCode(ExitUsage, err)
	}

	conv, err := buildConverter(ctx, cfg, info, pageMode)
	if err != nil {
		return withExitCode(ExitUsage, err)
	}

	if len(args) == 0 {
		return renderStdin(ctx, cmd, conv, cfg, f.output)
	}

	if pageMode {
		if args, err = resolveSources(args); err != nil {
			return withExitCode(ExitIOError, err)
		}
	}

	if len(args) == 1 && cfg.OutDir == "" && isRegularFile(args[0]) && (!pageMode || f.output != "") {
		return renderSingle(ctx, cmd, conv, cfg, args[0], f.output)
	}

	if f.output != "" {
		return usageError("--output takes a single input file; use --out-dir for several")
	}

	return renderBatch(ctx, cmd, conv, cfg, args, f.verbose)
}

// resolveSources applies the ".text" fallback to names that do not exist.
func resolveSources(args []string) ([]string, error) {
	out := make([]string, len(args))
	for i, arg := range args {
		src, err := page.SourcePath(arg)
		if err != nil {
			return nil, err
		}
		out[i] = src
	}
	return out, nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func renderStdin(ctx context.Context, cmd *cobra.Command, conv *runner.Converter, cfg *config.Config, output string) error {
	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		_ = cmd.Usage()
		return usageError("no input files given and standard input is a terminal")
	}

	content, err := fsutil.ReadAll(in, fsutil.DefaultMaxFileSize)
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("read standard input: %w", err))
	}

	html, err := conv.Convert(ctx, content)
	if err != nil {
		return withExitCode(ExitIOError, err)
	}
	return writeOutput(ctx, cmd, cfg, output, html)
}

func renderSingle(ctx context.Context, cmd *cobra.Command, conv *runner.Converter, cfg *config.Config, src, output string) error {
	logger := logging.FromContext(ctx)

	content, err := fsutil.ReadFile(ctx, src, 0)
	if err != nil {
		return withExitCode(ExitIOError, err)
	}

	html, err := conv.Convert(ctx, content)
	if err != nil {
		return withExitCode(ExitIOError, err)
	}

	logger.Debug("rendered", logging.FieldInput, src, logging.FieldBytes, len(html))
	return writeOutput(ctx, cmd, cfg, output, html)
}

// writeOutput sends html to standard output, or to path when one is given.
func writeOutput(ctx context.Context, cmd *cobra.Command, cfg *config.Config, path string, html []byte) error {
	if path == "" || path == "-" {
		if _, err := cmd.OutOrStdout().Write(html); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("write output: %w", err))
		}
		return nil
	}

	if cfg.Backup {
		if _, err := fsutil.Backup(ctx, path); err != nil {
			return withExitCode(ExitIOError, err)
		}
	}
	if err := fsutil.WriteAtomic(ctx, path, html, outputFilePermissions); err != nil {
		return withExitCode(ExitIOError, err)
	}
	logging.FromContext(ctx).Debug("wrote output", logging.FieldOutput, path, logging.FieldBytes, len(html))
	return nil
}

func renderBatch(ctx context.Context, cmd *cobra.Command, conv *runner.Converter, cfg *config.Config, paths []string, verbose bool) error {
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	opts := runner.Options{
		Paths:        paths,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Workers,
		OutDir:       cfg.OutDir,
		Backup:       cfg.Backup,
	}

	logger.Debug("starting batch render",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(conv).Run(ctx, opts)
	if err != nil {
		return withExitCode(ExitIOError, err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	errOut := cmd.ErrOrStderr()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, errOut))

	if verbose {
		fmt.Fprint(errOut, styles.FormatOutcomes(result, workDir))
	}
	fmt.Fprint(errOut, styles.FormatSummaryOneLine(result.Stats))

	logger.Debug("batch render finished",
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesUnchanged, result.Stats.FilesUnchanged,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldDuration, result.Stats.Duration,
	)

	if result.HasFailures() {
		return withExitCode(ExitRenderErrors, ErrRenderFailures)
	}
	return nil
}
