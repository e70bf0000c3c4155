package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/fsutil"
	"github.com/yaklabco/gomkd/pkg/page"
	"github.com/yaklabco/gomkd/pkg/rawdef"
	"github.com/yaklabco/gomkd/pkg/render"
	"github.com/yaklabco/gomkd/pkg/runner"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		conv runner.Converter
		src  string
		want string
	}{
		{
			name: "fragment",
			src:  "# Title\n\nSome *text*.",
			want: "<h1>Title</h1>\n\n<p>Some <em>text</em>.</p>\n",
		},
		{
			name: "latin1 input",
			conv: runner.Converter{InputLatin1: true},
			src:  "caf\xe9",
			want: "<p>café</p>\n",
		},
		{
			name: "ascii output",
			conv: runner.Converter{Render: render.Options{Flags: flags.OutASCII}},
			src:  "café",
			want: "<p>caf&#233;</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.conv.Convert(context.Background(), []byte(tt.src))
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Convert() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConverter_DefinitionsAfterUse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		conv  runner.Converter
		src   string
		wants []string
	}{
		{
			name: "reference defined below its use",
			src:  "See [a][x] here.\n\n[x]: /u \"t\"\n",
			wants: []string{
				`<p>See <a href="/u" title="t">a</a> here.</p>`,
			},
		},
		{
			name: "footnote defined below its use",
			conv: runner.Converter{Render: render.Options{Flags: flags.ExtraFootnote}},
			src:  "See[^n] here.\n\n[^n]: The note.\n",
			wants: []string{
				`<p>See<sup id="fnref:1"><a href="#fn:1" rel="footnote">1</a></sup> here.</p>`,
				`<li id="fn:1">`,
				"The note.",
			},
		},
		{
			name:  "malformed utf-8 is escaped",
			src:   "a\xffb",
			wants: []string{"<p>a&#255;b</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.conv.Convert(context.Background(), []byte(tt.src))
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			for _, want := range tt.wants {
				if !strings.Contains(string(got), want) {
					t.Errorf("Convert() = %q, want it to contain %q", got, want)
				}
			}
			if strings.Contains(string(got), "[^n]") || strings.Contains(string(got), "[x]:") {
				t.Errorf("Convert() = %q, definition lines leaked into the body", got)
			}
		})
	}
}

func TestConverter_Page(t *testing.T) {
	t.Parallel()

	conv := runner.Converter{Page: &page.Options{Doctype: page.ISO}}
	got, err := conv.Convert(context.Background(), []byte("% Doc\n% Me\n% Today\n\n1. one\n2. two"))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	out := string(got)
	for _, want := range []string{"ISO/IEC 15445:2000", "<title>Doc</title>", `<ol class="num">`} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q:\n%s", want, out)
		}
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New(&runner.Converter{}).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesDiscovered != 0 || len(result.Files) != 0 {
		t.Errorf("expected empty result, got %+v", result.Stats)
	}
}

func TestRunner_Run_WritesBesideSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := []string{"a.md", "b.md", "c.md", "docs/d.md", "docs/e.text"}
	writeTree(t, dir, files...)

	result, err := runner.New(&runner.Converter{}).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       3,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesRendered != len(files) {
		t.Errorf("FilesRendered = %d, want %d", result.Stats.FilesRendered, len(files))
	}
	if result.HasFailures() {
		t.Errorf("unexpected failures: %v", result.Failed())
	}

	for i, f := range result.Files {
		if i > 0 && result.Files[i-1].Path > f.Path {
			t.Errorf("outcomes not sorted at %d", i)
		}
		if !f.Written || f.Bytes == 0 {
			t.Errorf("%s: Written = %v, Bytes = %d", f.Path, f.Written, f.Bytes)
		}
	}

	if got := readFile(t, filepath.Join(dir, "docs", "e.html")); got != "<h1>docs/e.text</h1>\n" {
		t.Errorf("docs/e.html = %q", got)
	}
}

func TestRunner_Run_OutDirAndUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "site")
	writeTree(t, dir, "index.md", "guide/intro.md")

	r := runner.New(&runner.Converter{})
	opts := runner.Options{WorkingDir: dir, OutDir: out}

	first, err := r.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if first.Stats.FilesUnchanged != 0 {
		t.Errorf("first run FilesUnchanged = %d, want 0", first.Stats.FilesUnchanged)
	}
	if got := readFile(t, filepath.Join(out, "guide", "intro.html")); !strings.Contains(got, "<h1>") {
		t.Errorf("guide/intro.html = %q", got)
	}

	second, err := r.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if second.Stats.FilesUnchanged != 2 || second.Stats.BytesWritten != 0 {
		t.Errorf("second run stats = %+v, want 2 unchanged and nothing written", second.Stats)
	}
}

func TestRunner_Run_Backup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "doc.md")
	html := filepath.Join(dir, "doc.html")
	if err := os.WriteFile(html, []byte("old page"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err := runner.New(&runner.Converter{}).Run(context.Background(), runner.Options{WorkingDir: dir, Backup: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := readFile(t, fsutil.BackupPath(html)); got != "old page" {
		t.Errorf("backup = %q, want old page", got)
	}
}

func TestRunner_Run_FileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "big.md", "ok.md")
	if err := os.WriteFile(filepath.Join(dir, "big.md"), []byte(strings.Repeat("x", 64)), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	result, err := runner.New(&runner.Converter{}).Run(context.Background(), runner.Options{
		WorkingDir:  dir,
		MaxFileSize: 32,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.HasFailures() || result.Stats.FilesErrored != 1 {
		t.Fatalf("stats = %+v, want one failure", result.Stats)
	}
	failed := result.Failed()
	if len(failed) != 1 || !errors.Is(failed[0].Error, fsutil.ErrFileTooLarge) {
		t.Errorf("Failed() = %+v", failed)
	}
}

func TestRunner_Run_RawDelimiters(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "math.md")
	if err := os.WriteFile(src, []byte("x $$a*b*c$$ y"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	table := rawdef.New()
	table.MustRegister(":$$:$$:")

	_, err := runner.New(&runner.Converter{Render: render.Options{RawDefs: table}}).Run(
		context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := readFile(t, filepath.Join(dir, "math.html")); got != "<p>x $$a*b*c$$ y</p>\n" {
		t.Errorf("math.html = %q", got)
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.New(&runner.Converter{}).Run(ctx, runner.Options{WorkingDir: dir}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
