// Package langdetect guesses the language of code blocks that carry no
// info string, so the renderer can still emit a class attribute and pick a
// highlighter.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// candidates limits the classifier to languages that commonly show up in
// Markdown documents.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
	"Java", "C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS", "Makefile",
}

// marker is a cheap textual signature checked before the classifier.
type marker struct {
	lang  string
	match func(code, trimmed []byte) bool
}

var markers = []marker{
	{"go", func(_, t []byte) bool { return bytes.HasPrefix(t, []byte("package ")) }},
	{"html", func(_, t []byte) bool {
		lower := bytes.ToLower(t)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
	}},
	{"json", func(_, t []byte) bool {
		return (bytes.HasPrefix(t, []byte("{")) || bytes.HasPrefix(t, []byte("["))) &&
			bytes.Contains(t, []byte(`":`))
	}},
	{"python", func(c, _ []byte) bool {
		return bytes.Contains(c, []byte("__name__")) ||
			(bytes.Contains(c, []byte("def ")) && bytes.Contains(c, []byte("):")))
	}},
	{"sql", func(_, t []byte) bool {
		upper := strings.ToUpper(string(firstLine(t)))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
}

// Detect returns a lower-case language name for code, or "" when no
// guess is confident enough.
func Detect(code []byte) string {
	trimmed := bytes.TrimSpace(code)
	if len(trimmed) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return normalize(lang)
	}

	for _, m := range markers {
		if m.match(code, trimmed) {
			return m.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(code, candidates); safe && lang != "" {
		return normalize(lang)
	}
	return ""
}

// Canonical maps a fence info word such as "golang" or "sh" to the name
// Detect would report. Unknown names are returned lower-cased.
func Canonical(name string) string {
	if name == "" {
		return ""
	}
	if lang, ok := enry.GetLanguageByAlias(name); ok {
		return normalize(lang)
	}
	return strings.ToLower(name)
}

func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}

func firstLine(p []byte) []byte {
	if i := bytes.IndexByte(p, '\n'); i >= 0 {
		return p[:i]
	}
	return p
}
