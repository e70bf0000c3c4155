package inline

import (
	"strings"

	"github.com/yaklabco/gomkd/pkg/flags"
)

// trigger is the syntax that opened a link: [..], ![..] or ?[..].
type trigger uint8

const (
	triggerLink trigger = iota
	triggerImage
	triggerObject
)

// linkKind decides how the URL part of a link tag is written.
type linkKind uint8

const (
	// kindSpan reparses the link text after the pseudo-protocol prefix as
	// attribute text.
	kindSpan linkKind = iota
	kindURL
	kindMIME
	kindWiki
)

// linkTag describes the HTML one kind of link produces.
type linkTag struct {
	pat     string
	linkPfx string
	linkSfx string
	wxh     bool
	textPfx string
	textSfx string
	flags   flags.Flags
	kind    linkKind
}

var (
	anchorTag = linkTag{
		linkPfx: `<a href="`, linkSfx: `"`,
		textPfx: ">", textSfx: "</a>",
		flags: flags.NoLinks, kind: kindURL,
	}
	imageTag = linkTag{
		linkPfx: `<img src="`, linkSfx: `"`, wxh: true,
		textPfx: ` alt="`, textSfx: `">`,
		flags: flags.NoImage | flags.TagText, kind: kindURL,
	}
	imageTagXML = linkTag{
		linkPfx: `<img src="`, linkSfx: `"`, wxh: true,
		textPfx: ` alt="`, textSfx: `" />`,
		flags: flags.NoImage | flags.TagText, kind: kindURL,
	}
	objectTag = linkTag{
		linkPfx: `<object data="`, linkSfx: `"`, wxh: true,
		textPfx: ` title="`, textSfx: `"></object>`,
		flags: flags.NoImage, kind: kindMIME,
	}
	wikiTag = linkTag{
		linkPfx: `<a href="`, linkSfx: `"`,
		textPfx: ">", textSfx: "</a>",
		flags: flags.NoLinks, kind: kindWiki,
	}
)

// pseudoTags are the [text](proto:arg) forms that produce something other
// than an anchor. raw: has no tag and writes its argument verbatim.
var pseudoTags = []linkTag{
	{pat: "id:", linkPfx: `<span id="`, linkSfx: `"`, textPfx: ">", textSfx: "</span>"},
	{pat: "raw:", flags: flags.NoHTML},
	{pat: "lang:", linkPfx: `<span lang="`, linkSfx: `"`, textPfx: ">", textSfx: "</span>"},
	{pat: "abbr:", linkPfx: `<abbr title="`, linkSfx: `"`, textPfx: ">", textSfx: "</abbr>"},
	{pat: "class:", linkPfx: `<span class="`, linkSfx: `"`, textPfx: ">", textSfx: "</span>"},
}

// pseudo returns the pseudo-protocol tag link starts with. The link must
// be longer than the prefix.
func pseudo(link string) *linkTag {
	for i := range pseudoTags {
		tag := &pseudoTags[i]
		if len(link) > len(tag.pat) && strings.EqualFold(link[:len(tag.pat)], tag.pat) {
			return tag
		}
	}
	return nil
}

// autoPrefixes are the schemes accepted for autolinks and safe links.
var autoPrefixes = []string{"https:", "http:", "news:", "ftp:"}

func isAutoPrefix(text string) bool {
	for _, p := range autoPrefixes {
		if len(text) >= len(p) && strings.EqualFold(text[:len(p)], p) {
			return true
		}
	}
	return false
}
