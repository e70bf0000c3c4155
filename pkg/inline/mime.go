package inline

import (
	"sort"
	"strings"
)

// mimeTypes maps URL suffixes to MIME types. Keep it sorted by suffix.
var mimeTypes = []struct {
	ext  string
	mime string
}{
	{".c", "text/plain"},
	{".cpp", "text/plain"},
	{".h", "text/plain"},
	{".htm", "text/html"},
	{".html", "text/html"},
	{".jpg", "image/jpg"},
	{".mp3", "audio/mp3"},
	{".pdf", "application/pdf"},
	{".png", "image/png"},
	{".svg", "image/svg+xml"},
	{".text", "text/plain"},
	{".txt", "text/plain"},
	{".xml", "text/xml"},
}

// maxSuffix is the longest suffix, dot included, that is looked up.
const maxSuffix = 15

// MIMEType returns the MIME type for the suffix of link: the text from the
// last '.' up to the first blank or ')'. Unknown suffixes give "".
func MIMEType(link string) string {
	if end := strings.IndexAny(link, " )\t\n"); end >= 0 {
		link = link[:end]
	}

	dot := strings.LastIndexByte(link, '.')
	if dot < 0 || len(link)-dot > maxSuffix {
		return ""
	}

	key := strings.ToLower(link[dot:])
	i := sort.Search(len(mimeTypes), func(i int) bool {
		return mimeTypes[i].ext >= key
	})
	if i < len(mimeTypes) && mimeTypes[i].ext == key {
		return mimeTypes[i].mime
	}
	return ""
}
