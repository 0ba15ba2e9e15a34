package calendar

import (
	"regexp"
	"strings"
)

var (
	htmlTag    = regexp.MustCompile(`<[^>]+>`)
	brTag      = regexp.MustCompile(`(?i)<br\s*/?>`)
	paraBreak  = regexp.MustCompile(`(?i)</p>\s*<p[^>]*>`)
	spaceRun   = regexp.MustCompile(`[ \t]+`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// entities is the fixed set of HTML entities the upstream texts use.
// Decoded in order; "&amp;" last so it cannot re-expose other entities.
var entities = []struct{ from, to string }{
	{"&nbsp;", " "},
	{"&eacute;", "é"},
	{"&egrave;", "è"},
	{"&ecirc;", "ê"},
	{"&agrave;", "à"},
	{"&ccedil;", "ç"},
	{"&ugrave;", "ù"},
	{"&ocirc;", "ô"},
	{"&icirc;", "î"},
	{"&laquo;", "«"},
	{"&raquo;", "»"},
	{"&rsquo;", "’"},
	{"&quot;", `"`},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&amp;", "&"},
}

// CleanText strips HTML tags, decodes the fixed entity set, and collapses
// runs of whitespace. Paragraph breaks (double newlines) are preserved so
// the prose segmenter can split on them.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	// <br> variants become line breaks before tags are stripped.
	s = brTag.ReplaceAllString(s, "\n")
	s = paraBreak.ReplaceAllString(s, "\n\n")
	s = htmlTag.ReplaceAllString(s, "")

	for _, e := range entities {
		s = strings.ReplaceAll(s, e.from, e.to)
	}

	s = spaceRun.ReplaceAllString(s, " ")
	s = blankLines.ReplaceAllString(s, "\n\n")

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
