// Package markup converts the plain text the video platform ships for
// descriptions and comments into safe HTML fragments: bare URLs become
// links, H:MM:SS timestamps become in-page seek links, @handles become
// channel links, newlines become line breaks. Everything passes through a
// strict sanitizer before leaving the package, so template layers can embed
// the result directly.
package markup

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	urlPattern = regexp.MustCompile(`https?://[^\s<]+`)

	// Optional hours, then minutes:seconds. The leading group keeps the
	// match off URLs and other attached text, since the pattern only
	// fires after start-of-line, whitespace or an opening paren.
	timestampPattern = regexp.MustCompile(`(^|[\s(])((?:\d{1,2}:)?\d{1,2}:\d{2})\b`)

	mentionPattern = regexp.MustCompile(`(^|\s)@([A-Za-z0-9._-]+)`)
)

// policy admits only what this package itself produces.
var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("br")
	p.AllowAttrs("href").OnElements("a")
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https")
	return p
}()

// ToHTML renders platform text as a sanitized HTML fragment. With
// allowMarkup false only escaping and line breaks are applied, for
// contexts such as titles where links are unwanted.
func ToHTML(text string, allowMarkup bool) string {
	out := html.EscapeString(text)
	if allowMarkup {
		out = urlPattern.ReplaceAllString(out, `<a href="$0">$0</a>`)
		out = timestampPattern.ReplaceAllStringFunc(out, seekLink)
		out = mentionPattern.ReplaceAllString(out, `$1<a href="/@$2">@$2</a>`)
	}
	out = strings.ReplaceAll(out, "\n", "<br/>")
	return policy.Sanitize(out)
}

// seekLink turns a matched clock string into a ?t= link, preserving the
// leading character the pattern consumed.
func seekLink(match string) string {
	groups := timestampPattern.FindStringSubmatch(match)
	lead, clock := groups[1], groups[2]

	total := 0
	for _, part := range strings.Split(clock, ":") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return match
		}
		total = total*60 + n
	}
	return fmt.Sprintf(`%s<a href="?t=%d">%s</a>`, lead, total, clock)
}
