package format

import (
	"strconv"
	"time"

	"golang.org/x/net/html"

	"github.com/izum00/insidious/internal/dom"
)

// Apply rewrites the text content of every kind-marked element under root
// and returns how many elements were rewritten. The pass reads only the
// raw/prefix/suffix attributes and never modifies them, so applying twice
// to an unchanged tree produces identical output.
//
// A raw value that is absent or not a base-10 integer renders the
// configured placeholder; the element is still counted as rewritten so the
// failure stays visible instead of leaving stale template text behind.
func (f *Formatter) Apply(root *html.Node) int {
	now := f.cfg.Now()
	rewritten := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if kind, ok := elementKind(n); ok {
				dom.SetText(n, f.render(n, kind, now))
				rewritten++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return rewritten
}

func elementKind(n *html.Node) (Kind, bool) {
	for _, k := range kinds {
		if dom.HasClass(n, string(k)) {
			return k, true
		}
	}
	return "", false
}

func (f *Formatter) render(n *html.Node, kind Kind, now time.Time) string {
	raw, ok := dom.Attr(n, "raw")
	if !ok {
		return f.cfg.Placeholder
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return f.cfg.Placeholder
	}

	var text string
	switch kind {
	case KindCompactNumber:
		text = f.CompactNumber(v)
	case KindNumber:
		text = f.Number(v)
	case KindDate:
		text = f.Date(now, v)
	case KindDayDate:
		text = f.DayDate(v)
	}

	prefix, _ := dom.Attr(n, "prefix")
	suffix, _ := dom.Attr(n, "suffix")
	return prefix + text + suffix
}
