package format

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// Part classes assigned when a span carries none
const (
	ClassIcon  = "icon"
	ClassLabel = "label"
)

// Part is one visual piece of a rendered label.
type Part struct {
	Class string
	Text  string
	Span  bool
}

var (
	spanRe    = regexp.MustCompile(`(?s)<span.*?>.*?</span>`)
	spanTagRe = regexp.MustCompile(`(?s)<span.*?>|</span>`)
	classRe   = regexp.MustCompile(`class=(["'])([^"']+?)["']`)
)

// SplitParts splits rendered label content into span parts and plain text
// parts. Spans keep their class attribute (icon when absent), text parts get
// the label class. Whitespace-only parts are dropped.
func SplitParts(content string) []Part {
	var parts []Part
	last := 0

	addText := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" {
			parts = append(parts, Part{Class: ClassLabel, Text: s})
		}
	}

	for _, loc := range spanRe.FindAllStringIndex(content, -1) {
		addText(content[last:loc[0]])
		if p, ok := parseSpan(content[loc[0]:loc[1]]); ok {
			parts = append(parts, p)
		}
		last = loc[1]
	}
	addText(content[last:])

	return parts
}

func parseSpan(markup string) (Part, bool) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(markup); err == nil && doc.Root() != nil {
		root := doc.Root()
		text := strings.TrimSpace(root.Text())
		if text == "" {
			return Part{}, false
		}
		return Part{
			Class: root.SelectAttrValue("class", ClassIcon),
			Text:  text,
			Span:  true,
		}, true
	}

	// Markup etree rejects (raw ampersands in titles) is taken apart by hand.
	class := ClassIcon
	if m := classRe.FindStringSubmatch(markup); m != nil {
		class = m[2]
	}
	text := strings.TrimSpace(spanTagRe.ReplaceAllString(markup, ""))
	if text == "" {
		return Part{}, false
	}
	return Part{Class: class, Text: text, Span: true}, true
}

// Truncate shortens s to max runes and appends ellipsis when it was cut.
// max <= 0 disables truncation.
func Truncate(s string, max int, ellipsis string) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + ellipsis
}

// MapText applies fn to every text run outside span markup. Leading and
// trailing whitespace of a run is kept as is and empty runs are skipped.
func MapText(content string, fn func(string) string) string {
	var b strings.Builder
	last := 0

	mapRun := func(run string) {
		core := strings.TrimSpace(run)
		if core == "" {
			b.WriteString(run)
			return
		}
		start := strings.Index(run, core)
		b.WriteString(run[:start])
		b.WriteString(fn(core))
		b.WriteString(run[start+len(core):])
	}

	for _, loc := range spanRe.FindAllStringIndex(content, -1) {
		mapRun(content[last:loc[0]])
		b.WriteString(content[loc[0]:loc[1]])
		last = loc[1]
	}
	mapRun(content[last:])

	return b.String()
}
