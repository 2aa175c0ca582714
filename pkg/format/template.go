// Package format renders widget label strings.
//
// A label is a format string made of literal text and replacement fields:
//
//	{%H:%M:%S}                                  time tokens
//	{win[title]}                                nested lookup
//	{info[freq][current]:.2f} Mhz               format spec
//	<span class="icon">{icon}</span> {percent}%  span parts
//
// Templates are parsed once and rendered against a Context on every refresh.
// A field whose path cannot be resolved is rendered exactly as written.
package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/ncruces/go-strftime"
)

// NowKey is the context key holding the time used for time tokens
const NowKey = "__now__"

// Context is the data a template is rendered against.
type Context map[string]any

// key is one step of a field path: a map key, attribute name or list index.
type key struct {
	name  string
	index int
	isIdx bool
}

type field struct {
	raw      string // the token as written, braces included
	name     string
	path     []key
	spec     *Spec
	strftime string
}

type segment struct {
	literal string
	field   *field
}

// Template is a parsed format string.
type Template struct {
	source   string
	segments []segment
}

// Parse parses a format string.
func Parse(format string) (*Template, error) {
	p := &parser{src: format}
	segments, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Template{source: format, segments: segments}, nil
}

// Source returns the format string the template was parsed from
func (t *Template) Source() string {
	return t.source
}

// Fields returns the distinct top-level field names in order of appearance.
// Time tokens are not included.
func (t *Template) Fields() []string {
	seen := make(map[string]bool)
	var out []string
	for _, seg := range t.segments {
		if seg.field == nil || seg.field.strftime != "" {
			continue
		}
		if !seen[seg.field.name] {
			seen[seg.field.name] = true
			out = append(out, seg.field.name)
		}
	}
	return out
}

// Render substitutes every field. Rendering never fails: unresolved fields
// are kept literally.
func (t *Template) Render(ctx Context) string {
	var b strings.Builder
	b.Grow(len(t.source))

	for _, seg := range t.segments {
		if seg.field == nil {
			b.WriteString(seg.literal)
			continue
		}
		b.WriteString(renderField(seg.field, ctx))
	}
	return b.String()
}

// RenderFunc is Render with a hook that may transform resolved string
// values before they are formatted. path is the field path in bracket form.
func (t *Template) RenderFunc(ctx Context, fn func(path string, value string) string) string {
	if fn == nil {
		return t.Render(ctx)
	}

	var b strings.Builder
	for _, seg := range t.segments {
		if seg.field == nil {
			b.WriteString(seg.literal)
			continue
		}
		f := seg.field
		if f.strftime != "" {
			b.WriteString(renderField(f, ctx))
			continue
		}
		value, ok := lookupPath(map[string]any(ctx), f.name, f.path)
		if !ok {
			b.WriteString(f.raw)
			continue
		}
		if s, isString := value.(string); isString {
			value = fn(pathString(f), s)
		}
		b.WriteString(formatValue(value, f.spec))
	}
	return b.String()
}

func renderField(f *field, ctx Context) string {
	if f.strftime != "" {
		return strftime.Format(f.strftime, now(ctx))
	}
	value, ok := lookupPath(map[string]any(ctx), f.name, f.path)
	if !ok {
		return f.raw
	}
	return formatValue(value, f.spec)
}

func now(ctx Context) time.Time {
	if ctx != nil {
		if t, ok := ctx[NowKey].(time.Time); ok {
			return t
		}
	}
	return time.Now()
}

func pathString(f *field) string {
	var b strings.Builder
	b.WriteString(f.name)
	for _, k := range f.path {
		if k.isIdx {
			b.WriteString("[" + strconv.Itoa(k.index) + "]")
			continue
		}
		b.WriteString("[" + k.name + "]")
	}
	return b.String()
}

type parser struct {
	src string
	pos int
}

func (p *parser) parse() ([]segment, error) {
	var segments []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		switch ch {
		case '{':
			if p.peek(1) == '{' {
				lit.WriteByte('{')
				p.pos += 2
				continue
			}
			f, err := p.field()
			if err != nil {
				return nil, err
			}
			flush()
			segments = append(segments, segment{field: f})
		case '}':
			if p.peek(1) == '}' {
				lit.WriteByte('}')
				p.pos += 2
				continue
			}
			return nil, p.errorf("single '}' encountered")
		default:
			lit.WriteByte(ch)
			p.pos++
		}
	}
	flush()
	return segments, nil
}

func (p *parser) peek(offset int) byte {
	if p.pos+offset < len(p.src) {
		return p.src[p.pos+offset]
	}
	return 0
}

// field parses a replacement field starting at an opening brace.
func (p *parser) field() (*field, error) {
	start := p.pos
	p.pos++ // {

	// find the closing brace, ignoring braces inside [...] keys
	depth := 0
	end := -1
	for i := p.pos; i < len(p.src); i++ {
		switch p.src[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '{':
			if depth == 0 && !strings.HasPrefix(p.src[p.pos:i], "%") {
				return nil, p.errorf("unexpected '{' in field")
			}
		case '}':
			if depth == 0 {
				end = i
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return nil, p.errorf("expected '}' before end of string")
	}

	body := p.src[p.pos:end]
	p.pos = end + 1
	f := &field{raw: p.src[start:p.pos]}

	if strings.HasPrefix(body, "%") {
		f.strftime = body
		return f, nil
	}

	name, specText := splitSpec(body)
	if err := parsePath(name, f); err != nil {
		return nil, p.wrap(err, body)
	}
	if specText != "" {
		spec, err := ParseSpec(specText)
		if err != nil {
			return nil, p.wrap(err, body)
		}
		f.spec = spec
	}
	return f, nil
}

func (p *parser) errorf(msg string) error {
	return errors.Newf(errors.ErrTemplateParse, "%s at position %d", msg, p.pos).
		WithDetail("format", p.src)
}

func (p *parser) wrap(err error, field string) error {
	return errors.Wrapf(err, errors.ErrTemplateParse, "invalid field {%s}", field).
		WithDetail("format", p.src)
}

// splitSpec splits "name[a]:spec" at the first colon outside brackets. A
// "!s" or "!r" conversion before the spec is accepted and ignored.
func splitSpec(body string) (string, string) {
	depth := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				return stripConversion(body[:i]), body[i+1:]
			}
		}
	}
	return stripConversion(body), ""
}

func stripConversion(name string) string {
	if i := strings.LastIndex(name, "!"); i >= 0 && i == len(name)-2 && !strings.Contains(name[i:], "]") {
		return name[:i]
	}
	return name
}

// parsePath parses "name", "name[a][0]" and "name.attr" forms.
func parsePath(expr string, f *field) error {
	i := strings.IndexAny(expr, "[.")
	if i < 0 {
		i = len(expr)
	}
	f.name = expr[:i]
	if f.name == "" {
		return errors.New(errors.ErrTemplateParse, "empty field name")
	}

	rest := expr[i:]
	for rest != "" {
		switch rest[0] {
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return errors.New(errors.ErrTemplateParse, "missing ']' in field")
			}
			inner := rest[1:end]
			if inner == "" {
				return errors.New(errors.ErrTemplateParse, "empty key in field")
			}
			if n, err := strconv.Atoi(inner); err == nil {
				f.path = append(f.path, key{name: inner, index: n, isIdx: true})
			} else {
				f.path = append(f.path, key{name: inner})
			}
			rest = rest[end+1:]
		case '.':
			rest = rest[1:]
			j := strings.IndexAny(rest, "[.")
			if j < 0 {
				j = len(rest)
			}
			if j == 0 {
				return errors.New(errors.ErrTemplateParse, "empty attribute in field")
			}
			f.path = append(f.path, key{name: rest[:j]})
			rest = rest[j:]
		default:
			return errors.Newf(errors.ErrTemplateParse, "unexpected %q in field", rest[0])
		}
	}
	return nil
}
