package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Markdown renders an option reference table. Nested dict options are
// flattened into dotted rows below their parent.
func (s *Schema) Markdown(title string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	b.WriteString("| Option | Type | Default | Constraints | Description |\n")
	b.WriteString("|---|---|---|---|---|\n")
	s.writeRows(&b, "")
	return b.String()
}

func (s *Schema) writeRows(b *strings.Builder, prefix string) {
	for _, key := range s.keys {
		opt := s.options[key]
		name := joinPath(prefix, key)

		def := "-"
		if opt.Type != TypeDict || opt.Schema == nil {
			def = "`" + markdownValue(opt.DefaultValue()) + "`"
		}

		fmt.Fprintf(b, "| `%s` | %s | %s | %s | %s |\n",
			name, opt.TypeName(), def, constraints(opt), escapeCell(opt.Description))

		if opt.Type == TypeDict && opt.Schema != nil {
			opt.Schema.writeRows(b, name)
		}
		if opt.Type == TypeList && opt.Items != nil && opt.Items.Schema != nil {
			opt.Items.Schema.writeRows(b, name+"[]")
		}
	}
}

func constraints(opt *Option) string {
	var parts []string
	if opt.Required {
		parts = append(parts, "required")
	}
	if opt.Nullable {
		parts = append(parts, "nullable")
	}
	switch {
	case opt.Min != nil && opt.Max != nil:
		parts = append(parts, fmt.Sprintf("%v..%v", *opt.Min, *opt.Max))
	case opt.Min != nil:
		parts = append(parts, fmt.Sprintf(">= %v", *opt.Min))
	case opt.Max != nil:
		parts = append(parts, fmt.Sprintf("<= %v", *opt.Max))
	}
	switch {
	case opt.MinItems != nil && opt.MaxItems != nil:
		parts = append(parts, fmt.Sprintf("%d..%d items", *opt.MinItems, *opt.MaxItems))
	case opt.MinItems != nil:
		parts = append(parts, fmt.Sprintf(">= %d items", *opt.MinItems))
	case opt.MaxItems != nil:
		parts = append(parts, fmt.Sprintf("<= %d items", *opt.MaxItems))
	}
	if len(opt.Allowed) > 0 {
		values := make([]string, len(opt.Allowed))
		for i, v := range opt.Allowed {
			values[i] = fmt.Sprint(v)
		}
		parts = append(parts, "one of "+strings.Join(values, ", "))
	}
	if opt.Pattern != "" {
		parts = append(parts, "matches `"+opt.Pattern+"`")
	}
	if len(parts) == 0 {
		return ""
	}
	return escapeCell(strings.Join(parts, "; "))
}

func markdownValue(v any) string {
	if v == nil {
		return "null"
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return escapeCell(strings.TrimSpace(buf.String()))
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
