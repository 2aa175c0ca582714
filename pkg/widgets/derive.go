package widgets

import (
	"maps"
	"strconv"
	"strings"

	"github.com/arthur-debert/barkeep/pkg/format"
)

// Derived returns data extended with the placeholders opts derives from it.
// Keys the data already provides are kept, so a source can override an icon.
func Derived(opts Options, data format.Context) format.Context {
	d, ok := opts.(Deriving)
	if !ok {
		return data
	}
	extra := d.Derive(data)
	if len(extra) == 0 {
		return data
	}

	out := maps.Clone(data)
	if out == nil {
		out = make(format.Context, len(extra))
	}
	for k, v := range extra {
		if _, has := out[k]; !has {
			out[k] = v
		}
	}
	return out
}

// number reads a numeric placeholder. Strings such as "61.3%" are accepted.
func number(data format.Context, path string) (float64, bool) {
	v, err := format.Lookup(data, path)
	if err != nil {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(n, "%")), 64)
		return f, err == nil
	}
	return 0, false
}

func truthy(data format.Context, path string) bool {
	v, err := format.Lookup(data, path)
	if err != nil {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case int:
		return b != 0
	case string:
		return b == "yes" || b == "true"
	}
	return false
}

// icon returns icons[i], or the last icon when the list is shorter.
func icon(icons []string, i int) string {
	if len(icons) == 0 {
		return ""
	}
	return icons[min(i, len(icons)-1)]
}

// statusOf derives the threshold band of the percentage at path.
func statusOf(t Thresholds, data format.Context, path string) format.Context {
	percent, ok := number(data, path)
	if !ok {
		return nil
	}
	return format.Context{"status": t.Level(percent)}
}
