package format

import (
	"reflect"
	"strings"

	"github.com/arthur-debert/barkeep/pkg/errors"
)

// Lookup resolves a path such as "win[title]", "win.process.name" or
// "cores[0]" against data. Maps, slices, arrays, structs and pointers to
// them are traversed; struct fields match by name or mapstructure tag.
func Lookup(data any, path string) (any, error) {
	f := &field{}
	if err := parsePath(path, f); err != nil {
		return nil, err
	}
	value, ok := lookupPath(data, f.name, f.path)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "path %q not found", path)
	}
	return value, nil
}

func lookupPath(data any, name string, path []key) (any, bool) {
	current, ok := step(data, key{name: name})
	if !ok {
		return nil, false
	}
	for _, k := range path {
		if current, ok = step(current, k); !ok {
			return nil, false
		}
	}
	return current, true
}

// step resolves one path element.
func step(data any, k key) (any, bool) {
	switch d := data.(type) {
	case nil:
		return nil, false
	case Context:
		v, ok := d[k.name]
		return v, ok
	case map[string]any:
		v, ok := d[k.name]
		return v, ok
	case map[string]string:
		v, ok := d[k.name]
		return v, ok
	case []any:
		if !k.isIdx || k.index < 0 || k.index >= len(d) {
			return nil, false
		}
		return d[k.index], true
	}

	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			for _, mk := range v.MapKeys() {
				if mk.Kind() == reflect.Interface && mk.Elem().Kind() == reflect.String && mk.Elem().String() == k.name {
					return v.MapIndex(mk).Interface(), true
				}
			}
			return nil, false
		}
		mv := v.MapIndex(reflect.ValueOf(k.name).Convert(v.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true

	case reflect.Slice, reflect.Array:
		if !k.isIdx || k.index < 0 || k.index >= v.Len() {
			return nil, false
		}
		return v.Index(k.index).Interface(), true

	case reflect.Struct:
		return structField(v, k.name)
	}

	return nil, false
}

func structField(v reflect.Value, name string) (any, bool) {
	t := v.Type()
	var fold = -1
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := strings.Split(sf.Tag.Get("mapstructure"), ",")[0]
		if tag == name || sf.Name == name {
			return v.Field(i).Interface(), true
		}
		if fold < 0 && strings.EqualFold(sf.Name, strings.ReplaceAll(name, "_", "")) {
			fold = i
		}
	}
	if fold >= 0 {
		return v.Field(fold).Interface(), true
	}
	return nil, false
}
