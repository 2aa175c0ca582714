package datasource

import (
	"os"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/format"
	"gopkg.in/yaml.v3"
)

// FromFile loads a data context from a YAML or JSON file.
func FromFile(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read data file %s", path).
			WithDetail("path", path)
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceDecode, "cannot parse data file %s", path).
			WithDetail("path", path)
	}
	return NewStatic(format.Context(data)), nil
}
