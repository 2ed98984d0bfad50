package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/MaineK00n/amalgamate/pkg/types"
)

// Open decodes a JSON or YAML (".yaml", ".yml") config file. Unknown keys
// are rejected.
func Open(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, types.IOError(err, "open %s", path)
	}
	defer f.Close()

	var c Config
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		d := yaml.NewDecoder(f)
		d.KnownFields(true)
		if err := d.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, errors.Wrapf(types.InvalidConfigurationf("%s", err), "decode %s", path)
		}
	default:
		d := json.NewDecoder(f)
		d.DisallowUnknownFields()
		if err := d.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, errors.Wrapf(types.InvalidConfigurationf("%s", err), "decode %s", path)
		}
	}

	return c, nil
}
