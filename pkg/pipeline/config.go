package pipeline

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	gerrors "github.com/matzehuels/gaugechart/pkg/errors"
)

// LoadConfig reads a gauge configuration file. The document has the same
// keys as gauge.Chart.Apply accepts:
//
//	width = 300
//	max = 100
//	colors = ["green", "yellow", "red"]
//
//	[ticks]
//	count = 5
//	label = true
//
//	[limit]
//	values = [20, 80]
func LoadConfig(path string) (map[string]any, error) {
	if err := gerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, gerrors.Wrap(gerrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, gerrors.Wrap(gerrors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	return DecodeConfig(data)
}

// DecodeConfig parses a TOML configuration document.
func DecodeConfig(data []byte) (map[string]any, error) {
	doc := map[string]any{}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeInvalidConfig, err, "parse config")
	}
	return doc, nil
}
